package chem

import (
	"reflect"
	"testing"
)

func TestClassifyDiazoEster(t *testing.T) {
	tags, ok := Classify("[N-]=[N+]=CC(=O)OCC")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := []string{"Alpha-Diazo-Ester", "Diazo-Group"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestClassifyStyrene(t *testing.T) {
	tags, ok := Classify("C=Cc1ccccc1")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := []string{"Styrene-Like", "Isolated-Alkene"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestClassifyAmide(t *testing.T) {
	tags, ok := Classify("CC(=O)NC")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := []string{"Alkyl-Amine", "Amide"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestClassifyThreeRing(t *testing.T) {
	tags, ok := Classify("C1CC1")
	if !ok {
		t.Fatal("expected parse success")
	}
	want := []string{"Epoxide/Aziridine/Cyclopropane"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("got %v, want %v", tags, want)
	}
}

func TestClassifyAzoleCore(t *testing.T) {
	for _, in := range []string{"c1cc[nH]c1", "C1=CC=CN1"} {
		tags, ok := Classify(in)
		if !ok {
			t.Fatalf("expected parse success for %q", in)
		}
		want := []string{"Heme-Like-Core"}
		if !reflect.DeepEqual(tags, want) {
			t.Fatalf("Classify(%q) = %v, want %v", in, tags, want)
		}
	}
}

func TestClassifyUnparseable(t *testing.T) {
	tags, ok := Classify("???")
	if ok || tags != nil {
		t.Fatalf("expected no tags for invalid input, got %v ok=%v", tags, ok)
	}
}
