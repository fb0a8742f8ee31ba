package chem

import "testing"

func TestParseLinearChain(t *testing.T) {
	m, err := Parse("CCO")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Atoms) != 3 || len(m.Bonds) != 2 {
		t.Fatalf("got %d atoms %d bonds", len(m.Atoms), len(m.Bonds))
	}
	wantH := []int{3, 2, 1}
	for i, h := range wantH {
		if m.Atoms[i].HCount != h {
			t.Fatalf("atom %d: implicit H = %d, want %d", i, m.Atoms[i].HCount, h)
		}
	}
}

func TestParseRing(t *testing.T) {
	m, err := Parse("C1CC1")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Atoms) != 3 || len(m.Bonds) != 3 {
		t.Fatalf("got %d atoms %d bonds", len(m.Atoms), len(m.Bonds))
	}
}

func TestParseAromaticRing(t *testing.T) {
	m, err := Parse("c1ccccc1")
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range m.Atoms {
		if !a.Aromatic {
			t.Fatalf("atom %d not aromatic", i)
		}
		if a.HCount != 1 {
			t.Fatalf("atom %d: implicit H = %d, want 1", i, a.HCount)
		}
	}
}

func TestParseKekuleRingIsAromatized(t *testing.T) {
	m, err := Parse("C1=CC=CC=C1")
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range m.Atoms {
		if !a.Aromatic {
			t.Fatalf("atom %d not perceived aromatic", i)
		}
	}
}

func TestParseBracketAtoms(t *testing.T) {
	m, err := Parse("[NH4+]")
	if err != nil {
		t.Fatal(err)
	}
	a := m.Atoms[0]
	if a.Symbol != "N" || a.Charge != 1 || a.HCount != 4 {
		t.Fatalf("unexpected atom %+v", a)
	}

	m, err = Parse("[13CH4]")
	if err != nil {
		t.Fatal(err)
	}
	if m.Atoms[0].Isotope != 13 || m.Atoms[0].HCount != 4 {
		t.Fatalf("unexpected atom %+v", m.Atoms[0])
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{"C1CC", "C(C", "C=", "[C", "C)", "Xx", ""}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q) accepted invalid input", in)
		}
	}
}
