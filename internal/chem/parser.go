package chem

import (
	"fmt"
	"strings"
)

var twoLetterElements = map[string]bool{
	"Cl": true, "Br": true, "Si": true, "Se": true, "Na": true, "Li": true,
	"Mg": true, "Ca": true, "Fe": true, "Zn": true, "Cu": true, "Mn": true,
	"Co": true, "Ni": true, "Al": true, "As": true, "Sn": true, "Ag": true,
}

var aromaticOrganic = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

type ringRef struct {
	atom int
	bond byte
}

// Parse reads a SMILES-style structure notation into a molecular graph.
// It covers the organic subset, bracket atoms (isotope, charge, chirality,
// explicit hydrogens), branches, ring closures and multiple fragments.
func Parse(s string) (*Mol, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty structure notation")
	}
	m := &Mol{}
	prev := -1
	var pendingBond byte
	rings := map[int]ringRef{}
	var branch []int

	addParsedAtom := func(a Atom) error {
		idx := m.addAtom(a)
		if prev >= 0 {
			b, err := resolveBond(m, prev, idx, pendingBond)
			if err != nil {
				return err
			}
			m.addBond(b)
		} else if pendingBond != 0 {
			return fmt.Errorf("bond symbol with no preceding atom")
		}
		prev = idx
		pendingBond = 0
		return nil
	}

	closeRing := func(n int) error {
		if prev < 0 {
			return fmt.Errorf("ring bond %d with no preceding atom", n)
		}
		ref, open := rings[n]
		if !open {
			rings[n] = ringRef{atom: prev, bond: pendingBond}
			pendingBond = 0
			return nil
		}
		delete(rings, n)
		sym := ref.bond
		if pendingBond != 0 {
			if sym != 0 && sym != pendingBond {
				return fmt.Errorf("conflicting ring bond symbols for ring %d", n)
			}
			sym = pendingBond
		}
		pendingBond = 0
		if ref.atom == prev {
			return fmt.Errorf("ring bond %d closes on its own atom", n)
		}
		if m.hasBond(ref.atom, prev) {
			return fmt.Errorf("duplicate bond via ring %d", n)
		}
		b, err := resolveBond(m, ref.atom, prev, sym)
		if err != nil {
			return err
		}
		m.addBond(b)
		return nil
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("branch open at position %d with no atom", i)
			}
			branch = append(branch, prev)
			i++
		case c == ')':
			if len(branch) == 0 {
				return nil, fmt.Errorf("unmatched branch close at position %d", i)
			}
			prev = branch[len(branch)-1]
			branch = branch[:len(branch)-1]
			i++
		case c == '-' || c == '=' || c == '#' || c == ':':
			if pendingBond != 0 {
				return nil, fmt.Errorf("repeated bond symbol at position %d", i)
			}
			pendingBond = c
			i++
		case c == '/' || c == '\\':
			// Directional single bonds; cis/trans marks are not retained.
			pendingBond = '-'
			i++
		case c == '.':
			if pendingBond != 0 {
				return nil, fmt.Errorf("bond symbol before fragment separator")
			}
			prev = -1
			i++
		case c >= '0' && c <= '9':
			if err := closeRing(int(c - '0')); err != nil {
				return nil, err
			}
			i++
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, fmt.Errorf("malformed ring bond number at position %d", i)
			}
			n := int(s[i+1]-'0')*10 + int(s[i+2]-'0')
			if err := closeRing(n); err != nil {
				return nil, err
			}
			i += 3
		case c == '[':
			a, adv, err := parseBracketAtom(s[i:])
			if err != nil {
				return nil, err
			}
			if err := addParsedAtom(a); err != nil {
				return nil, err
			}
			i += adv
		default:
			a, adv, err := parseOrganicAtom(s[i:])
			if err != nil {
				return nil, fmt.Errorf("position %d: %w", i, err)
			}
			if err := addParsedAtom(a); err != nil {
				return nil, err
			}
			i += adv
		}
	}
	if len(branch) != 0 {
		return nil, fmt.Errorf("unclosed branch")
	}
	if pendingBond != 0 {
		return nil, fmt.Errorf("dangling bond symbol")
	}
	if len(rings) != 0 {
		for n := range rings {
			return nil, fmt.Errorf("unclosed ring bond %d", n)
		}
	}
	// Hydrogens are implied from the as-written valence before aromatic
	// promotion: a Kekulé pyrrole nitrogen keeps its N-H, matching the
	// explicit [nH] of the lowercase notation.
	m.assignImplicitHydrogens()
	m.perceiveAromaticity()
	return m, nil
}

func resolveBond(m *Mol, from, to int, sym byte) (Bond, error) {
	switch sym {
	case 0:
		if m.Atoms[from].Aromatic && m.Atoms[to].Aromatic {
			return Bond{From: from, To: to, Order: 1, Aromatic: true}, nil
		}
		return Bond{From: from, To: to, Order: 1}, nil
	case '-':
		return Bond{From: from, To: to, Order: 1}, nil
	case '=':
		return Bond{From: from, To: to, Order: 2}, nil
	case '#':
		return Bond{From: from, To: to, Order: 3}, nil
	case ':':
		return Bond{From: from, To: to, Order: 1, Aromatic: true}, nil
	}
	return Bond{}, fmt.Errorf("unknown bond symbol %q", sym)
}

func parseOrganicAtom(s string) (Atom, int, error) {
	if len(s) >= 2 && twoLetterElements[s[:2]] {
		switch s[:2] {
		case "Cl", "Br":
			return Atom{Symbol: s[:2]}, 2, nil
		}
	}
	c := s[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		return Atom{Symbol: string(c)}, 1, nil
	}
	if sym, ok := aromaticOrganic[c]; ok {
		return Atom{Symbol: sym, Aromatic: true}, 1, nil
	}
	return Atom{}, 0, fmt.Errorf("unexpected character %q", c)
}

func parseBracketAtom(s string) (Atom, int, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Atom{}, 0, fmt.Errorf("unclosed bracket atom")
	}
	body := s[1:end]
	var a Atom
	i := 0

	for i < len(body) && isDigit(body[i]) {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}
	if i >= len(body) {
		return Atom{}, 0, fmt.Errorf("bracket atom missing element")
	}

	c := body[i]
	switch {
	case c >= 'A' && c <= 'Z':
		sym := string(c)
		if i+1 < len(body) && body[i+1] >= 'a' && body[i+1] <= 'z' && twoLetterElements[sym+string(body[i+1])] {
			sym += string(body[i+1])
			i++
		}
		a.Symbol = sym
		i++
	case c >= 'a' && c <= 'z':
		if i+1 < len(body) && (body[i:i+2] == "se" || body[i:i+2] == "as") {
			a.Symbol = strings.ToUpper(body[i : i+1]) + body[i+1:i+2]
			a.Aromatic = true
			i += 2
		} else if sym, ok := aromaticOrganic[c]; ok {
			a.Symbol = sym
			a.Aromatic = true
			i++
		} else {
			return Atom{}, 0, fmt.Errorf("unknown aromatic element %q", c)
		}
	default:
		return Atom{}, 0, fmt.Errorf("malformed bracket atom %q", body)
	}

	for i < len(body) {
		switch body[i] {
		case '@':
			if i+1 < len(body) && body[i+1] == '@' {
				a.Chiral = "@@"
				i += 2
			} else {
				a.Chiral = "@"
				i++
			}
		case 'H':
			a.HCount = 1
			i++
			n := 0
			for i < len(body) && isDigit(body[i]) {
				n = n*10 + int(body[i]-'0')
				i++
			}
			if n > 0 {
				a.HCount = n
			}
		case '+', '-':
			sign := 1
			if body[i] == '-' {
				sign = -1
			}
			mark := body[i]
			count := 1
			i++
			if i < len(body) && isDigit(body[i]) {
				count = 0
				for i < len(body) && isDigit(body[i]) {
					count = count*10 + int(body[i]-'0')
					i++
				}
			} else {
				for i < len(body) && body[i] == mark {
					count++
					i++
				}
			}
			a.Charge = sign * count
		case ':':
			i++
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		default:
			return Atom{}, 0, fmt.Errorf("unexpected %q in bracket atom", body[i])
		}
	}
	a.HExplicit = true
	return a, end + 1, nil
}

func (m *Mol) assignImplicitHydrogens() {
	for i := range m.Atoms {
		if m.Atoms[i].HExplicit {
			continue
		}
		m.Atoms[i].HCount = impliedHCount(m.Atoms[i].Symbol, m.Atoms[i].Aromatic, m.bondOrderSum(i))
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
