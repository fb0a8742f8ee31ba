package chem

import (
	"fmt"
	"strings"
)

type bondKind int

const (
	// default pattern bond: single or aromatic
	bondAny bondKind = iota
	bondSingle
	bondDouble
	bondTriple
	bondAromatic
)

type aromSpec int

const (
	aromEither aromSpec = iota
	aromYes
	aromNo
)

type patternAtom struct {
	Symbol    string
	AtomicNum int
	Arom      aromSpec
	HasCharge bool
	Charge    int
}

type patternBond struct {
	other int
	kind  bondKind
}

// Pattern is a compiled substructure query over atoms and bonds in context.
// Atoms are stored in parse order; every atom after the first carries at
// least one bond to an earlier atom, which the matcher exploits.
type Pattern struct {
	Atoms []patternAtom
	// backBonds[i] lists bonds from atom i to earlier atoms.
	backBonds [][]patternBond
}

// ParsePattern compiles a SMARTS-style query. The supported subset covers
// element atoms (case selects aromaticity), bracket atoms with atomic
// number (#n) and charge, explicit bonds, branches and ring closures.
func ParsePattern(s string) (*Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	p := &Pattern{}
	prev := -1
	pending := bondKind(-1)
	rings := map[int]struct {
		atom int
		kind bondKind
	}{}
	var branch []int

	link := func(a, b int, kind bondKind) {
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		p.backBonds[hi] = append(p.backBonds[hi], patternBond{other: lo, kind: kind})
	}
	addAtom := func(a patternAtom) error {
		p.Atoms = append(p.Atoms, a)
		p.backBonds = append(p.backBonds, nil)
		idx := len(p.Atoms) - 1
		if prev >= 0 {
			kind := pending
			if kind < 0 {
				kind = bondAny
			}
			link(prev, idx, kind)
		} else if pending >= 0 {
			return fmt.Errorf("bond with no preceding atom")
		}
		prev = idx
		pending = -1
		return nil
	}
	closeRing := func(n int) error {
		if prev < 0 {
			return fmt.Errorf("ring bond %d with no preceding atom", n)
		}
		ref, open := rings[n]
		if !open {
			rings[n] = struct {
				atom int
				kind bondKind
			}{prev, pending}
			pending = -1
			return nil
		}
		delete(rings, n)
		kind := ref.kind
		if pending >= 0 {
			kind = pending
		}
		if kind < 0 {
			kind = bondAny
		}
		pending = -1
		link(ref.atom, prev, kind)
		return nil
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("branch with no atom")
			}
			branch = append(branch, prev)
			i++
		case c == ')':
			if len(branch) == 0 {
				return nil, fmt.Errorf("unmatched branch close")
			}
			prev = branch[len(branch)-1]
			branch = branch[:len(branch)-1]
			i++
		case c == '-':
			pending = bondSingle
			i++
		case c == '=':
			pending = bondDouble
			i++
		case c == '#':
			pending = bondTriple
			i++
		case c == ':':
			pending = bondAromatic
			i++
		case c >= '0' && c <= '9':
			if err := closeRing(int(c - '0')); err != nil {
				return nil, err
			}
			i++
		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, fmt.Errorf("malformed ring number at %d", i)
			}
			if err := closeRing(int(s[i+1]-'0')*10 + int(s[i+2]-'0')); err != nil {
				return nil, err
			}
			i += 3
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unclosed bracket in pattern")
			}
			a, err := parsePatternBracket(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			if err := addAtom(a); err != nil {
				return nil, err
			}
			i += end + 1
		default:
			a, adv, err := parsePatternElement(s[i:])
			if err != nil {
				return nil, err
			}
			if err := addAtom(a); err != nil {
				return nil, err
			}
			i += adv
		}
	}
	if len(branch) != 0 {
		return nil, fmt.Errorf("unclosed branch in pattern")
	}
	if pending >= 0 {
		return nil, fmt.Errorf("dangling bond in pattern")
	}
	if len(rings) != 0 {
		for n := range rings {
			return nil, fmt.Errorf("unclosed ring bond %d in pattern", n)
		}
	}
	return p, nil
}

// MustParsePattern is ParsePattern for package-level pattern tables.
func MustParsePattern(s string) *Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(fmt.Sprintf("chem: bad pattern %q: %v", s, err))
	}
	return p
}

func parsePatternElement(s string) (patternAtom, int, error) {
	if len(s) >= 2 && (s[:2] == "Cl" || s[:2] == "Br") {
		return patternAtom{Symbol: s[:2], Arom: aromNo}, 2, nil
	}
	c := s[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		return patternAtom{Symbol: string(c), Arom: aromNo}, 1, nil
	}
	if sym, ok := aromaticOrganic[c]; ok {
		return patternAtom{Symbol: sym, Arom: aromYes}, 1, nil
	}
	return patternAtom{}, 0, fmt.Errorf("unexpected pattern character %q", c)
}

func parsePatternBracket(body string) (patternAtom, error) {
	var a patternAtom
	i := 0
	if i < len(body) && body[i] == '#' {
		i++
		n := 0
		for i < len(body) && isDigit(body[i]) {
			n = n*10 + int(body[i]-'0')
			i++
		}
		if n == 0 {
			return patternAtom{}, fmt.Errorf("malformed atomic number in pattern")
		}
		a.AtomicNum = n
	} else if i < len(body) && body[i] >= 'A' && body[i] <= 'Z' {
		sym := string(body[i])
		if i+1 < len(body) && twoLetterElements[sym+string(body[i+1])] {
			sym += string(body[i+1])
			i++
		}
		a.Symbol = sym
		a.Arom = aromNo
		i++
	} else if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
		sym, ok := aromaticOrganic[body[i]]
		if !ok {
			return patternAtom{}, fmt.Errorf("unknown aromatic element %q in pattern", body[i])
		}
		a.Symbol = sym
		a.Arom = aromYes
		i++
	} else {
		return patternAtom{}, fmt.Errorf("malformed pattern bracket %q", body)
	}

	for i < len(body) {
		switch body[i] {
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
			a.HasCharge = true
			a.Charge = sign * count
		case 'H':
			// explicit hydrogen counts are not used as constraints
			i++
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		default:
			return patternAtom{}, fmt.Errorf("unsupported pattern primitive %q", body[i])
		}
	}
	return a, nil
}
