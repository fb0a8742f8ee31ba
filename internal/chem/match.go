package chem

// Matches reports whether the pattern occurs as a substructure of m.
// Matching is an injective mapping of pattern atoms onto molecule atoms
// that satisfies every atom and bond predicate.
func (p *Pattern) Matches(m *Mol) bool {
	if len(p.Atoms) == 0 || len(p.Atoms) > len(m.Atoms) {
		return false
	}
	used := make([]bool, len(m.Atoms))
	mapping := make([]int, len(p.Atoms))

	var try func(pi int) bool
	try = func(pi int) bool {
		if pi == len(p.Atoms) {
			return true
		}
		var candidates []int
		if len(p.backBonds[pi]) == 0 {
			candidates = make([]int, len(m.Atoms))
			for i := range candidates {
				candidates[i] = i
			}
		} else {
			anchor := mapping[p.backBonds[pi][0].other]
			for _, bi := range m.adj[anchor] {
				candidates = append(candidates, m.Bonds[bi].Other(anchor))
			}
		}
		for _, a := range candidates {
			if used[a] || !atomMatches(p.Atoms[pi], m.Atoms[a]) {
				continue
			}
			ok := true
			for _, pb := range p.backBonds[pi] {
				mb, exists := m.bondBetween(a, mapping[pb.other])
				if !exists || !bondMatches(pb.kind, mb) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			mapping[pi] = a
			used[a] = true
			if try(pi + 1) {
				return true
			}
			used[a] = false
		}
		return false
	}
	return try(0)
}

func atomMatches(pa patternAtom, a Atom) bool {
	if pa.AtomicNum != 0 {
		if atomicNumber[a.Symbol] != pa.AtomicNum {
			return false
		}
	} else if pa.Symbol != a.Symbol {
		return false
	}
	switch pa.Arom {
	case aromYes:
		if !a.Aromatic {
			return false
		}
	case aromNo:
		if a.Aromatic {
			return false
		}
	}
	if pa.HasCharge && pa.Charge != a.Charge {
		return false
	}
	return true
}

func bondMatches(kind bondKind, b Bond) bool {
	switch kind {
	case bondAny:
		return b.Aromatic || b.Order == 1
	case bondSingle:
		return !b.Aromatic && b.Order == 1
	case bondDouble:
		return !b.Aromatic && b.Order == 2
	case bondTriple:
		return !b.Aromatic && b.Order == 3
	case bondAromatic:
		return b.Aromatic
	}
	return false
}
