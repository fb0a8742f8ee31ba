package chem

// Atom is one atom of a parsed structure. HCount is the resolved hydrogen
// count: taken verbatim from bracket atoms, otherwise implied from the
// element's default valence against the notation as written.
type Atom struct {
	Symbol    string
	Aromatic  bool
	Charge    int
	Isotope   int
	HCount    int
	HExplicit bool
	Chiral    string
}

type Bond struct {
	From     int
	To       int
	Order    int
	Aromatic bool
}

type Mol struct {
	Atoms []Atom
	Bonds []Bond
	adj   [][]int
}

func (m *Mol) addAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.Atoms) - 1
}

func (m *Mol) addBond(b Bond) int {
	m.Bonds = append(m.Bonds, b)
	idx := len(m.Bonds) - 1
	m.adj[b.From] = append(m.adj[b.From], idx)
	m.adj[b.To] = append(m.adj[b.To], idx)
	return idx
}

// BondsOf returns the indices of bonds incident to atom i.
func (m *Mol) BondsOf(i int) []int {
	return m.adj[i]
}

func (b Bond) Other(i int) int {
	if b.From == i {
		return b.To
	}
	return b.From
}

func (m *Mol) hasBond(a, b int) bool {
	for _, bi := range m.adj[a] {
		if m.Bonds[bi].Other(a) == b {
			return true
		}
	}
	return false
}

func (m *Mol) bondBetween(a, b int) (Bond, bool) {
	for _, bi := range m.adj[a] {
		if m.Bonds[bi].Other(a) == b {
			return m.Bonds[bi], true
		}
	}
	return Bond{}, false
}

// bondOrderSum is the valence consumed by explicit bonds. Aromatic bonds
// count one each; aromatic atoms carry one extra for the delocalized system.
func (m *Mol) bondOrderSum(i int) int {
	sum := 0
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if b.Aromatic {
			sum++
		} else {
			sum += b.Order
		}
	}
	return sum
}

var defaultValence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3, "S": 2,
	"F": 1, "Cl": 1, "Br": 1, "I": 1,
}

var atomicNumber = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Si": 14, "P": 15, "S": 16, "Cl": 17, "Se": 34, "Br": 35, "I": 53,
	"Fe": 26, "Co": 27, "Ni": 28, "Cu": 29, "Zn": 30,
	"Na": 11, "Mg": 12, "K": 19, "Ca": 20, "Li": 3, "Al": 13, "As": 33,
}

func impliedHCount(symbol string, aromatic bool, bondSum int) int {
	val, ok := defaultValence[symbol]
	if !ok {
		return 0
	}
	if aromatic {
		bondSum++
	}
	if h := val - bondSum; h > 0 {
		return h
	}
	return 0
}

// components partitions atom indices into connected components.
func (m *Mol) components() [][]int {
	seen := make([]bool, len(m.Atoms))
	var comps [][]int
	for i := range m.Atoms {
		if seen[i] {
			continue
		}
		var comp []int
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, a)
			for _, bi := range m.adj[a] {
				n := m.Bonds[bi].Other(a)
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
