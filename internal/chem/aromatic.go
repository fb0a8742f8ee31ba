package chem

// perceiveAromaticity reconciles the two ways a ring can arrive: lowercase
// aromatic notation and Kekulé alternating bonds. Five- and six-membered
// rings with six pi electrons are promoted to aromatic, and aromatic bond
// marks that do not sit inside an aromatic ring (e.g. the biphenyl bridge
// between two lowercase rings) are demoted to single bonds.
func (m *Mol) perceiveAromaticity() {
	rings := m.ringsUpTo(6)

	for _, ring := range rings {
		if len(ring) < 5 {
			continue
		}
		if m.anyAromatic(ring) {
			continue
		}
		electrons, ok := m.ringElectrons(ring)
		if !ok || electrons != 6 {
			continue
		}
		for _, a := range ring {
			m.Atoms[a].Aromatic = true
		}
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			for _, bi := range m.adj[a] {
				if m.Bonds[bi].Other(a) == b {
					m.Bonds[bi].Order = 1
					m.Bonds[bi].Aromatic = true
				}
			}
		}
	}

	// Demote aromatic bond marks outside any fully aromatic ring.
	inAromaticRing := map[int]bool{}
	for _, ring := range rings {
		all := true
		for _, a := range ring {
			if !m.Atoms[a].Aromatic {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			for _, bi := range m.adj[a] {
				if m.Bonds[bi].Other(a) == b {
					inAromaticRing[bi] = true
				}
			}
		}
	}
	for bi := range m.Bonds {
		if m.Bonds[bi].Aromatic && !inAromaticRing[bi] {
			m.Bonds[bi].Aromatic = false
			m.Bonds[bi].Order = 1
		}
	}
}

func (m *Mol) anyAromatic(ring []int) bool {
	for _, a := range ring {
		if m.Atoms[a].Aromatic {
			return true
		}
	}
	return false
}

// ringElectrons counts pi electrons contributed by each ring atom under a
// simplified Hückel model. Reports ok=false when an sp3 atom disqualifies
// the ring.
func (m *Mol) ringElectrons(ring []int) (int, bool) {
	inRing := map[int]bool{}
	for _, a := range ring {
		inRing[a] = true
	}
	total := 0
	for _, a := range ring {
		ringDouble, exoDoubleC, exoDoubleHet := false, false, false
		for _, bi := range m.adj[a] {
			b := m.Bonds[bi]
			if b.Order < 2 {
				continue
			}
			other := b.Other(a)
			switch {
			case inRing[other]:
				ringDouble = true
			case m.Atoms[other].Symbol == "C":
				exoDoubleC = true
			default:
				exoDoubleHet = true
			}
		}
		switch {
		case ringDouble || exoDoubleC:
			total++
		case exoDoubleHet:
			// sp2 but contributes nothing (e.g. quinone carbonyl carbon)
		case m.Atoms[a].Symbol == "N" || m.Atoms[a].Symbol == "O" ||
			m.Atoms[a].Symbol == "S" || m.Atoms[a].Symbol == "P":
			total += 2
		default:
			return 0, false
		}
	}
	return total, true
}

// ringsUpTo enumerates simple cycles of length 3..maxLen. Each cycle is
// reported once, anchored at its lowest-index atom.
func (m *Mol) ringsUpTo(maxLen int) [][]int {
	n := len(m.Atoms)
	var rings [][]int
	inPath := make([]bool, n)
	var path []int
	start := 0

	var dfs func(cur int)
	dfs = func(cur int) {
		for _, bi := range m.adj[cur] {
			nb := m.Bonds[bi].Other(cur)
			if nb == start && len(path) >= 3 {
				if path[1] < path[len(path)-1] {
					rings = append(rings, append([]int(nil), path...))
				}
				continue
			}
			if nb <= start || inPath[nb] || len(path) >= maxLen {
				continue
			}
			inPath[nb] = true
			path = append(path, nb)
			dfs(nb)
			path = path[:len(path)-1]
			inPath[nb] = false
		}
	}

	for s := 0; s < n; s++ {
		start = s
		path = append(path[:0], s)
		inPath[s] = true
		dfs(s)
		inPath[s] = false
	}
	return rings
}
