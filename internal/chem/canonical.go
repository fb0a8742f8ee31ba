package chem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonicalize normalizes a raw structure notation so that chemically
// identical molecules map to byte-identical strings. The boolean reports
// whether the input parsed; on failure the raw input is returned unchanged
// so callers can still use it as a (weaker) identity key.
func Canonicalize(raw string) (string, bool) {
	m, err := Parse(raw)
	if err != nil {
		return raw, false
	}
	return canonicalString(m), true
}

// FirstFragment returns the first dot-separated fragment of a notation.
func FirstFragment(raw string) string {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return raw[:i]
	}
	return raw
}

func canonicalString(m *Mol) string {
	comps := m.components()
	parts := make([]string, 0, len(comps))
	for _, comp := range comps {
		parts = append(parts, writeComponent(m, comp))
	}
	sort.Strings(parts)
	return strings.Join(parts, ".")
}

// canonicalRanks assigns a unique rank to every atom of the component by
// iterative neighborhood refinement with deterministic tie-breaking.
// Ranks depend only on the labeled graph, not on input atom order.
func canonicalRanks(m *Mol, comp []int) []int {
	inv := make(map[int]string, len(comp))
	for _, a := range comp {
		at := m.Atoms[a]
		inv[a] = fmt.Sprintf("%s|%t|%d|%d|%d|%d|%s",
			at.Symbol, at.Aromatic, at.Charge, at.Isotope, at.HCount, len(m.adj[a]), at.Chiral)
	}
	ranks := ranksFromStrings(m, comp, inv)
	ranks = refineRanks(m, comp, ranks)

	for {
		classes := map[int][]int{}
		for _, a := range comp {
			classes[ranks[a]] = append(classes[ranks[a]], a)
		}
		target := -1
		for r, members := range classes {
			if len(members) > 1 && (target == -1 || r < target) {
				target = r
			}
		}
		if target == -1 {
			return ranks
		}
		members := classes[target]
		sort.Ints(members)
		for _, a := range comp {
			ranks[a] *= 2
		}
		ranks[members[0]]--
		ranks = compressRanks(comp, ranks)
		ranks = refineRanks(m, comp, ranks)
	}
}

func refineRanks(m *Mol, comp []int, ranks []int) []int {
	for {
		inv := make(map[int]string, len(comp))
		for _, a := range comp {
			terms := make([]string, 0, len(m.adj[a]))
			for _, bi := range m.adj[a] {
				b := m.Bonds[bi]
				terms = append(terms, fmt.Sprintf("%s%06d", bondKey(b), ranks[b.Other(a)]))
			}
			sort.Strings(terms)
			inv[a] = fmt.Sprintf("%06d|%s", ranks[a], strings.Join(terms, ","))
		}
		next := ranksFromStrings(m, comp, inv)
		same := true
		for _, a := range comp {
			if next[a] != ranks[a] {
				same = false
				break
			}
		}
		if same {
			return next
		}
		ranks = next
	}
}

func ranksFromStrings(m *Mol, comp []int, inv map[int]string) []int {
	uniq := make([]string, 0, len(comp))
	seen := map[string]bool{}
	for _, a := range comp {
		if !seen[inv[a]] {
			seen[inv[a]] = true
			uniq = append(uniq, inv[a])
		}
	}
	sort.Strings(uniq)
	pos := make(map[string]int, len(uniq))
	for i, s := range uniq {
		pos[s] = i
	}
	ranks := make([]int, len(m.Atoms))
	for _, a := range comp {
		ranks[a] = pos[inv[a]]
	}
	return ranks
}

func compressRanks(comp []int, ranks []int) []int {
	vals := make([]int, 0, len(comp))
	seen := map[int]bool{}
	for _, a := range comp {
		if !seen[ranks[a]] {
			seen[ranks[a]] = true
			vals = append(vals, ranks[a])
		}
	}
	sort.Ints(vals)
	pos := make(map[int]int, len(vals))
	for i, v := range vals {
		pos[v] = i
	}
	for _, a := range comp {
		ranks[a] = pos[ranks[a]]
	}
	return ranks
}

func bondKey(b Bond) string {
	if b.Aromatic {
		return "a"
	}
	return strconv.Itoa(b.Order)
}

type smilesWriter struct {
	m         *Mol
	ranks     []int
	visited   []bool
	isRing    map[int]bool
	ringAt    map[int][]int
	digits    map[int]int
	nextDigit int
	sb        strings.Builder
}

func writeComponent(m *Mol, comp []int) string {
	w := &smilesWriter{
		m:      m,
		ranks:  canonicalRanks(m, comp),
		isRing: map[int]bool{},
		ringAt: map[int][]int{},
		digits: map[int]int{},
	}
	start := comp[0]
	for _, a := range comp {
		if w.ranks[a] < w.ranks[start] {
			start = a
		}
	}
	w.findRingBonds(start)
	w.visited = make([]bool, len(m.Atoms))
	w.walk(start, -1)
	return w.sb.String()
}

// findRingBonds runs the same rank-ordered DFS as the writer and marks
// every non-tree bond as a ring closure, recording at both endpoints the
// order in which its digit must be emitted.
func (w *smilesWriter) findRingBonds(start int) {
	w.visited = make([]bool, len(w.m.Atoms))
	used := make([]bool, len(w.m.Bonds))
	var dfs func(atom, fromBond int)
	dfs = func(atom, fromBond int) {
		w.visited[atom] = true
		for _, bi := range w.sortedBonds(atom) {
			if bi == fromBond || used[bi] {
				continue
			}
			other := w.m.Bonds[bi].Other(atom)
			used[bi] = true
			if w.visited[other] {
				w.isRing[bi] = true
				w.ringAt[atom] = append(w.ringAt[atom], bi)
				w.ringAt[other] = append(w.ringAt[other], bi)
				continue
			}
			dfs(other, bi)
		}
	}
	dfs(start, -1)
}

func (w *smilesWriter) sortedBonds(atom int) []int {
	bs := append([]int(nil), w.m.adj[atom]...)
	sort.Slice(bs, func(i, j int) bool {
		oi := w.m.Bonds[bs[i]].Other(atom)
		oj := w.m.Bonds[bs[j]].Other(atom)
		if w.ranks[oi] != w.ranks[oj] {
			return w.ranks[oi] < w.ranks[oj]
		}
		return bs[i] < bs[j]
	})
	return bs
}

func (w *smilesWriter) walk(atom, fromBond int) {
	w.visited[atom] = true
	w.sb.WriteString(w.atomToken(atom))
	for _, bi := range w.ringAt[atom] {
		w.sb.WriteString(w.bondToken(bi))
		w.sb.WriteString(w.ringDigit(bi))
	}
	var children []int
	for _, bi := range w.sortedBonds(atom) {
		if bi == fromBond || w.isRing[bi] {
			continue
		}
		if !w.visited[w.m.Bonds[bi].Other(atom)] {
			children = append(children, bi)
		}
	}
	for i, bi := range children {
		other := w.m.Bonds[bi].Other(atom)
		if i < len(children)-1 {
			w.sb.WriteByte('(')
			w.sb.WriteString(w.bondToken(bi))
			w.walk(other, bi)
			w.sb.WriteByte(')')
		} else {
			w.sb.WriteString(w.bondToken(bi))
			w.walk(other, bi)
		}
	}
}

func (w *smilesWriter) ringDigit(bi int) string {
	d, ok := w.digits[bi]
	if !ok {
		w.nextDigit++
		d = w.nextDigit
		w.digits[bi] = d
	}
	if d < 10 {
		return strconv.Itoa(d)
	}
	return fmt.Sprintf("%%%02d", d)
}

func (w *smilesWriter) bondToken(bi int) string {
	b := w.m.Bonds[bi]
	if b.Aromatic {
		return ""
	}
	switch b.Order {
	case 2:
		return "="
	case 3:
		return "#"
	}
	if w.m.Atoms[b.From].Aromatic && w.m.Atoms[b.To].Aromatic {
		return "-"
	}
	return ""
}

func (w *smilesWriter) atomToken(i int) string {
	a := w.m.Atoms[i]
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	if a.Charge == 0 && a.Isotope == 0 && a.Chiral == "" && inOrganicSubset(a) &&
		impliedHCount(a.Symbol, a.Aromatic, w.m.bondOrderSum(i)) == a.HCount {
		return sym
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sb.WriteString(sym)
	sb.WriteString(a.Chiral)
	if a.HCount == 1 {
		sb.WriteByte('H')
	} else if a.HCount > 1 {
		sb.WriteByte('H')
		sb.WriteString(strconv.Itoa(a.HCount))
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge > 1:
		sb.WriteByte('+')
		sb.WriteString(strconv.Itoa(a.Charge))
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge < -1:
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(-a.Charge))
	}
	sb.WriteByte(']')
	return sb.String()
}

func inOrganicSubset(a Atom) bool {
	switch a.Symbol {
	case "B", "C", "N", "O", "P", "S":
		return true
	case "F", "Cl", "Br", "I":
		return !a.Aromatic
	}
	return false
}
