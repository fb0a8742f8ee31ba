package chem

// ReactivityPattern names one substructure query of the classification
// library. Patterns describe a functional group together with its immediate
// electronic environment, so a molecule can carry several tags at once and
// a specific context tag co-fires with its generic fallback.
type ReactivityPattern struct {
	Tag     string
	Query   string
	pattern *Pattern
}

// reactivityLibrary is evaluated in declared order. Order only affects tag
// ordering in the joined class label, not whether a pattern fires.
var reactivityLibrary = []ReactivityPattern{
	// diazo contexts: a diazo group next to an ester carbonyl is a
	// carbene precursor; the generic form is the fallback
	{Tag: "Alpha-Diazo-Ester", Query: "[N-]=[N+]=C-C(=O)O"},
	{Tag: "Alpha-Diazo-Ketone", Query: "[N-]=[N+]=C-C(=O)[#6]"},
	{Tag: "Aryl-Diazo", Query: "[N-]=[N+]=N-c"},
	{Tag: "Diazo-Group", Query: "[N-]=[N+]=C"},

	// olefin contexts
	{Tag: "Styrene-Like", Query: "C=C-c"},
	{Tag: "Michael-Acceptor", Query: "C=C-C(=O)"},
	{Tag: "Isolated-Alkene", Query: "C=C"},

	// amine contexts
	{Tag: "Aryl-Amine", Query: "Nc"},
	{Tag: "Alkyl-Amine", Query: "NC"},
	{Tag: "Amide", Query: "NC(=O)"},

	// ring contexts
	{Tag: "Epoxide/Aziridine/Cyclopropane", Query: "C1CC1"},
	{Tag: "Heme-Like-Core", Query: "n1cccc1"},
}

func init() {
	for i := range reactivityLibrary {
		reactivityLibrary[i].pattern = MustParsePattern(reactivityLibrary[i].Query)
	}
}

// Classify evaluates the pattern library against the whole molecule and
// returns the tags that match, in library order. The boolean reports
// whether the notation parsed; an unparseable structure yields no tags.
// Callers map an empty tag set to the explicit "Unknown" class.
func Classify(notation string) ([]string, bool) {
	m, err := Parse(notation)
	if err != nil {
		return nil, false
	}
	var tags []string
	for _, rp := range reactivityLibrary {
		if rp.pattern.Matches(m) {
			tags = append(tags, rp.Tag)
		}
	}
	return tags, true
}
