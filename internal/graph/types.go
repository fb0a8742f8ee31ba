package graph

type NodeType string

const (
	NodePaper     NodeType = "Paper"
	NodeReaction  NodeType = "Reaction"
	NodeMolecule  NodeType = "Molecule"
	NodePeptide   NodeType = "Peptide"
	NodeCondition NodeType = "Condition"
	NodeChemical  NodeType = "Chemical"
)

type RelationType string

const (
	RelReports       RelationType = "REPORTS"
	RelParticipantIn RelationType = "PARTICIPANT_IN"
	RelCatalyzes     RelationType = "CATALYZES"
	RelHasCondition  RelationType = "HAS_CONDITION"
	RelInvolvedIn    RelationType = "INVOLVED_IN"
)

type Node struct {
	ID              string   `json:"id"`
	Type            NodeType `json:"type"`
	Label           string   `json:"label"`
	SMILES          string   `json:"smiles,omitempty"`
	ReactivityClass string   `json:"reactivity_class,omitempty"`
}

type Edge struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Relation RelationType `json:"relation"`
}

// Graph is a directed multigraph: node identity keys are unique, but any
// ordered pair of nodes may carry multiple labeled edges.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	out   map[string][]int
	in    map[string][]int
}

func New() *Graph {
	return &Graph{
		nodes: map[string]*Node{},
		out:   map[string][]int{},
		in:    map[string][]int{},
	}
}

// Node returns the node stored under id, if any. The pointer is live:
// label refinement mutates it in place.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// UpsertNode inserts n unless a node with the same ID already exists.
// Attributes of an existing node are never overwritten here; refinement
// rules live with the merge engine.
func (g *Graph) UpsertNode(n Node) *Node {
	if existing, ok := g.nodes[n.ID]; ok {
		return existing
	}
	stored := n
	g.nodes[n.ID] = &stored
	g.order = append(g.order, n.ID)
	return &stored
}

func (g *Graph) AddEdge(from, to string, rel RelationType) {
	g.edges = append(g.edges, Edge{From: from, To: to, Relation: rel})
	idx := len(g.edges) - 1
	g.out[from] = append(g.out[from], idx)
	g.in[to] = append(g.in[to], idx)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Linked returns the union of predecessors and successors of id. A node
// reachable over several parallel edges appears once per edge; callers
// that only probe for neighbor types are unaffected.
func (g *Graph) Linked(id string) []*Node {
	var out []*Node
	for _, ei := range g.in[id] {
		if n, ok := g.nodes[g.edges[ei].From]; ok {
			out = append(out, n)
		}
	}
	for _, ei := range g.out[id] {
		if n, ok := g.nodes[g.edges[ei].To]; ok {
			out = append(out, n)
		}
	}
	return out
}
