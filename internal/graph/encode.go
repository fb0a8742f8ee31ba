package graph

import "encoding/json"

type document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := document{Nodes: make([]Node, 0, len(g.order)), Edges: g.edges}
	for _, id := range g.order {
		doc.Nodes = append(doc.Nodes, *g.nodes[id])
	}
	if doc.Edges == nil {
		doc.Edges = []Edge{}
	}
	return json.Marshal(doc)
}

func (g *Graph) UnmarshalJSON(b []byte) error {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*g = *New()
	for _, n := range doc.Nodes {
		g.UpsertNode(n)
	}
	for _, e := range doc.Edges {
		g.AddEdge(e.From, e.To, e.Relation)
	}
	return nil
}
