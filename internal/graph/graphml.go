package graph

import (
	"encoding/xml"
	"fmt"
	"io"
)

// GraphML export for external graph tooling. The JSON artifact is the
// loadable interchange form; GraphML is write-only.

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlGraph struct {
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

// WriteGraphML serializes the graph as directed GraphML with one typed
// attribute record per node and one relation record per edge.
func (g *Graph) WriteGraphML(w io.Writer) error {
	doc := graphmlDoc{
		XMLNS: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "d0", For: "node", AttrName: "type", AttrType: "string"},
			{ID: "d1", For: "node", AttrName: "label", AttrType: "string"},
			{ID: "d2", For: "node", AttrName: "smiles", AttrType: "string"},
			{ID: "d3", For: "node", AttrName: "reactivity_class", AttrType: "string"},
			{ID: "d4", For: "edge", AttrName: "relation", AttrType: "string"},
		},
		Graph: graphmlGraph{EdgeDefault: "directed"},
	}
	for _, id := range g.order {
		n := g.nodes[id]
		data := []graphmlData{
			{Key: "d0", Value: string(n.Type)},
			{Key: "d1", Value: n.Label},
		}
		if n.SMILES != "" {
			data = append(data, graphmlData{Key: "d2", Value: n.SMILES})
		}
		if n.ReactivityClass != "" {
			data = append(data, graphmlData{Key: "d3", Value: n.ReactivityClass})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{ID: n.ID, Data: data})
	}
	for _, e := range g.edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.From,
			Target: e.To,
			Data:   []graphmlData{{Key: "d4", Value: string(e.Relation)}},
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write graphml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	return nil
}
