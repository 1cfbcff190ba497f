// Package graphview builds the renderable node/link set from a catalog
// snapshot. Only entries touched by at least one surviving link are
// rendered; links referencing unknown entries are dropped first.
package graphview

import (
	"errors"

	"github.com/dominikbraun/graph"

	"datacloud/domain/catalog"
)

// Node is a rendered graph node derived from a catalog entry.
type Node struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Category catalog.Category `json:"category"`
	URL      string           `json:"url,omitempty"`
	InDegree int              `json:"inDegree"`
}

// Link is a rendered edge. Both endpoints are guaranteed to be in the
// view's node set.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// View is the filtered graph handed to the layout engine.
type View struct {
	Nodes []Node
	Links []Link

	// DroppedNodes counts entries excluded for having no link.
	DroppedNodes int
	// DroppedLinks counts links excluded for referencing unknown entries.
	DroppedLinks int

	adjacency map[string]map[string]bool
	index     map[string]int
}

// Build filters a snapshot into a view. Input ordering is preserved so
// repeated builds of the same snapshot are identical.
func Build(snap *catalog.Snapshot) (*View, error) {
	g := graph.New(graph.StringHash, graph.Directed())

	known := make(map[string]bool, len(snap.Entries))
	for _, entry := range snap.Entries {
		if err := g.AddVertex(entry.ID); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				continue
			}
			return nil, err
		}
		known[entry.ID] = true
	}

	view := &View{
		adjacency: make(map[string]map[string]bool),
		index:     make(map[string]int),
	}

	connected := make(map[string]bool)
	for _, link := range snap.Links {
		if !known[link.Source] || !known[link.Target] {
			view.DroppedLinks++
			continue
		}
		if err := g.AddEdge(link.Source, link.Target); err != nil {
			if errors.Is(err, graph.ErrEdgeAlreadyExists) {
				view.DroppedLinks++
				continue
			}
			return nil, err
		}
		view.Links = append(view.Links, Link{Source: link.Source, Target: link.Target})
		connected[link.Source] = true
		connected[link.Target] = true
	}

	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}

	for _, entry := range snap.Entries {
		if !connected[entry.ID] {
			view.DroppedNodes++
			continue
		}
		view.index[entry.ID] = len(view.Nodes)
		view.Nodes = append(view.Nodes, Node{
			ID:       entry.ID,
			Title:    entry.Title,
			Category: entry.Category,
			URL:      entry.URL,
			InDegree: len(predecessors[entry.ID]),
		})
	}

	// Undirected adjacency for hover highlighting.
	for _, link := range view.Links {
		view.addAdjacent(link.Source, link.Target)
		view.addAdjacent(link.Target, link.Source)
	}

	return view, nil
}

func (v *View) addAdjacent(from, to string) {
	if v.adjacency[from] == nil {
		v.adjacency[from] = make(map[string]bool)
	}
	v.adjacency[from][to] = true
}

// Node returns the rendered node with the given ID, or nil.
func (v *View) Node(id string) *Node {
	i, ok := v.index[id]
	if !ok {
		return nil
	}
	return &v.Nodes[i]
}

// Neighbors returns the IDs directly connected to id in either
// direction, in node order.
func (v *View) Neighbors(id string) []string {
	adjacent := v.adjacency[id]
	if len(adjacent) == 0 {
		return nil
	}
	neighbors := make([]string, 0, len(adjacent))
	for _, node := range v.Nodes {
		if adjacent[node.ID] {
			neighbors = append(neighbors, node.ID)
		}
	}
	return neighbors
}

// IncidentLinks returns the indices into Links of every link touching id.
func (v *View) IncidentLinks(id string) []int {
	var incident []int
	for i, link := range v.Links {
		if link.Source == id || link.Target == id {
			incident = append(incident, i)
		}
	}
	return incident
}

// MaxInDegree returns the largest incoming-link count in the view.
func (v *View) MaxInDegree() int {
	max := 0
	for _, node := range v.Nodes {
		if node.InDegree > max {
			max = node.InDegree
		}
	}
	return max
}

// Density returns the ratio of rendered links to possible undirected
// pairs, 0 for fewer than two nodes.
func (v *View) Density() float64 {
	n := len(v.Nodes)
	if n < 2 {
		return 0
	}
	return float64(len(v.Links)) / (float64(n) * float64(n-1) / 2)
}
