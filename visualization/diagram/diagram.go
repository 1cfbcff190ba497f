// Package diagram owns the on-screen model of the graph cloud: node
// sizing, labels, legend, highlight state, and the render-once guard
// tying a layout to a dataset snapshot.
package diagram

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"go.uber.org/zap"

	"datacloud/domain/catalog"
	pkgerrors "datacloud/pkg/errors"
	"datacloud/visualization/graphview"
	"datacloud/visualization/layout"
)

const (
	minRadius = 20
	maxRadius = 40

	// runes of label per unit of radius
	labelScale = 0.22
)

// LegendItem is one category swatch in the legend.
type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Diagram renders a catalog snapshot exactly once. Re-rendering the same
// snapshot is a no-op; replacing the snapshot resets the latch.
type Diagram struct {
	mu     sync.Mutex
	logger *zap.Logger
	cfg    layout.Config

	view        *graphview.View
	fingerprint uint64
	positions   map[string]layout.Position
	rendered    bool

	highlightedNode  string
	highlightedNodes map[string]bool
	highlightedLinks map[int]bool
}

// New creates an empty diagram with the given layout tuning.
func New(cfg layout.Config, logger *zap.Logger) *Diagram {
	return &Diagram{
		cfg:              cfg,
		logger:           logger,
		highlightedNodes: map[string]bool{},
		highlightedLinks: map[int]bool{},
	}
}

// SetSnapshot installs a new dataset. The render latch is reset only
// when the snapshot identity actually changed.
func (d *Diagram) SetSnapshot(snap *catalog.Snapshot) error {
	fp := fingerprint(snap)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.view != nil && fp == d.fingerprint {
		return nil
	}

	view, err := graphview.Build(snap)
	if err != nil {
		return err
	}

	d.view = view
	d.fingerprint = fp
	d.rendered = false
	d.positions = nil
	d.clearHighlightLocked()

	d.logger.Info("diagram snapshot replaced",
		zap.Int("nodes", len(view.Nodes)),
		zap.Int("links", len(view.Links)),
		zap.Int("droppedNodes", view.DroppedNodes),
		zap.Int("droppedLinks", view.DroppedLinks),
	)
	return nil
}

// Render computes the layout for the current snapshot. It reports
// whether a layout was actually computed; repeat calls for the same
// snapshot return false and change nothing.
func (d *Diagram) Render() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.view == nil {
		return false, pkgerrors.NewInternalError("no snapshot to render")
	}
	if d.rendered {
		return false, nil
	}

	nodes := make([]layout.Node, len(d.view.Nodes))
	for i, node := range d.view.Nodes {
		nodes[i] = layout.Node{ID: node.ID, Radius: d.radiusLocked(node.InDegree)}
	}
	links := make([]layout.Link, len(d.view.Links))
	for i, link := range d.view.Links {
		links[i] = layout.Link{Source: link.Source, Target: link.Target}
	}

	d.positions = layout.Compute(nodes, links, d.cfg)
	d.rendered = true
	return true, nil
}

// Radius returns the circle radius for a node: linear in its
// incoming-link count, scaled into [minRadius, maxRadius].
func (d *Diagram) Radius(id string) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.view == nil {
		return minRadius
	}
	node := d.view.Node(id)
	if node == nil {
		return minRadius
	}
	return d.radiusLocked(node.InDegree)
}

func (d *Diagram) radiusLocked(inDegree int) float64 {
	maxIn := d.view.MaxInDegree()
	if maxIn == 0 {
		return minRadius
	}
	r := minRadius + (maxRadius-minRadius)*float64(inDegree)/float64(maxIn)
	if r < minRadius {
		return minRadius
	}
	if r > maxRadius {
		return maxRadius
	}
	return r
}

// Label abbreviates a node title to a length proportional to its radius,
// appending an ellipsis when truncated.
func Label(title string, radius float64) string {
	limit := int(radius * labelScale)
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit]) + "…"
}

// Legend lists every category present in the rendered node set, in fixed
// category order, with its swatch color.
func (d *Diagram) Legend() []LegendItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.legendLocked()
}

func (d *Diagram) legendLocked() []LegendItem {
	present := map[catalog.Category]bool{}
	for _, node := range d.view.Nodes {
		present[node.Category] = true
	}
	items := make([]LegendItem, 0, len(present))
	for _, c := range catalog.Categories {
		if present[c] {
			items = append(items, LegendItem{Label: string(c), Color: c.Color()})
		}
	}
	return items
}

// HighlightSet describes what a hover over a node lights up.
type HighlightSet struct {
	Node      string   `json:"node"`
	Neighbors []string `json:"neighbors"`
	Links     []int    `json:"links"`
}

// Highlight marks a node, every link touching it, and every node
// directly connected to it.
func (d *Diagram) Highlight(id string) (*HighlightSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.view == nil || d.view.Node(id) == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("node %q", id))
	}

	d.clearHighlightLocked()
	d.highlightedNode = id
	d.highlightedNodes[id] = true

	set := &HighlightSet{Node: id}
	for _, neighbor := range d.view.Neighbors(id) {
		d.highlightedNodes[neighbor] = true
		set.Neighbors = append(set.Neighbors, neighbor)
	}
	for _, i := range d.view.IncidentLinks(id) {
		d.highlightedLinks[i] = true
		set.Links = append(set.Links, i)
	}
	sort.Ints(set.Links)
	return set, nil
}

// ClearHighlight restores zero highlighted elements, the mouse-leave
// behavior.
func (d *Diagram) ClearHighlight() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearHighlightLocked()
}

func (d *Diagram) clearHighlightLocked() {
	d.highlightedNode = ""
	d.highlightedNodes = map[string]bool{}
	d.highlightedLinks = map[int]bool{}
}

// ResolveNavigation returns the navigation target for a node click. Only
// http-prefixed URLs navigate; anything else logs a warning and reports
// no navigation.
func (d *Diagram) ResolveNavigation(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.view == nil {
		return "", false
	}
	node := d.view.Node(id)
	if node == nil {
		d.logger.Warn("navigation requested for unknown node", zap.String("node", id))
		return "", false
	}
	if len(node.URL) < 4 || node.URL[:4] != "http" {
		d.logger.Warn("node has no navigable URL",
			zap.String("node", id),
			zap.String("url", node.URL),
		)
		return "", false
	}
	return node.URL, true
}

func fingerprint(snap *catalog.Snapshot) uint64 {
	h := fnv.New64a()
	for _, entry := range snap.Entries {
		h.Write([]byte(entry.ID))
		h.Write([]byte{0})
		h.Write([]byte(entry.Title))
		h.Write([]byte{0})
		h.Write([]byte(entry.Category))
		h.Write([]byte{0})
		h.Write([]byte(entry.URL))
		h.Write([]byte{1})
	}
	h.Write([]byte{2})
	for _, link := range snap.Links {
		h.Write([]byte(link.Source))
		h.Write([]byte{0})
		h.Write([]byte(link.Target))
		h.Write([]byte{1})
	}
	return h.Sum64()
}
