package diagram

import (
	pkgerrors "datacloud/pkg/errors"
)

// FrameNode is a positioned, styled node ready to draw.
type FrameNode struct {
	ID          string
	Label       string
	Title       string
	Color       string
	X           float64
	Y           float64
	Radius      float64
	Highlighted bool
}

// FrameLink is a positioned edge ready to draw.
type FrameLink struct {
	X1, Y1      float64
	X2, Y2      float64
	Highlighted bool
}

// Frame is an immutable snapshot of the rendered diagram. Exporters draw
// from a frame so a concurrent highlight or dataset change cannot tear
// the output.
type Frame struct {
	Width  int
	Height int
	Nodes  []FrameNode
	Links  []FrameLink
	Legend []LegendItem
}

// Frame captures the current rendered state. It fails if Render has not
// produced a layout yet.
func (d *Diagram) Frame() (*Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.view == nil || !d.rendered {
		return nil, pkgerrors.NewInternalError("diagram has not been rendered")
	}

	frame := &Frame{
		Width:  int(d.cfg.Width),
		Height: int(d.cfg.Height),
		Legend: d.legendLocked(),
	}

	for _, node := range d.view.Nodes {
		pos := d.positions[node.ID]
		radius := d.radiusLocked(node.InDegree)
		frame.Nodes = append(frame.Nodes, FrameNode{
			ID:          node.ID,
			Label:       Label(node.Title, radius),
			Title:       node.Title,
			Color:       node.Category.Color(),
			X:           pos.X,
			Y:           pos.Y,
			Radius:      radius,
			Highlighted: d.highlightedNodes[node.ID],
		})
	}

	for i, link := range d.view.Links {
		src := d.positions[link.Source]
		tgt := d.positions[link.Target]
		frame.Links = append(frame.Links, FrameLink{
			X1:          src.X,
			Y1:          src.Y,
			X2:          tgt.X,
			Y2:          tgt.Y,
			Highlighted: d.highlightedLinks[i],
		})
	}

	return frame, nil
}
