package export

import (
	"io"

	"git.sr.ht/~sbinet/gg"

	"datacloud/visualization/diagram"
)

// writePNG rasterizes the frame onto an off-screen canvas at the
// diagram's pixel dimensions and encodes it as PNG. The draw happens
// synchronously against the captured frame, so the encode never sees a
// half-updated diagram.
func writePNG(frame *diagram.Frame, w io.Writer) error {
	dc := gg.NewContext(frame.Width, frame.Height)

	dc.SetHexColor(backgroundColor)
	dc.Clear()

	for _, link := range frame.Links {
		if link.Highlighted {
			dc.SetHexColor(linkHighlightColor)
			dc.SetLineWidth(linkHighlightedWidth)
		} else {
			dc.SetHexColor(linkColor)
			dc.SetLineWidth(linkWidth)
		}
		dc.DrawLine(link.X1, link.Y1, link.X2, link.Y2)
		dc.Stroke()
	}

	for _, node := range frame.Nodes {
		dc.SetHexColor(node.Color)
		dc.DrawCircle(node.X, node.Y, node.Radius)
		dc.Fill()

		if node.Highlighted {
			dc.SetHexColor(nodeHighlightStroke)
			dc.SetLineWidth(linkHighlightedWidth)
		} else {
			dc.SetHexColor(nodeStrokeColor)
			dc.SetLineWidth(linkWidth)
		}
		dc.DrawCircle(node.X, node.Y, node.Radius)
		dc.Stroke()
	}

	dc.SetHexColor(labelColor)
	for _, node := range frame.Nodes {
		dc.DrawStringAnchored(node.Label, node.X, node.Y, 0.5, 0.35)
	}

	drawPNGLegend(dc, frame)

	return dc.EncodePNG(w)
}

func drawPNGLegend(dc *gg.Context, frame *diagram.Frame) {
	const (
		x      = 16.0
		rowH   = 22.0
		swatch = 14.0
		top    = 16.0
	)

	for i, item := range frame.Legend {
		y := top + float64(i)*rowH
		dc.SetHexColor(item.Color)
		dc.DrawRectangle(x, y, swatch, swatch)
		dc.Fill()

		dc.SetHexColor(labelColor)
		dc.DrawStringAnchored(item.Label, x+swatch+8, y+swatch/2, 0, 0.35)
	}
}
