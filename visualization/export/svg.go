package export

import (
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"datacloud/visualization/diagram"
)

// writeSVG serializes the frame as a standalone SVG document with the
// namespace declarations and the static stylesheet inlined, so the file
// opens correctly outside a browser DOM.
func writeSVG(frame *diagram.Frame, w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(frame.Width, frame.Height,
		`viewBox="0 0 `+itoa(frame.Width)+` `+itoa(frame.Height)+`"`)
	canvas.Style("text/css", stylesheet)

	canvas.Group(`class="links"`)
	for _, link := range frame.Links {
		class := "link"
		if link.Highlighted {
			class = "link highlighted"
		}
		canvas.Line(round(link.X1), round(link.Y1), round(link.X2), round(link.Y2),
			`class="`+class+`"`)
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, node := range frame.Nodes {
		class := "node"
		if node.Highlighted {
			class = "node highlighted"
		}
		// Group per node so the full title tooltips the circle even when
		// the visible label is truncated.
		canvas.Group()
		canvas.Title(node.Title)
		canvas.Circle(round(node.X), round(node.Y), round(node.Radius),
			`class="`+class+`"`, `fill="`+node.Color+`"`)
		canvas.Gend()
	}
	canvas.Gend()

	canvas.Group(`class="labels"`)
	for _, node := range frame.Nodes {
		canvas.Text(round(node.X), round(node.Y)+4, node.Label, `class="label"`)
	}
	canvas.Gend()

	writeSVGLegend(canvas, frame)

	canvas.End()
	return nil
}

// writeSVGLegend draws one swatch row per category present in the
// rendered node set, top-left corner.
func writeSVGLegend(canvas *svg.SVG, frame *diagram.Frame) {
	const (
		x       = 16
		rowH    = 22
		swatch  = 14
		padding = 16
	)

	canvas.Group(`class="legend"`)
	for i, item := range frame.Legend {
		y := padding + i*rowH
		canvas.Rect(x, y, swatch, swatch, `fill="`+item.Color+`"`)
		canvas.Text(x+swatch+8, y+swatch-3, item.Label, `class="legend"`)
	}
	canvas.Gend()
}

func round(v float64) int {
	return int(math.Round(v))
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
