package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"datacloud/visualization/diagram"
)

// writePDF builds a single page sized exactly to the diagram's pixel
// dimensions and draws the frame as vector graphics onto it. Page
// orientation follows the aspect ratio: landscape when wider than tall.
func writePDF(frame *diagram.Frame, w io.Writer) error {
	width := float64(frame.Width)
	height := float64(frame.Height)

	// gofpdf takes the page size in portrait terms and swaps the axes
	// itself for landscape.
	orientation := "P"
	size := gofpdf.SizeType{Wd: width, Ht: height}
	if width > height {
		orientation = "L"
		size = gofpdf.SizeType{Wd: height, Ht: width}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, link := range frame.Links {
		if link.Highlighted {
			setDrawHex(pdf, linkHighlightColor)
			pdf.SetLineWidth(linkHighlightedWidth)
		} else {
			setDrawHex(pdf, linkColor)
			pdf.SetLineWidth(linkWidth)
		}
		pdf.Line(link.X1, link.Y1, link.X2, link.Y2)
	}

	for _, node := range frame.Nodes {
		setFillHex(pdf, node.Color)
		if node.Highlighted {
			setDrawHex(pdf, nodeHighlightStroke)
			pdf.SetLineWidth(linkHighlightedWidth)
		} else {
			setDrawHex(pdf, nodeStrokeColor)
			pdf.SetLineWidth(linkWidth)
		}
		pdf.Circle(node.X, node.Y, node.Radius, "FD")
	}

	pdf.SetFont("Helvetica", "", 9)
	setTextHex(pdf, labelColor)
	for _, node := range frame.Nodes {
		pdf.Text(node.X-pdf.GetStringWidth(node.Label)/2, node.Y+3, node.Label)
	}

	drawPDFLegend(pdf, frame)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func drawPDFLegend(pdf *gofpdf.Fpdf, frame *diagram.Frame) {
	const (
		x      = 16.0
		rowH   = 22.0
		swatch = 14.0
		top    = 16.0
	)

	pdf.SetFont("Helvetica", "", 10)
	setDrawHex(pdf, labelColor)
	pdf.SetLineWidth(0.5)
	for i, item := range frame.Legend {
		y := top + float64(i)*rowH
		setFillHex(pdf, item.Color)
		pdf.Rect(x, y, swatch, swatch, "F")

		setTextHex(pdf, labelColor)
		pdf.Text(x+swatch+8, y+swatch-3, item.Label)
	}
}

func setDrawHex(pdf *gofpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetDrawColor(r, g, b)
}

func setFillHex(pdf *gofpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetFillColor(r, g, b)
}

func setTextHex(pdf *gofpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetTextColor(r, g, b)
}

func hexRGB(hex string) (int, int, int) {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
