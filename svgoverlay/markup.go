package svgoverlay

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/svgdim/svgdim/svgcolor"
)

// Style is the visual styling of the emitted overlay fragment.
type Style struct {
	DimensionColor       svgcolor.Color
	ExtensionColor       svgcolor.Color
	LabelColor           svgcolor.Color
	StrokeWidth          float64
	ExtensionStrokeWidth float64
	FontFamily           string
	FontSize             float64
	ArrowLength          float64
	ArrowHalfWidth       float64
}

// DefaultStyle returns the drawing style used when the caller does
// not override it.
func DefaultStyle() Style {
	return Style{
		DimensionColor:       svgcolor.RGB(0x33, 0x33, 0x33),
		ExtensionColor:       svgcolor.RGB(0x66, 0x66, 0x66),
		LabelColor:           svgcolor.RGB(0x33, 0x33, 0x33),
		StrokeWidth:          1,
		ExtensionStrokeWidth: 0.5,
		FontFamily:           "sans-serif",
		FontSize:             12,
		ArrowLength:          8,
		ArrowHalfWidth:       3,
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Markup serializes the geometry as a standalone SVG fragment in the
// same coordinate space as the annotated document. The furniture
// lies outside the viewBox, so the fragment declares
// overflow="visible" for composition. Lines and arrowheads are
// emitted only when the geometry has ShowLines set; labels always
// are.
func (g Geometry) Markup(style Style) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %s %s\" overflow=\"visible\">\n",
		num(g.Width), num(g.Height))
	if g.ShowLines {
		for _, s := range g.Segments {
			color, width := style.DimensionColor, style.StrokeWidth
			if s.Kind == ExtensionLine {
				color, width = style.ExtensionColor, style.ExtensionStrokeWidth
			}
			fmt.Fprintf(&b, "<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"%s\"/>\n",
				s.X1, s.Y1, s.X2, s.Y2, color.Hex(), num(width))
		}
		for _, a := range g.Arrows {
			fmt.Fprintf(&b, "<path d=\"%s\" fill=\"%s\"/>\n", arrowPath(a, style), style.DimensionColor.Hex())
		}
	}
	for _, l := range g.Labels {
		fmt.Fprintf(&b, "<text x=\"%.2f\" y=\"%.2f\"", l.X, l.Y)
		if l.Rotation != 0 {
			fmt.Fprintf(&b, " transform=\"rotate(%s %.2f %.2f)\"", num(l.Rotation), l.X, l.Y)
		}
		fmt.Fprintf(&b, " fill=\"%s\" font-family=\"%s\" font-size=\"%s\" text-anchor=\"middle\">%s</text>\n",
			style.LabelColor.Hex(), escaper.Replace(style.FontFamily), num(style.FontSize), escaper.Replace(l.Text))
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func arrowPath(a Arrow, style Style) string {
	p := a.Points(style)
	return fmt.Sprintf("M%.2f %.2f L%.2f %.2f L%.2f %.2f Z",
		p[0][0], p[0][1], p[1][0], p[1][1], p[2][0], p[2][1])
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
