// Builds the dimension annotation: two measured dimension lines with
// extension lines, arrowheads and value labels, hung outside the
// canvas the way a technical drawing calls out its sizes.
package svgoverlay

import (
	"math"
	"strconv"
	"strings"
)

const (
	marginFactor    = 0.06 // of the larger canvas edge
	minMargin       = 10.0
	overshootFactor = 0.35 // extension line run past the dimension line, of margin
	labelGap        = 4.0
)

// Unit is the measurement unit appended to dimension labels.
type Unit int

const (
	Px Unit = iota
	Mm
	Cm
	In
	Pt
)

// Suffix returns the label suffix for the unit.
func (u Unit) Suffix() string {
	switch u {
	case Mm:
		return "mm"
	case Cm:
		return "cm"
	case In:
		return "in"
	case Pt:
		return "pt"
	default:
		return "px"
	}
}

// ParseUnit maps a unit name to its Unit. Unknown names fall back to
// pixels.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm":
		return Mm
	case "cm":
		return Cm
	case "in":
		return In
	case "pt":
		return Pt
	default:
		return Px
	}
}

// Config controls what the overlay shows.
type Config struct {
	Unit       Unit
	Round      bool // whole-number labels
	ShowLabels bool // prefix labels with the dimension name
	ShowLines  bool // draw the measuring furniture, not just the labels
}

// Edited says which dimension the user typed last, so the other one
// can follow the locked aspect ratio.
type Edited int

const (
	EditedNone Edited = iota
	EditedWidth
	EditedHeight
)

// Request carries the dimensions to annotate. Ratio is the prior
// width/height ratio used to recompute the free dimension when one
// side was edited; zero means no lock.
type Request struct {
	Width, Height float64
	Edited        Edited
	Ratio         float64
}

// SegmentKind tells a renderer how to stroke a segment.
type SegmentKind int

const (
	DimensionLine SegmentKind = iota
	ExtensionLine
)

// Segment is one straight stroke of the overlay.
type Segment struct {
	Kind           SegmentKind
	X1, Y1, X2, Y2 float64
}

// Arrow is a filled arrowhead with its tip at (X, Y), pointing along
// Angle in degrees, measured from +x toward +y.
type Arrow struct {
	X, Y  float64
	Angle float64
}

// Points returns the triangle corners of the arrowhead, tip first.
func (a Arrow) Points(style Style) [3][2]float64 {
	rad := a.Angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	bx, by := a.X-style.ArrowLength*dx, a.Y-style.ArrowLength*dy
	px, py := -dy, dx
	hw := style.ArrowHalfWidth
	return [3][2]float64{
		{a.X, a.Y},
		{bx + hw*px, by + hw*py},
		{bx - hw*px, by - hw*py},
	}
}

// Label is a dimension value anchored at (X, Y). Rotation is in
// degrees around the anchor.
type Label struct {
	X, Y     float64
	Rotation float64
	Text     string
}

// Geometry is the computed overlay in display coordinates: the
// canvas occupies [0,Width]x[0,Height] and the furniture hangs in
// the negative margins above and left of it.
type Geometry struct {
	Width, Height float64 // effective annotated size
	Margin        float64
	ShowLines     bool
	Segments      []Segment
	Arrows        []Arrow
	Labels        []Label
}

// Generate computes the overlay geometry for a request. When one
// dimension was edited under a ratio lock the other is derived from
// it first. Degenerate values (zero, negative, NaN, infinite) are
// replaced by 1 so the annotation stays drawable; the substitution
// is display-only.
func Generate(req Request, cfg Config) Geometry {
	w, h := req.Width, req.Height
	switch req.Edited {
	case EditedWidth:
		if req.Ratio > 0 {
			h = w / req.Ratio
		}
	case EditedHeight:
		if req.Ratio > 0 {
			w = h * req.Ratio
		}
	}
	w = displayable(w)
	h = displayable(h)

	margin := math.Max(marginFactor*math.Max(w, h), minMargin)
	over := overshootFactor * margin
	g := Geometry{Width: w, Height: h, Margin: margin, ShowLines: cfg.ShowLines}

	// width callout above the canvas
	top := -margin
	g.Segments = append(g.Segments,
		Segment{DimensionLine, 0, top, w, top},
		Segment{ExtensionLine, 0, 0, 0, top - over},
		Segment{ExtensionLine, w, 0, w, top - over},
	)
	g.Arrows = append(g.Arrows,
		Arrow{0, top, 180},
		Arrow{w, top, 0},
	)

	// height callout left of the canvas
	left := -margin
	g.Segments = append(g.Segments,
		Segment{DimensionLine, left, 0, left, h},
		Segment{ExtensionLine, 0, 0, left - over, 0},
		Segment{ExtensionLine, 0, h, left - over, h},
	)
	g.Arrows = append(g.Arrows,
		Arrow{left, 0, -90},
		Arrow{left, h, 90},
	)

	g.Labels = append(g.Labels,
		Label{w / 2, top - labelGap, 0, cfg.label("width", w)},
		Label{left - labelGap, h / 2, -90, cfg.label("height", h)},
	)
	return g
}

// Bounds is the box covering the canvas and the annotation
// furniture, without text extents. Renderers pad for label glyphs
// themselves.
func (g Geometry) Bounds() (minX, minY, maxX, maxY float64) {
	ext := g.Margin * (1 + overshootFactor)
	return -ext, -ext, g.Width, g.Height
}

// label renders one dimension value: whole numbers under Round,
// otherwise at most two decimals with trailing zeros dropped.
func (cfg Config) label(name string, v float64) string {
	var s string
	if cfg.Round {
		s = strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	} else {
		s = strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0")
		s = strings.TrimRight(s, ".")
	}
	s += cfg.Unit.Suffix()
	if cfg.ShowLabels {
		s = name + " " + s
	}
	return s
}

func displayable(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 1
	}
	return v
}
