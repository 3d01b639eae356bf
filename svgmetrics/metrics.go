// Resolves the authoritative canvas geometry of a parsed document:
// explicit width/height attributes when they are absolute, the
// viewBox otherwise, and a fixed default as the last resort.
package svgmetrics

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/svgdim/svgdim/svgdom"
)

// Hard defaults applied when neither the sizing attributes nor the
// viewBox provide a usable value.
const (
	DefaultWidth  = 320.0
	DefaultHeight = 180.0
)

// Metrics is the resolved canvas geometry. Width and Height are
// always positive after Resolve. Defaulted records that the hard
// default supplied at least one of them; downstream heuristics
// treat defaulted metrics as low confidence.
type Metrics struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`

	Defaulted bool `json:"defaulted,omitempty"`
}

// Resolve derives Metrics from the document root. It is total: a
// percentage or otherwise unusable width/height attribute falls
// back to the viewBox, and the viewBox to the fixed default. When
// the root carries no usable viewBox the resolved geometry is
// written back as one, so resizing and every downstream consumer
// see a consistent coordinate space.
func Resolve(doc *svgdom.Document) Metrics {
	root := doc.Root()
	var m Metrics

	width, okW := absoluteLength(root.SelectAttrValue("width", ""))
	height, okH := absoluteLength(root.SelectAttrValue("height", ""))
	vb, okVB := parseViewBox(root.SelectAttrValue("viewBox", ""))
	if okVB {
		m.OriginX, m.OriginY = vb[0], vb[1]
	}

	switch {
	case okW:
		m.Width = width
	case okVB:
		m.Width = vb[2]
	default:
		m.Width = DefaultWidth
		m.Defaulted = true
	}
	switch {
	case okH:
		m.Height = height
	case okVB:
		m.Height = vb[3]
	default:
		m.Height = DefaultHeight
		m.Defaulted = true
	}

	if !okVB {
		root.CreateAttr("viewBox", FormatViewBox(m))
	}
	return m
}

// Length is a parsed attribute length. Percent lengths keep the raw
// percentage in Value.
type Length struct {
	Value   float64
	Percent bool
}

// ParseLength reads a numeric attribute value with an optional unit
// or percent suffix: "12", "12.5px", "30%". The number is required,
// the unit may be any alphabetic suffix and is not converted.
func ParseLength(s string) (Length, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, false
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Length{}, false
		}
		return Length{Value: v, Percent: true}, true
	}
	i := len(s)
	for i > 0 && isAlpha(s[i-1]) {
		i--
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: v}, true
}

// absoluteLength accepts only positive non-percentage lengths;
// percentages are not authoritative for canvas sizing.
func absoluteLength(s string) (float64, bool) {
	l, ok := ParseLength(s)
	if !ok || l.Percent || l.Value <= 0 {
		return 0, false
	}
	return l.Value, true
}

// parseViewBox needs exactly four numbers: originX, originY, width,
// height, with a positive width and height.
func parseViewBox(s string) ([4]float64, bool) {
	var vb [4]float64
	fields := splitOnCommaOrSpace(s)
	if len(fields) != 4 {
		return vb, false
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vb, false
		}
		vb[i] = v
	}
	if vb[2] <= 0 || vb[3] <= 0 {
		return vb, false
	}
	return vb, true
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// FormatNumber renders a value the way sizing attributes expect:
// the shortest decimal form that round-trips.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatViewBox renders m as a viewBox attribute value.
func FormatViewBox(m Metrics) string {
	return FormatNumber(m.OriginX) + " " + FormatNumber(m.OriginY) + " " +
		FormatNumber(m.Width) + " " + FormatNumber(m.Height)
}
