// Removes art-board placeholders: rectangles that duplicate the
// canvas footprint and would otherwise sit between the image and
// the chosen backdrop.
package svgprune

import (
	"math"

	"github.com/beevik/etree"

	"github.com/svgdim/svgdim/svgdom"
	"github.com/svgdim/svgdim/svgmetrics"
)

// Options tunes the matching heuristic. The constants are
// empirical; they are exposed so tests can treat them as tunable
// rather than as fixed law.
type Options struct {
	// tolerance = max(width,height)*RelTolerance + AbsTolerance.
	// The absolute part keeps the match robust on tiny canvases.
	RelTolerance float64
	AbsTolerance float64

	// PercentSlack is how far a percentage-valued attribute may sit
	// from 100% (sizes) or 0% (positions) and still match, in
	// percentage points.
	PercentSlack float64
}

// DefaultOptions returns the tuned matching constants.
func DefaultOptions() Options {
	return Options{RelTolerance: 0.005, AbsTolerance: 0.5, PercentSlack: 0.5}
}

// Result reports one pruning pass.
type Result struct {
	Removed   int  // rectangles removed
	Attempted bool // false when the metrics were too uncertain to match against
}

// Prune removes every rectangle duplicating the canvas footprint,
// using the default tolerances.
func Prune(doc *svgdom.Document, m svgmetrics.Metrics) Result {
	return PruneWith(DefaultOptions(), doc, m)
}

// PruneWith is Prune with explicit Options. Candidates are rect
// elements outside defs containers whose size matches the canvas
// and whose position matches its origin, all within tolerance.
// Pruning is a heuristic: paths tracing the same footprint survive,
// and a coincidentally canvas-sized rectangle does not. It is
// skipped entirely (Attempted false) when the metrics are
// non-positive or still carry the hard default, since matching
// against a guessed canvas would remove arbitrary shapes. Removal
// is idempotent per element.
func PruneWith(opts Options, doc *svgdom.Document, m svgmetrics.Metrics) Result {
	if m.Width <= 0 || m.Height <= 0 || m.Defaulted {
		return Result{}
	}
	tol := math.Max(m.Width, m.Height)*opts.RelTolerance + opts.AbsTolerance

	var victims []*etree.Element
	doc.Walk(func(el *etree.Element, inDefs bool) {
		if inDefs || el.Tag != "rect" {
			return
		}
		if opts.matchesCanvas(el, m, tol) {
			victims = append(victims, el)
		}
	})
	res := Result{Attempted: true}
	for _, el := range victims {
		if parent := el.Parent(); parent != nil {
			parent.RemoveChild(el)
			res.Removed++
		}
	}
	return res
}

func (o Options) matchesCanvas(el *etree.Element, m svgmetrics.Metrics, tol float64) bool {
	return o.matchSize(el.SelectAttrValue("width", ""), m.Width, tol) &&
		o.matchSize(el.SelectAttrValue("height", ""), m.Height, tol) &&
		o.matchPos(el.SelectAttrValue("x", ""), m.OriginX, tol) &&
		o.matchPos(el.SelectAttrValue("y", ""), m.OriginY, tol)
}

// a background rect always has an explicit size
func (o Options) matchSize(raw string, want, tol float64) bool {
	l, ok := svgmetrics.ParseLength(raw)
	if !ok {
		return false
	}
	if l.Percent {
		return math.Abs(l.Value-100) <= o.PercentSlack
	}
	return math.Abs(l.Value-want) <= tol
}

// missing x/y attributes default to 0
func (o Options) matchPos(raw string, want, tol float64) bool {
	l, ok := svgmetrics.ParseLength(raw)
	if !ok {
		if raw != "" {
			return false
		}
		l = svgmetrics.Length{}
	}
	if l.Percent {
		return math.Abs(l.Value) <= o.PercentSlack
	}
	return math.Abs(l.Value-want) <= tol
}
