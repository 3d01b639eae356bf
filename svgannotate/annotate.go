// Ties the pipeline together: parse and sanitize the markup, resolve
// its canvas metrics, extract the palette, pick a backdrop, prune
// background shapes and generate the dimension overlay.
package svgannotate

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/svgdim/svgdim/svgcolor"
	"github.com/svgdim/svgdim/svgdom"
	"github.com/svgdim/svgdim/svgmetrics"
	"github.com/svgdim/svgdim/svgoverlay"
	"github.com/svgdim/svgdim/svgpalette"
	"github.com/svgdim/svgdim/svgprune"
)

// Config carries the pipeline configuration. The zero value is
// usable; missing pieces are filled with defaults.
type Config struct {
	Logger *slog.Logger
	Prune  svgprune.Options
	Style  svgoverlay.Style
}

func (c Config) defaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Prune == (svgprune.Options{}) {
		c.Prune = svgprune.DefaultOptions()
	}
	if c.Style == (svgoverlay.Style{}) {
		c.Style = svgoverlay.DefaultStyle()
	}
	return c
}

// Request is one annotation run. Width and Height are the raw text
// of the dimension inputs; empty or unparsable values fall back to
// the document's own size. With Lock set, editing one dimension
// derives the other from Ratio, or from the previously annotated
// size when Ratio is zero.
type Request struct {
	Source        string
	Width, Height string
	Edited        svgoverlay.Edited
	Lock          bool
	Ratio         float64
	Transparent   bool
	Overlay       svgoverlay.Config
}

// Result is the outcome of one annotation run.
type Result struct {
	Markup     string              `json:"markup"`     // sanitized document with sizing applied
	Overlay    string              `json:"overlay"`    // standalone dimension fragment
	Background string              `json:"background"` // backdrop hex, or "transparent"
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Palette    []svgcolor.Color    `json:"palette"`
	Removed    int                 `json:"removed"` // background rectangles pruned
	Status     []string            `json:"status,omitempty"`
	Metrics    svgmetrics.Metrics  `json:"metrics"`
	Geometry   svgoverlay.Geometry `json:"-"`
}

// Annotator runs the annotation pipeline, one pass at a time. The
// parsed document and its derived palette and metrics are cached per
// source string, so repeated passes over the same markup only redo
// the overlay work. Callers on different documents want different
// Annotators.
type Annotator struct {
	cfg Config

	mu           sync.Mutex
	source       string
	doc          *svgdom.Document
	metrics      svgmetrics.Metrics
	palette      []svgcolor.Color
	sanitized    svgdom.Report
	pruned       svgprune.Result
	lastW, lastH float64
}

func New(cfg Config) *Annotator {
	return &Annotator{cfg: cfg.defaults()}
}

// Annotate runs the full pipeline for one request. A parse failure
// returns the error with no partial output and drops any previously
// cached document; the remembered aspect ratio survives until the
// next successful pass overwrites it.
func (a *Annotator) Annotate(req Request) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ingest(req.Source); err != nil {
		return Result{}, err
	}

	w, ok := parseDim(req.Width)
	if !ok {
		w = a.metrics.Width
	}
	h, ok := parseDim(req.Height)
	if !ok {
		h = a.metrics.Height
	}

	var ratio float64
	if req.Lock {
		ratio = req.Ratio
		if ratio <= 0 && a.lastH > 0 {
			ratio = a.lastW / a.lastH
		}
	}
	geo := svgoverlay.Generate(svgoverlay.Request{
		Width:  w,
		Height: h,
		Edited: req.Edited,
		Ratio:  ratio,
	}, req.Overlay)

	root := a.doc.Root()
	root.CreateAttr("width", svgmetrics.FormatNumber(geo.Width))
	root.CreateAttr("height", svgmetrics.FormatNumber(geo.Height))
	markup, err := a.doc.Markup()
	if err != nil {
		return Result{}, fmt.Errorf("serialize markup: %w", err)
	}

	res := Result{
		Markup:   markup,
		Overlay:  geo.Markup(a.cfg.Style),
		Width:    geo.Width,
		Height:   geo.Height,
		Palette:  a.palette,
		Removed:  a.pruned.Removed,
		Status:   a.status(),
		Metrics:  a.metrics,
		Geometry: geo,
	}
	if req.Transparent {
		res.Background = "transparent"
	} else {
		res.Background = svgpalette.SelectBackdrop(a.palette).Hex()
	}
	a.lastW, a.lastH = geo.Width, geo.Height
	return res, nil
}

// ingest parses and analyzes the source unless the cached document
// already came from the same markup. The palette is extracted before
// pruning, so backdrop scoring sees every color the author used,
// including a background about to be removed.
func (a *Annotator) ingest(source string) error {
	if a.doc != nil && source == a.source {
		return nil
	}
	a.doc = nil
	a.source = ""

	doc, err := svgdom.Parse(source)
	if err != nil {
		a.cfg.Logger.Warn("ingest failed", "err", err)
		return err
	}
	a.sanitized = doc.Sanitize()
	a.metrics = svgmetrics.Resolve(doc)
	a.palette = svgpalette.Extract(doc)
	a.pruned = svgprune.PruneWith(a.cfg.Prune, doc, a.metrics)
	a.doc = doc
	a.source = source
	a.cfg.Logger.Debug("document ingested",
		"width", a.metrics.Width, "height", a.metrics.Height,
		"defaulted", a.metrics.Defaulted,
		"colors", len(a.palette),
		"pruned", a.pruned.Removed,
		"scripts", a.sanitized.Scripts,
		"eventAttrs", a.sanitized.Attributes)
	return nil
}

// status collects the informational notes of the current pass. These
// are not errors, they tell the caller why nothing needed changing.
func (a *Annotator) status() []string {
	var notes []string
	if a.sanitized.Scripts > 0 || a.sanitized.Attributes > 0 {
		notes = append(notes, fmt.Sprintf("sanitizer removed %d script element(s) and %d event attribute(s)",
			a.sanitized.Scripts, a.sanitized.Attributes))
	}
	if a.metrics.Defaulted {
		notes = append(notes, fmt.Sprintf("no usable size declared, defaulted to %gx%g",
			svgmetrics.DefaultWidth, svgmetrics.DefaultHeight))
	}
	if len(a.palette) == 0 {
		notes = append(notes, "no colors found")
	}
	switch {
	case !a.pruned.Attempted:
		notes = append(notes, "background pruning not attempted")
	case a.pruned.Removed == 0:
		notes = append(notes, "no background shapes pruned")
	}
	return notes
}

// parseDim reads one dimension input. Empty or malformed text means
// the caller left the field alone.
func parseDim(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
