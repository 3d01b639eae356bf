package svgprune

import (
	"strings"
	"testing"

	"github.com/svgdim/svgdim/svgdom"
	"github.com/svgdim/svgdim/svgmetrics"
)

func mustParse(t *testing.T, source string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func resolve(t *testing.T, source string) (*svgdom.Document, svgmetrics.Metrics) {
	t.Helper()
	doc := mustParse(t, source)
	return doc, svgmetrics.Resolve(doc)
}

func TestPruneRemovesCanvasRect(t *testing.T) {
	doc, m := resolve(t, `<svg viewBox="0 0 100 50">`+
		`<rect width="100" height="50" fill="#ffffff"/>`+
		`<circle cx="50" cy="25" r="20" fill="#ff0000"/>`+
		`</svg>`)

	res := Prune(doc, m)
	if !res.Attempted || res.Removed != 1 {
		t.Fatalf("got %+v, want one rect removed", res)
	}
	markup, _ := doc.Markup()
	if strings.Contains(markup, "<rect") {
		t.Errorf("background rect survived: %s", markup)
	}
	if !strings.Contains(markup, "<circle") {
		t.Errorf("foreground circle was removed: %s", markup)
	}
}

func TestPruneIsIdempotent(t *testing.T) {
	doc, m := resolve(t, `<svg viewBox="0 0 100 50">`+
		`<rect width="100" height="50"/>`+
		`</svg>`)

	if res := Prune(doc, m); res.Removed != 1 {
		t.Fatalf("first pass: got %+v, want Removed=1", res)
	}
	if res := Prune(doc, m); res.Removed != 0 || !res.Attempted {
		t.Fatalf("second pass: got %+v, want Removed=0 Attempted=true", res)
	}
}

func TestPruneToleranceEdges(t *testing.T) {
	// canvas 100x50: tolerance = 100*0.005 + 0.5 = 1.0
	tests := []struct {
		rect    string
		removed int
	}{
		{`<rect width="100" height="50"/>`, 1},
		{`<rect width="100.9" height="50"/>`, 1},
		{`<rect width="101.5" height="50"/>`, 0},
		{`<rect width="100" height="48.5"/>`, 0},
		{`<rect x="0.8" y="-0.8" width="100" height="50"/>`, 1},
		{`<rect x="50" width="100" height="50"/>`, 0},
		{`<rect width="100px" height="50px"/>`, 1},
	}
	for _, test := range tests {
		doc, m := resolve(t, `<svg viewBox="0 0 100 50">`+test.rect+`</svg>`)
		if res := Prune(doc, m); res.Removed != test.removed {
			t.Errorf("%s: got %+v, want Removed=%d", test.rect, res, test.removed)
		}
	}
}

func TestPrunePercentages(t *testing.T) {
	tests := []struct {
		rect    string
		removed int
	}{
		{`<rect width="100%" height="100%"/>`, 1},
		{`<rect width="99.8%" height="100%"/>`, 1},
		{`<rect width="98%" height="100%"/>`, 0},
		{`<rect x="0%" y="0.4%" width="100%" height="100%"/>`, 1},
		{`<rect x="5%" width="100%" height="100%"/>`, 0},
	}
	for _, test := range tests {
		doc, m := resolve(t, `<svg viewBox="0 0 400 300">`+test.rect+`</svg>`)
		if res := Prune(doc, m); res.Removed != test.removed {
			t.Errorf("%s: got %+v, want Removed=%d", test.rect, res, test.removed)
		}
	}
}

func TestPruneMatchesViewBoxOrigin(t *testing.T) {
	doc, m := resolve(t, `<svg viewBox="10 20 100 50">`+
		`<rect id="board" x="10" y="20" width="100" height="50"/>`+
		`<rect id="stray" width="100" height="50"/>`+
		`</svg>`)

	// only the rect sitting on the shifted origin matches
	if res := Prune(doc, m); res.Removed != 1 {
		t.Fatalf("got %+v, want Removed=1", res)
	}
	markup, _ := doc.Markup()
	if strings.Contains(markup, "board") {
		t.Errorf("origin-aligned rect survived: %s", markup)
	}
	if !strings.Contains(markup, "stray") {
		t.Errorf("off-origin rect was removed: %s", markup)
	}
}

func TestPruneSkipsDefs(t *testing.T) {
	doc, m := resolve(t, `<svg viewBox="0 0 100 50">`+
		`<defs><rect width="100" height="50" id="tpl"/></defs>`+
		`</svg>`)

	if res := Prune(doc, m); res.Removed != 0 {
		t.Fatalf("got %+v, want nothing removed inside defs", res)
	}
	markup, _ := doc.Markup()
	if !strings.Contains(markup, `id="tpl"`) {
		t.Errorf("defs template was removed: %s", markup)
	}
}

func TestPruneNotAttemptedOnDefaultedMetrics(t *testing.T) {
	doc, m := resolve(t, `<svg><rect width="320" height="180"/></svg>`)
	if !m.Defaulted {
		t.Fatalf("metrics unexpectedly resolved: %+v", m)
	}
	if res := Prune(doc, m); res.Attempted || res.Removed != 0 {
		t.Fatalf("got %+v, want no attempt against defaulted metrics", res)
	}
	markup, _ := doc.Markup()
	if !strings.Contains(markup, "<rect") {
		t.Errorf("rect removed despite defaulted metrics: %s", markup)
	}
}

func TestPruneNotAttemptedOnBadMetrics(t *testing.T) {
	doc := mustParse(t, `<svg><rect width="10" height="10"/></svg>`)
	bad := svgmetrics.Metrics{Width: -5, Height: 10}
	if res := PruneWith(DefaultOptions(), doc, bad); res.Attempted {
		t.Fatalf("got %+v, want no attempt against non-positive metrics", res)
	}
}

func TestPruneWithStrictOptions(t *testing.T) {
	strict := Options{RelTolerance: 0, AbsTolerance: 0, PercentSlack: 0}
	doc, m := resolve(t, `<svg viewBox="0 0 100 50">`+
		`<rect width="100" height="50"/>`+
		`<rect width="100.4" height="50"/>`+
		`</svg>`)

	if res := PruneWith(strict, doc, m); res.Removed != 1 {
		t.Fatalf("got %+v, want only the exact match removed", res)
	}
	markup, _ := doc.Markup()
	if !strings.Contains(markup, `width="100.4"`) {
		t.Errorf("near-match removed under strict options: %s", markup)
	}
}
