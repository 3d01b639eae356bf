package svgcolor

import (
	"image/color"
	"math"
	"testing"
)

func TestParseNotationsAgree(t *testing.T) {
	// the same color written in every notation must yield
	// channel-identical results
	groups := [][]string{
		{"#ff0000", "#f00", "rgb(255, 0, 0)", "rgb(100%, 0%, 0%)", "hsl(0, 100%, 50%)", "red", "RED"},
		{"#00ff00", "#0f0", "rgb(0,255,0)", "hsl(120, 100%, 50%)", "lime"},
		{"#336699", "#369", "rgb(51, 102, 153)", "hsl(210, 50%, 40%)"},
		{"#ffffff", "#fff", "rgb(255,255,255)", "rgb(100%,100%,100%)", "hsl(0, 0%, 100%)", "white"},
		{"#000000", "#000", "rgb(0 0 0)", "hsl(0, 0%, 0%)", "black"},
	}
	for _, group := range groups {
		want, ok := Parse(group[0])
		if !ok {
			t.Fatalf("Parse(%q) returned no color", group[0])
		}
		for _, in := range group[1:] {
			got, ok := Parse(in)
			if !ok {
				t.Errorf("Parse(%q) returned no color", in)
				continue
			}
			if got.R != want.R || got.G != want.G || got.B != want.B {
				t.Errorf("Parse(%q) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestParseAlpha(t *testing.T) {
	tests := []struct {
		in    string
		want  Color
		alpha float64
	}{
		{"#ff000080", RGB(255, 0, 0), 128.0 / 255},
		{"rgba(255, 0, 0, 0.5)", RGB(255, 0, 0), 0.5},
		{"rgba(0,0,255,50%)", RGB(0, 0, 255), 0.5},
		{"hsla(0, 100%, 50%, 0.25)", RGB(255, 0, 0), 0.25},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if !ok {
			t.Fatalf("Parse(%q) returned no color", tt.in)
		}
		if got.R != tt.want.R || got.G != tt.want.G || got.B != tt.want.B {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if math.Abs(got.A-tt.alpha) > 1e-9 {
			t.Errorf("Parse(%q) alpha = %v, want %v", tt.in, got.A, tt.alpha)
		}
	}
}

func TestParseNoColor(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"none",
		"url(#grad1)",
		"currentColor",
		"#12",
		"#1234",
		"#xyzxyz",
		"rgb(1,2)",
		"rgb(1,2,3,4,5)",
		"rgb[1,2,3]",
		"hsl(a, b, c)",
		"notacolor",
	} {
		if c, ok := Parse(in); ok {
			t.Errorf("Parse(%q) = %v, want no color", in, c)
		}
	}
}

func TestParseClampsOutOfRange(t *testing.T) {
	got, ok := Parse("rgb(300, -20, 128)")
	if !ok {
		t.Fatal("Parse returned no color")
	}
	if want := RGB(255, 0, 128); got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGB(255, 0, 0), "#ff0000"},
		{RGB(0, 0, 0), "#000000"},
		{RGB(154, 205, 50), "#9acd32"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"#ffffff", 1},
		{"#000000", 0},
		{"#ff0000", 0.2126},
		{"#00ff00", 0.7152},
		{"#0000ff", 0.0722},
	}
	for _, tt := range tests {
		c, ok := Parse(tt.in)
		if !ok {
			t.Fatalf("Parse(%q) returned no color", tt.in)
		}
		if got := c.Luminance(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Luminance(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
	// luminance must order a grey ramp from dark to light
	prev := -1.0
	for _, hex := range []string{"#212121", "#616161", "#9e9e9e", "#e0e0e0", "#fafafa"} {
		c, _ := Parse(hex)
		l := c.Luminance()
		if l <= prev {
			t.Errorf("Luminance(%s) = %v, not increasing (prev %v)", hex, l, prev)
		}
		prev = l
	}
}

func TestDistance(t *testing.T) {
	black := RGB(0, 0, 0)
	white := RGB(255, 255, 255)
	if got := Distance(black, black); got != 0 {
		t.Errorf("Distance(black, black) = %v, want 0", got)
	}
	want := 255 * math.Sqrt(3)
	if got := Distance(black, white); math.Abs(got-want) > 1e-6 {
		t.Errorf("Distance(black, white) = %v, want %v", got, want)
	}
	if got, gotRev := Distance(black, white), Distance(white, black); got != gotRev {
		t.Errorf("Distance not symmetric: %v vs %v", got, gotRev)
	}
}

func TestNRGBA(t *testing.T) {
	if got := RGB(51, 102, 153).NRGBA(); got != (color.NRGBA{R: 51, G: 102, B: 153, A: 255}) {
		t.Errorf("got %v", got)
	}
	half, _ := Parse("rgba(255, 0, 0, 0.5)")
	if got := half.NRGBA(); got.A != 128 {
		t.Errorf("got alpha %d, want 128", got.A)
	}
}

func TestTextRoundTrip(t *testing.T) {
	orig := RGB(51, 102, 153)
	text, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back.R != orig.R || back.G != orig.G || back.B != orig.B {
		t.Errorf("round trip = %v, want %v", back, orig)
	}
	var c Color
	if err := c.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText(bogus) did not fail")
	}
}
