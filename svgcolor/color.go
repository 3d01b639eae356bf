// Implements the color model of the annotation engine:
// parsing of the textual notations found in SVG paint attributes,
// hex formatting, and the perceptual helpers (relative luminance,
// RGB distance) used to pick a neutral backdrop.
package svgcolor

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an sRGB value with 8-bit channels.
// A is the parsed alpha in [0,1]; notations without an alpha
// component leave it at 1.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Parse reads a color in any of the supported notations:
// #rgb, #rrggbb, #rrggbbaa, functional rgb()/rgba() with integer or
// percentage channels, functional hsl()/hsla(), and the standard
// named colors. The second return value is false when the text
// matches no known grammar; that is not an error, the text simply
// carries no color.
func Parse(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, false
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "rgb"):
		return parseRGB(lower)
	case strings.HasPrefix(lower, "hsl"):
		return parseHSL(lower)
	}
	if c, ok := colornames.Map[lower]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
	}
	return Color{}, false
}

func parseHex(s string) (Color, bool) {
	switch len(s) {
	case 3:
		// #rgb doubles each digit
		s = s[:1] + s[:1] + s[1:2] + s[1:2] + s[2:] + s[2:]
	case 6, 8:
	default:
		return Color{}, false
	}
	r, errR := strconv.ParseUint(s[0:2], 16, 8)
	g, errG := strconv.ParseUint(s[2:4], 16, 8)
	b, errB := strconv.ParseUint(s[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return Color{}, false
	}
	c := Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 1}
	if len(s) == 8 {
		a, err := strconv.ParseUint(s[6:8], 16, 8)
		if err != nil {
			return Color{}, false
		}
		c.A = float64(a) / 255
	}
	return c, true
}

func parseRGB(s string) (Color, bool) {
	args, ok := functionArgs(s, "rgb")
	if !ok || len(args) < 3 || len(args) > 4 {
		return Color{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := channelValue(args[i])
		if !ok {
			return Color{}, false
		}
		ch[i] = v
	}
	c := Color{R: ch[0], G: ch[1], B: ch[2], A: 1}
	if len(args) == 4 {
		a, ok := readFraction(args[3])
		if !ok {
			return Color{}, false
		}
		c.A = clamp(a, 0, 1)
	}
	return c, true
}

func parseHSL(s string) (Color, bool) {
	args, ok := functionArgs(s, "hsl")
	if !ok || len(args) < 3 || len(args) > 4 {
		return Color{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil || math.IsNaN(h) {
		return Color{}, false
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sat, okS := readFraction(args[1])
	light, okL := readFraction(args[2])
	if !okS || !okL {
		return Color{}, false
	}
	r, g, b := colorful.Hsl(h, clamp(sat, 0, 1), clamp(light, 0, 1)).Clamped().RGB255()
	c := Color{R: r, G: g, B: b, A: 1}
	if len(args) == 4 {
		a, ok := readFraction(args[3])
		if !ok {
			return Color{}, false
		}
		c.A = clamp(a, 0, 1)
	}
	return c, true
}

// functionArgs unpacks "name(...)" or "namea(...)" (the -a alpha
// variants), splitting the arguments on commas or spaces.
func functionArgs(s, name string) ([]string, bool) {
	s = strings.TrimPrefix(s, name)
	s = strings.TrimPrefix(s, "a")
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, false
	}
	return splitOnCommaOrSpace(s[1 : len(s)-1]), true
}

func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

// channelValue reads one rgb() channel, either 0..255 or a
// percentage of 255.
func channelValue(s string) (uint8, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return uint8(math.Round(clamp(f/100*255, 0, 255))), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return uint8(math.Round(clamp(f, 0, 255))), true
}

// readFraction reads a decimal value, treating a percentage suffix
// as a division by 100.
func readFraction(s string) (float64, bool) {
	percent := false
	if p, ok := strings.CutSuffix(s, "%"); ok {
		s, percent = p, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	if percent {
		f /= 100
	}
	return f, true
}

// Hex formats the color as #rrggbb. Alpha is not included: the
// backdrop and palette reports only deal in opaque paint.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// NRGBA returns the color as a standard library image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp(c.A, 0, 1) * 255))}
}

// Luminance is the relative luminance in [0,1]: each channel is
// linearized (inverse sRGB companding) and the results are weighted
// 0.2126, 0.7152, 0.0722.
func (c Color) Luminance() float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Distance is the euclidean distance between a and b in RGB space,
// scaled to the 0..255 channel range.
func Distance(a, b Color) float64 {
	return a.colorful().DistanceRgb(b.colorful()) * 255
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// MarshalText implements encoding.TextMarshaler using the hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting any
// notation Parse does.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}

func clamp(f, lo, hi float64) float64 {
	return math.Min(math.Max(f, lo), hi)
}
