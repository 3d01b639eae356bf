package svgpalette

import (
	"math"

	"github.com/svgdim/svgdim/svgcolor"
)

// NeutralRamp is the fixed backdrop candidate set, ordered
// near-white to near-black. Scoring ties resolve to the earlier
// entry.
var NeutralRamp = []svgcolor.Color{
	svgcolor.RGB(0xfa, 0xfa, 0xfa),
	svgcolor.RGB(0xe0, 0xe0, 0xe0),
	svgcolor.RGB(0x9e, 0x9e, 0x9e),
	svgcolor.RGB(0x61, 0x61, 0x61),
	svgcolor.RGB(0x42, 0x42, 0x42),
	svgcolor.RGB(0x21, 0x21, 0x21),
}

// scoring weights: separation from the image's own colors versus
// closeness to the complement of their mean luminance
const (
	distanceWeight  = 0.55
	luminanceWeight = 0.45
)

// maxDistance is the largest possible RGB distance, black to white.
var maxDistance = 255 * math.Sqrt(3)

// SelectBackdrop picks the ramp entry that stays far from every
// palette color while contrasting with the palette's overall
// lightness, so a predominantly light image gets a darker backdrop
// and vice versa. Pure and deterministic. An empty palette returns
// the second-lightest entry.
func SelectBackdrop(palette []svgcolor.Color) svgcolor.Color {
	if len(palette) == 0 {
		return NeutralRamp[1]
	}
	target := 1 - meanLuminance(palette)

	best := NeutralRamp[0]
	bestScore := math.Inf(-1)
	for _, cand := range NeutralRamp {
		score := distanceWeight*(minDistance(cand, palette)/maxDistance) +
			luminanceWeight*(1-math.Abs(cand.Luminance()-target))
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best
}

func meanLuminance(palette []svgcolor.Color) float64 {
	var sum float64
	for _, c := range palette {
		sum += c.Luminance()
	}
	return sum / float64(len(palette))
}

func minDistance(cand svgcolor.Color, palette []svgcolor.Color) float64 {
	min := math.Inf(1)
	for _, c := range palette {
		if d := svgcolor.Distance(cand, c); d < min {
			min = d
		}
	}
	return min
}
