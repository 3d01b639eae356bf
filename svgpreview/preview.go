// Rasterizes an annotation pass: backdrop, the vector image itself
// and the dimension furniture composited into one preview image.
package svgpreview

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/svgdim/svgdim/svgannotate"
	"github.com/svgdim/svgdim/svgcolor"
	"github.com/svgdim/svgdim/svgoverlay"
)

// Options controls the preview rendering.
type Options struct {
	// Style mirrors the overlay style used for the markup fragment.
	// The zero value means the default style.
	Style svgoverlay.Style
	// MaxEdge bounds the longer output edge in pixels; 0 keeps the
	// natural size.
	MaxEdge int
}

// Render draws the annotated document over its backdrop and strokes
// the dimension furniture on top. The image covers the overlay
// bounds plus room for the labels, at one pixel per user unit before
// any MaxEdge downscale.
func Render(res svgannotate.Result, opts Options) (image.Image, error) {
	if res.Markup == "" {
		return nil, errors.New("nothing to render")
	}
	style := opts.Style
	if style == (svgoverlay.Style{}) {
		style = svgoverlay.DefaultStyle()
	}
	g := res.Geometry

	minX, minY, maxX, maxY := g.Bounds()
	pad := style.FontSize
	x0, y0 := minX-pad, minY-pad
	width := int(math.Ceil(maxX + pad - x0))
	height := int(math.Ceil(maxY + pad - y0))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("degenerate preview size %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if res.Background != "" && res.Background != "transparent" {
		if bg, ok := svgcolor.Parse(res.Background); ok {
			draw.Draw(img, img.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)
		}
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(res.Markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("rasterize markup: %w", err)
	}
	icon.SetTarget(-x0, -y0, g.Width, g.Height)
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	drawFurniture(img, g, style, -x0, -y0)

	if opts.MaxEdge > 0 && (width > opts.MaxEdge || height > opts.MaxEdge) {
		return imaging.Fit(img, opts.MaxEdge, opts.MaxEdge, imaging.Lanczos), nil
	}
	return img, nil
}

// drawFurniture strokes the dimension geometry straight into img,
// shifted by the raster offset.
func drawFurniture(img *image.RGBA, g svgoverlay.Geometry, style svgoverlay.Style, offX, offY float64) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)

	if g.ShowLines {
		dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
		for _, s := range g.Segments {
			c, w := style.DimensionColor, style.StrokeWidth
			if s.Kind == svgoverlay.ExtensionLine {
				c, w = style.ExtensionColor, style.ExtensionStrokeWidth
			}
			scanner.SetColor(c.NRGBA())
			dasher.SetStroke(fix(w), fix(4), rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
			dasher.Start(fixp(s.X1+offX, s.Y1+offY))
			dasher.Line(fixp(s.X2+offX, s.Y2+offY))
			dasher.Stop(false)
			dasher.Draw()
			dasher.Clear()
		}

		filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
		scanner.SetColor(style.DimensionColor.NRGBA())
		for _, a := range g.Arrows {
			p := a.Points(style)
			filler.Start(fixp(p[0][0]+offX, p[0][1]+offY))
			filler.Line(fixp(p[1][0]+offX, p[1][1]+offY))
			filler.Line(fixp(p[2][0]+offX, p[2][1]+offY))
			filler.Stop(true)
			filler.Draw()
			filler.Clear()
		}
	}

	// the bitmap face cannot rotate, every label draws horizontally
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(style.LabelColor.NRGBA()),
		Face: basicfont.Face7x13,
	}
	for _, l := range g.Labels {
		advance := drawer.MeasureString(l.Text)
		drawer.Dot = fixed.Point26_6{X: fix(l.X+offX) - advance/2, Y: fix(l.Y+offY)}
		drawer.DrawString(l.Text)
	}
}

func fix(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fix(x), Y: fix(y)}
}
