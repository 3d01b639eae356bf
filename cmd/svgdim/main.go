// Command svgdim annotates an SVG with engineering-style dimension
// lines, reports a neutral backdrop for it and strips duplicate
// background rectangles.
//
// Usage:
//
//	svgdim -w 200 -labels drawing.svg             # annotate at 200 wide
//	svgdim -config style.yaml -o out.svg -        # markup from stdin
//	svgdim -report drawing.svg                    # JSON report on stdout
//	svgdim -png preview.png -max-edge 512 in.svg  # raster preview
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/svgdim/svgdim/svgannotate"
	"github.com/svgdim/svgdim/svgoverlay"
	"github.com/svgdim/svgdim/svgpreview"
)

type options struct {
	input       string
	configPath  string
	width       string
	height      string
	unit        string
	edited      string
	ratio       float64
	lock        bool
	round       bool
	labels      bool
	lines       bool
	transparent bool
	outPath     string
	overlayPath string
	pngPath     string
	maxEdge     int
	report      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a YAML style/tolerance config")
	flag.StringVar(&opts.width, "w", "", "requested width as free-form numeric text")
	flag.StringVar(&opts.height, "h", "", "requested height as free-form numeric text")
	flag.StringVar(&opts.unit, "unit", "px", "label unit: px, mm, cm, in, pt")
	flag.StringVar(&opts.edited, "edited", "", "which dimension was edited last: width or height")
	flag.Float64Var(&opts.ratio, "ratio", 0, "aspect ratio (width/height) for -lock, 0 derives it")
	flag.BoolVar(&opts.lock, "lock", false, "keep the aspect ratio when one dimension is edited")
	flag.BoolVar(&opts.round, "round", false, "round label values to whole numbers")
	flag.BoolVar(&opts.labels, "labels", false, "prefix labels with width/height words")
	flag.BoolVar(&opts.lines, "lines", true, "draw dimension and extension lines")
	flag.BoolVar(&opts.transparent, "transparent", false, "report a transparent backdrop instead of picking one")
	flag.StringVar(&opts.outPath, "o", "", "write the annotated markup here (default stdout)")
	flag.StringVar(&opts.overlayPath, "overlay", "", "also write the overlay fragment here")
	flag.StringVar(&opts.pngPath, "png", "", "also write a raster preview here")
	flag.IntVar(&opts.maxEdge, "max-edge", 0, "bound the longer preview edge in pixels")
	flag.BoolVar(&opts.report, "report", false, "print a JSON report instead of markup")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()
	opts.input = flag.Arg(0)

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, opts); err != nil {
		logger.Error("svgdim: fatal", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logger = logger

	source, err := readSource(opts.input)
	if err != nil {
		return err
	}

	var edited svgoverlay.Edited
	switch opts.edited {
	case "":
		edited = svgoverlay.EditedNone
	case "width":
		edited = svgoverlay.EditedWidth
	case "height":
		edited = svgoverlay.EditedHeight
	default:
		return fmt.Errorf("unknown -edited value %q", opts.edited)
	}

	res, err := svgannotate.New(cfg).Annotate(svgannotate.Request{
		Source:      source,
		Width:       opts.width,
		Height:      opts.height,
		Edited:      edited,
		Lock:        opts.lock,
		Ratio:       opts.ratio,
		Transparent: opts.transparent,
		Overlay: svgoverlay.Config{
			Unit:       svgoverlay.ParseUnit(opts.unit),
			Round:      opts.round,
			ShowLabels: opts.labels,
			ShowLines:  opts.lines,
		},
	})
	if err != nil {
		return err
	}
	for _, note := range res.Status {
		logger.Info("svgdim: " + note)
	}

	if opts.report {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else if err := writeOut(opts.outPath, res.Markup); err != nil {
		return err
	}
	if opts.overlayPath != "" {
		if err := writeOut(opts.overlayPath, res.Overlay); err != nil {
			return err
		}
	}
	if opts.pngPath != "" {
		return writePreview(opts.pngPath, res, cfg, opts.maxEdge)
	}
	return nil
}

func readSource(path string) (string, error) {
	switch path {
	case "":
		return "", errors.New("no input file (use - for stdin)")
	case "-":
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func writeOut(path, content string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func writePreview(path string, res svgannotate.Result, cfg svgannotate.Config, maxEdge int) error {
	img, err := svgpreview.Render(res, svgpreview.Options{Style: cfg.Style, MaxEdge: maxEdge})
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
