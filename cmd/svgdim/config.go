package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/svgdim/svgdim/svgannotate"
	"github.com/svgdim/svgdim/svgcolor"
	"github.com/svgdim/svgdim/svgoverlay"
	"github.com/svgdim/svgdim/svgprune"
)

// fileConfig is the YAML schema of the -config file. Every field is
// optional; zero values keep the built-in defaults.
type fileConfig struct {
	Style struct {
		DimensionColor       string  `yaml:"dimension_color"`
		ExtensionColor       string  `yaml:"extension_color"`
		LabelColor           string  `yaml:"label_color"`
		StrokeWidth          float64 `yaml:"stroke_width"`
		ExtensionStrokeWidth float64 `yaml:"extension_stroke_width"`
		FontFamily           string  `yaml:"font_family"`
		FontSize             float64 `yaml:"font_size"`
		ArrowLength          float64 `yaml:"arrow_length"`
		ArrowHalfWidth       float64 `yaml:"arrow_half_width"`
	} `yaml:"style"`
	Prune struct {
		RelTolerance float64 `yaml:"rel_tolerance"`
		AbsTolerance float64 `yaml:"abs_tolerance"`
		PercentSlack float64 `yaml:"percent_slack"`
	} `yaml:"prune"`
}

// loadConfig reads a YAML config file and merges it over the
// defaults. An empty path returns the zero Config.
func loadConfig(path string) (svgannotate.Config, error) {
	var cfg svgannotate.Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	style := svgoverlay.DefaultStyle()
	colors := []struct {
		text  string
		field string
		dst   *svgcolor.Color
	}{
		{fc.Style.DimensionColor, "dimension_color", &style.DimensionColor},
		{fc.Style.ExtensionColor, "extension_color", &style.ExtensionColor},
		{fc.Style.LabelColor, "label_color", &style.LabelColor},
	}
	for _, c := range colors {
		if c.text == "" {
			continue
		}
		parsed, ok := svgcolor.Parse(c.text)
		if !ok {
			return cfg, fmt.Errorf("%s: unknown color %q for %s", path, c.text, c.field)
		}
		*c.dst = parsed
	}
	if fc.Style.StrokeWidth > 0 {
		style.StrokeWidth = fc.Style.StrokeWidth
	}
	if fc.Style.ExtensionStrokeWidth > 0 {
		style.ExtensionStrokeWidth = fc.Style.ExtensionStrokeWidth
	}
	if fc.Style.FontFamily != "" {
		style.FontFamily = fc.Style.FontFamily
	}
	if fc.Style.FontSize > 0 {
		style.FontSize = fc.Style.FontSize
	}
	if fc.Style.ArrowLength > 0 {
		style.ArrowLength = fc.Style.ArrowLength
	}
	if fc.Style.ArrowHalfWidth > 0 {
		style.ArrowHalfWidth = fc.Style.ArrowHalfWidth
	}
	cfg.Style = style

	prune := svgprune.DefaultOptions()
	if fc.Prune.RelTolerance > 0 {
		prune.RelTolerance = fc.Prune.RelTolerance
	}
	if fc.Prune.AbsTolerance > 0 {
		prune.AbsTolerance = fc.Prune.AbsTolerance
	}
	if fc.Prune.PercentSlack > 0 {
		prune.PercentSlack = fc.Prune.PercentSlack
	}
	cfg.Prune = prune
	return cfg, nil
}
