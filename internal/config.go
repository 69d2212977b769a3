package internal

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/rm-hull/screenshot-redactor/internal/imaging"
	"github.com/rm-hull/screenshot-redactor/internal/imaging/stage"
	"gopkg.in/yaml.v3"
)

// Region is a named axis-aligned rectangle to redact, expressed as
// (x1, y1, x2, y2) in absolute pixel coordinates, half-open on the upper
// bound. Style selects the redaction applied: "pixelate" (the default),
// "blur" or "fill".
type Region struct {
	Name      string  `yaml:"name"`
	Rect      [4]int  `yaml:"rect,flow"`
	Style     string  `yaml:"style,omitempty"`
	BlockSize int     `yaml:"block_size,omitempty"`
	Sigma     float64 `yaml:"sigma,omitempty"`
	Color     string  `yaml:"color,omitempty"`
}

type Config struct {
	Input     string   `yaml:"input"`
	Output    string   `yaml:"output"`
	BlockSize int      `yaml:"block_size"`
	Quality   int      `yaml:"quality"`
	Regions   []Region `yaml:"regions"`
}

// DefaultConfig matches the reference 1998x1062 email screenshot layout:
// sender addresses and subject lines across the six visible message rows,
// leaving the column headers readable.
func DefaultConfig() *Config {
	return &Config{
		Input:     "email.jpg",
		Output:    "email_pixelated.jpg",
		BlockSize: 15,
		Quality:   95,
		Regions: []Region{
			{Name: "from-column", Rect: [4]int{539, 145, 875, 400}},
			{Name: "subject-column", Rect: [4]int{895, 145, 1998, 400}},
		},
	}
}

// LoadConfig reads a YAML config over the built-in defaults. An empty path
// falls back to the REDACTOR_CONFIG environment variable; if that is unset
// too, the defaults are returned as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("REDACTOR_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("block size must be at least 1, got %d", c.BlockSize)
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 0 and 100, got %d", c.Quality)
	}
	if len(c.Regions) == 0 {
		return errors.New("no regions configured")
	}
	for _, region := range c.Regions {
		if region.BlockSize < 0 {
			return fmt.Errorf("region %q: block size override must be positive, got %d", region.Name, region.BlockSize)
		}
		switch region.Style {
		case "", "pixelate", "blur", "fill":
		default:
			return fmt.Errorf("region %q: unknown style %q", region.Name, region.Style)
		}
	}
	return nil
}

// Rectangle converts the raw coordinates without canonicalising them, so a
// misordered rectangle stays degenerate and is rejected downstream instead
// of being silently flipped into a valid one.
func (r Region) Rectangle() image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: r.Rect[0], Y: r.Rect[1]},
		Max: image.Point{X: r.Rect[2], Y: r.Rect[3]},
	}
}

// Stages builds one pipeline stage per region, in config order. Order
// matters when regions overlap: later stages observe earlier writes.
func (c *Config) Stages() ([]imaging.PipelineStage, error) {
	stages := make([]imaging.PipelineStage, 0, len(c.Regions))
	for _, region := range c.Regions {
		rect := region.Rectangle()
		switch region.Style {
		case "", "pixelate":
			blockSize := region.BlockSize
			if blockSize == 0 {
				blockSize = c.BlockSize
			}
			stages = append(stages, &stage.PixelateStage{Region: rect, BlockSize: blockSize})
		case "blur":
			sigma := region.Sigma
			if sigma == 0 {
				sigma = 5.0
			}
			stages = append(stages, &stage.BlurStage{Region: rect, Sigma: sigma})
		case "fill":
			col, err := parseHexColor(region.Color)
			if err != nil {
				return nil, fmt.Errorf("region %q: %w", region.Name, err)
			}
			stages = append(stages, &stage.FillStage{Region: rect, Color: col})
		default:
			return nil, fmt.Errorf("region %q: unknown style %q", region.Name, region.Style)
		}
	}
	return stages, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	if s == "" {
		return color.NRGBA{A: 255}, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
