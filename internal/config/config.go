// Package config parses the viewer's command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// DefaultMaxSurfaceSize is the largest surface edge, in pixels, the viewer
// tries to allocate by default.
const DefaultMaxSurfaceSize = 16384

// Config holds the viewer settings.
type Config struct {
	Path           string
	Width, Height  int
	Title          string
	Placeholder    string
	MaxSurfaceSize int
	ShowHUD        bool
	Async          bool
}

// Parse reads flags from args, which must not include the program name. The
// image may be given with -image or as the single positional argument.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Path, "image", "", "Image file to open. Can also be provided as a positional argument.")
	fs.IntVar(&cfg.Width, "width", 1280, "Initial window width")
	fs.IntVar(&cfg.Height, "height", 800, "Initial window height")
	fs.StringVar(&cfg.Title, "title", "ebitview", "Window title")
	fs.StringVar(&cfg.Placeholder, "placeholder", "", "Image shown while a load is in progress")
	fs.IntVar(&cfg.MaxSurfaceSize, "max-surface", DefaultMaxSurfaceSize, "Largest surface width or height to allocate")
	fs.BoolVar(&cfg.ShowHUD, "hud", true, "Show the path, scale and metadata overlay")
	fs.BoolVar(&cfg.Async, "async", true, "Decode images on a background goroutine")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	imageFlagIsSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "image" {
			imageFlagIsSet = true
		}
	})
	switch {
	case fs.NArg() > 1:
		return nil, fmt.Errorf("expected one image, got %d arguments", fs.NArg())
	case fs.NArg() == 1 && imageFlagIsSet:
		return nil, errors.New("image given both with -image and as an argument")
	case fs.NArg() == 1:
		cfg.Path = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the viewer cannot use.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.MaxSurfaceSize <= 0 {
		return fmt.Errorf("invalid max surface size %d", c.MaxSurfaceSize)
	}
	return nil
}
