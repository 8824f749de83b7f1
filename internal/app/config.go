package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string // data directory, e.g. $HOME/.pumpsizer
	ProjectPath string // project document, defaults to $Home/project.json
	CurveDB     string // shared curve library, defaults to $Home/curves.db
	LogLevel    string // debug, info, warn or error
	Listen      string // HTTP listen address for serve
}

// WithDefaults fills every empty field and creates Home.
func (c Config) WithDefaults() (Config, error) {
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return c, err
		}
		c.Home = filepath.Join(dir, ".pumpsizer")
	}
	if err := os.MkdirAll(c.Home, 0o755); err != nil {
		return c, fmt.Errorf("create home %s: %w", c.Home, err)
	}
	if c.ProjectPath == "" {
		c.ProjectPath = filepath.Join(c.Home, "project.json")
	}
	if c.CurveDB == "" {
		c.CurveDB = filepath.Join(c.Home, "curves.db")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	return c, nil
}

// Level maps LogLevel to a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
