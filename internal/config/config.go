// Package config loads service configuration from an optional YAML file
// with environment overrides on top. A missing file is not an error; the
// service then runs on defaults and environment alone.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given on the command line.
const DefaultPath = "mergesign.yaml"

// Chrome configures the headless browser used for office rendering.
type Chrome struct {
	// ControlURL points at an already running browser's devtools endpoint.
	// Empty means launch a private headless instance on demand.
	ControlURL string  `yaml:"control_url"`
	PageFormat string  `yaml:"page_format"`
	MarginMM   float64 `yaml:"margin_mm"`
	TimeoutSec int     `yaml:"timeout_sec"`
}

// Image tunes raster source handling.
type Image struct {
	// MaxEdge caps an image's long edge in pixels; 0 disables downsampling.
	MaxEdge     int `yaml:"max_edge"`
	JPEGQuality int `yaml:"jpeg_quality"`
}

// Output tunes how merged containers are written.
type Output struct {
	// Uncompressed disables object and xref streams in merged output.
	Uncompressed bool `yaml:"uncompressed"`
}

type Config struct {
	Port              int    `yaml:"port"`
	UploadDir         string `yaml:"upload_dir"`
	OutputDir         string `yaml:"output_dir"`
	MaxUploadMB       int    `yaml:"max_upload_mb"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
	Chrome            Chrome `yaml:"chrome"`
	Image             Image  `yaml:"image"`
	Output            Output `yaml:"output"`
}

func (c *Config) defaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.UploadDir == "" {
		c.UploadDir = "uploads"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 25
	}
	if c.SessionTTLMinutes <= 0 {
		c.SessionTTLMinutes = 30
	}
	if c.Chrome.PageFormat == "" {
		c.Chrome.PageFormat = "A4"
	}
	if c.Chrome.MarginMM <= 0 {
		c.Chrome.MarginMM = 18
	}
	if c.Chrome.TimeoutSec <= 0 {
		c.Chrome.TimeoutSec = 45
	}
	if c.Image.JPEGQuality <= 0 {
		c.Image.JPEGQuality = 80
	}
}

func (c *Config) fromEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxUploadMB = n
		}
	}
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SessionTTLMinutes = n
		}
	}
	if v := os.Getenv("CHROME_CONTROL_URL"); v != "" {
		c.Chrome.ControlURL = v
	}
}

// Load reads the YAML file at path, then applies environment overrides and
// defaults. A missing file yields a pure defaults-plus-environment config.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg.fromEnv()
	cfg.defaults()
	return &cfg, nil
}

// MaxUploadBytes is the request body cap for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// SessionTTL is how long an idle session survives before sweeping.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Timeout bounds a single office render.
func (ch Chrome) Timeout() time.Duration {
	return time.Duration(ch.TimeoutSec) * time.Second
}
