// Package config loads the client-wide settings file. Per-field capture
// behavior comes from the schema; this covers only what the schema cannot
// know, such as logging and theme selection.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/styling"
)

// Config is the root of the settings file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Theme   ThemeConfig   `yaml:"theme"`
	Capture CaptureConfig `yaml:"capture"`
}

// LoggingConfig controls log construction.
type LoggingConfig struct {
	// Debug enables the human-readable development logger.
	Debug bool `yaml:"debug"`
}

// ThemeConfig names the theme manifest to resolve.
type ThemeConfig struct {
	// Manifest is a path to a go-theme manifest file (JSON or YAML). Empty
	// selects the built-in defaults.
	Manifest string `yaml:"manifest"`
	Name     string `yaml:"name"`
	Variant  string `yaml:"variant"`
}

// Resolve loads the configured manifest, registers it and maps its tokens
// onto the engine's visual defaults. Without a manifest the defaults are
// returned untouched.
func (c ThemeConfig) Resolve() (styling.Theme, error) {
	path := strings.TrimSpace(c.Manifest)
	if path == "" {
		return styling.Default(), nil
	}

	manifest, err := theme.LoadFile(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return styling.Theme{}, fmt.Errorf("config: theme manifest %s: %w", path, err)
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return styling.Theme{}, fmt.Errorf("config: register theme %s: %w", path, err)
	}

	name := c.Name
	if strings.TrimSpace(name) == "" {
		name = manifest.Name
	}
	selector := theme.Selector{Registry: registry, DefaultTheme: manifest.Name}
	return styling.Resolve(selector, name, c.Variant)
}

// CaptureConfig overrides capture defaults across all forms.
type CaptureConfig struct {
	// LocationTimeoutMs bounds position requests when a field specifies no
	// timeout of its own. Zero keeps the built-in default.
	LocationTimeoutMs int `yaml:"locationTimeoutMs"`
	// ResolveAddress toggles reverse geocoding globally.
	ResolveAddress bool `yaml:"resolveAddress"`
}

// SchemaOptions translates the capture overrides into normalization options.
func (c CaptureConfig) SchemaOptions() []schema.NormalizeOption {
	var opts []schema.NormalizeOption
	if c.LocationTimeoutMs > 0 {
		opts = append(opts, schema.WithLocationTimeoutDefault(c.LocationTimeoutMs))
	}
	if !c.ResolveAddress {
		opts = append(opts, schema.WithoutAddressResolution())
	}
	return opts
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Capture: CaptureConfig{ResolveAddress: true},
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Logger builds the logger described by the logging section.
func (c Config) Logger() (*zap.Logger, error) {
	if !c.Logging.Debug {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
