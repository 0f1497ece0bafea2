// Package projectconfig provides the ProjectConfig struct and loader for
// .bootci.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/spboyer/bootci/internal/statistics"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".bootci.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultTrials     = statistics.DefaultTrials
	DefaultConfidence = statistics.DefaultConfidence
	DefaultWorkers    = 0 // runtime.GOMAXPROCS(0)
	DefaultFormat     = "table"
)

// ErrInvalidConfig is wrapped by every schema violation reported by Parse.
var ErrInvalidConfig = errors.New("invalid configuration")

// maxWalkDepth bounds how many parent directories Load inspects.
const maxWalkDepth = 10

// DefaultsConfig holds default run parameters.
type DefaultsConfig struct {
	Trials     int     `yaml:"trials,omitempty"`
	Confidence int     `yaml:"confidence,omitempty"`
	Workers    int     `yaml:"workers,omitempty"`
	Seed       *uint64 `yaml:"seed,omitempty"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	// Color forces coloured output on or off. Nil means colour only on a terminal.
	Color *bool `yaml:"color,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .bootci.yaml.
type ProjectConfig struct {
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`

	// Path is the file the configuration was read from; empty for pure defaults.
	Path string `yaml:"-"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Defaults: DefaultsConfig{
			Trials:     DefaultTrials,
			Confidence: DefaultConfidence,
			Workers:    DefaultWorkers,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// Load finds .bootci.yaml by walking up from startDir (max 10 levels) and
// merges it onto the defaults. If no config file is found, returns defaults
// with a nil error. Real I/O errors (e.g. permission denied) are returned.
func Load(startDir string) (*ProjectConfig, error) {
	path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path, validates it against the
// embedded schema and merges it onto the defaults.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes raw YAML configuration and merges it onto the defaults.
func Parse(data []byte) (*ProjectConfig, error) {
	cfg := New()

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		return cfg, nil // empty file
	}

	if vs := checkSchema(doc); len(vs) > 0 {
		return nil, schemaError(doc, vs)
	}

	var fileCfg ProjectConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "yaml",
		ErrorUnused: true,
		Result:      &fileCfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// schemaError joins violations into one error. When a run parameter under
// defaults is among them, the error is a *statistics.ValidationError so it is
// treated like the same bad value given on the command line.
func schemaError(doc any, vs []violation) error {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.String()
	}
	err := fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(lines, "\n  "))

	for _, v := range vs {
		if key, ok := v.runParameter(); ok {
			return &statistics.ValidationError{
				Field: "defaults." + key,
				Value: lookup(doc, v.Location),
				Err:   err,
			}
		}
	}
	return err
}

// findConfigFile walks up from dir looking for .bootci.yaml and returns its
// path. Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkDepth {
		p := filepath.Join(dir, FileName)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("checking %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Defaults.Trials != 0 {
		dst.Defaults.Trials = src.Defaults.Trials
	}
	if src.Defaults.Confidence != 0 {
		dst.Defaults.Confidence = src.Defaults.Confidence
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.Seed != nil {
		dst.Defaults.Seed = src.Defaults.Seed
	}

	if src.Output.Format != "" {
		dst.Output.Format = src.Output.Format
	}
	if src.Output.Color != nil {
		dst.Output.Color = src.Output.Color
	}
}
