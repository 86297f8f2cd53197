package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/bind/pkg/bind"
)

// FileName is the optional per-project configuration file.
const FileName = "bindcheck.yaml"

// Config represents the optional bindcheck.yaml configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Report   ReportConfig   `yaml:"report"`
}

// DefaultsConfig holds values applied to manifest cases that omit them.
type DefaultsConfig struct {
	Format string `yaml:"format,omitempty"`
}

// ReportConfig controls output detail.
type ReportConfig struct {
	Verbose bool `yaml:"verbose,omitempty"`
}

// Env holds environment overrides. Unset variables leave the file values.
type Env struct {
	Format  *string `env:"BINDCHECK_FORMAT"`
	Verbose *bool   `env:"BINDCHECK_VERBOSE"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	ProjectName string
	Format      string
	Verbose     bool
}

// LoadOptional reads bindcheck.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// ParseEnv loads environment overrides.
func ParseEnv() (Env, error) {
	var overrides Env
	if err := env.Parse(&overrides); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return overrides, nil
}

// Resolve loads bindcheck.yaml (if present), applies environment overrides
// and validates the default format pattern.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	overrides, err := ParseEnv()
	if err != nil {
		return nil, err
	}

	format := strings.TrimSpace(cfg.Defaults.Format)
	if overrides.Format != nil {
		format = strings.TrimSpace(*overrides.Format)
	}
	if format != "" {
		if _, err := bind.TimeLayout(format); err != nil {
			return nil, fmt.Errorf("invalid default format %q: %w", format, err)
		}
	}

	verbose := cfg.Report.Verbose
	if overrides.Verbose != nil {
		verbose = *overrides.Verbose
	}

	modulePath := modulePath(dir)
	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		ProjectName: projectName(modulePath, dir),
		Format:      format,
		Verbose:     verbose,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// there is none.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}

func projectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "bindcheck"
	}
	return base
}
