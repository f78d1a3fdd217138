// Package config provides configuration loading for bashrs.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags (a driver's concern, not this package's)
//  2. Environment variables (BASHRS_* prefix)
//  3. Config file (closest .bashrs.toml or bashrs.toml)
//  4. Built-in defaults
//
// The spec treats the known-external-variable set, rule default
// severities, and inline-directive toggles as "configuration, not law"
// (see the Open Questions section of the specification) — everything
// else about a file (its AST, its diagnostics) is derived, never
// configured. Because the diagnostic engine itself is side-effect-free
// and consumes only bytes, Load takes an optional TOML blob directly
// rather than a path; Discover/fileExists below are filesystem helpers
// a driver can use to find that blob in the first place, not something
// Load calls itself.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".bashrs.toml", "bashrs.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "BASHRS_"

// Config represents the complete bashrs configuration.
type Config struct {
	// Rules contains rule selection and per-rule configuration.
	Rules RulesConfig `koanf:"rules"`

	// Output configures output format and behavior.
	Output OutputConfig `koanf:"output"`

	// InlineDirectives controls inline suppression directives.
	InlineDirectives InlineDirectivesConfig `koanf:"inline-directives"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata populated by a driver, not loaded from the file itself.
	ConfigFile string `koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: "text", "json", "sarif".
	// Default: "text"
	Format string `koanf:"format"`

	// Path specifies where to write output: "stdout", "stderr", or a file path.
	// Default: "stdout"
	Path string `koanf:"path"`

	// ShowSource enables source code snippets in text output.
	// Default: true
	ShowSource bool `koanf:"show-source"`

	// FailLevel sets the minimum severity that causes a non-zero exit code.
	// Valid values: "error", "warning", "info", "none".
	// Default: "warning"
	FailLevel string `koanf:"fail-level"`
}

// InlineDirectivesConfig controls inline suppression directives.
// Supports # bashrs disable-next-line=..., # bashrs disable-file=...,
// and the hadolint/buildx compatibility forms.
//
// Example TOML configuration:
//
//	[inline-directives]
//	enabled = true
//	warn-unused = false
//	validate-rules = true
//	require-reason = false
type InlineDirectivesConfig struct {
	// Enabled controls whether inline directives are processed.
	// Default: true
	Enabled bool `koanf:"enabled"`

	// WarnUnused reports warnings for directives that don't suppress any violations.
	// Default: false
	WarnUnused bool `koanf:"warn-unused"`

	// ValidateRules reports warnings for unknown rule codes in directives.
	// Default: false (allows hadolint/buildx rule codes for migration compatibility)
	ValidateRules bool `koanf:"validate-rules"`

	// RequireReason reports warnings for directives without a reason= explanation.
	// Default: false
	RequireReason bool `koanf:"require-reason"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
			FailLevel:  "warning",
		},
		Rules: RulesConfig{
			KnownExternalVars: []string{
				"CI", "DEBUG", "VERBOSE", "PATH", "HOME", "USER", "SHELL",
				"LANG", "LC_ALL", "TERM", "TMPDIR", "PWD", "OLDPWD",
			},
		},
		InlineDirectives: InlineDirectivesConfig{
			Enabled:       true,
			WarnUnused:    false,
			ValidateRules: false,
			RequireReason: false,
		},
	}
}

// Load loads configuration from an optional TOML blob plus environment
// variable overrides. tomlBytes may be nil, in which case only defaults
// and the environment are applied. Load never touches the filesystem;
// a driver that wants file-based config reads the bytes itself (see
// Discover) and passes them here.
func Load(tomlBytes []byte) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Load the TOML blob, if any
	if len(tomlBytes) > 0 {
		if err := k.Load(rawbytes.Provider(tomlBytes), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Load environment variables (BASHRS_* prefix)
	// BASHRS_OUTPUT_FORMAT -> output.format
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	// 4. Unmarshal into config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile is a driver convenience that reads configPath (if
// non-empty) and calls Load with its bytes. Unlike Load, this function
// touches the filesystem, so it lives here only as sugar for drivers —
// the core never calls it.
func LoadFromFile(configPath string) (*Config, error) {
	var data []byte
	if configPath != "" {
		b, err := os.ReadFile(configPath) //nolint:gosec // configPath is operator-supplied, not attacker-controlled
		if err != nil {
			return nil, err
		}
		data = b
	}
	cfg, err := Load(data)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath
	return cfg, nil
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated equivalents.
// Add new entries here when adding config fields with hyphenated names.
var knownHyphenatedKeys = map[string]string{
	"inline.directives": "inline-directives",
	"warn.unused":       "warn-unused",
	"validate.rules":    "validate-rules",
	"require.reason":    "require-reason",
	"show.source":       "show-source",
	"fail.level":        "fail-level",
	"known.external.vars": "known-external-vars",
}

// envKeyTransform converts environment variable names to config keys.
// BASHRS_OUTPUT_FORMAT -> output.format
// BASHRS_INLINE_DIRECTIVES_WARN_UNUSED -> inline-directives.warn-unused
func envKeyTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}
	return s
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level. Returns empty string if no
// config file is found. This is a driver helper: the core's Load never
// calls it.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
