package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != "text" {
		t.Errorf("Default Output.Format = %q, want %q", cfg.Output.Format, "text")
	}

	if !cfg.Output.ShowSource {
		t.Error("Default Output.ShowSource = false, want true")
	}

	if cfg.Output.FailLevel != "warning" {
		t.Errorf("Default Output.FailLevel = %q, want %q", cfg.Output.FailLevel, "warning")
	}

	if !cfg.InlineDirectives.Enabled {
		t.Error("Default InlineDirectives.Enabled = false, want true")
	}

	if len(cfg.Rules.KnownExternalVars) == 0 {
		t.Error("Default Rules.KnownExternalVars is empty, want a seeded set")
	}
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	subDir := filepath.Join(tmpDir, "project", "src")
	if err := os.MkdirAll(subDir, 0o750); err != nil {
		t.Fatal(err)
	}

	scriptPath := filepath.Join(subDir, "deploy.sh")
	if err := os.WriteFile(scriptPath, []byte("#!/bin/sh\necho hi\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("no config file", func(t *testing.T) {
		result := Discover(scriptPath)
		if result != "" {
			t.Errorf("Discover() = %q, want empty string", result)
		}
	})

	t.Run("config in same directory", func(t *testing.T) {
		configPath := filepath.Join(subDir, ".bashrs.toml")
		if err := os.WriteFile(configPath, []byte(`[output]
format = "json"
`), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(configPath)

		result := Discover(scriptPath)
		if result != configPath {
			t.Errorf("Discover() = %q, want %q", result, configPath)
		}
	})

	t.Run("config in parent directory", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "project", "bashrs.toml")
		if err := os.WriteFile(configPath, []byte(`[output]
format = "json"
`), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(configPath)

		result := Discover(scriptPath)
		if result != configPath {
			t.Errorf("Discover() = %q, want %q", result, configPath)
		}
	})

	t.Run("prefers .bashrs.toml over bashrs.toml", func(t *testing.T) {
		hiddenConfig := filepath.Join(subDir, ".bashrs.toml")
		visibleConfig := filepath.Join(subDir, "bashrs.toml")

		if err := os.WriteFile(hiddenConfig, []byte("# hidden"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(hiddenConfig)

		if err := os.WriteFile(visibleConfig, []byte("# visible"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(visibleConfig)

		result := Discover(scriptPath)
		if result != hiddenConfig {
			t.Errorf("Discover() = %q, want %q (should prefer .bashrs.toml)", result, hiddenConfig)
		}
	})

	t.Run("closer config wins", func(t *testing.T) {
		rootConfig := filepath.Join(tmpDir, "project", "bashrs.toml")
		if err := os.WriteFile(rootConfig, []byte("# root"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(rootConfig)

		srcConfig := filepath.Join(subDir, "bashrs.toml")
		if err := os.WriteFile(srcConfig, []byte("# src"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(srcConfig)

		result := Discover(scriptPath)
		if result != srcConfig {
			t.Errorf("Discover() = %q, want %q (closer config should win)", result, srcConfig)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads defaults with no bytes", func(t *testing.T) {
		cfg, err := Load(nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Output.Format != "text" {
			t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "text")
		}
		if cfg.ConfigFile != "" {
			t.Errorf("ConfigFile = %q, want empty", cfg.ConfigFile)
		}
	})

	t.Run("loads config bytes", func(t *testing.T) {
		cfg, err := Load([]byte(`
[output]
format = "json"

[rules]
include = ["SC*"]
exclude = ["SC2086"]
`))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Output.Format != "json" {
			t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
		}
		if len(cfg.Rules.Include) != 1 || cfg.Rules.Include[0] != "SC*" {
			t.Errorf("Rules.Include = %v, want [SC*]", cfg.Rules.Include)
		}
		if len(cfg.Rules.Exclude) != 1 || cfg.Rules.Exclude[0] != "SC2086" {
			t.Errorf("Rules.Exclude = %v, want [SC2086]", cfg.Rules.Exclude)
		}
	})

	t.Run("environment variables override config", func(t *testing.T) {
		t.Setenv("BASHRS_OUTPUT_FORMAT", "sarif")

		cfg, err := Load([]byte(`
[output]
format = "json"
`))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Output.Format != "sarif" {
			t.Errorf("Output.Format = %q, want %q (env should override)", cfg.Output.Format, "sarif")
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".bashrs.toml")
	if err := os.WriteFile(configPath, []byte(`
[output]
format = "json"
`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
	}
	if cfg.ConfigFile != configPath {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, configPath)
	}

	cfg, err = LoadFromFile("")
	if err != nil {
		t.Fatalf("LoadFromFile(\"\") error = %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want %q for empty path", cfg.Output.Format, "text")
	}
}

func TestEnvKeyTransform(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"BASHRS_OUTPUT_FORMAT", "output.format"},
		{"BASHRS_INLINE_DIRECTIVES_WARN_UNUSED", "inline-directives.warn-unused"},
		{"BASHRS_OUTPUT_SHOW_SOURCE", "output.show-source"},
		{"BASHRS_OUTPUT_FAIL_LEVEL", "output.fail-level"},
	}

	for _, tt := range tests {
		got := envKeyTransform(tt.input)
		if got != tt.want {
			t.Errorf("envKeyTransform(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
