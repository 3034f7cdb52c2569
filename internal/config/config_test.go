package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattern-mcp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Default()
	if cfg.Log != want.Log {
		t.Errorf("Log: got %+v, want %+v", cfg.Log, want.Log)
	}
	if cfg.Profile != want.Profile {
		t.Errorf("Profile: got %+v, want %+v", cfg.Profile, want.Profile)
	}
	if len(cfg.Preload.Paths) != 0 {
		t.Errorf("Preload.Paths: got %v, want none", cfg.Preload.Paths)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  mode: release
  level: debug
profile:
  max_k: 3
  sample_size: 32
preload:
  fixed: true
  paths:
    - images/ok.png
    - images/cancel.png
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Log.Mode != "release" || cfg.Log.Level != "debug" {
		t.Errorf("Log: got %+v", cfg.Log)
	}
	if cfg.Profile.MaxK != 3 || cfg.Profile.SampleSize != 32 {
		t.Errorf("Profile: got %+v", cfg.Profile)
	}
	if cfg.Profile.MaxIterations != Default().Profile.MaxIterations {
		t.Errorf("unset max_iterations should keep default, got %d", cfg.Profile.MaxIterations)
	}
	if !cfg.Preload.Fixed || len(cfg.Preload.Paths) != 2 || cfg.Preload.Paths[1] != "images/cancel.png" {
		t.Errorf("Preload: got %+v", cfg.Preload)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("PATTERN_MCP_LOG_LEVEL", "debug")
	t.Setenv("PATTERN_MCP_PROFILE_MAX_K", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %s, want debug", cfg.Log.Level)
	}
	if cfg.Profile.MaxK != 7 {
		t.Errorf("Profile.MaxK: got %d, want 7", cfg.Profile.MaxK)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail when an explicit config file is missing")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "profile:\n  max_k: 0\n")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject max_k 0")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero max_k", func(c *Config) { c.Profile.MaxK = 0 }, false},
		{"zero iterations", func(c *Config) { c.Profile.MaxIterations = 0 }, false},
		{"negative sample size", func(c *Config) { c.Profile.SampleSize = -1 }, false},
		{"no downsampling", func(c *Config) { c.Profile.SampleSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate: got %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
