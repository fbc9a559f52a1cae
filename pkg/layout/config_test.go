package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero repulsion", func(c *Config) { c.Repulsion = 0 }},
		{"negative spring", func(c *Config) { c.Spring = -1 }},
		{"damping too high", func(c *Config) { c.Damping = 1 }},
		{"cooling too high", func(c *Config) { c.Cooling = 1.5 }},
		{"rest lengths inverted", func(c *Config) { c.RestTriple = c.RestSingle + 1 }},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"zero scramble radius", func(c *Config) { c.ScrambleRadius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should reject this config")
			}
		})
	}
}

func TestRestLength(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.RestLength(1); got != cfg.RestSingle {
		t.Errorf("RestLength(1) = %v", got)
	}
	if got := cfg.RestLength(2); got != cfg.RestDouble {
		t.Errorf("RestLength(2) = %v", got)
	}
	if got := cfg.RestLength(3); got != cfg.RestTriple {
		t.Errorf("RestLength(3) = %v", got)
	}
	// Out-of-range orders fall back to single.
	if got := cfg.RestLength(0); got != cfg.RestSingle {
		t.Errorf("RestLength(0) = %v", got)
	}
	if got := cfg.RestLength(9); got != cfg.RestSingle {
		t.Errorf("RestLength(9) = %v", got)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forcefield.toml")
	content := "repulsion = 2.0\nrest_single = 4.0\nrest_double = 3.5\nrest_triple = 3.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Repulsion != 2.0 {
		t.Errorf("Repulsion = %v, want 2.0", cfg.Repulsion)
	}
	if cfg.RestSingle != 4.0 {
		t.Errorf("RestSingle = %v, want 4.0", cfg.RestSingle)
	}
	// Unset keys keep defaults.
	if cfg.Spring != DefaultConfig().Spring {
		t.Errorf("Spring = %v, want default %v", cfg.Spring, DefaultConfig().Spring)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forcefield.toml")
	if err := os.WriteFile(path, []byte("damping = 2.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig should reject damping outside (0, 1)")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig should fail for a missing file")
	}
}
