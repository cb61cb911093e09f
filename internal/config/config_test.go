package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vajrock/growlist/container"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InitialCapacity != 10 {
		t.Errorf("expected InitialCapacity=10, got %d", cfg.InitialCapacity)
	}
	if cfg.Growth != "linear" {
		t.Errorf("expected Growth=linear, got %q", cfg.Growth)
	}
	if cfg.Removal != "filter" {
		t.Errorf("expected Removal=filter, got %q", cfg.Removal)
	}
	if cfg.StrictRender {
		t.Error("expected StrictRender=false")
	}
	if cfg.Extension != ".gl" {
		t.Errorf("expected Extension=.gl, got %q", cfg.Extension)
	}
	if cfg.Write {
		t.Error("expected Write=false")
	}
	if cfg.List {
		t.Error("expected List=false")
	}
	if cfg.Verbose {
		t.Error("expected Verbose=false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative_capacity", func(c *Config) { c.InitialCapacity = -1 }, "must not be negative"},
		{"bad_growth", func(c *Config) { c.Growth = "tripling" }, `unknown growth policy "tripling"`},
		{"bad_removal", func(c *Config) { c.Removal = "all" }, `unknown removal mode "all"`},
		{"bad_extension", func(c *Config) { c.Extension = "gl" }, "must start with a dot"},
		{"huge_capacity", func(c *Config) { c.InitialCapacity = MaxCapacity + 1 }, "exceeds the maximum"},
		{"max_capacity", func(c *Config) { c.InitialCapacity = MaxCapacity }, ""},
		{"zero_capacity", func(c *Config) { c.InitialCapacity = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestContainerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialCapacity = 2
	cfg.Growth = "doubling"
	cfg.Removal = "scan"
	cfg.StrictRender = true

	want := container.Config{
		InitialCapacity: 2,
		Growth:          container.GrowthDoubling,
		Removal:         container.RemovalScan,
		StrictRender:    true,
	}
	if diff := cmp.Diff(want, cfg.ContainerOptions().Config()); diff != "" {
		t.Errorf("ContainerOptions() mismatch (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "growlist.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
initial_capacity = 3
growth = "doubling"
strict_render = true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	want := DefaultConfig()
	want.InitialCapacity = 3
	want.Growth = "doubling"
	want.StrictRender = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "initial_capacity = ", "failed to decode config"},
		{"unknown_key", "colour = \"blue\"\n", "unknown keys in config"},
		{"invalid", "growth = \"sideways\"\n", "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpKind_String(t *testing.T) {
	tests := []struct {
		name string
		k    OpKind
		want string
	}{
		{"new", OpNew, "new"},
		{"remove_at", OpRemoveAt, "remove-at"},
		{"index_of", OpIndexOf, "index-of"},
		{"dump", OpDump, "dump"},
		{"unknown", OpKind(99), "unknown operation"},
		{"negative", OpKind(-1), "unknown operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.k.String()
			if got != tt.want {
				t.Errorf("OpKind(%d).String() = %q, want %q", tt.k, got, tt.want)
			}
		})
	}
}

func TestParseOpKind(t *testing.T) {
	for k := OpNew; k <= OpDump; k++ {
		got, ok := ParseOpKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseOpKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseOpKind("push"); ok {
		t.Error("expected push to be unknown")
	}
}
