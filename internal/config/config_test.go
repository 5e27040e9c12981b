package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taskline-dev/taskline/internal/version"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
	}{
		{
			name: "full config",
			content: `extension: tskln
default_version: v0.0.1
scripts: ["scripts/**.tskln"]
log:
  level: debug
  format: json
`,
			wantErr: false,
		},
		{
			name:    "empty config",
			content: ``,
			wantErr: false,
		},
		{
			name:        "extension with dot",
			content:     `extension: .tskln`,
			wantErr:     true,
			errContains: "must not contain dots",
		},
		{
			name:        "bad default version",
			content:     `default_version: 1.0.0`,
			wantErr:     true,
			errContains: "default_version",
		},
		{
			name:        "empty script pattern",
			content:     `scripts: ["  "]`,
			wantErr:     true,
			errContains: "empty patterns",
		},
		{
			name: "unknown log level",
			content: `log:
  level: chatty
`,
			wantErr:     true,
			errContains: "unknown log level",
		},
		{
			name: "unknown log format",
			content: `log:
  format: xml
`,
			wantErr:     true,
			errContains: "unknown log format",
		},
		{
			name:        "invalid yaml",
			content:     `scripts: [invalid`,
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp file with config content
			dir := t.TempDir()
			configPath := filepath.Join(dir, FileName)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}

			cfg, err := Load(configPath)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errContains)
					return
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if cfg == nil {
				t.Error("expected non-nil config")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(`extension: task`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Extension != "task" {
		t.Errorf("Extension = %q, want task", cfg.Extension)
	}
	if len(cfg.Scripts) != 1 || cfg.Scripts[0] != "**.task" {
		t.Errorf("Scripts = %v, want [**.task]", cfg.Scripts)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}

	d := Default()
	if d.Extension != "tskln" || d.Scripts[0] != "**.tskln" {
		t.Errorf("Default() = %+v", d)
	}
}

func TestInitVersion(t *testing.T) {
	cfg, err := Parse(`default_version: v0.0.1`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cfg.InitVersion()
	if got == nil || *got != version.New(0, 0, 1) {
		t.Errorf("InitVersion() = %v, want v0.0.1", got)
	}

	if v := Default().InitVersion(); v != nil {
		t.Errorf("Default().InitVersion() = %v, want nil", v)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("extension: tl\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Extension != "tl" {
		t.Errorf("Extension = %q, want tl", cfg.Extension)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Extension != "tskln" {
		t.Errorf("Extension = %q, want tskln", cfg.Extension)
	}

	_, err = LoadFromDir(t.TempDir())
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
