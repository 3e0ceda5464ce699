package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/sotftools/engine/npc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want %+v", cfg, Default())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "save_dir: /saves/slot1\nkelvin_health: 80\ntrace: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SaveDir != "/saves/slot1" {
		t.Errorf("SaveDir = %q, want %q", cfg.SaveDir, "/saves/slot1")
	}
	if cfg.KelvinHealth != 80 {
		t.Errorf("KelvinHealth = %v, want 80", cfg.KelvinHealth)
	}
	if cfg.VirginiaHealth != 120 {
		t.Errorf("VirginiaHealth = %v, want 120 (default)", cfg.VirginiaHealth)
	}
	if !cfg.Trace {
		t.Error("Trace = false, want true")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "save_dir: /from/file\nvirginia_health: 90\n")
	t.Setenv("SOTF_SAVE_DIR", "/from/env")
	t.Setenv("SOTF_VIRGINIA_HEALTH", "150")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SaveDir != "/from/env" {
		t.Errorf("SaveDir = %q, want %q", cfg.SaveDir, "/from/env")
	}
	if cfg.VirginiaHealth != 150 {
		t.Errorf("VirginiaHealth = %v, want 150", cfg.VirginiaHealth)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     map[string]string
		wantErr string
	}{
		{"bad yaml", "kelvin_health: [1,2\n", nil, "parsing config"},
		{"bad env", "", map[string]string{"SOTF_KELVIN_HEALTH": "lots"}, "parse env"},
		{"non-positive health", "virginia_health: 0\n", nil, "virginia_health: health must be a positive finite number"},
		{"nan health", "kelvin_health: .nan\n", nil, "kelvin_health: health must be a positive finite number"},
		{"infinite health from env", "", map[string]string{"SOTF_KELVIN_HEALTH": "+Inf"}, "kelvin_health:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("SOTF_CONFIG", "/etc/sotf.yaml")
	if got := Path(); got != "/etc/sotf.yaml" {
		t.Errorf("Path() = %q, want %q", got, "/etc/sotf.yaml")
	}

	t.Setenv("SOTF_CONFIG", "")
	if got := Path(); !strings.HasSuffix(got, filepath.Join(".sotftools", "config.yaml")) {
		t.Errorf("Path() = %q, want ~/.sotftools/config.yaml", got)
	}
}

func TestRevivalHealth(t *testing.T) {
	cfg := Default()
	cfg.KelvinHealth = 55
	h := cfg.RevivalHealth()
	if h[npc.KelvinTypeID] != 55 {
		t.Errorf("kelvin = %v, want 55", h[npc.KelvinTypeID])
	}
	if h[npc.VirginiaTypeID] != 120 {
		t.Errorf("virginia = %v, want 120", h[npc.VirginiaTypeID])
	}
}
