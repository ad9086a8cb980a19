// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"realign-core/realign"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "realign.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApplyPartial(t *testing.T) {
	path := writeConfig(t, `
graph:
  min_k: 15
  max_k: 63
align:
  gap_open: -8
  error_rate: 0.02
pad: 35
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := realign.DefaultOptions()
	opt := f.Apply(def)

	if opt.Graph.MinK != 15 || opt.Graph.MaxK != 63 {
		t.Errorf("graph k = %d..%d", opt.Graph.MinK, opt.Graph.MaxK)
	}
	if opt.Align.GapOpen != -8 || opt.Align.ErrorRate != 0.02 {
		t.Errorf("align = %+v", opt.Align)
	}
	if opt.Pad != 35 {
		t.Errorf("pad = %d", opt.Pad)
	}
	// Untouched fields keep their defaults.
	if opt.Graph.StepK != def.Graph.StepK || opt.Align.Match != def.Align.Match {
		t.Errorf("defaults clobbered: %+v", opt)
	}
	if opt.Window != def.Window {
		t.Errorf("window section changed: %+v", opt.Window)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "graph:\n  min_kay: 15\n")
	if _, err := Load(path); err == nil {
		t.Error("unknown key must be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must error")
	}
}
