package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/kanjiq/internal/selection"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.Data != nil || cfg.Quiz.Category != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[quiz]
data = "/tmp/kanji.json"
category = "1-2"
plain = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Quiz.Data == nil || *cfg.Quiz.Data != "/tmp/kanji.json" {
		t.Fatalf("unexpected data: %v", cfg.Quiz.Data)
	}
	if cfg.Quiz.Category == nil || *cfg.Quiz.Category != "1-2" {
		t.Fatalf("unexpected category: %v", cfg.Quiz.Category)
	}
	if cfg.Quiz.Plain == nil || !*cfg.Quiz.Plain {
		t.Fatalf("expected plain = true")
	}
	if cfg.Quiz.Browser != nil {
		t.Fatalf("expected browser unset")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[quiz]\nlevel = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanjiq", "state.toml")
	if _, ok, err := LoadState(path); err != nil || ok {
		t.Fatalf("expected no state yet, got ok=%v err=%v", ok, err)
	}

	spec := selection.Of("jlptn2", "jlptn4")
	if err := SaveState(path, StateFor(spec)); err != nil {
		t.Fatalf("save: %v", err)
	}
	state, ok, err := LoadState(path)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !state.Spec().Equal(spec) {
		t.Fatalf("unexpected spec: %v", state.Spec())
	}

	if err := SaveState(path, StateFor(selection.NoFilter())); err != nil {
		t.Fatalf("save no filter: %v", err)
	}
	state, ok, err = LoadState(path)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !state.Spec().IsNoFilter() {
		t.Fatalf("expected no filter, got %v", state.Spec())
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CACHE_HOME", "/cache")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "kanjiq", "config.toml") {
		t.Fatalf("config path: %s", got)
	}
	if got := DefaultStatePath(); got != filepath.Join("/data", "kanjiq", "state.toml") {
		t.Fatalf("state path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "kanjiq", "kanjiq.db") {
		t.Fatalf("db path: %s", got)
	}
	if got := DefaultHTMLPath(); got != filepath.Join("/cache", "kanjiq", "kanji.html") {
		t.Fatalf("html path: %s", got)
	}
}
