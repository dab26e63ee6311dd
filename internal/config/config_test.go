package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/keymap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Mode != "emacs" {
		t.Errorf("Mode = %q", cfg.Mode)
	}
	if cfg.EscapeTimeout() != 50*time.Millisecond {
		t.Errorf("EscapeTimeout = %v", cfg.EscapeTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "keyline.toml", `
mode = "vi"
escape_timeout_ms = 100

[history]
max_entries = 500

[[bindings]]
keys = "C-t"
action = "edit.transposeChars"
mode = "emacs"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != "vi" || cfg.EscapeTimeoutMS != 100 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.History.MaxEntries != 500 {
		t.Errorf("history = %+v", cfg.History)
	}
	if len(cfg.Bindings) != 1 || cfg.Bindings[0].Action != "edit.transposeChars" {
		t.Errorf("bindings = %+v", cfg.Bindings)
	}
	if cfg.EditingMode() != keymap.ModeViInsert {
		t.Errorf("EditingMode = %q", cfg.EditingMode())
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "keyline.yaml", `
mode: emacs
escape_timeout_ms: 25
bindings:
  - keys: "C-x C-r"
    action: "edit.redo"
    mode: emacs
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != "emacs" || cfg.EscapeTimeoutMS != 25 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Bindings) != 1 || cfg.Bindings[0].Keys != "C-x C-r" {
		t.Errorf("bindings = %+v", cfg.Bindings)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "keyline.ini", "mode=emacs")
	if _, err := Load(path); err == nil {
		t.Error("expected an unsupported format error")
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeFile(t, "keyline.toml", `mode = "teco"`)
	if _, err := Load(path); err == nil {
		t.Error("expected a validation error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Mode != "emacs" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad mode", Config{Mode: "nano"}},
		{"negative timeout", Config{Mode: "emacs", EscapeTimeoutMS: -1}},
		{"negative history", Config{Mode: "emacs", History: HistoryConfig{MaxEntries: -1}}},
		{"bad binding mode", Config{Mode: "emacs", Bindings: []BindingConfig{{Keys: "C-t", Action: "x", Mode: "kakoune"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestBuildRegistryInlineBindings(t *testing.T) {
	cfg := Default()
	cfg.Bindings = []BindingConfig{
		// Rebind C-k in emacs mode to digraph composition.
		{Keys: "C-k", Action: "digraph.enter", Mode: keymap.ModeEmacs},
	}

	r, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry() error = %v", err)
	}

	seq := key.NewSequenceFrom(key.MustParse("C-k"))
	b := r.Lookup(seq, keymap.ModeEmacs)
	if b == nil || b.Action != "digraph.enter" {
		t.Errorf("Lookup = %+v, want inline override", b)
	}
	// Defaults are still present underneath.
	if b := r.Lookup(seq, keymap.ModeViInsert); b == nil || b.Action != "digraph.enter" {
		t.Errorf("vi-insert C-k = %+v", b)
	}
}

func TestBuildRegistryFromKeymapDir(t *testing.T) {
	dir := t.TempDir()
	km := `{"name": "user", "mode": "emacs", "priority": 10,
		"bindings": [{"keys": "C-x C-t", "action": "edit.transposeChars"}]}`
	if err := os.WriteFile(filepath.Join(dir, "user.json"), []byte(km), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.KeymapDirs = []string{dir}
	r, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry() error = %v", err)
	}

	seq := key.NewSequenceFrom(key.MustParse("C-x"), key.MustParse("C-t"))
	if b := r.Lookup(seq, keymap.ModeEmacs); b == nil || b.Action != "edit.transposeChars" {
		t.Errorf("Lookup = %+v", b)
	}
}

func TestWatcherFiresAfterDebounce(t *testing.T) {
	path := writeFile(t, "keyline.toml", `mode = "emacs"`)

	changed := make(chan string, 1)
	w, err := Watch(context.Background(), path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`mode = "vi"`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if p != w.path {
			t.Errorf("changed path = %q, want %q", p, w.path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}
}
