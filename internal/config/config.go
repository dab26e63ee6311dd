package config

import (
	"fmt"
	"time"

	"github.com/dshills/keyline/internal/input/keymap"
)

// Config is the user-facing configuration for a prompt.
type Config struct {
	// Mode selects the editing flavor: "emacs" or "vi".
	Mode string `toml:"mode" yaml:"mode"`

	// EscapeTimeoutMS is the window in milliseconds a lone ESC byte
	// waits for the rest of a sequence.
	EscapeTimeoutMS int `toml:"escape_timeout_ms" yaml:"escape_timeout_ms"`

	// History tunes the history store.
	History HistoryConfig `toml:"history" yaml:"history"`

	// KeymapDirs are directories scanned for JSON keymap files.
	KeymapDirs []string `toml:"keymap_dirs" yaml:"keymap_dirs"`

	// DigraphFiles are extra YAML digraph tables merged over the
	// built-in one.
	DigraphFiles []string `toml:"digraph_files" yaml:"digraph_files"`

	// Bindings are inline key bindings layered over the defaults.
	Bindings []BindingConfig `toml:"bindings" yaml:"bindings"`
}

// HistoryConfig tunes the history store.
type HistoryConfig struct {
	// MaxEntries caps the in-memory history (0 means the default).
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
}

// BindingConfig is one inline key binding.
type BindingConfig struct {
	// Keys is the key sequence ("C-x C-u", "gg").
	Keys string `toml:"keys" yaml:"keys"`

	// Action is the action name to dispatch.
	Action string `toml:"action" yaml:"action"`

	// Mode restricts the binding to one editing mode; empty means all.
	Mode string `toml:"mode" yaml:"mode"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:            "emacs",
		EscapeTimeoutMS: 50,
	}
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	switch c.Mode {
	case "", "emacs", "vi":
	default:
		return fmt.Errorf("unknown editing mode %q", c.Mode)
	}
	if c.EscapeTimeoutMS < 0 {
		return fmt.Errorf("escape_timeout_ms must not be negative")
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative")
	}
	for _, b := range c.Bindings {
		switch b.Mode {
		case "", keymap.ModeEmacs, keymap.ModeViNormal, keymap.ModeViInsert, keymap.ModeViReplace:
		default:
			return fmt.Errorf("binding %q: unknown mode %q", b.Keys, b.Mode)
		}
	}
	return nil
}

// EscapeTimeout returns the escape disambiguation window as a duration.
func (c Config) EscapeTimeout() time.Duration {
	return time.Duration(c.EscapeTimeoutMS) * time.Millisecond
}

// EditingMode maps the configured flavor to the starting keymap mode.
// Vi prompts start in insert mode.
func (c Config) EditingMode() string {
	if c.Mode == "vi" {
		return keymap.ModeViInsert
	}
	return keymap.ModeEmacs
}

// BuildRegistry assembles the keymap registry: built-in defaults, then
// JSON keymap files from KeymapDirs, then the inline bindings at the
// highest priority.
func (c Config) BuildRegistry() (*keymap.Registry, error) {
	registry := keymap.NewRegistry()
	if err := keymap.LoadDefaults(registry); err != nil {
		return nil, err
	}

	if len(c.KeymapDirs) > 0 {
		loader := keymap.NewLoader()
		for _, dir := range c.KeymapDirs {
			loader.AddSearchPath(dir)
		}
		if err := loader.LoadAndRegister(registry); err != nil {
			return nil, err
		}
	}

	if len(c.Bindings) > 0 {
		// One inline keymap per mode, above defaults and keymap files.
		byMode := make(map[string]*keymap.Keymap)
		for _, b := range c.Bindings {
			km, ok := byMode[b.Mode]
			if !ok {
				name := "config-inline"
				if b.Mode != "" {
					name += "-" + b.Mode
				}
				km = keymap.NewKeymap(name).ForMode(b.Mode).WithPriority(100)
				byMode[b.Mode] = km
			}
			km.Add(b.Keys, b.Action)
		}
		for _, km := range byMode {
			if err := registry.Register(km); err != nil {
				return nil, fmt.Errorf("inline bindings: %w", err)
			}
		}
	}

	return registry, nil
}
