package keymap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Loader loads user keymaps from JSON files.
type Loader struct {
	searchPaths []string
}

// NewLoader creates a loader with no search paths.
func NewLoader() *Loader {
	return &Loader{}
}

// AddSearchPath adds a directory to search for keymap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads a keymap from a JSON file.
func (l *Loader) LoadFile(path string) (*Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	km, err := l.LoadReader(f)
	if err != nil {
		return nil, err
	}
	km.Source = path
	return km, nil
}

// LoadReader loads a keymap from a reader.
func (l *Loader) LoadReader(r io.Reader) (*Keymap, error) {
	var config keymapConfig
	if err := json.NewDecoder(r).Decode(&config); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}

	km := &Keymap{
		Name:     config.Name,
		Mode:     config.Mode,
		Priority: config.Priority,
		Source:   "user",
		Bindings: make([]Binding, 0, len(config.Bindings)),
	}
	for _, bc := range config.Bindings {
		km.Bindings = append(km.Bindings, Binding(bc))
	}

	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("keymap %q: %w", km.Name, err)
	}
	return km, nil
}

// LoadAll loads every keymap file from the search paths. Files that
// fail to parse are skipped.
func (l *Loader) LoadAll() []*Keymap {
	var keymaps []*Keymap
	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			continue
		}
		for _, path := range matches {
			km, err := l.LoadFile(path)
			if err != nil {
				continue
			}
			keymaps = append(keymaps, km)
		}
	}
	return keymaps
}

// LoadAndRegister loads all keymaps and registers them.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	for _, km := range l.LoadAll() {
		if err := registry.Register(km); err != nil {
			return fmt.Errorf("registering keymap %q: %w", km.Name, err)
		}
	}
	return nil
}

// keymapConfig is the JSON structure for keymap files.
type keymapConfig struct {
	Name     string          `json:"name"`
	Mode     string          `json:"mode,omitempty"`
	Priority int             `json:"priority,omitempty"`
	Bindings []bindingConfig `json:"bindings"`
}

type bindingConfig struct {
	Keys        string         `json:"keys"`
	Action      string         `json:"action"`
	Args        map[string]any `json:"args,omitempty"`
	Description string         `json:"description,omitempty"`
	Priority    int            `json:"priority,omitempty"`
}
