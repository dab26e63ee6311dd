package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keyline/internal/input/key"
)

// Registry holds all keymaps and answers sequence lookups.
type Registry struct {
	mu sync.RWMutex

	keymaps    map[string]*ParsedKeymap
	prefixTree *prefixTree
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:    make(map[string]*ParsedKeymap),
		prefixTree: newPrefixTree(),
	}
}

// Register adds a keymap, replacing any keymap of the same name.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.Parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps[km.Name] = parsed

	for i := range parsed.ParsedBindings {
		pb := &parsed.ParsedBindings[i]
		r.prefixTree.insert(pb.Sequence, km.Mode, pb, km)
	}

	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	km, ok := r.keymaps[name]
	if !ok {
		return
	}
	for i := range km.ParsedBindings {
		pb := &km.ParsedBindings[i]
		r.prefixTree.remove(pb.Sequence, km.Mode, km.Keymap)
	}
	delete(r.keymaps, name)
}

// Get returns a keymap by name, nil when absent.
func (r *Registry) Get(name string) *ParsedKeymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keymaps[name]
}

// Lookup finds the best binding matching seq exactly in the given
// mode, considering mode-specific and global keymaps.
func (r *Registry) Lookup(seq *key.Sequence, mode string) *Binding {
	if seq == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.findMatches(seq, mode)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0].Binding
}

// HasPrefix reports whether seq is a proper prefix of some longer
// binding in the given mode, meaning the dispatcher should wait for
// more keys.
func (r *Registry) HasPrefix(seq *key.Sequence, mode string) bool {
	if seq == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range []string{mode, ""} {
		if r.prefixTree.hasPrefix(seq, m) {
			return true
		}
	}
	return false
}

func (r *Registry) findMatches(seq *key.Sequence, mode string) []BindingMatch {
	var matches []BindingMatch

	for _, m := range []string{mode, ""} {
		for _, entry := range r.prefixTree.lookup(seq, m) {
			match := BindingMatch{
				ParsedBinding: entry.binding,
				Keymap:        entry.keymap,
			}
			match.CalculateScore()
			matches = append(matches, match)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Less(matches[j])
	})
	return matches
}

// prefixTree indexes bindings by their key sequence.
type prefixTree struct {
	root *prefixNode
}

type prefixNode struct {
	children map[string]*prefixNode
	entries  []prefixEntry
}

type prefixEntry struct {
	mode    string
	binding *ParsedBinding
	keymap  *Keymap
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: &prefixNode{children: make(map[string]*prefixNode)}}
}

func (t *prefixTree) insert(seq *key.Sequence, mode string, binding *ParsedBinding, km *Keymap) {
	node := t.root
	for _, event := range seq.Events {
		k := event.String()
		child, ok := node.children[k]
		if !ok {
			child = &prefixNode{children: make(map[string]*prefixNode)}
			node.children[k] = child
		}
		node = child
	}
	node.entries = append(node.entries, prefixEntry{mode: mode, binding: binding, keymap: km})
}

func (t *prefixTree) remove(seq *key.Sequence, mode string, km *Keymap) {
	if seq == nil || len(seq.Events) == 0 {
		return
	}

	path := make([]*prefixNode, 0, len(seq.Events)+1)
	path = append(path, t.root)

	node := t.root
	for _, event := range seq.Events {
		child, ok := node.children[event.String()]
		if !ok {
			return
		}
		path = append(path, child)
		node = child
	}

	filtered := node.entries[:0]
	for _, e := range node.entries {
		if !(e.mode == mode && e.keymap == km) {
			filtered = append(filtered, e)
		}
	}
	node.entries = filtered

	// Prune empty nodes leaf to root.
	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if len(cur.entries) > 0 || len(cur.children) > 0 {
			break
		}
		parent := path[i-1]
		for k, child := range parent.children {
			if child == cur {
				delete(parent.children, k)
				break
			}
		}
	}
}

func (t *prefixTree) lookup(seq *key.Sequence, mode string) []prefixEntry {
	node := t.root
	for _, event := range seq.Events {
		child, ok := node.children[event.String()]
		if !ok {
			return nil
		}
		node = child
	}

	var result []prefixEntry
	for _, e := range node.entries {
		if e.mode == mode {
			result = append(result, e)
		}
	}
	return result
}

func (t *prefixTree) hasPrefix(seq *key.Sequence, mode string) bool {
	node := t.root
	for _, event := range seq.Events {
		child, ok := node.children[event.String()]
		if !ok {
			return false
		}
		node = child
	}
	for _, child := range node.children {
		if subtreeHasMode(child, mode) {
			return true
		}
	}
	return false
}

func subtreeHasMode(node *prefixNode, mode string) bool {
	for _, e := range node.entries {
		if e.mode == mode {
			return true
		}
	}
	for _, child := range node.children {
		if subtreeHasMode(child, mode) {
			return true
		}
	}
	return false
}
