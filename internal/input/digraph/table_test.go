package digraph

import "testing"

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	if tbl.Len() == 0 {
		t.Fatal("built-in table is empty")
	}

	tests := []struct {
		a, b rune
		want rune
	}{
		{'e', '\'', 'é'},
		{'a', ':', 'ä'},
		{'s', 's', 'ß'},
		{'E', 'u', '€'},
		{'-', '>', '→'},
		{'a', '*', 'α'},
		{'O', 'K', '✓'},
	}

	for _, tt := range tests {
		got, ok := tbl.Lookup(tt.a, tt.b)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, %v, want %q", tt.a, tt.b, got, ok, tt.want)
		}
	}
}

func TestLookupReversed(t *testing.T) {
	tbl := Default()

	// "e'" is defined; "'e" resolves through the reversed order.
	got, ok := tbl.Lookup('\'', 'e')
	if !ok || got != 'é' {
		t.Errorf("Lookup(', e) = %q, %v, want é", got, ok)
	}
}

func TestLookupUndefined(t *testing.T) {
	tbl := Default()

	if _, ok := tbl.Lookup('q', 'q'); ok {
		t.Error("Lookup(q, q) should be undefined")
	}
}

func TestAddOverrides(t *testing.T) {
	tbl := Default()
	tbl.Add('e', '\'', 'X')

	got, ok := tbl.Lookup('e', '\'')
	if !ok || got != 'X' {
		t.Errorf("Lookup after Add = %q, %v, want X", got, ok)
	}
}

func TestMergeYAML(t *testing.T) {
	tbl := NewTable()
	err := tbl.MergeYAML([]byte("digraphs:\n  \"zz\": \"ž\"\n"))
	if err != nil {
		t.Fatalf("MergeYAML() error = %v", err)
	}

	got, ok := tbl.Lookup('z', 'z')
	if !ok || got != 'ž' {
		t.Errorf("Lookup(z, z) = %q, %v", got, ok)
	}
}

func TestMergeYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "digraphs: ["},
		{"key too long", "digraphs:\n  \"abc\": \"x\"\n"},
		{"value too long", "digraphs:\n  \"ab\": \"xy\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewTable().MergeYAML([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
