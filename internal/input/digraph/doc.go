// Package digraph maps two-character mnemonics to characters that are
// awkward to type, in the style of RFC 1345 and Vim's digraph table.
//
// The built-in table is embedded as YAML and can be extended at
// runtime. Lookup tries the pair as given, then reversed, so "e'" and
// "'e" both produce é.
package digraph
