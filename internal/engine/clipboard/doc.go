// Package clipboard provides the editor's kill ring and vi registers.
//
// A single Store backs both editing styles. Emacs kill commands and vi
// yank/delete operators write the unnamed register; vi commands may
// target a named register a-z instead, and the uppercase form A-Z
// appends to the lowercase register. Each entry carries a paste mode
// so line-wise yanks (dd, yy) put back on a fresh line.
package clipboard
