// Package vi parses vi normal-mode key sequences into commands.
//
// The grammar covers what a line editor needs:
//
//	[count][register][operator][count][motion|text-object]
//	[count][register][operator][operator]  (line-wise: dd, yy, cc)
//	[count][motion]
//	[count][simple-command]
//
// Examples:
//   - `3w`: count=3, motion=w (three words forward)
//   - `d2w`: operator=d, count=2, motion=w (delete two words)
//   - `"ayw`: register=a, operator=y, motion=w (yank word to a)
//   - `di(`: operator=d, text object=( inner (delete inside parens)
//   - `2fx`: count=2, motion=f, char=x (to the second x)
//   - `gUe`: operator=gU, motion=e (uppercase to word end)
//
// The parser is a state machine fed one key event at a time. It
// returns StatusPending while a sequence is open, StatusComplete with
// a Command when one resolves, StatusInvalid when the sequence cannot
// resolve (state is discarded), and StatusPassthrough for keys the
// grammar does not claim, which the dispatcher's keymap handles.
package vi
