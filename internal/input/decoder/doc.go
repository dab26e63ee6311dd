// Package decoder converts a raw terminal byte stream into key events.
//
// The decoder is incremental and never blocks: Feed returns every event
// that can be resolved from the bytes seen so far and buffers the rest.
// Escape sequences are matched against a prefix table (see Table); when
// the buffered bytes are a strict prefix of a known sequence the decoder
// reports Pending and the driving loop decides how long to wait before
// calling Resolve, which takes the shortest interpretation (a bare
// Escape) and re-decodes the remaining bytes.
//
// Bracketed paste (CSI 200~ / 201~) switches the decoder into a raw
// capture state: bytes are accumulated verbatim until the end marker and
// emitted as a single KeyPaste event. An escape inside the capture that
// does not begin the end marker cancels the paste, emitting what was
// captured so far.
//
// Unrecognized escape sequences degrade byte-by-byte into literal and
// control events so garbled input can never wedge the decoder.
package decoder
