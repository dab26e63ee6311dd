package decoder

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/dshills/keyline/internal/input/key"
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithTable replaces the default escape sequence table.
func WithTable(t *Table) Option {
	return func(d *Decoder) { d.table = t }
}

// WithEncoding converts input bytes from the given character set to
// UTF-8 before decoding. Intended for single-byte legacy charmaps
// (golang.org/x/text/encoding/charmap); multi-byte encodings must not be
// split across Feed calls.
func WithEncoding(enc encoding.Encoding) Option {
	return func(d *Decoder) { d.charset = enc.NewDecoder() }
}

// Decoder turns raw terminal bytes into key events. It is not safe for
// concurrent use; the session drives it from a single goroutine.
type Decoder struct {
	table   *Table
	charset *encoding.Decoder

	// buf holds bytes that could not be resolved yet.
	buf []byte

	// pasting is true between the bracketed paste markers.
	pasting bool
	paste   []byte
}

// New creates a decoder with the default sequence table.
func New(opts ...Option) *Decoder {
	d := &Decoder{table: DefaultTable()}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Feed consumes a chunk of input and returns every event that is fully
// resolved. Ambiguous escape prefixes and partial UTF-8 runes remain
// buffered for the next Feed or Resolve.
func (d *Decoder) Feed(p []byte) []key.Event {
	if d.charset != nil && len(p) > 0 {
		if conv, err := d.charset.Bytes(p); err == nil {
			p = conv
		}
	}
	d.buf = append(d.buf, p...)
	return d.drain(false)
}

// Pending reports whether the decoder is holding an ambiguous escape
// prefix. The driving loop should arm its escape timeout when this is
// true and call Resolve when the timeout fires.
func (d *Decoder) Pending() bool {
	return len(d.buf) > 0 && d.buf[0] == 0x1b
}

// Resolve forces the shortest interpretation of any buffered ambiguity:
// a bare Escape event, the remaining bytes re-decoded literally, and a
// paste capture terminated early.
func (d *Decoder) Resolve() []key.Event {
	return d.drain(true)
}

// Reset discards all buffered state.
func (d *Decoder) Reset() {
	d.buf = nil
	d.paste = nil
	d.pasting = false
}

// drain decodes as many events as the buffer allows. In resolve mode
// prefixes that would normally wait for more bytes are taken literally.
func (d *Decoder) drain(resolve bool) []key.Event {
	var evs []key.Event
	for len(d.buf) > 0 {
		var progress bool
		if d.pasting {
			progress = d.stepPaste(&evs, resolve)
		} else {
			progress = d.step(&evs, resolve)
		}
		if !progress {
			break
		}
	}
	return evs
}

// step decodes one event from the front of the buffer.
// Returns false if more input is required.
func (d *Decoder) step(evs *[]key.Event, resolve bool) bool {
	b := d.buf[0]

	if b == 0x1b {
		return d.stepEscape(evs, resolve)
	}

	if b < 0x20 || b == 0x7f {
		*evs = append(*evs, controlEvent(b))
		d.buf = d.buf[1:]
		return true
	}

	r, size, ok := decodeRune(d.buf, resolve)
	if !ok {
		return false
	}
	*evs = append(*evs, key.NewRuneEvent(r, key.ModNone))
	d.buf = d.buf[size:]
	return true
}

// stepEscape handles a buffer starting with the escape byte.
func (d *Decoder) stepEscape(evs *[]key.Event, resolve bool) bool {
	res := d.table.walk(d.buf)

	if res.partial && !resolve {
		// Strict prefix of at least one known sequence: wait for more
		// bytes (the session owns the timeout).
		return false
	}

	if res.entry != nil {
		if res.entry.pasteStart {
			d.pasting = true
		} else {
			*evs = append(*evs, res.entry.event)
		}
		d.buf = d.buf[res.matchLen:]
		return true
	}

	if len(d.buf) == 1 {
		// Bare escape, only reachable in resolve mode.
		*evs = append(*evs, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
		d.buf = d.buf[1:]
		return true
	}

	next := d.buf[1]

	// A failed CSI/SS3 walk means an unknown terminal sequence: degrade
	// to a literal Escape and re-decode the rest byte by byte.
	if next == '[' || next == 'O' || res.partial {
		*evs = append(*evs, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
		d.buf = d.buf[1:]
		return true
	}

	if next == 0x1b {
		*evs = append(*evs, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
		d.buf = d.buf[1:]
		return true
	}

	// ESC + key is the Meta encoding.
	if next < 0x20 || next == 0x7f {
		ev := controlEvent(next)
		ev.Modifiers = ev.Modifiers.With(key.ModAlt)
		*evs = append(*evs, ev)
		d.buf = d.buf[2:]
		return true
	}

	r, size, ok := decodeRune(d.buf[1:], resolve)
	if !ok {
		if !resolve {
			return false
		}
		*evs = append(*evs, key.NewSpecialEvent(key.KeyEscape, key.ModNone))
		d.buf = d.buf[1:]
		return true
	}
	*evs = append(*evs, key.NewRuneEvent(r, key.ModAlt))
	d.buf = d.buf[1+size:]
	return true
}

// stepPaste accumulates verbatim bytes until the end marker. An escape
// that does not begin the end marker cancels the paste.
func (d *Decoder) stepPaste(evs *[]key.Event, resolve bool) bool {
	i := bytes.IndexByte(d.buf, 0x1b)
	if i == -1 {
		d.paste = append(d.paste, d.buf...)
		d.buf = d.buf[:0]
		return false
	}
	if i > 0 {
		d.paste = append(d.paste, d.buf[:i]...)
		d.buf = d.buf[i:]
	}

	n := len(d.buf)
	if n > len(pasteEndSeq) {
		n = len(pasteEndSeq)
	}
	if string(d.buf[:n]) == pasteEndSeq[:n] {
		if n == len(pasteEndSeq) {
			d.emitPaste(evs)
			d.buf = d.buf[n:]
			return true
		}
		if !resolve {
			// Partial end marker; wait.
			return false
		}
	}

	// Escape inside the capture: terminate the paste early with what
	// was captured, then re-decode from the byte after the escape.
	d.emitPaste(evs)
	d.buf = d.buf[1:]
	return true
}

func (d *Decoder) emitPaste(evs *[]key.Event) {
	*evs = append(*evs, key.NewPasteEvent(string(d.paste)))
	d.paste = nil
	d.pasting = false
}

// decodeRune decodes one UTF-8 rune from the front of buf. Returns
// ok=false when the buffer ends mid-rune and resolve is false. Invalid
// bytes are taken literally so input can never wedge.
func decodeRune(buf []byte, resolve bool) (rune, int, bool) {
	if !utf8.FullRune(buf) && !resolve {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return rune(buf[0]), 1, true
	}
	return r, size, true
}

// controlEvent maps a C0 control byte (or DEL) to its key event.
func controlEvent(b byte) key.Event {
	switch b {
	case 0x00:
		return key.NewRuneEvent(' ', key.ModCtrl)
	case 0x7f:
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	case 0x09:
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	case 0x0a, 0x0d:
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	case 0x1c:
		return key.NewRuneEvent('\\', key.ModCtrl)
	case 0x1d:
		return key.NewRuneEvent(']', key.ModCtrl)
	case 0x1e:
		return key.NewRuneEvent('^', key.ModCtrl)
	case 0x1f:
		return key.NewRuneEvent('_', key.ModCtrl)
	default:
		return key.NewRuneEvent(rune('a'+b-1), key.ModCtrl)
	}
}
