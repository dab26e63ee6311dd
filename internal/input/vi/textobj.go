package vi

// TextObjectPrefix selects the inner or around form of a text object.
type TextObjectPrefix uint8

const (
	// PrefixNone means no text object prefix is pending.
	PrefixNone TextObjectPrefix = iota

	// PrefixInner selects the contents only (iw, i().
	PrefixInner

	// PrefixAround includes delimiters or trailing blanks (aw, a().
	PrefixAround
)

// String returns the prefix name.
func (p TextObjectPrefix) String() string {
	switch p {
	case PrefixInner:
		return "inner"
	case PrefixAround:
		return "around"
	default:
		return "none"
	}
}

// TextObject selects a structural region instead of a motion range.
type TextObject struct {
	// Name is the text object identifier.
	Name string

	// Key identifies the object after the i/a prefix.
	Key rune

	// Open and Close are the delimiter pair for bracket and quote
	// objects; zero for word objects.
	Open  rune
	Close rune

	// BigWord marks the whitespace-delimited word object (W).
	BigWord bool
}

// Standard text objects.
var (
	TextObjWord    = TextObject{Name: "word", Key: 'w'}
	TextObjBigWord = TextObject{Name: "bigWord", Key: 'W', BigWord: true}

	TextObjParen   = TextObject{Name: "paren", Key: '(', Open: '(', Close: ')'}
	TextObjBracket = TextObject{Name: "bracket", Key: '[', Open: '[', Close: ']'}
	TextObjBrace   = TextObject{Name: "brace", Key: '{', Open: '{', Close: '}'}
	TextObjAngle   = TextObject{Name: "angle", Key: '<', Open: '<', Close: '>'}

	TextObjDoubleQuote = TextObject{Name: "doubleQuote", Key: '"', Open: '"', Close: '"'}
	TextObjSingleQuote = TextObject{Name: "singleQuote", Key: '\'', Open: '\'', Close: '\''}
	TextObjBacktick    = TextObject{Name: "backtick", Key: '`', Open: '`', Close: '`'}
)

var textObjects = map[rune]*TextObject{
	'w': &TextObjWord,
	'W': &TextObjBigWord,

	'(': &TextObjParen,
	')': &TextObjParen,
	'b': &TextObjParen,
	'[': &TextObjBracket,
	']': &TextObjBracket,
	'{': &TextObjBrace,
	'}': &TextObjBrace,
	'B': &TextObjBrace,
	'<': &TextObjAngle,
	'>': &TextObjAngle,

	'"':  &TextObjDoubleQuote,
	'\'': &TextObjSingleQuote,
	'`':  &TextObjBacktick,
}

// GetTextObject returns the text object for key, nil when key is not
// one. Both delimiters of a pair and the b/B aliases resolve to the
// same object.
func GetTextObject(key rune) *TextObject {
	return textObjects[key]
}

// IsTextObjectPrefix returns true for the i/a prefix keys.
func IsTextObjectPrefix(r rune) bool {
	return r == 'i' || r == 'a'
}

// GetTextObjectPrefix maps the prefix key to its form.
func GetTextObjectPrefix(r rune) TextObjectPrefix {
	switch r {
	case 'i':
		return PrefixInner
	case 'a':
		return PrefixAround
	default:
		return PrefixNone
	}
}
