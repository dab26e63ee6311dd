package vi

// MotionType categorizes motions by the range they produce.
type MotionType uint8

const (
	// MotionCharwise addresses a run of characters.
	MotionCharwise MotionType = iota

	// MotionLinewise addresses whole lines.
	MotionLinewise
)

// Motion moves the cursor and, under an operator, defines the range
// the operator acts on.
type Motion struct {
	// Name is the motion identifier.
	Name string

	// Key is the key that triggers the motion.
	Key rune

	// Action is the action name dispatched for a bare motion.
	Action string

	// Type is charwise or linewise.
	Type MotionType

	// Inclusive motions include the rune under the target position
	// when used with an operator ('e', 'f', 't').
	Inclusive bool
}

// Standard motions.
var (
	MotionLeft = Motion{
		Name:   "left",
		Key:    'h',
		Action: "cursor.left",
	}

	MotionRight = Motion{
		Name:   "right",
		Key:    'l',
		Action: "cursor.right",
	}

	MotionUp = Motion{
		Name:   "up",
		Key:    'k',
		Action: "cursor.up",
		Type:   MotionLinewise,
	}

	MotionDown = Motion{
		Name:   "down",
		Key:    'j',
		Action: "cursor.down",
		Type:   MotionLinewise,
	}

	MotionLineStart = Motion{
		Name:   "lineStart",
		Key:    '0',
		Action: "cursor.lineStart",
	}

	// lineEnd already addresses the offset past the last rune, so it is
	// exclusive under an operator (d$ must not eat the newline).
	MotionLineEnd = Motion{
		Name:   "lineEnd",
		Key:    '$',
		Action: "cursor.lineEnd",
	}

	MotionFirstNonBlank = Motion{
		Name:   "firstNonBlank",
		Key:    '^',
		Action: "cursor.firstNonBlank",
	}

	MotionWordForward = Motion{
		Name:   "wordForward",
		Key:    'w',
		Action: "cursor.wordForward",
	}

	MotionWordBackward = Motion{
		Name:   "wordBackward",
		Key:    'b',
		Action: "cursor.wordBackward",
	}

	MotionWordEnd = Motion{
		Name:      "wordEnd",
		Key:       'e',
		Action:    "cursor.wordEnd",
		Inclusive: true,
	}

	MotionBigWordForward = Motion{
		Name:   "bigWordForward",
		Key:    'W',
		Action: "cursor.bigWordForward",
	}

	MotionBigWordBackward = Motion{
		Name:   "bigWordBackward",
		Key:    'B',
		Action: "cursor.bigWordBackward",
	}

	MotionBigWordEnd = Motion{
		Name:      "bigWordEnd",
		Key:       'E',
		Action:    "cursor.bigWordEnd",
		Inclusive: true,
	}

	MotionFindForward = Motion{
		Name:      "findForward",
		Key:       'f',
		Action:    "cursor.findForward",
		Inclusive: true,
	}

	MotionFindBackward = Motion{
		Name:   "findBackward",
		Key:    'F',
		Action: "cursor.findBackward",
	}

	MotionTillForward = Motion{
		Name:      "tillForward",
		Key:       't',
		Action:    "cursor.tillForward",
		Inclusive: true,
	}

	MotionTillBackward = Motion{
		Name:   "tillBackward",
		Key:    'T',
		Action: "cursor.tillBackward",
	}

	MotionRepeatFind = Motion{
		Name:      "repeatFind",
		Key:       ';',
		Action:    "cursor.repeatFind",
		Inclusive: true,
	}

	MotionRepeatFindReverse = Motion{
		Name:      "repeatFindReverse",
		Key:       ',',
		Action:    "cursor.repeatFindReverse",
		Inclusive: true,
	}

	// G and gg walk the history when the buffer is a single line.
	MotionLast = Motion{
		Name:   "last",
		Key:    'G',
		Action: "cursor.last",
		Type:   MotionLinewise,
	}

	MotionFirst = Motion{
		Name:   "first",
		Key:    'g',
		Action: "cursor.first",
		Type:   MotionLinewise,
	}
)

var motions = map[rune]*Motion{
	'h': &MotionLeft,
	'l': &MotionRight,
	'k': &MotionUp,
	'j': &MotionDown,
	'0': &MotionLineStart,
	'$': &MotionLineEnd,
	'^': &MotionFirstNonBlank,
	'w': &MotionWordForward,
	'b': &MotionWordBackward,
	'e': &MotionWordEnd,
	'W': &MotionBigWordForward,
	'B': &MotionBigWordBackward,
	'E': &MotionBigWordEnd,
	'f': &MotionFindForward,
	'F': &MotionFindBackward,
	't': &MotionTillForward,
	'T': &MotionTillBackward,
	';': &MotionRepeatFind,
	',': &MotionRepeatFindReverse,
	'G': &MotionLast,
}

var gMotions = map[rune]*Motion{
	'g': &MotionFirst,
}

// GetMotion returns the motion for key, nil when key is not one.
func GetMotion(key rune) *Motion {
	return motions[key]
}

// GetGMotion returns the g-prefixed motion for key (gg).
func GetGMotion(key rune) *Motion {
	return gMotions[key]
}

// IsCharSearchMotion returns true for f/F/t/T, which need a character
// argument before they resolve.
func IsCharSearchMotion(r rune) bool {
	return r == 'f' || r == 'F' || r == 't' || r == 'T'
}
