package vi

// Operator acts on the text range produced by a motion or text object.
type Operator struct {
	// Name is the operator identifier.
	Name string

	// Key is the key that triggers the operator.
	Key rune

	// Action is the action name dispatched with a motion range.
	Action string

	// LinewiseAction is the action for the doubled form (dd, yy, cc).
	LinewiseAction string

	// ChangesText indicates the operator modifies the buffer.
	ChangesText bool

	// EntersInsert indicates the editor enters insert mode after.
	EntersInsert bool
}

// Standard operators.
var (
	// OpDelete removes text into the clipboard.
	OpDelete = Operator{
		Name:           "delete",
		Key:            'd',
		Action:         "edit.delete",
		LinewiseAction: "edit.deleteLine",
		ChangesText:    true,
	}

	// OpChange removes text and enters insert mode.
	OpChange = Operator{
		Name:           "change",
		Key:            'c',
		Action:         "edit.change",
		LinewiseAction: "edit.changeLine",
		ChangesText:    true,
		EntersInsert:   true,
	}

	// OpYank copies text into the clipboard.
	OpYank = Operator{
		Name:           "yank",
		Key:            'y',
		Action:         "edit.yank",
		LinewiseAction: "edit.yankLine",
	}

	// OpToLower lowercases text (gu).
	OpToLower = Operator{
		Name:           "toLower",
		Key:            'u',
		Action:         "edit.toLower",
		LinewiseAction: "edit.lineToLower",
		ChangesText:    true,
	}

	// OpToUpper uppercases text (gU).
	OpToUpper = Operator{
		Name:           "toUpper",
		Key:            'U',
		Action:         "edit.toUpper",
		LinewiseAction: "edit.lineToUpper",
		ChangesText:    true,
	}

	// OpToggleCase swaps case (g~).
	OpToggleCase = Operator{
		Name:           "toggleCase",
		Key:            '~',
		Action:         "edit.toggleCase",
		LinewiseAction: "edit.lineToggleCase",
		ChangesText:    true,
	}
)

var operators = map[rune]*Operator{
	'd': &OpDelete,
	'c': &OpChange,
	'y': &OpYank,
}

// gu, gU and g~ are reached through the g prefix.
var gOperators = map[rune]*Operator{
	'u': &OpToLower,
	'U': &OpToUpper,
	'~': &OpToggleCase,
}

// GetOperator returns the operator for key, nil when key is not one.
func GetOperator(key rune) *Operator {
	return operators[key]
}

// GetGOperator returns the g-prefixed operator for key.
func GetGOperator(key rune) *Operator {
	return gOperators[key]
}

// IsOperator returns true if key starts an operator.
func IsOperator(key rune) bool {
	_, ok := operators[key]
	return ok
}
