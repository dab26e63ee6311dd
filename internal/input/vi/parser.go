package vi

import (
	"github.com/dshills/keyline/internal/input/key"
)

// ParseStatus indicates the result of parsing a key event.
type ParseStatus uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the sequence cannot resolve.
	StatusInvalid

	// StatusPassthrough indicates the key is not part of the grammar.
	StatusPassthrough
)

// String returns the status name.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// ParseState is the parser's position in the command grammar.
type ParseState uint8

const (
	// StateInitial is waiting for count, register, operator, or motion.
	StateInitial ParseState = iota

	// StateCount is accumulating a count prefix.
	StateCount

	// StateRegister is waiting for a register name after ".
	StateRegister

	// StateOperator has an operator, waiting for motion or text object.
	StateOperator

	// StateOperatorCount is accumulating a count after the operator.
	StateOperatorCount

	// StateGPrefix has received 'g', waiting for the second key.
	StateGPrefix

	// StateTextObjectPrefix has received 'i' or 'a' under an operator.
	StateTextObjectPrefix

	// StateCharSearch has received f/F/t/T, waiting for the target.
	StateCharSearch
)

// String returns the state name.
func (s ParseState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateOperator:
		return "operator"
	case StateOperatorCount:
		return "operatorCount"
	case StateGPrefix:
		return "gPrefix"
	case StateTextObjectPrefix:
		return "textObjectPrefix"
	case StateCharSearch:
		return "charSearch"
	default:
		return "unknown"
	}
}

// Command is a fully parsed normal-mode command.
type Command struct {
	// Count is the combined repeat count (0 means none given).
	Count int

	// Register is the target register (0 means default).
	Register rune

	// Operator is the pending operator, if any.
	Operator *Operator

	// Motion is the motion, if any.
	Motion *Motion

	// TextObject is the text object, if any.
	TextObject *TextObject

	// TextObjectPrefix is inner or around when TextObject is set.
	TextObjectPrefix TextObjectPrefix

	// CharArg is the character argument for f/F/t/T.
	CharArg rune

	// Linewise marks the doubled-operator form (dd, yy, cc).
	Linewise bool

	// Action is the action name to dispatch.
	Action string
}

// GetCount returns the effective count (1 if none given).
func (c *Command) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// ParseResult is the outcome of feeding one key event.
type ParseResult struct {
	// Status indicates how the key was consumed.
	Status ParseStatus

	// Command is set when Status is StatusComplete.
	Command *Command

	// PendingDisplay shows the open sequence, for a status area.
	PendingDisplay string
}

// Parser is the normal-mode command state machine.
type Parser struct {
	state ParseState

	count1        CountState // pre-operator count
	count2        CountState // post-operator count
	register      rune
	operator      *Operator
	textObjPrefix TextObjectPrefix
	charSearch    rune

	pendingKeys []rune
}

// NewParser creates a parser in the initial state.
func NewParser() *Parser {
	return &Parser{pendingKeys: make([]rune, 0, 8)}
}

// Reset discards any open sequence.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.count1.Reset()
	p.count2.Reset()
	p.register = 0
	p.operator = nil
	p.textObjPrefix = PrefixNone
	p.charSearch = 0
	p.pendingKeys = p.pendingKeys[:0]
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// Pending reports whether a sequence is open.
func (p *Parser) Pending() bool {
	return p.state != StateInitial || p.count1.Active
}

// PendingKeys returns the open sequence for display.
func (p *Parser) PendingKeys() string {
	return string(p.pendingKeys)
}

// Parse consumes one key event.
func (p *Parser) Parse(event key.Event) ParseResult {
	if event.Key == key.KeyEscape {
		p.Reset()
		return ParseResult{Status: StatusPassthrough}
	}

	// The grammar is built from plain runes; special and modified keys
	// belong to the keymap.
	if !event.IsPlainRune() {
		return ParseResult{Status: StatusPassthrough}
	}

	r := event.Rune
	p.pendingKeys = append(p.pendingKeys, r)

	switch p.state {
	case StateInitial:
		return p.parseInitial(r)
	case StateCount:
		return p.parseCount(r)
	case StateRegister:
		return p.parseRegister(r)
	case StateOperator:
		return p.parseOperator(r)
	case StateOperatorCount:
		return p.parseOperatorCount(r)
	case StateGPrefix:
		return p.parseGPrefix(r)
	case StateTextObjectPrefix:
		return p.parseTextObjectPrefix(r)
	case StateCharSearch:
		return p.parseCharSearch(r)
	default:
		p.Reset()
		return ParseResult{Status: StatusInvalid}
	}
}

func (p *Parser) pending() ParseResult {
	return ParseResult{Status: StatusPending, PendingDisplay: p.PendingKeys()}
}

func (p *Parser) invalid() ParseResult {
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

func (p *Parser) parseInitial(r rune) ParseResult {
	if IsCountStart(r) {
		p.state = StateCount
		p.count1.AccumulateDigit(r)
		return p.pending()
	}

	if r == '"' {
		p.state = StateRegister
		return p.pending()
	}

	if r == 'g' {
		p.state = StateGPrefix
		return p.pending()
	}

	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	// f/F/t/T need their target before they resolve.
	if IsCharSearchMotion(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		return p.completeMotion(m)
	}

	// Not part of the grammar; the keymap gets it.
	p.Reset()
	return ParseResult{Status: StatusPassthrough}
}

func (p *Parser) parseCount(r rune) ParseResult {
	if IsCountDigit(r) {
		p.count1.AccumulateDigit(r)
		return p.pending()
	}

	if r == '"' {
		p.state = StateRegister
		return p.pending()
	}

	if r == 'g' {
		p.state = StateGPrefix
		return p.pending()
	}

	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	if IsCharSearchMotion(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		return p.completeMotion(m)
	}

	// A counted key outside the grammar still reaches the keymap;
	// the dispatcher applies the count (3x deletes three runes).
	count := p.count1.Get()
	p.Reset()
	return ParseResult{Status: StatusPassthrough, Command: &Command{Count: count}}
}

func (p *Parser) parseRegister(r rune) ParseResult {
	if !isValidRegister(r) {
		return p.invalid()
	}

	p.register = r
	p.state = StateInitial
	return p.pending()
}

func (p *Parser) parseOperator(r rune) ParseResult {
	if IsCountStart(r) {
		p.state = StateOperatorCount
		p.count2.AccumulateDigit(r)
		return p.pending()
	}

	// Doubled operator is line-wise (dd, yy, cc).
	if p.operator.Key == r {
		return p.completeLinewise()
	}

	if r == 'g' {
		p.state = StateGPrefix
		return p.pending()
	}

	if IsTextObjectPrefix(r) {
		p.textObjPrefix = GetTextObjectPrefix(r)
		p.state = StateTextObjectPrefix
		return p.pending()
	}

	if IsCharSearchMotion(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		return p.completeOperatorMotion(m)
	}

	return p.invalid()
}

func (p *Parser) parseOperatorCount(r rune) ParseResult {
	if IsCountDigit(r) {
		p.count2.AccumulateDigit(r)
		return p.pending()
	}

	if r == 'g' {
		p.state = StateGPrefix
		return p.pending()
	}

	if IsTextObjectPrefix(r) {
		p.textObjPrefix = GetTextObjectPrefix(r)
		p.state = StateTextObjectPrefix
		return p.pending()
	}

	if IsCharSearchMotion(r) {
		p.charSearch = r
		p.state = StateCharSearch
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		return p.completeOperatorMotion(m)
	}

	return p.invalid()
}

func (p *Parser) parseGPrefix(r rune) ParseResult {
	if m := GetGMotion(r); m != nil {
		if p.operator != nil {
			return p.completeOperatorMotion(m)
		}
		return p.completeMotion(m)
	}

	if op := GetGOperator(r); op != nil {
		if p.operator != nil {
			return p.invalid()
		}
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	return p.invalid()
}

func (p *Parser) parseTextObjectPrefix(r rune) ParseResult {
	obj := GetTextObject(r)
	if obj == nil {
		return p.invalid()
	}

	cmd := p.buildBaseCommand()
	cmd.Operator = p.operator
	cmd.TextObject = obj
	cmd.TextObjectPrefix = p.textObjPrefix
	cmd.Action = p.operator.Action

	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) parseCharSearch(r rune) ParseResult {
	motion := GetMotion(p.charSearch)
	if motion == nil {
		return p.invalid()
	}

	cmd := p.buildBaseCommand()
	cmd.Motion = motion
	cmd.CharArg = r

	if p.operator != nil {
		cmd.Operator = p.operator
		cmd.Action = p.operator.Action
	} else {
		cmd.Action = motion.Action
	}

	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeMotion(m *Motion) ParseResult {
	cmd := p.buildBaseCommand()
	cmd.Motion = m
	cmd.Action = m.Action

	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeOperatorMotion(m *Motion) ParseResult {
	cmd := p.buildBaseCommand()
	cmd.Operator = p.operator
	cmd.Motion = m
	cmd.Action = p.operator.Action

	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeLinewise() ParseResult {
	cmd := p.buildBaseCommand()
	cmd.Operator = p.operator
	cmd.Linewise = true
	cmd.Action = p.operator.LinewiseAction

	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) buildBaseCommand() *Command {
	cmd := &Command{Register: p.register}

	cmd.Count = CombineCounts(p.count1.Get(), p.count2.Get())
	if cmd.Count == 1 && !p.count1.Active && !p.count2.Active {
		cmd.Count = 0 // no explicit count
	}

	return cmd
}

// isValidRegister accepts the registers the clipboard stores: the
// unnamed register and a-z / A-Z.
func isValidRegister(r rune) bool {
	return r == '"' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
