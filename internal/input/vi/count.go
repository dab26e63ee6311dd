package vi

import "math"

// CountState accumulates a count prefix during parsing.
type CountState struct {
	// Value is the accumulated count.
	Value int

	// Active indicates a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count. Returns false for
// non-digits and for a leading '0', which is a motion, not a count.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}

	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}

	c.Active = true

	// Guard against overflow; cap rather than wrap.
	if c.Value > (math.MaxInt-digit)/10 {
		c.Value = math.MaxInt / 10
		return true
	}

	c.Value = c.Value*10 + digit
	return true
}

// Get returns the effective count (1 if none specified).
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// IsCountStart returns true if r could begin a count. '0' cannot, it
// moves to line start.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// IsCountDigit returns true if r can continue a count.
func IsCountDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// CombineCounts multiplies pre- and post-operator counts, so "2d3w"
// deletes six words. Overflow caps rather than wraps.
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 {
		count1 = 1
	}
	if count2 <= 0 {
		count2 = 1
	}
	if count1 > math.MaxInt/count2 {
		return math.MaxInt / 10
	}
	return count1 * count2
}
