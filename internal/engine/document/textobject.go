package document

// BalancedRange finds the innermost pair of open/close delimiters
// enclosing the cursor and returns the half-open range it addresses:
// the contents for inner, contents plus delimiters for around. Returns
// ok=false when no enclosing pair exists (the operator is cancelled).
func (d Document) BalancedRange(open, close rune, around bool) (int, int, bool) {
	if open == close {
		return d.quoteRange(open, around)
	}

	openIdx := -1
	if d.cursor < len(d.text) && d.text[d.cursor] == open {
		openIdx = d.cursor
	} else {
		depth := 0
		for i := d.cursor - 1; i >= 0; i-- {
			switch d.text[i] {
			case close:
				depth++
			case open:
				if depth == 0 {
					openIdx = i
				} else {
					depth--
				}
			}
			if openIdx >= 0 {
				break
			}
		}
	}
	if openIdx < 0 {
		return 0, 0, false
	}

	closeIdx := -1
	depth := 0
	for i := openIdx + 1; i < len(d.text); i++ {
		switch d.text[i] {
		case open:
			depth++
		case close:
			if depth == 0 {
				closeIdx = i
			} else {
				depth--
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return 0, 0, false
	}

	if around {
		return openIdx, closeIdx + 1, true
	}
	return openIdx + 1, closeIdx, true
}

// quoteRange finds the quote pair surrounding the cursor. Quotes do not
// nest, so the nearest quote on each side is taken.
func (d Document) quoteRange(q rune, around bool) (int, int, bool) {
	left := -1
	for i := d.cursor - 1; i >= 0; i-- {
		if d.text[i] == q {
			left = i
			break
		}
	}
	if left == -1 && d.cursor < len(d.text) && d.text[d.cursor] == q {
		left = d.cursor
	}
	if left == -1 {
		return 0, 0, false
	}

	right := -1
	for i := left + 1; i < len(d.text); i++ {
		if d.text[i] == q {
			right = i
			break
		}
	}
	if right == -1 {
		return 0, 0, false
	}

	if around {
		return left, right + 1, true
	}
	return left + 1, right, true
}

// WordRange addresses the word under the cursor (vi iw/aw). The around
// form extends over trailing blanks, or leading blanks when the word
// ends the line. A cursor on blanks addresses the blank run itself.
func (d Document) WordRange(big, around bool) (int, int, bool) {
	if len(d.text) == 0 {
		return 0, 0, false
	}

	pos := d.cursor
	if pos >= len(d.text) {
		pos = len(d.text) - 1
	}

	start, end := pos, pos+1
	if isBlank(d.text[pos]) {
		for start > 0 && isBlank(d.text[start-1]) {
			start--
		}
		for end < len(d.text) && isBlank(d.text[end]) {
			end++
		}
		return start, end, true
	}

	ref := d.text[pos]
	for start > 0 && !isBlank(d.text[start-1]) && sameClass(ref, d.text[start-1], big) {
		start--
	}
	for end < len(d.text) && !isBlank(d.text[end]) && sameClass(ref, d.text[end], big) {
		end++
	}

	if around {
		extEnd := end
		for extEnd < len(d.text) && (d.text[extEnd] == ' ' || d.text[extEnd] == '\t') {
			extEnd++
		}
		if extEnd > end {
			end = extEnd
		} else {
			for start > 0 && (d.text[start-1] == ' ' || d.text[start-1] == '\t') {
				start--
			}
		}
	}
	return start, end, true
}
