package cminus

// Byte-set helpers for wiring the transition table.

func allBytes() []byte {
	out := make([]byte, alphabetSize)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

func digitBytes() []byte {
	out := make([]byte, 0, 10)
	for b := byte('0'); b <= '9'; b++ {
		out = append(out, b)
	}
	return out
}

func letterBytes() []byte {
	out := make([]byte, 0, 52)
	for b := byte('A'); b <= 'Z'; b++ {
		out = append(out, b)
	}
	for b := byte('a'); b <= 'z'; b++ {
		out = append(out, b)
	}
	return out
}

func illegalBytes() []byte {
	var out []byte
	for _, b := range allBytes() {
		if isIllegalByte(b) {
			out = append(out, b)
		}
	}
	return out
}

func except(set []byte, drop ...byte) []byte {
	dropped := make(map[byte]bool, len(drop))
	for _, b := range drop {
		dropped[b] = true
	}
	var out []byte
	for _, b := range set {
		if !dropped[b] {
			out = append(out, b)
		}
	}
	return out
}

func concat(sets ...[]byte) []byte {
	var out []byte
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// NewLexicalDFA builds the automaton for the C-minus lexicon: digit runs,
// identifiers, single-byte symbols, the two-byte == symbol, /* ... */
// comments, whitespace, and the classified error traps. Longest-match
// behavior comes from the scanner stepping until the next byte would land
// in a trap.
func NewLexicalDFA() *DFA {
	d := newDFA()

	digits := digitBytes()
	letters := letterBytes()
	illegal := illegalBytes()
	sigma := allBytes()

	invalidNumber := d.addState(DFAState{Trap: true, Status: StatusInvalidNumber})
	invalidInput := d.addState(DFAState{Trap: true, Status: StatusInvalidInput})

	// Numbers. A letter directly after the digit run is a classified
	// error, not a token boundary.
	num := d.addState(DFAState{Accept: true, Status: StatusNum})
	d.addEdge(d.start, num, digits)
	d.addEdge(num, num, digits)
	d.addEdge(num, d.trap, concat(whitespaceBytes, symbolBytes))
	d.addEdge(num, invalidNumber, letters)
	d.addEdge(num, invalidInput, illegal)

	// Single-byte symbols. * / = need their own states below.
	for _, sym := range except(symbolBytes, '*', '/', '=') {
		st := d.addState(DFAState{Accept: true, Status: StatusSymbol})
		d.addEdge(d.start, st, []byte{sym})
		d.addEdge(st, d.trap, sigma)
	}

	// * is a symbol unless followed by /, which is an unmatched close.
	star := d.addState(DFAState{Accept: true, Status: StatusSymbol})
	d.addEdge(d.start, star, []byte{'*'})
	d.addEdge(star, d.trap, concat(whitespaceBytes, letters, digits, except(symbolBytes, '/')))
	d.addEdge(star, invalidInput, illegal)
	unmatched := d.addState(DFAState{Trap: true, Status: StatusUnmatchedComment})
	d.addEdge(star, unmatched, []byte{'/'})

	// = and ==.
	eq := d.addState(DFAState{Accept: true, Status: StatusSymbol})
	eqeq := d.addState(DFAState{Accept: true, Status: StatusSymbol})
	d.addEdge(d.start, eq, []byte{'='})
	d.addEdge(eq, d.trap, except(except(sigma, illegal...), '='))
	d.addEdge(eq, eqeq, []byte{'='})
	d.addEdge(eq, invalidInput, illegal)
	d.addEdge(eqeq, d.trap, sigma)

	// / is a symbol unless followed by *, which opens a comment.
	div := d.addState(DFAState{Accept: true, Status: StatusSymbol})
	d.addEdge(d.start, div, []byte{'/'})
	d.addEdge(div, d.trap, concat(whitespaceBytes, letters, digits, except(symbolBytes, '*')))
	d.addEdge(div, invalidInput, illegal)

	// Comment interior. End of input inside either open state is the
	// unclosed-comment error.
	inner := d.addState(DFAState{Status: StatusCommentOpen})
	starSeen := d.addState(DFAState{Status: StatusCommentOpen})
	closed := d.addState(DFAState{Accept: true, Status: StatusCommentClosed})
	d.addEdge(div, inner, []byte{'*'})
	d.addEdge(inner, inner, except(sigma, '*'))
	d.addEdge(inner, starSeen, []byte{'*'})
	d.addEdge(starSeen, inner, except(sigma, '/', '*'))
	d.addEdge(starSeen, starSeen, []byte{'*'})
	d.addEdge(starSeen, closed, []byte{'/'})
	d.addEdge(closed, d.trap, sigma)

	// Whitespace, one accept state per byte so each emits on its own.
	for _, ws := range whitespaceBytes {
		st := d.addState(DFAState{Accept: true, Status: StatusWhite})
		d.addEdge(d.start, st, []byte{ws})
		d.addEdge(st, d.trap, sigma)
	}

	// Identifiers.
	id := d.addState(DFAState{Accept: true, Status: StatusID})
	d.addEdge(d.start, id, letters)
	d.addEdge(id, id, concat(letters, digits))
	d.addEdge(id, d.trap, concat(whitespaceBytes, symbolBytes))
	d.addEdge(id, invalidInput, illegal)

	// Anything outside the alphabet straight from start.
	d.addEdge(d.start, invalidInput, illegal)

	return d
}
