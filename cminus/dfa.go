package cminus

// StateStatus tags a DFA state with its role: the token class it accepts,
// the lexical error it traps, or a structural role (start, comment
// interior).
type StateStatus int

const (
	// StatusStart - the initial state.
	StatusStart StateStatus = iota
	// StatusTrap - the generic dead state; stepping into it ends the
	// current match.
	StatusTrap
	// StatusNum - accepting state for number tokens.
	StatusNum
	// StatusID - accepting state for identifier tokens.
	StatusID
	// StatusSymbol - accepting state for symbol tokens.
	StatusSymbol
	// StatusWhite - accepting state for a whitespace byte.
	StatusWhite
	// StatusCommentOpen - inside /* ... before the closing */. Not
	// accepting; reaching end of input here is an unclosed-comment error.
	StatusCommentOpen
	// StatusCommentClosed - accepting state for a complete comment; the
	// token is discarded by the scanner.
	StatusCommentClosed
	// StatusInvalidNumber - trap: a letter directly after a digit run.
	StatusInvalidNumber
	// StatusInvalidInput - trap: a byte outside the language alphabet.
	StatusInvalidInput
	// StatusUnmatchedComment - trap: */ with no comment open.
	StatusUnmatchedComment
)

// errorStatus reports whether the status classifies a lexical error. The
// unclosed-comment case is represented by StatusCommentOpen at end of input
// rather than by a trap state.
func (s StateStatus) errorStatus() bool {
	switch s {
	case StatusInvalidNumber, StatusInvalidInput, StatusUnmatchedComment:
		return true
	}
	return false
}

// tokenClass maps an accepting status to the class of the token it accepts.
func (s StateStatus) tokenClass() TokenClass {
	switch s {
	case StatusNum:
		return ClassNum
	case StatusID:
		return ClassID
	case StatusSymbol:
		return ClassSymbol
	case StatusWhite:
		return ClassWhitespace
	case StatusCommentClosed:
		return ClassComment
	default:
		return ClassEOF
	}
}

const alphabetSize = 256

// DFAState describes one state of the automaton.
type DFAState struct {
	Accept bool
	Trap   bool
	Status StateStatus
}

// DFA is the lexical transition table: a total function state x byte ->
// state over the full 8-bit alphabet. Unspecified edges fall through to the
// generic trap. The table is immutable once built; the scanner tracks its
// own current state.
//
// Build a DFA through NewLexicalDFA; the zero value is unusable.
type DFA struct {
	states     []DFAState
	transition [][alphabetSize]int
	start      int
	trap       int
}

func newDFA() *DFA {
	d := &DFA{}
	d.start = d.addState(DFAState{Status: StatusStart})
	d.trap = d.addState(DFAState{Trap: true, Status: StatusTrap})
	return d
}

func (d *DFA) addState(s DFAState) int {
	id := len(d.states)
	d.states = append(d.states, s)
	var row [alphabetSize]int
	for i := range row {
		row[i] = d.trap
	}
	d.transition = append(d.transition, row)
	return id
}

func (d *DFA) addEdge(from, to int, bytes []byte) {
	for _, b := range bytes {
		d.transition[from][b] = to
	}
}

// Start returns the initial state id.
func (d *DFA) Start() int {
	return d.start
}

// Next returns the state reached from state on input byte b.
func (d *DFA) Next(state int, b byte) int {
	return d.transition[state][b]
}

// State returns the descriptor of a state id.
func (d *DFA) State(id int) DFAState {
	return d.states[id]
}
