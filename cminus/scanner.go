package cminus

import "github.com/cminusc/compiler/internal/chario"

// Scanner drives the lexical DFA over the character source and produces the
// parser-visible token stream. Whitespace and comments are consumed and
// discarded here; identifiers and keywords are inserted into the symbol
// table as a side effect, and lexical errors are classified into the log.
//
// Create a Scanner through NewScanner.
type Scanner struct {
	src    *chario.Reader
	dfa    *DFA
	errs   *LexicalErrorLog
	tokens *TokenLog
	table  *SymbolTable
}

// NewScanner wires the scanner to its collaborators. All of them are
// required.
func NewScanner(src *chario.Reader, dfa *DFA, errs *LexicalErrorLog, tokens *TokenLog, table *SymbolTable) *Scanner {
	return &Scanner{src: src, dfa: dfa, errs: errs, tokens: tokens, table: table}
}

// Line returns the source line of the next unread byte.
func (s *Scanner) Line() int {
	return s.src.Line()
}

// NextToken returns the next parser-visible token, or the end-of-input
// token once the source is exhausted. Lexical errors are logged and
// scanning resumes past them; the parser is never informed.
func (s *Scanner) NextToken() Token {
	for {
		tok, done := s.scanOne()
		if done {
			return tok
		}
	}
}

// scanOne runs the DFA through a single match attempt. It reports done =
// false when the attempt ended in a discarded token (whitespace, comment)
// or a recovered lexical error, in which case scanning restarts.
func (s *Scanner) scanOne() (Token, bool) {
	if !s.src.HasNext() {
		return Token{Class: ClassEOF, Lexeme: "$", Line: s.src.Line()}, true
	}

	state := s.dfa.Start()
	lexeme := make([]byte, 0, 8)
	first, _ := s.src.Peek()
	startLine := first.Line

	for {
		if !s.src.HasNext() {
			return s.finishAtEOF(state, lexeme, startLine)
		}

		c, _ := s.src.Peek()
		next := s.dfa.Next(state, c.Byte)
		nextState := s.dfa.State(next)
		cur := s.dfa.State(state)

		if nextState.Trap && nextState.Status.errorStatus() {
			s.src.Next()
			lexeme = append(lexeme, c.Byte)
			s.errs.Add(startLine, string(lexeme), errorMessage(nextState.Status))
			return Token{}, false
		}

		if nextState.Trap && cur.Accept {
			if cur.Status == StatusCommentClosed || cur.Status == StatusWhite {
				return Token{}, false
			}
			return s.emit(cur, lexeme, startLine), true
		}

		if nextState.Trap {
			s.src.Next()
			lexeme = append(lexeme, c.Byte)
			s.errs.Add(startLine, string(lexeme), MsgInvalidInput)
			return Token{}, false
		}

		state = next
		s.src.Next()
		lexeme = append(lexeme, c.Byte)
	}
}

// finishAtEOF resolves the state the DFA was left in when the input ran
// out: an open comment is the unclosed-comment error, an accepting state
// emits its token, anything else has already been consumed.
func (s *Scanner) finishAtEOF(state int, lexeme []byte, startLine int) (Token, bool) {
	cur := s.dfa.State(state)
	switch {
	case cur.Status == StatusCommentOpen:
		s.errs.AddUnclosedComment(startLine, string(lexeme))
		return Token{Class: ClassEOF, Lexeme: "$", Line: s.src.Line()}, true
	case cur.Accept:
		if cur.Status == StatusCommentClosed || cur.Status == StatusWhite {
			return Token{}, false
		}
		return s.emit(cur, lexeme, startLine), true
	default:
		return Token{Class: ClassEOF, Lexeme: "$", Line: s.src.Line()}, true
	}
}

// emit classifies the accepted lexeme, reclassifying identifiers that match
// a reserved word, and applies the side effects: the token log and the
// symbol table.
func (s *Scanner) emit(state DFAState, lexeme []byte, line int) Token {
	tok := Token{Class: state.Status.tokenClass(), Lexeme: string(lexeme), Line: line}
	if tok.Class == ClassID && IsKeyword(tok.Lexeme) {
		tok.Class = ClassKeyword
	}
	if tok.Class == ClassID || tok.Class == ClassKeyword {
		s.table.Insert(tok)
	}
	s.tokens.Add(tok)
	return tok
}

func errorMessage(status StateStatus) string {
	switch status {
	case StatusInvalidNumber:
		return MsgInvalidNumber
	case StatusUnmatchedComment:
		return MsgUnmatchedComment
	default:
		return MsgInvalidInput
	}
}
