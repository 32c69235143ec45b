// Package cminus implements the compiler front end and intermediate-code
// generator for the C-minus language: a table-driven lexical DFA, an LL(1)
// transition-diagram parser loaded from external grammar assets, a scoped
// symbol table, and a three-address code generator targeting the companion
// virtual machine.
package cminus

import "fmt"

// TokenClass classifies a scanned lexeme.
type TokenClass int

const (
	// ClassKeyword - one of the seven reserved words.
	ClassKeyword TokenClass = iota
	// ClassID - an identifier: a letter followed by letters and digits.
	ClassID
	// ClassNum - a non-empty run of digits.
	ClassNum
	// ClassSymbol - a punctuation or operator lexeme.
	ClassSymbol
	// ClassWhitespace - a single whitespace byte; never reaches the parser.
	ClassWhitespace
	// ClassComment - a closed /* ... */ block; never reaches the parser.
	ClassComment
	// ClassEOF - the end-of-input marker, rendered as "$".
	ClassEOF
)

// String returns the class name as it appears in the artifact files.
func (c TokenClass) String() string {
	switch c {
	case ClassKeyword:
		return "KEYWORD"
	case ClassID:
		return "ID"
	case ClassNum:
		return "NUM"
	case ClassSymbol:
		return "SYMBOL"
	case ClassWhitespace:
		return "WHITE"
	case ClassComment:
		return "COMMENT"
	case ClassEOF:
		return "$"
	default:
		return fmt.Sprintf("TokenClass(%d)", int(c))
	}
}

// Ignored - reports whether a token of this class is discarded before
// parsing.
func (c TokenClass) Ignored() bool {
	return c == ClassWhitespace || c == ClassComment
}

// Token is one scanned lexeme together with the source line its first byte
// was read from.
type Token struct {
	Class  TokenClass
	Lexeme string
	Line   int
}

// String renders the token the way the tokens artifact prints it.
func (t Token) String() string {
	return fmt.Sprintf("(%s, %s)", t.Class, t.Lexeme)
}

// Keywords lists the reserved words in their declaration order. An
// identifier lexeme equal to one of these is reclassified to ClassKeyword
// before emission.
var Keywords = []string{"if", "else", "void", "int", "while", "break", "return"}

var keywordSet = func() map[string]bool {
	m := make(map[string]bool, len(Keywords))
	for _, k := range Keywords {
		m[k] = true
	}
	return m
}()

// IsKeyword reports whether lexeme is a reserved word.
func IsKeyword(lexeme string) bool {
	return keywordSet[lexeme]
}

// symbolBytes lists every byte that begins a symbol token.
var symbolBytes = []byte{';', ':', ',', '[', ']', '(', ')', '{', '}', '+', '-', '*', '/', '\\', '=', '>', '<'}

// whitespaceBytes lists the bytes classified as whitespace.
var whitespaceBytes = []byte{' ', '\n', '\t', '\r', '\v', '\f'}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isSymbolByte(b byte) bool {
	for _, s := range symbolBytes {
		if b == s {
			return true
		}
	}
	return false
}

func isWhitespaceByte(b byte) bool {
	for _, w := range whitespaceBytes {
		if b == w {
			return true
		}
	}
	return false
}

// isIllegalByte reports whether b is outside the language alphabet: not a
// letter, digit, symbol, or whitespace byte. Bytes above 127 are always
// illegal.
func isIllegalByte(b byte) bool {
	return !(isDigit(b) || isLetter(b) || isSymbolByte(b) || isWhitespaceByte(b))
}
