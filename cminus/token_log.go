package cminus

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// TokenLog collects the parser-visible tokens per source line for the
// tokens artifact. Whitespace and comments are never added.
//
// Create a TokenLog through NewTokenLog.
type TokenLog struct {
	byLine map[int][]Token
}

// NewTokenLog returns an empty log.
func NewTokenLog() *TokenLog {
	return &TokenLog{byLine: make(map[int][]Token)}
}

// Add records a token under the line its first byte was read from.
func (l *TokenLog) Add(tok Token) {
	l.byLine[tok.Line] = append(l.byLine[tok.Line], tok)
}

// Write renders the artifact file: one line per source line that produced
// tokens.
func (l *TokenLog) Write(w io.Writer) error {
	lines := make([]int, 0, len(l.byLine))
	for line := range l.byLine {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	for _, line := range lines {
		parts := make([]string, 0, len(l.byLine[line]))
		for _, t := range l.byLine[line] {
			parts = append(parts, t.String())
		}
		if _, err := fmt.Fprintf(w, "%d.\t %s\n", line, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
