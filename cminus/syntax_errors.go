package cminus

import (
	"fmt"
	"io"
)

// SyntaxError is one recorded syntax error.
type SyntaxError struct {
	Line    int
	Message string
}

// String renders the error the way the artifact file prints it.
func (e SyntaxError) String() string {
	return fmt.Sprintf("#%d : syntax error, %s", e.Line, e.Message)
}

// SyntaxErrorLog accumulates syntax errors in discovery order.
//
// Create a SyntaxErrorLog through NewSyntaxErrorLog.
type SyntaxErrorLog struct {
	errors []SyntaxError
}

// NewSyntaxErrorLog returns an empty log.
func NewSyntaxErrorLog() *SyntaxErrorLog {
	return &SyntaxErrorLog{}
}

// Add records an error at a source line.
func (l *SyntaxErrorLog) Add(line int, message string) {
	l.errors = append(l.errors, SyntaxError{Line: line, Message: message})
}

// Empty reports whether no error was recorded.
func (l *SyntaxErrorLog) Empty() bool {
	return len(l.errors) == 0
}

// All returns the recorded errors in discovery order.
func (l *SyntaxErrorLog) All() []SyntaxError {
	return l.errors
}

// Write renders the artifact file, or the fixed no-error sentence.
func (l *SyntaxErrorLog) Write(w io.Writer) error {
	if l.Empty() {
		_, err := io.WriteString(w, "There is no syntax error.\n")
		return err
	}
	for _, e := range l.errors {
		if _, err := fmt.Fprintf(w, "%s\n", e); err != nil {
			return err
		}
	}
	return nil
}
