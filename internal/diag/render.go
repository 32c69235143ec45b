package diag

import (
	"fmt"
	"io"
)

// Render writes the recorded entries to w, one line each, in insertion
// order. Trace entries are included only when withTrace is set.
func Render(w io.Writer, c *Context, withTrace bool) error {
	for _, e := range c.Entries() {
		if e.Level == LevelTrace && !withTrace {
			continue
		}
		var err error
		switch {
		case e.Line > 0:
			_, err = fmt.Fprintf(w, "%s %s (line %d): %s\n", tag(e.Level), e.Phase, e.Line, e.Message)
		default:
			_, err = fmt.Fprintf(w, "%s %s: %s\n", tag(e.Level), e.Phase, e.Message)
		}
		if err != nil {
			return fmt.Errorf("render diagnostics: %w", err)
		}
	}
	return nil
}

func tag(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelTrace:
		return "trace"
	default:
		return "info"
	}
}
