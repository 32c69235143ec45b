package vm

import (
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runLines executes a program given as bare instructions, numbering them
// the way the compiler exports them.
func runLines(t *testing.T, instructions ...string) (string, string) {
	t.Helper()
	lines := make([]string, len(instructions))
	for i, inst := range instructions {
		lines[i] = numbered(i, inst)
	}
	var out, trace strings.Builder
	m := New(&out, &trace)
	m.MaxSteps = 10_000
	require.NoError(t, m.Run(lines))
	return out.String(), trace.String()
}

func numbered(i int, inst string) string {
	return strconv.Itoa(i) + "\t" + inst
}

func TestRun_PrintImmediate(t *testing.T) {
	out, _ := runLines(t, "(PRINT, #5, , )")
	require.Equal(t, "PRINT    5\n", out)
}

func TestRun_AssignAndArithmetic(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #3, 100, )",
		"(ASSIGN, #4, 104, )",
		"(ADD, 100, 104, 108)",
		"(SUB, 100, 104, 112)",
		"(MULT, 100, 104, 116)",
		"(PRINT, 108, , )",
		"(PRINT, 112, , )",
		"(PRINT, 116, , )",
	)
	require.Equal(t, "PRINT    7\nPRINT    -1\nPRINT    12\n", out)
}

func TestRun_Comparisons(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #3, 100, )",
		"(EQ, 100, #3, 104)",
		"(EQ, 100, #4, 108)",
		"(LT, 100, #4, 112)",
		"(LT, 100, #3, 116)",
		"(PRINT, 104, , )",
		"(PRINT, 108, , )",
		"(PRINT, 112, , )",
		"(PRINT, 116, , )",
	)
	require.Equal(t, "PRINT    1\nPRINT    0\nPRINT    1\nPRINT    0\n", out)
}

func TestRun_DivFloorsTowardNegativeInfinity(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #-7, 100, )",
		"(DIV, 100, #2, 104)",
		"(PRINT, 104, , )",
	)
	require.Equal(t, "PRINT    -4\n", out)
}

func TestRun_AndNot(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #6, 100, )",
		"(AND, 100, #3, 104)",
		"(NOT, 104, 108, )",
		"(NOT, #0, 112, )",
		"(PRINT, 104, , )",
		"(PRINT, 108, , )",
		"(PRINT, 112, , )",
	)
	require.Equal(t, "PRINT    2\nPRINT    0\nPRINT    1\n", out)
}

func TestRun_Indirection(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #200, 100, )",
		"(ASSIGN, #42, 200, )",
		// Reading @100 dereferences twice; writing @100 writes M[M[100]], i.e. cell 200.
		"(PRINT, @100, , )",
		"(ASSIGN, #7, @100, )",
		"(PRINT, 200, , )",
	)
	require.Equal(t, "PRINT    42\nPRINT    7\n", out)
}

func TestRun_Jumps(t *testing.T) {
	out, _ := runLines(t,
		"(JP, 2, , )",
		"(PRINT, #1, , )",
		"(ASSIGN, #0, 100, )",
		"(JPF, 100, 5, )",
		"(PRINT, #2, , )",
		"(ASSIGN, #1, 104, )",
		"(JPF, 104, 8, )",
		"(PRINT, #3, , )",
	)
	// The first JP skips PRINT 1; the false JPF skips PRINT 2; the true
	// JPF falls through to PRINT 3.
	require.Equal(t, "PRINT    3\n", out)
}

func TestRun_JumpIndirect(t *testing.T) {
	out, _ := runLines(t,
		"(ASSIGN, #3, 100, )",
		"(JP, @100, , )",
		"(PRINT, #1, , )",
		"(PRINT, #2, , )",
	)
	require.Equal(t, "PRINT    2\n", out)
}

func TestRun_AssignInitialisesUntouchedDestination(t *testing.T) {
	// The destination cell of a first-time ASSIGN reads as 0 before the
	// write, so self-assignment of a fresh cell is legal.
	out, _ := runLines(t,
		"(ASSIGN, 100, 100, )",
		"(PRINT, 100, , )",
	)
	require.Equal(t, "PRINT    0\n", out)
}

func TestRun_BlankLinesAreSkipped(t *testing.T) {
	var out strings.Builder
	m := New(&out, io.Discard)
	m.MaxSteps = 100
	err := m.Run([]string{"", "   ", numbered(0, "(PRINT, #9, , )"), "\t"})
	require.NoError(t, err)
	require.Equal(t, "PRINT    9\n", out.String())
}

func TestRun_TraceRecordsWrites(t *testing.T) {
	_, trace := runLines(t, "(ASSIGN, #5, 100, )")
	require.Contains(t, trace, "--->  PC = 0 command : ")
	require.Contains(t, trace, "--->  memory[100] = 5")
}

func TestRun_Errors(t *testing.T) {
	t.Run("invalid command", func(t *testing.T) {
		err := Run([]string{numbered(0, "(FROB, #1, , )")}, io.Discard, io.Discard)
		require.Error(t, err)
		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		require.Equal(t, 0, stepErr.PC)
	})

	t.Run("malformed line", func(t *testing.T) {
		err := Run([]string{"not an instruction"}, io.Discard, io.Discard)
		require.Error(t, err)
	})

	t.Run("uninitialised read", func(t *testing.T) {
		err := Run([]string{numbered(0, "(PRINT, 500, , )")}, io.Discard, io.Discard)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid access to memory 500")
	})

	t.Run("missing operands", func(t *testing.T) {
		err := Run([]string{numbered(0, "(ADD, #1, #2)")}, io.Discard, io.Discard)
		require.Error(t, err)
	})

	t.Run("division by zero", func(t *testing.T) {
		err := Run([]string{
			numbered(0, "(ASSIGN, #1, 100, )"),
			numbered(1, "(DIV, 100, #0, 104)"),
		}, io.Discard, io.Discard)
		require.Error(t, err)
		require.Contains(t, err.Error(), "division by zero")
	})

	t.Run("step budget", func(t *testing.T) {
		m := New(io.Discard, io.Discard)
		m.MaxSteps = 5
		err := m.Run([]string{numbered(0, "(JP, 0, , )")})
		require.Error(t, err)
		require.Contains(t, err.Error(), "step budget")
	})
}

func TestRun_NoopFallbackLineIsConsumed(t *testing.T) {
	// The compiler exports unfilled slots in exactly this shape; the VM
	// must step over them.
	out, _ := runLines(t, "(ASSIGN , 0, 0 , )", "(PRINT, #1, , )")
	require.Equal(t, "PRINT    1\n", out)
}
