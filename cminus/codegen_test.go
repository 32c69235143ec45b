package cminus

import (
	"regexp"
	"strings"
	"testing"
)

func TestCodeGen_Prologue(t *testing.T) {
	table := NewSymbolTable()
	gen := NewCodeGen(table)
	program := gen.Program()

	if program.Len() != 9 {
		t.Fatalf("expected a 9-instruction prologue, got %d", program.Len())
	}
	expect := []string{
		"(ASSIGN, #2000, 1000, )",
		"(ASSIGN, #2000, 1004, )",
		"(ASSIGN, #9999, 1008, )",
		"(ASSIGN, #9999, 1012, )",
		"(JP, 9, , )",
		"(SUB, 1000, #4, 1000)",
		"(ASSIGN, @1000, 1012, )",
		"(PRINT, 1012, , )",
		"(JP, @1008, , )",
	}
	for i, want := range expect {
		if got := program.At(i).String(); got != want {
			t.Errorf("prologue line %d: expected %s, got %s", i, want, got)
		}
	}

	rec := table.Lookup("output")
	if rec == nil || !rec.IsFunction {
		t.Fatal("expected the output routine in the global scope")
	}
	if rec.Address != 5 {
		t.Errorf("expected output to enter at line 5, got %d", rec.Address)
	}
	if rec.ArgCount != 1 {
		t.Errorf("expected output to take one argument, got %d", rec.ArgCount)
	}
}

func TestCodeGen_EmptyMainShape(t *testing.T) {
	p := newPipeline(t, "void main(void){}")
	p.parse(t)
	program := p.gen.Program()

	// Entry slot patched to the function, frame prologue and epilogue
	// around an empty body, return through ra.
	if got := program.At(9).String(); got != "(JP, 10, , )" {
		t.Errorf("expected line 9 to jump to main, got %s", got)
	}
	if !program.Pending(10) {
		t.Error("expected the function entry slot to stay blank")
	}
	if got := program.At(13).String(); got != "(ASSIGN, 1000, 1004, )" {
		t.Errorf("expected fp <- sp at line 13, got %s", got)
	}
	if got := program.At(14).String(); got != "(ASSIGN, 1004, 1000, )" {
		t.Errorf("expected sp <- fp at line 14, got %s", got)
	}
	last := program.At(program.Len() - 1).String()
	if last != "(JP, @1008, , )" {
		t.Errorf("expected the body to end with JP @ra, got %s", last)
	}
}

func TestCodeGen_ArithmeticAndAssignment(t *testing.T) {
	p := newPipeline(t, "void main(void){ int a; a = 3 + 4; }")
	p.parse(t)
	text := exportString(t, p.gen.Program())

	// a lives in the first cell after main's own record cell.
	if !strings.Contains(text, "(ADD, #3, #4, 3000)") {
		t.Errorf("expected the addition into the first temp:\n%s", text)
	}
	if !strings.Contains(text, "(ASSIGN, 3000, 1020, )") {
		t.Errorf("expected the temp assigned into a:\n%s", text)
	}
	if !strings.Contains(text, "(ASSIGN, #0, 1020, )") {
		t.Errorf("expected a to be zero-initialised:\n%s", text)
	}
}

func TestCodeGen_ComparisonOpcodes(t *testing.T) {
	p := newPipeline(t, "void main(void){ int a; a = 0; if (a == 7) output(1); if (a < 7) output(2); }")
	p.parse(t)
	text := exportString(t, p.gen.Program())
	if !strings.Contains(text, "(EQ, 1020, #7,") {
		t.Errorf("expected an EQ over a:\n%s", text)
	}
	if !strings.Contains(text, "(LT, 1020, #7,") {
		t.Errorf("expected an LT over a:\n%s", text)
	}
}

func TestCodeGen_WhileLoopShape(t *testing.T) {
	p := newPipeline(t, "void main(void){ int i; i = 0; while (i < 3) { i = i + 1; } }")
	p.parse(t)
	program := p.gen.Program()

	backJump := -1
	exitJPF := -1
	for i := 0; i < program.Len(); i++ {
		if program.Pending(i) {
			continue
		}
		inst := program.At(i)
		if inst.Op == OpJp && !strings.HasPrefix(inst.A, "@") {
			if target := parseNumber(inst.A); target < i && target > 9 {
				backJump = i
			}
		}
		if inst.Op == OpJpf {
			exitJPF = i
		}
	}
	if backJump < 0 {
		t.Fatal("expected a backward jump to the loop head")
	}
	if exitJPF < 0 {
		t.Fatal("expected a patched JPF for the loop exit")
	}
	if target := parseNumber(program.At(exitJPF).B); target != backJump+1 {
		t.Errorf("expected the exit JPF to land after the back jump (line %d), got %d", backJump+1, target)
	}
}

func TestCodeGen_BreakPatchesPastLoop(t *testing.T) {
	p := newPipeline(t, "void main(void){ int i; i = 0; while (i < 3) { break; } }")
	p.parse(t)
	if !p.gen.Balanced() {
		t.Fatal("expected no unpatched pending jumps")
	}
	program := p.gen.Program()
	// The break JP must land on the first instruction after the loop's
	// back jump.
	backJump := -1
	for i := 0; i < program.Len(); i++ {
		if !program.Pending(i) && program.At(i).Op == OpJp && !strings.HasPrefix(program.At(i).A, "@") {
			if target := parseNumber(program.At(i).A); target < i {
				backJump = i
			}
		}
	}
	if backJump < 0 {
		t.Fatal("expected the loop back jump")
	}
	found := false
	for i := 0; i < backJump; i++ {
		if !program.Pending(i) && program.At(i).Op == OpJp && parseNumber(program.At(i).A) == backJump+1 {
			found = true
		}
	}
	if !found {
		t.Error("expected the break jump to be patched past the loop")
	}
}

func TestCodeGen_FunctionRecordAddress(t *testing.T) {
	p := newPipeline(t, "int sq(int n){ return n*n; } void main(void){ output(sq(4)); }")
	p.parse(t)

	rec := p.table.Lookup("sq")
	if rec == nil || !rec.IsFunction {
		t.Fatal("expected a function record for sq")
	}
	// The record's address is the entry line fixed at definition time; the
	// first thing a callee with parameters executes is the argument pop.
	program := p.gen.Program()
	if rec.Address != 10 {
		t.Errorf("expected sq to enter at line 10, got %d", rec.Address)
	}
	if got := program.At(rec.Address).Op; got != OpSub {
		t.Errorf("expected the entry to start the parameter pop, got %s", got)
	}
	if rec.ArgCount != 1 || len(rec.ArgTypes) != 1 {
		t.Errorf("expected one recorded parameter, got %d (%v)", rec.ArgCount, rec.ArgTypes)
	}
}

func TestCodeGen_BalanceAfterCleanCompile(t *testing.T) {
	p := newPipeline(t, `int sq(int n){ return n*n; }
void main(void){
	int i;
	i = 0;
	while (i < 3) {
		if (i == 2) break;
		output(sq(i));
		i = i + 1;
	}
}`)
	p.parse(t)
	if !p.gen.Balanced() {
		t.Fatal("expected the semantic stack, marks and frames to be empty")
	}
}

// instructionLine matches the exported form the virtual machine accepts.
var instructionLine = regexp.MustCompile(`^\d+\t\(\s*[A-Z]+(\s*,\s*[#@]?[-+]?\d*)+\s*\)$`)

func TestCodeGen_ExportDensity(t *testing.T) {
	p := newPipeline(t, "int sq(int n){ return n*n; } void main(void){ int a[3]; a[0] = sq(2); output(a[0]); }")
	p.parse(t)
	text := exportString(t, p.gen.Program())
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if !instructionLine.MatchString(line) {
			t.Errorf("exported line is not consumable by the VM: %q", line)
		}
	}
}

func exportString(t *testing.T, p *Program) string {
	t.Helper()
	var b strings.Builder
	if err := p.Export(&b); err != nil {
		t.Fatal(err)
	}
	return b.String()
}
