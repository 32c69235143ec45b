package cminus

import (
	"fmt"
	"io"
	"strconv"
)

// Operation names of the emitted instruction set.
const (
	OpAssign = "ASSIGN"
	OpAdd    = "ADD"
	OpSub    = "SUB"
	OpMult   = "MULT"
	OpDiv    = "DIV"
	OpEq     = "EQ"
	OpLt     = "LT"
	OpAnd    = "AND"
	OpNot    = "NOT"
	OpJp     = "JP"
	OpJpf    = "JPF"
	OpPrint  = "PRINT"
)

// Instruction is one three-address record. Operands are rendered strings:
// "#k" immediate, "k" direct address, "@k" indirect address, or empty where
// unused. A pending instruction is a reserved slot awaiting backpatching.
type Instruction struct {
	Op      string
	A, B, C string
	pending bool
}

// String renders the record in the exported "(OP, A, B, C)" form.
func (i Instruction) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", i.Op, i.A, i.B, i.C)
}

// fallback is what export substitutes for pending or blank slots so the
// virtual machine consumes them as no-ops.
const fallback = "(ASSIGN , 0, 0 , )"

// Program is the growable instruction buffer the code generator emits into.
// Line numbers are slot indices.
//
// Create a Program through NewProgram.
type Program struct {
	instrs []Instruction
}

// NewProgram returns an empty buffer.
func NewProgram() *Program {
	return &Program{}
}

// Len returns the current program length, i.e. the line the next emitted
// instruction will occupy.
func (p *Program) Len() int {
	return len(p.instrs)
}

// Emit appends an instruction and returns its line.
func (p *Program) Emit(op, a, b, c string) int {
	p.instrs = append(p.instrs, Instruction{Op: op, A: a, B: b, C: c})
	return len(p.instrs) - 1
}

// Reserve appends a pending slot and returns its line. The slot exports as
// a no-op unless Patch fills it first.
func (p *Program) Reserve() int {
	p.instrs = append(p.instrs, Instruction{pending: true})
	return len(p.instrs) - 1
}

// Patch overwrites the slot at line with an instruction.
func (p *Program) Patch(line int, op, a, b, c string) {
	p.instrs[line] = Instruction{Op: op, A: a, B: b, C: c}
}

// Clear turns the slot at line back into a pending no-op.
func (p *Program) Clear(line int) {
	p.instrs[line] = Instruction{pending: true}
}

// DropLast removes the most recently appended slot.
func (p *Program) DropLast() {
	p.instrs = p.instrs[:len(p.instrs)-1]
}

// At returns the instruction at line.
func (p *Program) At(line int) Instruction {
	return p.instrs[line]
}

// Pending reports whether the slot at line still awaits patching.
func (p *Program) Pending(line int) bool {
	return p.instrs[line].pending
}

// Export renders the buffer one numbered line per slot. Pending or blank
// slots are replaced by the no-op fallback form.
func (p *Program) Export(w io.Writer) error {
	for i, inst := range p.instrs {
		text := inst.String()
		if inst.pending || inst.Op == "" {
			text = fallback
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\n", i, text); err != nil {
			return err
		}
	}
	return nil
}

// Operand constructors.

func immediate(n int) string {
	return "#" + strconv.Itoa(n)
}

func direct(n int) string {
	return strconv.Itoa(n)
}

func indirect(n int) string {
	return "@" + strconv.Itoa(n)
}
