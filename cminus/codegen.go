package cminus

import (
	"fmt"
	"strconv"
	"strings"
)

// Default memory layout of the abstract machine. The four regions are
// disjoint; the registers occupy the first cells of the data block.
const (
	DefaultWordSize     = 4
	DefaultDataAddress  = 1000
	DefaultStackAddress = 2000
	DefaultTempAddress  = 3000
)

// registers are the four dedicated cells at the start of the data block,
// in this fixed order.
type registers struct {
	sp, fp, ra, rv int
}

// CodeGen is the semantic-action handler: it owns the semantic stack, the
// allocation pointers for the data and temp blocks, the per-kind scope
// frames, and the instruction buffer. The parser drives it through Apply;
// it holds no reference back to the parser.
//
// Create a CodeGen through NewCodeGen; the constructor emits the fixed
// program prologue and registers the built-in output routine.
type CodeGen struct {
	table   *SymbolTable
	program *Program

	wordSize     int
	dataAddress  int
	stackAddress int
	tempAddress  int
	regs         registers

	stack  []string
	frames map[string]*scopeFrame

	functionInput       bool
	lastDefined         Token
	inputMarks          []int
	functionDataPointer int
	functionTempPointer int
	mainDeclared        bool

	underflows int
}

// operandOps maps operator lexemes to the opcodes they emit.
var operandOps = map[string]string{
	"+":  OpAdd,
	"-":  OpSub,
	"*":  OpMult,
	"==": OpEq,
	"<":  OpLt,
}

// NewCodeGen builds a generator over the given symbol table with the
// default memory layout.
func NewCodeGen(table *SymbolTable) *CodeGen {
	g := &CodeGen{
		table:        table,
		program:      NewProgram(),
		wordSize:     DefaultWordSize,
		dataAddress:  DefaultDataAddress,
		stackAddress: DefaultStackAddress,
		tempAddress:  DefaultTempAddress,
	}
	g.regs = registers{
		sp: g.newData(),
		fp: g.newData(),
		ra: g.newData(),
		rv: g.newData(),
	}
	g.frames = map[string]*scopeFrame{
		FrameIf:       newScopeFrame(g),
		FrameWhile:    newScopeFrame(g),
		FrameFunction: newScopeFrame(g),
		FrameBlock:    newScopeFrame(g),
	}
	g.emitPrologue()
	return g
}

// Program returns the instruction buffer.
func (g *CodeGen) Program() *Program {
	return g.program
}

// emitPrologue writes the fixed header: register initialisation, the jump
// over the built-in output routine, and the routine itself. A symbol record
// for output is inserted into the global scope pointing at the routine's
// entry line.
func (g *CodeGen) emitPrologue() {
	g.program.Emit(OpAssign, immediate(g.stackAddress), direct(g.regs.sp), "")
	g.program.Emit(OpAssign, immediate(g.stackAddress), direct(g.regs.fp), "")
	g.program.Emit(OpAssign, immediate(9999), direct(g.regs.ra), "")
	g.program.Emit(OpAssign, immediate(9999), direct(g.regs.rv), "")
	g.program.Emit(OpJp, direct(g.program.Len()+5), "", "")

	outputEntry := g.program.Len()
	g.stackPop(direct(g.regs.rv))
	g.program.Emit(OpPrint, direct(g.regs.rv), "", "")
	g.program.Emit(OpJp, indirect(g.regs.ra), "", "")

	tok := Token{Class: ClassID, Lexeme: "output"}
	g.table.Insert(tok)
	if rec := g.table.Lookup("output"); rec != nil {
		rec.Address = outputEntry
		rec.IsFunction = true
		rec.ArgCount = 1
		rec.ArgTypes = []string{"int"}
	}
}

// SetExecBlock patches the reserved main slot with a jump to the named
// function's entry, consuming semantic-stack slot 0. It fails when the
// program never declared the function or never reserved the slot.
func (g *CodeGen) SetExecBlock(name string) error {
	rec := g.table.Lookup(name)
	if rec == nil || !rec.IsFunction {
		return fmt.Errorf("no function named %s was declared", name)
	}
	if len(g.stack) == 0 {
		return fmt.Errorf("no entry slot was reserved for %s", name)
	}
	slot := parseNumber(g.stack[0])
	g.stack = g.stack[1:]
	g.program.Patch(slot, OpJp, direct(rec.Address), "", "")
	return nil
}

// Balanced reports whether the semantic stack and every scope frame are
// empty. It holds after compiling a syntactically well-formed program and
// patching the entry slot.
func (g *CodeGen) Balanced() bool {
	if len(g.stack) != 0 || len(g.inputMarks) != 0 || g.underflows != 0 {
		return false
	}
	for _, f := range g.frames {
		if f.open() {
			return false
		}
	}
	return true
}

// Allocation.

func (g *CodeGen) newData() int {
	addr := g.dataAddress
	g.dataAddress += g.wordSize
	return addr
}

func (g *CodeGen) newTemp() int {
	addr := g.tempAddress
	g.tempAddress += g.wordSize
	return addr
}

// Semantic stack. Pops on an empty stack can only follow parser error
// recovery; they are absorbed (and counted) so a broken parse still exits
// cleanly.

func (g *CodeGen) push(v string) {
	g.stack = append(g.stack, v)
}

func (g *CodeGen) pop() string {
	if len(g.stack) == 0 {
		g.underflows++
		return "0"
	}
	v := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	return v
}

func (g *CodeGen) top() string {
	if len(g.stack) == 0 {
		g.underflows++
		return "0"
	}
	return g.stack[len(g.stack)-1]
}

func (g *CodeGen) topBelow() string {
	if len(g.stack) < 2 {
		g.underflows++
		return "0"
	}
	return g.stack[len(g.stack)-2]
}

// parseNumber reads the numeric payload of an operand, stripping any
// immediate or indirect prefix.
func parseNumber(operand string) int {
	operand = strings.TrimPrefix(operand, "#")
	operand = strings.TrimPrefix(operand, "@")
	n, err := strconv.Atoi(operand)
	if err != nil {
		return 0
	}
	return n
}
