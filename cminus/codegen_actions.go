package cminus

// Apply executes one semantic action against the current lookahead token.
// This is the whole surface the parser drives the generator through.
func (g *CodeGen) Apply(a Action, tok Token) {
	switch a.Kind {
	case ActionPushNum:
		g.push("#" + tok.Lexeme)
	case ActionPushID:
		g.actPushID(tok)
	case ActionPushRV:
		g.push(direct(g.regs.rv))
	case ActionPushArray:
		g.actPushArray()
	case ActionPushOperand:
		g.actPushOperand(tok)
	case ActionPushZero:
		g.push("#0")
	case ActionPop:
		g.pop()
	case ActionHold:
		g.actHold()
	case ActionLabel:
		g.push(direct(g.program.Len()))
	case ActionAssignStack:
		g.actAssignStack()
	case ActionOperandExec:
		g.actOperandExec()
	case ActionIfDecide:
		g.actIfDecide()
	case ActionWhileJump:
		g.actWhileJump()
	case ActionDefineID:
		g.actDefineID(tok)
	case ActionDefineArray:
		g.actDefineArray()
	case ActionDefineFunction:
		g.actDefineFunction()
	case ActionMainFunction:
		g.actMainFunction()
	case ActionScopeStart:
		g.actScopeStart(a.Arg)
	case ActionScopeFinish:
		g.actScopeFinish(a.Arg)
	case ActionFunctionFrame:
		g.frameEnter()
	case ActionFunctionInputStart:
		g.functionInput = true
	case ActionFunctionInputFinish:
		g.functionInput = false
	case ActionFunctionInputPass:
		g.inputMarks = append(g.inputMarks, len(g.stack))
	case ActionFunctionCall:
		g.actFunctionCall()
	case ActionFunctionReturn:
		g.program.Emit(OpJp, indirect(g.regs.ra), "", "")
	case ActionJumpPlaceholder:
		f := g.frame(a.Arg)
		f.reserveJump()
		// The if-frame placeholder opens an else branch. Temps of the
		// skipped then-branch are never written on this path, so the else
		// branch allocates from the selection's entry snapshot instead.
		if a.Arg == FrameIf {
			if n := len(f.snapshots); n > 0 {
				g.tempAddress = f.snapshots[n-1][1]
			}
		}
	case ActionBackpatchJump:
		g.frame(a.Arg).backpatchOne()
	}
}

func (g *CodeGen) frame(kind string) *scopeFrame {
	if f, ok := g.frames[kind]; ok {
		return f
	}
	return g.frames[FrameBlock]
}

// actPushID pushes the looked-up record's address. An undeclared identifier
// resolves to address 0; the emitted reference is undefined but compilation
// continues.
func (g *CodeGen) actPushID(tok Token) {
	addr := 0
	if rec := g.table.Lookup(tok.Lexeme); rec != nil {
		addr = rec.Address
	}
	g.push(direct(addr))
}

// actPushArray replaces (base, index) with an indirect operand addressing
// the indexed element: t := word_size*index + M[base].
func (g *CodeGen) actPushArray() {
	index := g.pop()
	t := g.newTemp()
	g.program.Emit(OpMult, immediate(g.wordSize), index, direct(t))
	base := g.pop()
	g.program.Emit(OpAdd, base, direct(t), direct(t))
	g.push(indirect(t))
}

func (g *CodeGen) actPushOperand(tok Token) {
	if op, ok := operandOps[tok.Lexeme]; ok {
		g.push(op)
	}
}

// actHold reserves a slot at the current position and remembers its line
// for a later conditional backpatch.
func (g *CodeGen) actHold() {
	g.push(direct(g.program.Len()))
	g.program.Reserve()
}

// actAssignStack emits ASSIGN top, top-1 consuming only the top, so the
// assigned-to operand remains as the expression's value.
func (g *CodeGen) actAssignStack() {
	src := g.pop()
	g.program.Emit(OpAssign, src, g.top(), "")
}

// actOperandExec pops (rhs, op, lhs), emits the three-address operation
// into a fresh temp, and pushes the temp.
func (g *CodeGen) actOperandExec() {
	rhs := g.pop()
	op := g.pop()
	lhs := g.pop()
	t := g.newTemp()
	g.program.Emit(op, lhs, rhs, direct(t))
	g.push(direct(t))
}

// actIfDecide pops the reserved slot line and the condition, and patches
// the slot with a JPF past the just-generated statement.
func (g *CodeGen) actIfDecide() {
	slot := parseNumber(g.pop())
	cond := g.pop()
	g.program.Patch(slot, OpJpf, cond, direct(g.program.Len()), "")
}

// actWhileJump closes a loop body: with (head, slot, cond) on the stack it
// emits the back jump to head and rearranges so actIfDecide can patch the
// exit slot.
func (g *CodeGen) actWhileJump() {
	s1 := g.pop()
	s2 := g.pop()
	s3 := g.pop()
	g.program.Emit(OpJp, s3, "", "")
	g.push(s2)
	g.push(s1)
}

// actDefineID binds the declared identifier to a fresh data cell, declaring
// it in the current scope so the definition shadows any enclosing record. A
// parameter pops its argument from the runtime stack into the cell and
// records its type on the enclosing function; a variable is zero-filled.
func (g *CodeGen) actDefineID(tok Token) {
	g.lastDefined = tok
	rec := g.table.Declare(tok)
	if rec == nil {
		return
	}
	rec.Address = g.newData()
	if g.functionInput {
		g.stackPop(direct(rec.Address))
		if fn := g.table.LastFunctionInGlobal(); fn != nil {
			fn.ArgCount++
			fn.ArgTypes = append(fn.ArgTypes, "int")
		}
		return
	}
	g.program.Emit(OpAssign, "#0", direct(rec.Address), "")
}

// actDefineArray stores the current stack pointer into the array's cell as
// its runtime base, then bumps sp past size words.
func (g *CodeGen) actDefineArray() {
	g.program.Emit(OpAssign, direct(g.regs.sp), g.topBelow(), "")
	size := parseNumber(g.pop())
	g.stackAllocate(size)
}

// actDefineFunction marks the most recently declared identifier as a
// function: snapshot the allocation pointers, fix the record's address at
// the current program position, and blank the variable initialisation the
// declaration emitted before the "(" disambiguated it.
func (g *CodeGen) actDefineFunction() {
	g.functionDataPointer = g.dataAddress
	g.functionTempPointer = g.tempAddress
	rec := g.table.Lookup(g.lastDefined.Lexeme)
	if rec == nil {
		return
	}
	g.program.Clear(g.program.Len() - 1)
	rec.Address = g.program.Len()
	rec.IsFunction = true
	rec.ArgCount = 0
	rec.ArgTypes = nil
}

// actMainFunction fires at every function definition but acts only on the
// first: it drops the just-blanked slot and reserves the entry slot that
// SetExecBlock later patches with the jump to main. The reserved line sits
// at the bottom of the semantic stack for the rest of the compilation.
func (g *CodeGen) actMainFunction() {
	if g.mainDeclared {
		return
	}
	g.mainDeclared = true
	fn := g.pop()
	g.program.DropLast()
	g.push(direct(g.program.Len()))
	g.program.Reserve()
	g.push(fn)
}

// actScopeStart opens a scope of the given kind: a symbol-table scope plus
// the kind's frame. A function scope opens before its parameter block, so
// parameter records land in it rather than in the global scope; its frame
// snapshots the pointers captured at definition time, so parameters are
// reclaimed with locals. The frame prologue is a separate action, emitted
// only after the parameter pops (a prologue before them would push the
// saved fp on top of the arguments).
func (g *CodeGen) actScopeStart(kind string) {
	g.table.EnterScope()
	f := g.frame(kind)
	if kind == FrameFunction {
		f.enter(g.functionDataPointer, g.functionTempPointer)
		return
	}
	f.enter(g.dataAddress, g.tempAddress)
}

// actScopeFinish closes the innermost scope of the kind: backpatch its
// pending jumps, restore the snapshots, and pop the symbol-table scope. A
// function frame also emits the epilogue.
func (g *CodeGen) actScopeFinish(kind string) {
	g.table.ExitScope()
	g.frame(kind).exit()
	if kind == FrameFunction {
		g.frameExit()
	}
}

// actFunctionCall emits the full call site: save the live data and temp
// cells and the registers, push the arguments recorded since the input
// mark, link ra past the jump, jump to the callee, then restore everything
// and materialise the return value into a fresh temp.
func (g *CodeGen) actFunctionCall() {
	for d := g.functionDataPointer; d < g.dataAddress; d += g.wordSize {
		g.stackPush(direct(d))
	}
	for t := g.functionTempPointer; t < g.tempAddress; t += g.wordSize {
		g.stackPush(direct(t))
	}
	g.storeRegisters()

	mark := 0
	if n := len(g.inputMarks); n > 0 {
		mark = g.inputMarks[n-1]
		g.inputMarks = g.inputMarks[:n-1]
	}
	for len(g.stack) > mark {
		g.stackPush(g.pop())
	}

	g.program.Emit(OpAssign, immediate(g.program.Len()+2), direct(g.regs.ra), "")
	g.program.Emit(OpJp, g.pop(), "", "")

	g.loadRegisters()
	for t := g.tempAddress; t > g.functionTempPointer; t -= g.wordSize {
		g.stackPop(direct(t - g.wordSize))
	}
	for d := g.dataAddress; d > g.functionDataPointer; d -= g.wordSize {
		g.stackPop(direct(d - g.wordSize))
	}

	res := g.newTemp()
	g.program.Emit(OpAssign, direct(g.regs.rv), direct(res), "")
	g.push(direct(res))
}
