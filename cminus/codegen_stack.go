package cminus

// Runtime-stack protocol. The stack block grows upward through the sp
// register; fp anchors the current frame.

// stackPush emits a push of val onto the runtime stack.
func (g *CodeGen) stackPush(val string) {
	g.program.Emit(OpAssign, val, indirect(g.regs.sp), "")
	g.program.Emit(OpAdd, direct(g.regs.sp), immediate(g.wordSize), direct(g.regs.sp))
}

// stackPop emits a pop of the runtime-stack top into dest.
func (g *CodeGen) stackPop(dest string) {
	g.program.Emit(OpSub, direct(g.regs.sp), immediate(g.wordSize), direct(g.regs.sp))
	g.program.Emit(OpAssign, indirect(g.regs.sp), dest, "")
}

// stackAllocate emits a bump of sp by size words, reserving array storage.
func (g *CodeGen) stackAllocate(size int) {
	g.program.Emit(OpAdd, immediate(g.wordSize*size), direct(g.regs.sp), direct(g.regs.sp))
}

// frameEnter emits the function frame prologue: an entry slot, a push of
// the caller's fp, and fp <- sp.
func (g *CodeGen) frameEnter() {
	g.program.Reserve()
	g.stackPush(direct(g.regs.fp))
	g.program.Emit(OpAssign, direct(g.regs.sp), direct(g.regs.fp), "")
}

// frameExit emits the epilogue: sp <- fp and a pop of the saved fp.
func (g *CodeGen) frameExit() {
	g.program.Emit(OpAssign, direct(g.regs.fp), direct(g.regs.sp), "")
	g.stackPop(direct(g.regs.fp))
	g.program.Reserve()
}

// storeRegisters saves sp, fp and ra around a call, in that order.
func (g *CodeGen) storeRegisters() {
	g.stackPush(direct(g.regs.sp))
	g.stackPush(direct(g.regs.fp))
	g.stackPush(direct(g.regs.ra))
}

// loadRegisters restores ra, fp and sp after a call, in that order.
func (g *CodeGen) loadRegisters() {
	g.stackPop(direct(g.regs.ra))
	g.stackPop(direct(g.regs.fp))
	g.stackPop(direct(g.regs.sp))
}
