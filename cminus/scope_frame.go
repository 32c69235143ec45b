package cminus

// Frame kinds, one pending-jump/snapshot discipline per construct.
const (
	FrameIf       = "s"
	FrameWhile    = "c"
	FrameFunction = "f"
	FrameBlock    = "t"
)

// sentinel delimits one nested scope's pending jumps inside a frame.
const sentinel = -1

// scopeFrame is the per-kind bookkeeping that survives the opening and
// closing of a lexical scope: a stack of data/temp pointer snapshots taken
// at scope entry, and a sentinel-delimited stack of pending-jump slots. On
// scope exit every slot above the sentinel is patched with a JP to the
// current program position.
type scopeFrame struct {
	gen       *CodeGen
	snapshots [][2]int // (data, temp) pointer pairs
	pending   []int
}

func newScopeFrame(gen *CodeGen) *scopeFrame {
	return &scopeFrame{gen: gen}
}

// enter opens a nested scope: snapshot the allocation pointers and push the
// pending-jump sentinel.
func (f *scopeFrame) enter(dataPtr, tempPtr int) {
	f.snapshots = append(f.snapshots, [2]int{dataPtr, tempPtr})
	f.pending = append(f.pending, sentinel)
}

// exit closes the innermost scope: restore the allocation pointers, then
// patch every pending jump recorded since the sentinel to the current
// program position.
func (f *scopeFrame) exit() {
	if n := len(f.snapshots); n > 0 {
		snap := f.snapshots[n-1]
		f.snapshots = f.snapshots[:n-1]
		f.gen.dataAddress = snap[0]
		f.gen.tempAddress = snap[1]
	}
	for len(f.pending) > 0 {
		top := f.pending[len(f.pending)-1]
		if top == sentinel {
			f.pending = f.pending[:len(f.pending)-1]
			return
		}
		f.backpatchOne()
	}
}

// reserveJump records a pending slot at the current program position and
// reserves it in the buffer.
func (f *scopeFrame) reserveJump() {
	f.pending = append(f.pending, f.gen.program.Len())
	f.gen.program.Reserve()
}

// backpatchOne pops the most recent pending slot and patches it with a JP
// to the current program position.
func (f *scopeFrame) backpatchOne() {
	n := len(f.pending)
	if n == 0 || f.pending[n-1] == sentinel {
		return
	}
	slot := f.pending[n-1]
	f.pending = f.pending[:n-1]
	f.gen.program.Patch(slot, OpJp, direct(f.gen.program.Len()), "", "")
}

// open reports whether the frame still holds an unpopped sentinel.
func (f *scopeFrame) open() bool {
	return len(f.pending) > 0
}
