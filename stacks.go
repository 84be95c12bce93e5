package phrase

// stacks holds the runtime frames of the constructs being evaluated. Every
// construct pushes before evaluating its body and pops on the way out, error
// unwinding included; depth arguments count from the innermost frame, 1
// based.
type stacks struct {
	calls  []callFrame
	counts []int
	iters  []iterFrame
}

// callFrame binds the evaluated arguments of one user function invocation.
type callFrame struct {
	at   int
	args []Value
}

// iterFrame tracks the current element of one each loop.
type iterFrame struct {
	key  Value
	item Value
	stop bool
}

type stackMark struct{ calls, counts, iters int }

func (st *stacks) mark() stackMark {
	return stackMark{len(st.calls), len(st.counts), len(st.iters)}
}

// restore truncates every stack back to a prior mark.
func (st *stacks) restore(m stackMark) {
	if m.calls < len(st.calls) {
		st.calls = st.calls[:m.calls]
	}
	if m.counts < len(st.counts) {
		st.counts = st.counts[:m.counts]
	}
	if m.iters < len(st.iters) {
		st.iters = st.iters[:m.iters]
	}
}

func (st *stacks) pushCall(at int, args []Value) { st.calls = append(st.calls, callFrame{at, args}) }
func (st *stacks) pushCount()                    { st.counts = append(st.counts, 1) }
func (st *stacks) pushIter()                     { st.iters = append(st.iters, iterFrame{}) }

func (st *stacks) popCall() {
	if i := len(st.calls) - 1; i >= 0 {
		st.calls = st.calls[:i]
	}
}

func (st *stacks) popCount() {
	if i := len(st.counts) - 1; i >= 0 {
		st.counts = st.counts[:i]
	}
}

func (st *stacks) popIter() {
	if i := len(st.iters) - 1; i >= 0 {
		st.iters = st.iters[:i]
	}
}

// arg returns the n-th (1 based) argument of the innermost call.
func (st *stacks) arg(n int) (Value, bool) {
	i := len(st.calls) - 1
	if i < 0 {
		return Value{}, false
	}
	args := st.calls[i].args
	if n < 1 || n > len(args) {
		return Value{}, false
	}
	return args[n-1], true
}

func (st *stacks) setCount(n int) { st.counts[len(st.counts)-1] = n }

func (st *stacks) count(depth int) (int, bool) {
	i := len(st.counts) - depth
	if depth < 1 || i < 0 {
		return 0, false
	}
	return st.counts[i], true
}

func (st *stacks) iter(depth int) (*iterFrame, bool) {
	i := len(st.iters) - depth
	if depth < 1 || i < 0 {
		return nil, false
	}
	return &st.iters[i], true
}
