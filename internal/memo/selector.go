package memo

// Selector derives R from S through a comparable intermediate input.
// Select recomputes only when the extracted input differs (under ==)
// from the previous call, otherwise it returns the memoized result.
type Selector[S any, I comparable, R any] struct {
	input   func(S) I
	compute func(I) R

	primed     bool
	lastInput  I
	lastResult R
	recomputes int
}

// NewSelector builds a selector from an input extractor and a compute
// function over the extracted value.
func NewSelector[S any, I comparable, R any](input func(S) I, compute func(I) R) *Selector[S, I, R] {
	if input == nil || compute == nil {
		panic("memo: nil selector function")
	}
	return &Selector[S, I, R]{input: input, compute: compute}
}

// Select returns the derived value for s, recomputing only when the
// extracted input changed.
func (sel *Selector[S, I, R]) Select(s S) R {
	in := sel.input(s)
	if sel.primed && in == sel.lastInput {
		return sel.lastResult
	}
	sel.primed = true
	sel.lastInput = in
	sel.lastResult = sel.compute(in)
	sel.recomputes++
	return sel.lastResult
}

// Recomputations returns how many times the compute function has run.
func (sel *Selector[S, I, R]) Recomputations() int {
	return sel.recomputes
}

// Selector2 is a Selector over two extracted inputs. Recomputation
// happens when either input changes.
type Selector2[S any, I1, I2 comparable, R any] struct {
	input1  func(S) I1
	input2  func(S) I2
	compute func(I1, I2) R

	primed     bool
	last1      I1
	last2      I2
	lastResult R
	recomputes int
}

// NewSelector2 builds a two-input selector.
func NewSelector2[S any, I1, I2 comparable, R any](
	input1 func(S) I1,
	input2 func(S) I2,
	compute func(I1, I2) R,
) *Selector2[S, I1, I2, R] {
	if input1 == nil || input2 == nil || compute == nil {
		panic("memo: nil selector function")
	}
	return &Selector2[S, I1, I2, R]{input1: input1, input2: input2, compute: compute}
}

// Select returns the derived value for s.
func (sel *Selector2[S, I1, I2, R]) Select(s S) R {
	in1 := sel.input1(s)
	in2 := sel.input2(s)
	if sel.primed && in1 == sel.last1 && in2 == sel.last2 {
		return sel.lastResult
	}
	sel.primed = true
	sel.last1 = in1
	sel.last2 = in2
	sel.lastResult = sel.compute(in1, in2)
	sel.recomputes++
	return sel.lastResult
}

// Recomputations returns how many times the compute function has run.
func (sel *Selector2[S, I1, I2, R]) Recomputations() int {
	return sel.recomputes
}
