// Package fx holds small generic function helpers: currying, partial
// application and composition.
//
// Go generics cannot express arity-generic currying, so the helpers are
// fixed-arity. Curry2 and Curry3 cover the shapes the rest of the code
// actually uses.
package fx

// Curry2 turns a two-argument function into a chain of one-argument
// functions.
func Curry2[A, B, R any](f func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return f(a, b)
		}
	}
}

// Curry3 turns a three-argument function into a chain of one-argument
// functions.
func Curry3[A, B, C, R any](f func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R {
				return f(a, b, c)
			}
		}
	}
}

// Partial1 fixes the first argument of a two-argument function.
func Partial1[A, B, R any](f func(A, B) R, a A) func(B) R {
	return func(b B) R {
		return f(a, b)
	}
}

// Compose2 returns g after f applied right to left: Compose2(f, g)(x)
// is f(g(x)).
func Compose2[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return func(a A) C {
		return f(g(a))
	}
}

// Pipe2 applies left to right: Pipe2(f, g)(x) is g(f(x)).
func Pipe2[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// PipeAll chains any number of same-type stages left to right.
func PipeAll[T any](stages ...func(T) T) func(T) T {
	return func(v T) T {
		for _, stage := range stages {
			v = stage(v)
		}
		return v
	}
}
