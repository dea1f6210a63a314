package table

// Functional helpers used by the pivot internals. Map applies a function
// independently to each element; Reduce folds a slice pairwise into a
// single accumulated result.

// Map returns a new slice holding f applied to each element of in.
func Map[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// TryMap is Map for functions that can fail. The first error stops the
// mapping and is returned.
func TryMap[T, U any](in []T, f func(T) (U, error)) ([]U, error) {
	out := make([]U, len(in))
	for i, v := range in {
		u, err := f(v)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// Filter returns the elements of in for which keep returns true.
func Filter[T any](in []T, keep func(T) bool) []T {
	var out []T
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Reduce folds in into a single value, starting from init.
func Reduce[T, A any](in []T, init A, f func(A, T) A) A {
	acc := init
	for _, v := range in {
		acc = f(acc, v)
	}
	return acc
}

// TryReduce is Reduce for binary functions that can fail.
func TryReduce[T, A any](in []T, init A, f func(A, T) (A, error)) (A, error) {
	acc := init
	for _, v := range in {
		var err error
		acc, err = f(acc, v)
		if err != nil {
			return acc, err
		}
	}
	return acc, nil
}
