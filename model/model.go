package model

import "github.com/Chronicle20/atlas-model/model"

// CollapseProvider turns a curried provider constructor into a plain lookup.
func CollapseProvider[A, T any](f func(A) model.Provider[T]) func(A) (T, error) {
	return func(a A) (T, error) {
		return f(a)()
	}
}
