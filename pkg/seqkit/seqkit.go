// Package seqkit defines the pull based iteration protocol that lazyq is built on,
// and the adapters that turn primitive sources into sequences.
//
// # Summary
//
// A Sequence is a re-iterable producer of values.
// Every call to Sequence.Iterator starts a fresh traversal from the beginning,
// so two traversals of the same Sequence never share state.
// An Iterator is the cursor of a single traversal.
// It is forward-only and read-only, there is no way to remove or replace elements through it.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package seqkit

import (
	"io"

	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrExhausted errorkit.Error = "ErrExhausted"

// Iterator is the cursor of a single traversal over a Sequence.
type Iterator[T any] interface {
	// HasNext reports whether Next will yield a value.
	// It doesn't advance the iterator, calling it many times in a row is safe.
	HasNext() bool
	// Next returns the next value of the traversal.
	// When no more value is left, it returns ErrExhausted.
	Next() (T, error)
	// Err return the error cause that stopped the traversal early.
	// In-memory sources always return nil.
	Err() error
	// Closer is required to make it able to release resources that the traversal holds,
	// like an open transaction or a result set.
	// Close is safe to call more than once.
	io.Closer
}

// Sequence is a forward-only, pull-based producer of a typed element stream.
type Sequence[T any] interface {
	// Iterator starts a new, independent traversal.
	Iterator() Iterator[T]
}

// Sized is implemented by pre-realized collections, where the number of elements is known up front.
type Sized interface {
	Len() int
}

// SequenceFunc allows a plain function to act as a Sequence.
type SequenceFunc[T any] func() Iterator[T]

func (fn SequenceFunc[T]) Iterator() Iterator[T] { return fn() }

// Empty sequence is used to represent a nil result with the Null object pattern.
func Empty[T any]() Sequence[T] {
	return Slice[T](nil)
}

// Error returns a Sequence that has no elements, and whose traversals all end with the given error.
// This can be used when a source encounters a non recoverable error before the traversal could start.
func Error[T any](err error) Sequence[T] {
	return SequenceFunc[T](func() Iterator[T] {
		return &errorIter[T]{err: err}
	})
}

type errorIter[T any] struct {
	err error
}

func (i *errorIter[T]) HasNext() bool { return false }

func (i *errorIter[T]) Next() (T, error) {
	var zero T
	return zero, ErrExhausted
}

func (i *errorIter[T]) Err() error { return i.err }

func (i *errorIter[T]) Close() error { return nil }

// Collect drains the iterator into a slice and closes it.
func Collect[T any](i Iterator[T]) (vs []T, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	for i.HasNext() {
		v, err := i.Next()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, i.Err()
}

// Count drains the iterator and tells how many elements it had.
func Count[T any](i Iterator[T]) (n int, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	for i.HasNext() {
		if _, err := i.Next(); err != nil {
			return n, err
		}
		n++
	}
	return n, i.Err()
}
