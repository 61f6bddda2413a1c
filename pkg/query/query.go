// Package query implements a lazy, chainable query over any seqkit.Sequence.
//
// Chaining operations like Filter, Slice, Append and Prepend never touch the data,
// they wrap the previous query into a new one.
// The work happens when the query is traversed,
// and every traversal walks the whole chain from its source again.
//
//	q := query.Of("a", "au", "e", "ey").
//		Filter(func(s string) bool { return 1 < len(s) }).
//		Slice(1)
//
//	vs, err := q.Collect() // []string{"ey"}
package query

import (
	"iter"
	"sync/atomic"

	"go.llib.dev/lazyq/pkg/dispatch"
	"go.llib.dev/lazyq/pkg/seqkit"
)

// Predicate tells whether an element is accepted.
type Predicate[T any] func(T) bool

// Query is a lazy sequence.
// A Query is immutable once constructed, and safe to traverse from multiple goroutines
// as long as its source supports independent concurrent traversals.
type Query[T any] struct {
	source seqkit.Sequence[T]
	// predicate is a predicate producer, it is invoked for every new traversal,
	// so stateful predicates never share state between two traversals.
	predicate func() Predicate[T]
	// length is -1 until the first full traversal finishes.
	length atomic.Int64
}

const unknownLength = -1

func newQuery[T any](source seqkit.Sequence[T], predicate func() Predicate[T]) *Query[T] {
	q := &Query[T]{source: source, predicate: predicate}
	q.length.Store(unknownLength)
	if sized, ok := source.(seqkit.Sized); ok && predicate == nil {
		q.length.Store(int64(sized.Len()))
	}
	return q
}

// New wraps a sequence into a Query.
// When the sequence is a pre-realized collection (seqkit.Sized),
// its length is known without a traversal.
func New[T any](seq seqkit.Sequence[T]) *Query[T] {
	return newQuery[T](seq, nil)
}

// Of creates a Query from a fixed list of values.
func Of[T any](vs ...T) *Query[T] {
	return New(seqkit.Slice(vs))
}

// FromSlice creates a Query from a slice.
// The slice is not copied.
func FromSlice[T any](vs []T) *Query[T] {
	return New(seqkit.Slice(vs))
}

// FromString creates a Query over the characters of a string, as one-character strings.
func FromString(s string) *Query[string] {
	return New(seqkit.String(s))
}

// FromSeq creates a Query from a range-over-func sequence.
func FromSeq[T any](seq iter.Seq[T]) *Query[T] {
	return New(seqkit.FromIterSeq(seq))
}

// Iterator starts a new traversal of the query.
func (q *Query[T]) Iterator() seqkit.Iterator[T] {
	var accept Predicate[T]
	if q.predicate != nil {
		accept = q.predicate()
	}
	return newFilterIter(q, q.source.Iterator(), accept)
}

// All returns the query as a range-over-func sequence.
func (q *Query[T]) All() iter.Seq[T] {
	return seqkit.ToIterSeq[T](q)
}

// Filter returns a query which only yields the elements that satisfy the predicate.
func (q *Query[T]) Filter(predicate Predicate[T]) *Query[T] {
	return newQuery[T](q, func() Predicate[T] { return predicate })
}

// Slice returns a query that skips the first start elements.
//
//	query.Of("a", "b", "c").Slice(1) // "b", "c"
func (q *Query[T]) Slice(start int) *Query[T] {
	return newQuery[T](q, func() Predicate[T] {
		var position int
		return func(T) bool {
			position++
			return start < position
		}
	})
}

// SliceRange returns a query which yields the elements between start and end, both bounds excluded.
// Positions are one-based, so SliceRange(x, y) yields the elements at positions x+1 to y-1.
// When end <= start+1, the result is empty.
//
//	query.Of("a", "b", "c", "d").SliceRange(1, 4) // "b", "c"
func (q *Query[T]) SliceRange(start, end int) *Query[T] {
	return newQuery[T](q, func() Predicate[T] {
		var position int
		return func(T) bool {
			position++
			return start < position && position < end
		}
	})
}

// Append returns a query that yields the elements of this query followed by the elements of the other sequence.
func (q *Query[T]) Append(other seqkit.Sequence[T]) *Query[T] {
	return newQuery[T](seqkit.Concat[T](q, other), nil)
}

// Prepend returns a query that yields the elements of the other sequence followed by the elements of this query.
func (q *Query[T]) Prepend(other seqkit.Sequence[T]) *Query[T] {
	return newQuery[T](seqkit.Concat[T](other, q), nil)
}

// Length returns the number of elements in the query.
// The first call traverses the whole query, the result is memoized afterwards.
// If the traversal fails, the count of elements seen so far is returned and nothing is memoized,
// use Count to observe the error.
func (q *Query[T]) Length() int {
	n, _ := q.Count()
	return n
}

// Count is the error aware form of Length.
func (q *Query[T]) Count() (int, error) {
	if n := q.length.Load(); n != unknownLength {
		return int(n), nil
	}
	n, err := seqkit.Count(q.Iterator())
	if err != nil {
		return n, err
	}
	q.memoize(n)
	return int(q.length.Load()), nil
}

func (q *Query[T]) memoize(n int) {
	q.length.CompareAndSwap(unknownLength, int64(n))
}

// Get returns the element at the zero-based index.
// The second return value is false when the query is shorter than index+1.
func (q *Query[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 {
		return zero, false
	}
	i := q.Iterator()
	defer i.Close()
	for n := 0; i.HasNext(); n++ {
		v, err := i.Next()
		if err != nil {
			return zero, false
		}
		if n == index {
			return v, true
		}
	}
	return zero, false
}

// First returns the first element of the query.
func (q *Query[T]) First() (T, bool) {
	return q.Get(0)
}

// IsEmpty reports whether the query yields no element.
func (q *Query[T]) IsEmpty() bool {
	if n := q.length.Load(); n != unknownLength {
		return n == 0
	}
	i := q.Iterator()
	defer i.Close()
	return !i.HasNext()
}

// Each calls fn with every element of the query, and returns the query itself.
// A traversal error ends the iteration silently; use ForEach when the source can fail,
// such as a database backed sequence.
func (q *Query[T]) Each(fn func(T)) *Query[T] {
	_ = q.ForEach(func(v T) error {
		fn(v)
		return nil
	})
	return q
}

// ForEach calls fn with every element of the query.
// It stops at the first error, either returned by fn or by the traversal.
func (q *Query[T]) ForEach(fn func(T) error) (rErr error) {
	i := q.Iterator()
	defer func() {
		if err := i.Close(); err != nil && rErr == nil {
			rErr = err
		}
	}()
	for i.HasNext() {
		v, err := i.Next()
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return i.Err()
}

// Collect traverses the query and returns its elements.
func (q *Query[T]) Collect() ([]T, error) {
	return seqkit.Collect(q.Iterator())
}

// Map transforms every element of the query with transform.
// Unlike the rest of the chaining operations, Map is eager:
// it traverses the query when called, and the result query wraps the transformed values.
// If the traversal fails, the result query yields the values transformed before the failure,
// then reports the error.
func Map[To, From any](q *Query[From], transform func(From) To) *Query[To] {
	var vs = make([]To, 0)
	err := q.ForEach(func(v From) error {
		vs = append(vs, transform(v))
		return nil
	})
	if err != nil {
		return New(seqkit.Concat(seqkit.Slice(vs), seqkit.Error[To](err)))
	}
	return FromSlice(vs)
}

// Broadcast returns a dispatch facade that forwards every invocation to all elements of the query.
func (q *Query[T]) Broadcast() *dispatch.Facade[T] {
	return dispatch.Each[T](q)
}

// Compose returns a dispatch facade that forwards an invocation to the first element capable of handling it.
func (q *Query[T]) Compose() *dispatch.Facade[T] {
	return dispatch.Compose[T](q)
}

// Xor returns a dispatch facade that tries the elements one by one until one of them succeeds.
// Failures matching any of the suppressed errors are ignored.
func (q *Query[T]) Xor(suppressed ...error) *dispatch.Facade[T] {
	return dispatch.Xor[T](q, suppressed...)
}
