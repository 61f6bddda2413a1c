package seqkit

import "iter"

// FromIterSeq adapts a range-over-func sequence.
// Each traversal pulls from a new run of the given iter.Seq.
func FromIterSeq[T any](seq iter.Seq[T]) Sequence[T] {
	return SequenceFunc[T](func() Iterator[T] {
		next, stop := iter.Pull(seq)
		return &pullIter[T]{next: next, stop: stop}
	})
}

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()

	peeked bool
	ok     bool
	value  T
	done   bool
}

func (i *pullIter[T]) peek() bool {
	if i.done {
		return false
	}
	if !i.peeked {
		i.value, i.ok = i.next()
		i.peeked = true
		if !i.ok {
			i.done = true
			i.stop()
		}
	}
	return i.ok
}

func (i *pullIter[T]) HasNext() bool {
	return i.peek()
}

func (i *pullIter[T]) Next() (T, error) {
	if !i.peek() {
		var zero T
		return zero, ErrExhausted
	}
	i.peeked = false
	return i.value, nil
}

func (i *pullIter[T]) Err() error { return nil }

func (i *pullIter[T]) Close() error {
	if i.done {
		return nil
	}
	i.done = true
	i.stop()
	return nil
}

// ToIterSeq returns a range-over-func view of the sequence.
// The traversal is closed when the loop finishes or breaks.
// Iteration errors are not visible through iter.Seq, use Collect when the source can fail.
func ToIterSeq[T any](seq Sequence[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		i := seq.Iterator()
		defer i.Close()
		for i.HasNext() {
			v, err := i.Next()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
