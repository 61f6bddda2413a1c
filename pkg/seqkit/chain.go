package seqkit

import "go.llib.dev/frameless/pkg/errorkit"

// Chain concatenates iterators end-to-end.
// It exhausts the first iterator before it starts to read from the next one.
// Once every member is exhausted, the chain stays exhausted.
// If a member stops with an error, the chain stops as well and reports it through Err.
func Chain[T any](members ...Iterator[T]) Iterator[T] {
	return &chainIter[T]{members: members}
}

type chainIter[T any] struct {
	members []Iterator[T]
	index   int
	err     error
}

// advance moves to the next member that still has values.
func (i *chainIter[T]) advance() bool {
	for i.index < len(i.members) {
		current := i.members[i.index]
		if current.HasNext() {
			return true
		}
		if err := current.Err(); err != nil {
			i.err = err
			i.index = len(i.members)
			return false
		}
		i.index++
	}
	return false
}

func (i *chainIter[T]) HasNext() bool {
	return i.advance()
}

func (i *chainIter[T]) Next() (T, error) {
	if !i.advance() {
		var zero T
		return zero, ErrExhausted
	}
	return i.members[i.index].Next()
}

func (i *chainIter[T]) Err() error {
	return i.err
}

func (i *chainIter[T]) Close() error {
	var errs []error
	for _, m := range i.members {
		errs = append(errs, m.Close())
	}
	i.index = len(i.members)
	return errorkit.Merge(errs...)
}

// Concat returns a Sequence that traverses the given sequences one after the other.
func Concat[T any](seqs ...Sequence[T]) Sequence[T] {
	return SequenceFunc[T](func() Iterator[T] {
		members := make([]Iterator[T], 0, len(seqs))
		for _, s := range seqs {
			members = append(members, lazyIterator(s))
		}
		return Chain(members...)
	})
}

// lazyIterator defers the start of a traversal until the chain reaches it.
// This keeps resource backed sources from opening early.
func lazyIterator[T any](seq Sequence[T]) Iterator[T] {
	return &lazyIter[T]{seq: seq}
}

type lazyIter[T any] struct {
	seq    Sequence[T]
	iter   Iterator[T]
	closed bool
}

func (i *lazyIter[T]) get() Iterator[T] {
	if i.iter == nil {
		i.iter = i.seq.Iterator()
	}
	return i.iter
}

func (i *lazyIter[T]) HasNext() bool {
	if i.closed {
		return false
	}
	return i.get().HasNext()
}

func (i *lazyIter[T]) Next() (T, error) {
	if i.closed {
		var zero T
		return zero, ErrExhausted
	}
	return i.get().Next()
}

func (i *lazyIter[T]) Err() error {
	if i.iter == nil {
		return nil
	}
	return i.iter.Err()
}

func (i *lazyIter[T]) Close() error {
	i.closed = true
	if i.iter == nil {
		return nil
	}
	return i.iter.Close()
}
