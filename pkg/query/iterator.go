package query

import "go.llib.dev/lazyq/pkg/seqkit"

type filterState int

const (
	seeking filterState = iota
	hasNext
	exhausted
)

// filterIter yields the elements of the source that pass the predicate.
// It always looks one element ahead, so HasNext never consumes anything.
// When the source runs out without an error, it reports the number of yielded elements back to its owner.
type filterIter[T any] struct {
	owner  *Query[T]
	source seqkit.Iterator[T]
	accept Predicate[T]

	state filterState
	next  T
	count int
	err   error
}

func newFilterIter[T any](owner *Query[T], source seqkit.Iterator[T], accept Predicate[T]) *filterIter[T] {
	i := &filterIter[T]{owner: owner, source: source, accept: accept}
	i.seek()
	return i
}

func (i *filterIter[T]) seek() {
	i.state = seeking
	for i.source.HasNext() {
		v, err := i.source.Next()
		if err != nil {
			i.err = err
			i.state = exhausted
			return
		}
		if i.accept == nil || i.accept(v) {
			i.count++
			i.next = v
			i.state = hasNext
			return
		}
	}
	i.state = exhausted
	if i.source.Err() == nil {
		i.owner.memoize(i.count)
	}
}

func (i *filterIter[T]) HasNext() bool {
	return i.state == hasNext
}

func (i *filterIter[T]) Next() (T, error) {
	if i.state != hasNext {
		var zero T
		return zero, seqkit.ErrExhausted
	}
	v := i.next
	var zero T
	i.next = zero
	i.seek()
	return v, nil
}

func (i *filterIter[T]) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.source.Err()
}

func (i *filterIter[T]) Close() error {
	i.state = exhausted
	return i.source.Close()
}
