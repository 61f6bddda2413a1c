package seqkit

// Slice adapts a slice into a pre-realized Sequence.
// The slice is not copied, the sequence reads it at traversal time.
func Slice[T any](vs []T) Sequence[T] {
	return sliceSeq[T](vs)
}

// Values is the variadic form of Slice.
func Values[T any](vs ...T) Sequence[T] {
	return Slice[T](vs)
}

// Bytes adapts a byte array into a sequence of single bytes.
func Bytes(bs []byte) Sequence[byte] {
	return Slice[byte](bs)
}

type sliceSeq[T any] []T

func (s sliceSeq[T]) Len() int { return len(s) }

func (s sliceSeq[T]) Iterator() Iterator[T] {
	return &sliceIter[T]{Slice: s}
}

type sliceIter[T any] struct {
	Slice []T

	closed bool
	index  int
}

func (i *sliceIter[T]) HasNext() bool {
	return !i.closed && i.index < len(i.Slice)
}

func (i *sliceIter[T]) Next() (T, error) {
	if !i.HasNext() {
		var zero T
		return zero, ErrExhausted
	}
	v := i.Slice[i.index]
	i.index++
	return v, nil
}

func (i *sliceIter[T]) Err() error {
	return nil
}

func (i *sliceIter[T]) Close() error {
	i.closed = true
	return nil
}
