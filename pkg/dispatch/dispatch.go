// Package dispatch treats a sequence of elements as a single addressable target.
//
// A Facade holds a sequence and a dispatch Policy.
// An operation is invoked through the facade with Invoke or Do,
// and the policy decides which elements receive it:
//
//   - Broadcast: every element, in order.
//   - FirstCapable: the first element that has the capability.
//   - OrderedRetry: the elements one by one, until one of them succeeds.
//
// A capability is a Go interface type.
// An element has the capability when its dynamic type implements the interface.
//
// To get a facade that looks like a single element,
// implement the capability interface on a small type that forwards to Do or Invoke:
//
//	type Incrementers struct{ F *dispatch.Facade[Incrementer] }
//
//	func (f Incrementers) Inc() error {
//		return dispatch.Do(f.F, func(i Incrementer) error { return i.Inc() })
//	}
package dispatch

import (
	"errors"
	"fmt"
	"reflect"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/lazyq/pkg/seqkit"
)

const (
	// ErrNoResponder is returned by a FirstCapable facade when no element has the requested capability.
	ErrNoResponder errorkit.Error = "ErrNoResponder"
	// ErrUnsupported is returned when the requested capability is not part of the facade's capability set.
	ErrUnsupported errorkit.Error = "ErrUnsupported"
	// ErrIncapable is returned when an element lacks a capability that the facade advertises.
	ErrIncapable errorkit.Error = "ErrIncapable"
	// ErrUnreachable signals an internal invariant violation in OrderedRetry dispatching.
	ErrUnreachable errorkit.Error = "ErrUnreachable"
)

type Policy int

const (
	Broadcast Policy = iota
	FirstCapable
	OrderedRetry
)

func (p Policy) String() string {
	switch p {
	case Broadcast:
		return "broadcast"
	case FirstCapable:
		return "first-capable"
	case OrderedRetry:
		return "ordered-retry"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Facade forwards invocations to the elements of a sequence.
// It keeps no state besides the sequence reference,
// every invocation reads the sequence anew.
type Facade[T any] struct {
	seq        seqkit.Sequence[T]
	policy     Policy
	suppressed []error
}

// Each returns a facade which broadcasts every invocation to all elements.
// The capability set is the capabilities of the first element.
func Each[T any](seq seqkit.Sequence[T]) *Facade[T] {
	return &Facade[T]{seq: seq, policy: Broadcast}
}

// Compose returns a facade which forwards an invocation to the first capable element.
// The capability set is the union of all elements' capabilities.
func Compose[T any](seq seqkit.Sequence[T]) *Facade[T] {
	return &Facade[T]{seq: seq, policy: FirstCapable}
}

// Xor returns a facade which tries the elements in order and returns the first success.
// Failures that match any of the suppressed error kinds are ignored.
// An error kind is either a sentinel error value, matched with errors.Is,
// or a type based kind made with KindOf.
// The capability set is the capabilities of the first element.
func Xor[T any](seq seqkit.Sequence[T], suppressed ...error) *Facade[T] {
	return &Facade[T]{seq: seq, policy: OrderedRetry, suppressed: suppressed}
}

func (f *Facade[T]) Policy() Policy { return f.policy }

// Supports tells whether capability C is in the capability set of the facade.
// A sequence that is empty or can't be read has an empty capability set.
func Supports[C, T any](f *Facade[T]) bool {
	i := f.seq.Iterator()
	defer i.Close()
	for i.HasNext() {
		e, err := i.Next()
		if err != nil {
			return false
		}
		if _, ok := any(e).(C); ok {
			return true
		}
		if f.policy != FirstCapable {
			return false
		}
	}
	return false
}

// Invoke dispatches op according to the facade's policy.
//
// Broadcast calls op with every element and returns the result of the last call.
// The first failure aborts the broadcast and is returned.
// An empty sequence makes the invocation a no-op.
//
// FirstCapable calls op with the first element that implements C, and returns its result.
//
// OrderedRetry calls op with the elements in order and returns the first success.
// If every element fails, the last non suppressed failure is returned.
func Invoke[C, R, T any](f *Facade[T], op func(C) (R, error)) (R, error) {
	switch f.policy {
	case Broadcast:
		return broadcast(f, op)
	case FirstCapable:
		return firstCapable(f, op)
	case OrderedRetry:
		return orderedRetry(f, op)
	default:
		var zero R
		return zero, fmt.Errorf("unknown dispatch policy: %s", f.policy)
	}
}

// Do is the form of Invoke for operations without a result value.
func Do[C, T any](f *Facade[T], op func(C) error) error {
	_, err := Invoke(f, func(c C) (struct{}, error) {
		return struct{}{}, op(c)
	})
	return err
}

func broadcast[C, R, T any](f *Facade[T], op func(C) (R, error)) (_ R, rErr error) {
	var result R
	i := f.seq.Iterator()
	defer errorkit.Finish(&rErr, i.Close)
	for n := 0; i.HasNext(); n++ {
		e, err := i.Next()
		if err != nil {
			return result, err
		}
		c, ok := any(e).(C)
		if !ok {
			return result, incapable[C](n)
		}
		result, err = op(c)
		if err != nil {
			return result, err
		}
	}
	return result, i.Err()
}

func firstCapable[C, R, T any](f *Facade[T], op func(C) (R, error)) (_ R, rErr error) {
	var zero R
	i := f.seq.Iterator()
	defer errorkit.Finish(&rErr, i.Close)
	for i.HasNext() {
		e, err := i.Next()
		if err != nil {
			return zero, err
		}
		if c, ok := any(e).(C); ok {
			return op(c)
		}
	}
	if err := i.Err(); err != nil {
		return zero, err
	}
	return zero, ErrNoResponder.F("no element implements %s", capabilityName[C]())
}

func orderedRetry[C, R, T any](f *Facade[T], op func(C) (R, error)) (_ R, rErr error) {
	var (
		zero       R
		pending    error
		suppressed error
	)
	i := f.seq.Iterator()
	defer errorkit.Finish(&rErr, i.Close)
	var n int
	for ; i.HasNext(); n++ {
		e, err := i.Next()
		if err != nil {
			return zero, err
		}
		if c, ok := any(e).(C); ok {
			result, err := op(c)
			if err == nil {
				return result, nil
			}
			if f.isSuppressed(err) {
				suppressed = err
				continue
			}
			pending = err
			continue
		}
		err = incapable[C](n)
		if n == 0 {
			return zero, err
		}
		if f.isSuppressed(err) {
			suppressed = err
			continue
		}
		pending = err
	}
	if err := i.Err(); err != nil {
		return zero, err
	}
	if n == 0 {
		return zero, ErrUnsupported.F("%s is not supported by an empty sequence", capabilityName[C]())
	}
	if pending != nil {
		return zero, pending
	}
	return zero, ErrUnreachable.Wrap(suppressed)
}

func (f *Facade[T]) isSuppressed(err error) bool {
	for _, kind := range f.suppressed {
		if m, ok := kind.(matcher); ok {
			if m.Match(err) {
				return true
			}
			continue
		}
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// incapable builds the error for an element that lacks capability C.
// For the first element, this means C is not in the capability set at all.
func incapable[C any](index int) error {
	if index == 0 {
		return ErrUnsupported.F("%s is not in the capability set", capabilityName[C]())
	}
	return ErrIncapable.F("element #%d does not implement %s", index, capabilityName[C]())
}

func capabilityName[C any]() string {
	return reflect.TypeFor[C]().String()
}
