package dispatch

import (
	"errors"
	"reflect"
)

type matcher interface {
	Match(err error) bool
}

// KindOf returns an error kind that matches every error in the chain which has the type E.
// It can be passed to Xor, when the failures to suppress are typed errors rather than sentinel values.
//
//	dispatch.Xor(seq, dispatch.KindOf[*strconv.NumError]())
func KindOf[E error]() error {
	return typeKind[E]{}
}

type typeKind[E error] struct{}

func (typeKind[E]) Error() string {
	return "kind of " + reflect.TypeFor[E]().String()
}

func (typeKind[E]) Match(err error) bool {
	var target E
	return errors.As(err, &target)
}
