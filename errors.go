package evaljs

import (
	"errors"
)

var (
	// ErrMaxDepth is returned when nested calls exceed the configured depth.
	ErrMaxDepth = errors.New("evaljs: maximum call depth exceeded")

	// ErrNotCallable is returned by Function.Call on a nil function.
	ErrNotCallable = errors.New("evaljs: value is not callable")
)

// returnSignal unwinds statement evaluation up to the enclosing function
// call or program.
type returnSignal struct {
	value Value
}

func (*returnSignal) Error() string { return "return outside of function" }

// asReturn reports whether err is a return signal and yields its value.
func asReturn(err error) (Value, bool) {
	var sig *returnSignal
	if errors.As(err, &sig) {
		return sig.value, true
	}
	return Value{}, false
}
