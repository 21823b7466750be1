package envelope

import "fmt"

// Guard runs op and converts a panic into an Unexpected error so that callers
// always get an envelope back.
func Guard[T any](op func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			if e, ok := r.(error); ok {
				err = NewUnexpected(e)
				return
			}
			err = NewUnexpected(fmt.Errorf("panic: %v", r))
		}
	}()
	return op()
}
