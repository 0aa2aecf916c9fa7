package diff

import (
	"fmt"
	"reflect"
)

// Apply walks the script and mutates target until it holds the same elements as source. The script
// must have been computed with target as the first and source as the second sequence.
//
// Mutations happen one at a time from left to right: a delete removes the element at the current
// position, an insert inserts the next element of source. If updates is set, every element of a
// matching run whose value differs from its counterpart in source is replaced with the source
// element. This is useful if eq only compares keys and the payload of matching elements may
// differ. Values are compared with reflect.DeepEqual, so a value that is not deeply equal to
// itself, such as one holding a NaN float, is set again on every call.
//
// Apply is not safe for concurrent use with other mutations of target.
func Apply[T any](s Script, target List[T], source Sequence[T], updates bool) error {
	switch {
	case isNil(target):
		return fmt.Errorf("%w: target list is nil", ErrInvalidArgument)
	case isNil(source):
		return fmt.Errorf("%w: source sequence is nil", ErrInvalidArgument)
	case len(s) == 0 || s[0] != (Point{}):
		return fmt.Errorf("%w: script does not start at (0,0)", ErrScriptMismatch)
	}
	if end, want := s[len(s)-1], (Point{target.Len(), source.Len()}); end != want {
		return fmt.Errorf("%w: script ends at %v, want %v", ErrScriptMismatch, end, want)
	}

	t, u := 0, 0 // positions in target and source
	for i := 1; i < len(s); i++ {
		op := s.op(i)
		switch op.Kind {
		case Match:
			if updates {
				for j := range op.Len {
					v := source.At(u + j)
					if !reflect.DeepEqual(target.At(t+j), v) {
						target.Set(t+j, v)
					}
				}
			}
			t += op.Len
			u += op.Len
		case Delete:
			// The following elements shift down, t stays put.
			target.Remove(t)
		case Insert:
			target.Insert(t, source.At(u))
			t++
			u++
		}
	}
	return nil
}

// Replace transforms target into source with the fewest inserts and deletes. It is the same as
// calling Compute followed by Apply.
func Replace[T any](target List[T], source Sequence[T], eq func(x, y T) bool, updates bool) error {
	if isNil(target) {
		return fmt.Errorf("%w: target list is nil", ErrInvalidArgument)
	}
	s, err := Compute[T](target, source, eq)
	if err != nil {
		return err
	}
	return Apply(s, target, source, updates)
}
