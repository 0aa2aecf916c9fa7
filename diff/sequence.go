package diff

import (
	"reflect"
	"slices"
)

// Sequence is a read-only, index-addressable sequence of elements.
type Sequence[T any] interface {
	Len() int
	At(i int) T
}

// List is a mutable sequence. Apply mutates a List one element at a time.
//
// Implementations are expected to provide amortized O(1) access; with slower random access the
// cost of Apply grows accordingly.
type List[T any] interface {
	Sequence[T]
	Set(i int, v T)
	Insert(i int, v T)
	Remove(i int)
}

// Slice adapts a slice to a Sequence.
type Slice[T any] []T

func (s Slice[T]) Len() int   { return len(s) }
func (s Slice[T]) At(i int) T { return s[i] }

// SliceList adapts a slice to a List. Mutations update the slice in place, use a pointer to it:
//
//	l := diff.SliceList[string](lines)
//	err := diff.Replace(&l, diff.Slice[string](next), eq, false)
type SliceList[T any] []T

func (l *SliceList[T]) Len() int          { return len(*l) }
func (l *SliceList[T]) At(i int) T        { return (*l)[i] }
func (l *SliceList[T]) Set(i int, v T)    { (*l)[i] = v }
func (l *SliceList[T]) Insert(i int, v T) { *l = slices.Insert(*l, i, v) }
func (l *SliceList[T]) Remove(i int)      { *l = slices.Delete(*l, i, i+1) }

// isNil reports whether v is nil or holds a nil pointer, map, channel or func. A nil slice is a
// valid empty sequence.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
