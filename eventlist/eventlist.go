// Package eventlist provides a list that notifies listeners about every change made to it.
//
// The list is meant to back a live view of changing data. New contents are brought in with
// [List.ReplaceAll], which computes the shortest edit script between the current and the new
// contents and applies it in place, so listeners only see the elements that actually changed.
package eventlist

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"znkr.io/listsync/diff"
)

// ErrIndexOutOfRange is returned when a mutation refers to an index outside of the list.
var ErrIndexOutOfRange = errors.New("index out of range")

// ChangeType describes what happened to an element.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=ChangeType
type ChangeType int

const (
	Insert ChangeType = iota // An element was inserted
	Delete                   // An element was removed
	Update                   // An element was replaced in place
)

// Change is a single mutation of the list.
//
//   - For Insert, Value is the inserted element and Prev is the zero value.
//   - For Delete, Prev is the removed element and Value is the zero value.
//   - For Update, Value is the new and Prev the replaced element.
//
// Index is the position of the element at the time the change was made, that is after all
// previous changes of the same event have been applied.
type Change[T any] struct {
	Type  ChangeType
	Index int
	Value T
	Prev  T
}

// Event is a batch of changes in the order they were applied.
type Event[T any] struct {
	Changes []Change[T]
}

// Counts returns the number of inserts, deletes and updates in the event.
func (ev Event[T]) Counts() (inserts, deletes, updates int) {
	for _, c := range ev.Changes {
		switch c.Type {
		case Insert:
			inserts++
		case Delete:
			deletes++
		case Update:
			updates++
		}
	}
	return inserts, deletes, updates
}

// List is a list of elements that publishes an Event for every mutation. It's safe for concurrent
// use.
//
// Listeners are called synchronously while the list is locked. They must not call any method of
// the list.
type List[T any] struct {
	mu        sync.RWMutex
	items     []T
	listeners []listener[T]
	nextID    int
}

type listener[T any] struct {
	id int
	fn func(Event[T])
}

// New returns a list holding items.
func New[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the element at index i. It panics if i is out of range.
func (l *List[T]) At(i int) T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items[i]
}

// Snapshot returns a copy of all elements.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// Listen registers fn to be called with every event. The returned function unregisters it.
func (l *List[T]) Listen(fn func(Event[T])) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.listeners = append(l.listeners, listener[T]{id, fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.listeners = slices.DeleteFunc(l.listeners, func(ln listener[T]) bool { return ln.id == id })
	}
}

// Add appends elements to the end of the list.
func (l *List[T]) Add(vs ...T) Event[T] {
	ev, _ := l.edit(func(e *editor[T]) error {
		for _, v := range vs {
			e.Insert(e.Len(), v)
		}
		return nil
	})
	return ev
}

// Insert inserts v at index i.
func (l *List[T]) Insert(i int, v T) error {
	_, err := l.edit(func(e *editor[T]) error {
		if i < 0 || i > e.Len() {
			return fmt.Errorf("insert at %d: %w", i, ErrIndexOutOfRange)
		}
		e.Insert(i, v)
		return nil
	})
	return err
}

// Set replaces the element at index i with v.
func (l *List[T]) Set(i int, v T) error {
	_, err := l.edit(func(e *editor[T]) error {
		if i < 0 || i >= e.Len() {
			return fmt.Errorf("set at %d: %w", i, ErrIndexOutOfRange)
		}
		e.Set(i, v)
		return nil
	})
	return err
}

// Remove removes the element at index i.
func (l *List[T]) Remove(i int) error {
	_, err := l.edit(func(e *editor[T]) error {
		if i < 0 || i >= e.Len() {
			return fmt.Errorf("remove at %d: %w", i, ErrIndexOutOfRange)
		}
		e.Remove(i)
		return nil
	})
	return err
}

// Clear removes all elements.
func (l *List[T]) Clear() Event[T] {
	ev, _ := l.edit(func(e *editor[T]) error {
		e.clear()
		return nil
	})
	return ev
}

// ReplaceAll changes the contents of the list to source with the fewest inserts and deletes. Two
// elements are considered the same if eq reports them as equal; if updates is set, such elements
// are still replaced if their values differ.
//
// All changes are published as a single event. The event is returned as well; it is empty if the
// list already held source.
func (l *List[T]) ReplaceAll(source []T, eq func(x, y T) bool, updates bool) (Event[T], error) {
	return l.edit(func(e *editor[T]) error {
		if err := diff.Replace[T](e, diff.Slice[T](source), eq, updates); err != nil {
			return fmt.Errorf("replacing contents: %w", err)
		}
		return nil
	})
}

// Reset changes the contents of the list to source by removing all elements and adding the new
// ones. Unlike ReplaceAll it takes time linear in the size of both lists, but it does not
// preserve any element.
func (l *List[T]) Reset(source []T) Event[T] {
	ev, _ := l.edit(func(e *editor[T]) error {
		e.clear()
		for i, v := range source {
			e.Insert(i, v)
		}
		return nil
	})
	return ev
}

// edit runs fn with the list locked and publishes the changes fn made, even if it failed halfway.
func (l *List[T]) edit(fn func(e *editor[T]) error) (Event[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := &editor[T]{l: l}
	err := fn(e)
	ev := Event[T]{Changes: e.changes}
	if len(ev.Changes) > 0 {
		for _, ln := range l.listeners {
			ln.fn(ev)
		}
	}
	return ev, err
}

// editor mutates the elements of a locked list and records every change. It implements
// diff.List.
type editor[T any] struct {
	l       *List[T]
	changes []Change[T]
}

func (e *editor[T]) Len() int   { return len(e.l.items) }
func (e *editor[T]) At(i int) T { return e.l.items[i] }

func (e *editor[T]) Set(i int, v T) {
	prev := e.l.items[i]
	e.l.items[i] = v
	e.changes = append(e.changes, Change[T]{Type: Update, Index: i, Value: v, Prev: prev})
}

func (e *editor[T]) Insert(i int, v T) {
	e.l.items = slices.Insert(e.l.items, i, v)
	e.changes = append(e.changes, Change[T]{Type: Insert, Index: i, Value: v})
}

func (e *editor[T]) Remove(i int) {
	prev := e.l.items[i]
	e.l.items = slices.Delete(e.l.items, i, i+1)
	e.changes = append(e.changes, Change[T]{Type: Delete, Index: i, Prev: prev})
}

// clear removes all elements back to front.
func (e *editor[T]) clear() {
	for i := len(e.l.items) - 1; i >= 0; i-- {
		e.Remove(i)
	}
}
