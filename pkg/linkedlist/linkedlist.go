// Package linkedlist implements a doubly linked list with bidirectional iterators.
//
// The list owns every node it holds. Nodes are kept in an arena that belongs to the list,
// and the links between them are node identifiers rather than references,
// so a node never owns its siblings.
//
// An Iterator is bound to the List that produced it.
// Operations that would move it outside the list, or dereference the end position, report an error.
// Using an Iterator whose node was erased is not detected.
//
// List is not safe for concurrent use.
package linkedlist

import (
	"iter"
)

// nodeID is the identity of a node in the list's arena.
// The zero nodeID means "no node", which is also how the end position is represented.
type nodeID int

const noNode nodeID = 0

type node[T any] struct {
	value T
	prev  nodeID
	next  nodeID
}

type List[T any] struct {
	nodes []node[T]
	free  []nodeID
	first nodeID
	last  nodeID
	size  int
}

// Of makes a List from the given values, preserving their order.
func Of[T any](vs ...T) *List[T] {
	var l List[T]
	for _, v := range vs {
		l.PushBack(v)
	}
	return &l
}

// Collect makes a List from an ordered source, iterated front to back.
func Collect[T any](seq iter.Seq[T]) *List[T] {
	var l List[T]
	if seq == nil {
		return &l
	}
	for v := range seq {
		l.PushBack(v)
	}
	return &l
}

func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// Size returns the number of elements in the list.
func (l *List[T]) Size() int {
	return l.size
}

// Clear removes every element.
// Iterators made before Clear must not be used afterwards.
func (l *List[T]) Clear() {
	l.nodes = nil
	l.free = nil
	l.first = noNode
	l.last = noNode
	l.size = 0
}

// Begin returns an Iterator to the first element, or End when the list is empty.
func (l *List[T]) Begin() Iterator[T] {
	return Iterator[T]{list: l, id: l.first}
}

// End returns the Iterator that points one past the last element.
func (l *List[T]) End() Iterator[T] {
	return Iterator[T]{list: l, id: noNode}
}

// ToSlice returns a snapshot of the elements from front to back.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for v := range l.Iter() {
		out = append(out, v)
	}
	return out
}

// Iter yields the elements from front to back.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		for id := l.first; id != noNode; id = l.node(id).next {
			if !yield(l.node(id).value) {
				return
			}
		}
	}
}

// Backward yields the elements from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l == nil {
			return
		}
		for id := l.last; id != noNode; id = l.node(id).prev {
			if !yield(l.node(id).value) {
				return
			}
		}
	}
}

// InsertBefore inserts v right before the element at position.
// When position is End, v is appended to the tail.
func (l *List[T]) InsertBefore(position Iterator[T], v T) error {
	if err := l.owns(position); err != nil {
		return err
	}
	l.insertBefore(position.id, l.alloc(v))
	return nil
}

// InsertAfter inserts v right after the element at position.
// When position is End, v is appended to the tail.
func (l *List[T]) InsertAfter(position Iterator[T], v T) error {
	if err := l.owns(position); err != nil {
		return err
	}
	l.insertAfter(position.id, l.alloc(v))
	return nil
}

func (l *List[T]) PushBack(v T) {
	l.insertAfter(l.last, l.alloc(v))
}

func (l *List[T]) PushFront(v T) {
	l.insertBefore(l.first, l.alloc(v))
}

// Erase removes the element at position.
// The erased Iterator, and any copy of it, is invalid afterwards.
func (l *List[T]) Erase(position Iterator[T]) error {
	if err := l.owns(position); err != nil {
		return err
	}
	if position.id == noNode {
		return invalidArgument(ErrEraseEnd)
	}
	l.erase(position.id)
	return nil
}

func (l *List[T]) PopFront() error {
	if l.IsEmpty() {
		return outOfRange(ErrEmptyList.F("pop front"))
	}
	l.erase(l.first)
	return nil
}

func (l *List[T]) PopBack() error {
	if l.IsEmpty() {
		return outOfRange(ErrEmptyList.F("pop back"))
	}
	l.erase(l.last)
	return nil
}

// Front returns a copy of the first element.
func (l *List[T]) Front() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, outOfRange(ErrEmptyList.F("front"))
	}
	return l.node(l.first).value, nil
}

// Back returns a copy of the last element.
func (l *List[T]) Back() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, outOfRange(ErrEmptyList.F("back"))
	}
	return l.node(l.last).value, nil
}

// FindFunc returns an Iterator to the first element that satisfies the predicate,
// or End when none does.
func (l *List[T]) FindFunc(predicate func(T) bool) Iterator[T] {
	for id := l.first; id != noNode; id = l.node(id).next {
		if predicate(l.node(id).value) {
			return Iterator[T]{list: l, id: id}
		}
	}
	return l.End()
}

// Find returns an Iterator to the first element equal to v, or End when there is none.
func Find[T comparable](l *List[T], v T) Iterator[T] {
	return l.FindFunc(func(got T) bool { return got == v })
}

func (l *List[T]) owns(it Iterator[T]) error {
	if it.list != l {
		return invalidArgument(ErrForeignIterator)
	}
	return nil
}

func (l *List[T]) node(id nodeID) *node[T] {
	return &l.nodes[id-1]
}

func (l *List[T]) alloc(v T) nodeID {
	if n := len(l.free); 0 < n {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		*l.node(id) = node[T]{value: v}
		return id
	}
	l.nodes = append(l.nodes, node[T]{value: v})
	return nodeID(len(l.nodes))
}

func (l *List[T]) release(id nodeID) {
	*l.node(id) = node[T]{}
	l.free = append(l.free, id)
}

// insertBefore links n in front of existing.
// A missing existing node means the tail.
func (l *List[T]) insertBefore(existing, n nodeID) {
	if l.size == 0 {
		l.first, l.last = n, n
		l.size++
		return
	}
	if existing != noNode {
		if existing != l.first {
			prev := l.node(existing).prev
			l.node(prev).next = n
			l.node(n).prev = prev
		} else {
			l.first = n
		}
		l.node(n).next = existing
		l.node(existing).prev = n
	} else {
		l.node(l.last).next = n
		l.node(n).prev = l.last
		l.last = n
	}
	l.size++
}

func (l *List[T]) insertAfter(existing, n nodeID) {
	if existing != noNode {
		l.insertBefore(l.node(existing).next, n)
		return
	}
	l.insertBefore(noNode, n)
}

func (l *List[T]) erase(id nodeID) {
	switch {
	case l.size == 1:
		l.first, l.last = noNode, noNode
	case id == l.first:
		l.first = l.node(id).next
		l.node(l.first).prev = noNode
	case id == l.last:
		l.last = l.node(id).prev
		l.node(l.last).next = noNode
	default:
		n := l.node(id)
		l.node(n.prev).next = n.next
		l.node(n.next).prev = n.prev
	}
	l.release(id)
	l.size--
	if l.size == 0 {
		// every slot is free again, so the arena can go
		l.nodes = nil
		l.free = nil
	}
}
