// Package vector implements a growable array that manages its own buffer.
//
// The buffer starts with a capacity of one.
// It doubles when an insertion finds it full,
// and it halves when a removal leaves it less than a quarter full, but never below one.
// Both transitions allocate a new buffer and copy the live elements over in order.
//
// Misuse, such as indexing out of bounds or popping from an empty Vector, is a programming error,
// and it panics with an error that matches ErrContractViolation.
//
// Vector is not safe for concurrent use.
package vector

import (
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrContractViolation errorkit.Error = "vector contract violation"

const minCapacity = 1

type Vector[T any] struct {
	size int
	// data is the owned buffer, len(data) is the capacity.
	data []T
}

// New returns an empty Vector with the starting capacity.
// The zero Vector is also ready to use.
func New[T any]() *Vector[T] {
	v := &Vector[T]{}
	v.init()
	return v
}

func (v *Vector[T]) init() {
	if v.data == nil {
		v.data = make([]T, minCapacity)
	}
}

func (v *Vector[T]) Size() int {
	return v.size
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int {
	v.init()
	return len(v.data)
}

func (v *Vector[T]) IsEmpty() bool {
	return v.size == 0
}

// IsFull reports whether the next insertion needs a bigger buffer.
func (v *Vector[T]) IsFull() bool {
	return v.size == v.Cap()
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	v.checkIndex(i)
	return v.data[i]
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, val T) {
	v.checkIndex(i)
	v.data[i] = val
}

func (v *Vector[T]) Front() T {
	v.checkNotEmpty("front")
	return v.data[0]
}

func (v *Vector[T]) Back() T {
	v.checkNotEmpty("back")
	return v.data[v.size-1]
}

func (v *Vector[T]) PushBack(val T) {
	v.growIfFull()
	v.data[v.size] = val
	v.size++
}

// PushFront inserts val at index 0, shifting every element one slot to the right.
func (v *Vector[T]) PushFront(val T) {
	v.growIfFull()
	v.shiftRight()
	v.data[0] = val
	v.size++
}

func (v *Vector[T]) PopBack() {
	v.checkNotEmpty("pop back")
	v.size--
	var zero T
	v.data[v.size] = zero
	v.shrinkIfSparse()
}

// PopFront removes the element at index 0, shifting every remaining element one slot to the left.
func (v *Vector[T]) PopFront() {
	v.checkNotEmpty("pop front")
	for i := 0; i < v.size-1; i++ {
		v.data[i] = v.data[i+1]
	}
	v.size--
	var zero T
	v.data[v.size] = zero
	v.shrinkIfSparse()
}

// EmplaceBack appends a new element constructed in place.
// The new slot starts from the zero value of T, then the init functions are applied to it in order.
func (v *Vector[T]) EmplaceBack(inits ...func(*T)) {
	v.growIfFull()
	v.construct(v.size, inits)
	v.size++
}

// EmplaceFront is the EmplaceBack counterpart for index 0.
// It shifts every element one slot to the right.
func (v *Vector[T]) EmplaceFront(inits ...func(*T)) {
	v.growIfFull()
	v.shiftRight()
	v.construct(0, inits)
	v.size++
}

// FindFunc returns the index of the first element that satisfies the predicate, or -1.
func (v *Vector[T]) FindFunc(predicate func(T) bool) int {
	for i := 0; i < v.size; i++ {
		if predicate(v.data[i]) {
			return i
		}
	}
	return -1
}

// Find returns the index of the first element equal to x, or -1.
func Find[T comparable](v *Vector[T], x T) int {
	return v.FindFunc(func(got T) bool { return got == x })
}

// ToSlice returns a snapshot of the elements in index order.
func (v *Vector[T]) ToSlice() []T {
	out := make([]T, v.size)
	copy(out, v.data[:v.size])
	return out
}

func (v *Vector[T]) Iter() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v == nil {
			return
		}
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) construct(i int, inits []func(*T)) {
	var zero T
	v.data[i] = zero
	for _, fn := range inits {
		if fn != nil {
			fn(&v.data[i])
		}
	}
}

// shiftRight moves every element one slot toward the back.
// The buffer must have a free slot.
func (v *Vector[T]) shiftRight() {
	for i := v.size; 1 <= i; i-- {
		v.data[i] = v.data[i-1]
	}
}

func (v *Vector[T]) growIfFull() {
	if v.IsFull() {
		v.relocate(len(v.data) * 2)
	}
}

func (v *Vector[T]) shrinkIfSparse() {
	if minCapacity < len(v.data) && v.size*4 < len(v.data) {
		v.relocate(max(len(v.data)/2, minCapacity))
	}
}

// relocate moves the live elements into a new buffer of the given capacity.
func (v *Vector[T]) relocate(capacity int) {
	if capacity < v.size {
		panic("[implementation-error] vector relocation would drop live elements")
	}
	data := make([]T, capacity)
	for i := 0; i < v.size; i++ {
		data[i] = v.data[i]
	}
	v.data = data
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || v.size <= i {
		panic(ErrContractViolation.F("index %d out of range [0:%d]", i, v.size))
	}
}

func (v *Vector[T]) checkNotEmpty(op string) {
	if v.IsEmpty() {
		panic(ErrContractViolation.F("%s on empty vector", op))
	}
}
