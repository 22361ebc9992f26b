// Package sequence holds the role interface shared by the ordered containers of this module.
package sequence

// Sequence is an ordered container that grows at both ends.
type Sequence[T any] interface {
	Sizer
	Slicer[T]
	IsEmpty() bool
	PushBack(v T)
	PushFront(v T)
}

type Sizer interface {
	Size() int
}

type Slicer[T any] interface {
	// ToSlice returns the contents as a slice of T, front to back.
	ToSlice() []T
}
