package vector

// Clone returns an independent copy of v.
// The copy has the same capacity and the same elements in a buffer of its own.
func (v *Vector[T]) Clone() *Vector[T] {
	v.init()
	out := &Vector[T]{
		size: v.size,
		data: make([]T, len(v.data)),
	}
	copy(out.data, v.data[:v.size])
	return out
}

// CopyFrom replaces the contents of v with a copy of src.
// The buffer of v is reused when its capacity already matches the capacity of src.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.init()
	src.init()
	if len(v.data) != len(src.data) {
		v.data = make([]T, len(src.data))
	} else {
		clear(v.data[src.size:])
	}
	v.size = src.size
	copy(v.data, src.data[:src.size])
}

// Move returns a Vector that took over the buffer of src.
// src is left as a fresh, empty Vector with the starting capacity.
func Move[T any](src *Vector[T]) *Vector[T] {
	var v Vector[T]
	v.MoveFrom(src)
	return &v
}

// MoveFrom replaces the contents of v by taking over the buffer of src, without copying.
// src is left as a fresh, empty Vector with the starting capacity.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	src.init()
	v.size, v.data = src.size, src.data
	src.size, src.data = 0, make([]T, minCapacity)
}
