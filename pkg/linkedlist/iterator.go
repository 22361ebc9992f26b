package linkedlist

// Iterator is a position in a List.
// It either points to an element, or it is the End position, one past the last element.
//
// Plain Go assignment copies an Iterator without any check.
// Assign is the checked form, it refuses iterators of another List.
type Iterator[T any] struct {
	list *List[T]
	id   nodeID
}

// IsEnd reports whether the iterator is at the End position.
func (it Iterator[T]) IsEnd() bool {
	return it.id == noNode
}

// Value returns a copy of the element the iterator points to.
func (it Iterator[T]) Value() (T, error) {
	if it.IsEnd() {
		var zero T
		return zero, invalidArgument(ErrDereferenceEnd)
	}
	return it.list.node(it.id).value, nil
}

// Set replaces the element the iterator points to.
func (it Iterator[T]) Set(v T) error {
	return it.Update(func(ptr *T) { *ptr = v })
}

// Update gives access to the element in place.
// The pointer must not be retained after fn returns,
// the next insertion may move the element in memory.
func (it Iterator[T]) Update(fn func(*T)) error {
	if it.IsEnd() {
		return invalidArgument(ErrDereferenceEnd)
	}
	fn(&it.list.node(it.id).value)
	return nil
}

// Next moves the iterator to the following element.
// Moving from the last element reaches End.
func (it *Iterator[T]) Next() error {
	if it.IsEnd() {
		return outOfRange(ErrAdvancePastEnd)
	}
	it.id = it.list.node(it.id).next
	return nil
}

// Prev moves the iterator to the preceding element.
// Moving from End reaches the last element.
func (it *Iterator[T]) Prev() error {
	if it.list == nil || it.id == it.list.first {
		return outOfRange(ErrRetreatBeforeBegin)
	}
	if it.IsEnd() {
		it.id = it.list.last
		return nil
	}
	it.id = it.list.node(it.id).prev
	return nil
}

// Assign makes the iterator point where oth points.
// Both iterators must come from the same List.
func (it *Iterator[T]) Assign(oth Iterator[T]) error {
	if it.list != oth.list {
		return invalidArgument(ErrForeignIterator)
	}
	it.id = oth.id
	return nil
}

// Equal reports whether both iterators point to the same node, or both are at End.
// The owning List is not compared.
func (it Iterator[T]) Equal(oth Iterator[T]) bool {
	return it.id == oth.id
}
