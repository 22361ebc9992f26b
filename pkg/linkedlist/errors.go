package linkedlist

import "go.llib.dev/frameless/pkg/errorkit"

// The coarse error kinds.
// Every error returned by this package matches one of them with errors.Is.
const (
	ErrOutOfRange      errorkit.Error = "out of range"
	ErrInvalidArgument errorkit.Error = "invalid argument"
)

const (
	// ErrDereferenceEnd is returned when the value of the End iterator is accessed.
	ErrDereferenceEnd errorkit.Error = "dereferencing the end iterator"
	// ErrAdvancePastEnd is returned when the End iterator is incremented.
	ErrAdvancePastEnd errorkit.Error = "incrementing the end iterator"
	// ErrRetreatBeforeBegin is returned when the Begin iterator is decremented.
	ErrRetreatBeforeBegin errorkit.Error = "decrementing the begin iterator"
	// ErrForeignIterator is returned when an iterator is used with a list other than the one that made it.
	ErrForeignIterator errorkit.Error = "iterator belongs to another list"
	// ErrEraseEnd is returned when the End iterator is passed to Erase.
	ErrEraseEnd errorkit.Error = "erasing the end iterator"
	// ErrEmptyList is returned when Front, Back, PopFront or PopBack is called on an empty list.
	ErrEmptyList errorkit.Error = "list is empty"
)

func outOfRange(err error) error {
	return ErrOutOfRange.Wrap(err)
}

func invalidArgument(err error) error {
	return ErrInvalidArgument.Wrap(err)
}
