// Package equivalence runs the containers side by side with plain slice references
// under a random workload and reports the first step where they disagree.
package equivalence

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"strconv"

	"go.llib.dev/containerkit/pkg/linkedlist"
	"go.llib.dev/containerkit/pkg/vector"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/zerokit"
	"go.llib.dev/testcase/random"
)

const ErrMismatch errorkit.Error = "container diverged from its reference"

const (
	DefaultPrefill = 200
	DefaultSteps   = 1000
)

type Config struct {
	// Prefill is the number of elements pushed before the measured steps.
	Prefill int
	// Steps is the number of random operations compared against the reference.
	Steps int
}

func (c Config) prefill() int { return zerokit.Coalesce(c.Prefill, DefaultPrefill) }
func (c Config) steps() int   { return zerokit.Coalesce(c.Steps, DefaultSteps) }

type Driver struct {
	Name string
	Run  func(rnd *random.Random, cfg Config) error
}

// Drivers lists every equivalence run in a stable order.
var Drivers = []Driver{
	{Name: "list/push-pop", Run: ListPushPop},
	{Name: "list/insert-erase", Run: ListInsertErase},
	{Name: "list/find", Run: ListFind},
	{Name: "vector/push-pop", Run: VectorPushPop},
}

func value(rnd *random.Random) int {
	return rnd.IntBetween(-1_000_000_000, 1_000_000_000)
}

func mismatch(step int, op string, format string, args ...any) error {
	return ErrMismatch.F("step %d (%s): %s", step, op, fmt.Sprintf(format, args...))
}

func compare[T comparable](step int, op string, got, want []T) error {
	if !slices.Equal(got, want) {
		return mismatch(step, op, "got %v, want %v", got, want)
	}
	return nil
}

// ListPushPop mixes pushes and pops on both ends of a List and of a reference deque.
// Popping an empty List must report ErrEmptyList, just as the reference has nothing to pop.
func ListPushPop(rnd *random.Random, cfg Config) error {
	var (
		list linkedlist.List[int]
		ref  []int
	)
	for range cfg.prefill() {
		v := value(rnd)
		if rnd.Bool() {
			list.PushFront(v)
			ref = slices.Insert(ref, 0, v)
		} else {
			list.PushBack(v)
			ref = append(ref, v)
		}
	}
	for step := range cfg.steps() {
		var op string
		switch rnd.IntN(4) {
		case 0:
			op = "push front"
			v := value(rnd)
			list.PushFront(v)
			ref = slices.Insert(ref, 0, v)
		case 1:
			op = "push back"
			v := value(rnd)
			list.PushBack(v)
			ref = append(ref, v)
		case 2:
			op = "pop front"
			err := list.PopFront()
			if err := expectPop(step, op, err, len(ref)); err != nil {
				return err
			}
			if 0 < len(ref) {
				ref = ref[1:]
			}
		case 3:
			op = "pop back"
			err := list.PopBack()
			if err := expectPop(step, op, err, len(ref)); err != nil {
				return err
			}
			if 0 < len(ref) {
				ref = ref[:len(ref)-1]
			}
		}
		if err := compare(step, op, list.ToSlice(), ref); err != nil {
			return err
		}
		if list.Size() != len(ref) {
			return mismatch(step, op, "size %d, want %d", list.Size(), len(ref))
		}
	}
	return nil
}

func expectPop(step int, op string, err error, refLen int) error {
	switch {
	case refLen == 0 && !errors.Is(err, linkedlist.ErrEmptyList):
		return mismatch(step, op, "expected %v on an empty list, got %v", linkedlist.ErrEmptyList, err)
	case 0 < refLen && err != nil:
		return mismatch(step, op, "unexpected error: %v", err)
	}
	return nil
}

// ListInsertErase locates a random element with Find,
// then inserts next to it or erases it, mirroring the change on a reference slice.
// The list is refilled whenever the steps drain it.
func ListInsertErase(rnd *random.Random, cfg Config) error {
	var (
		list linkedlist.List[int]
		ref  []int
	)
	fill := func() {
		for range max(cfg.prefill(), 1) {
			v := value(rnd)
			list.PushBack(v)
			ref = append(ref, v)
		}
	}
	fill()
	for step := range cfg.steps() {
		if len(ref) == 0 {
			fill()
		}
		// Find stops at the first occurrence, so the reference has to resolve duplicates the same way.
		index := slices.Index(ref, ref[rnd.IntN(len(ref))])
		position := linkedlist.Find(&list, ref[index])

		var (
			op  string
			err error
		)
		switch rnd.IntN(3) {
		case 0:
			op = "insert after"
			v := value(rnd)
			err = list.InsertAfter(position, v)
			ref = slices.Insert(ref, index+1, v)
		case 1:
			op = "insert before"
			v := value(rnd)
			err = list.InsertBefore(position, v)
			ref = slices.Insert(ref, index, v)
		case 2:
			op = "erase"
			err = list.Erase(position)
			ref = slices.Delete(ref, index, index+1)
		}
		if err != nil {
			return mismatch(step, op, "unexpected error: %v", err)
		}
		if err := compare(step, op, list.ToSlice(), ref); err != nil {
			return err
		}
	}
	return nil
}

// ListFind compares Find and FindFunc with a linear scan over the reference.
// Values are drawn from a narrow range so both hits and misses are common.
func ListFind(rnd *random.Random, cfg Config) error {
	var (
		list linkedlist.List[int]
		ref  []int
	)
	for range cfg.prefill() {
		v := rnd.IntBetween(1, 200)
		list.PushBack(v)
		ref = append(ref, v)
	}

	predicates := []struct {
		name string
		fn   func(int) bool
	}{
		{name: "odd", fn: isOdd},
		{name: "prime", fn: isPrime},
		{name: "palindrome", fn: isPalindrome},
	}

	for step := range cfg.steps() {
		needle := rnd.IntBetween(1, 200)
		op := "find " + strconv.Itoa(needle)
		if err := compareFound(step, op, linkedlist.Find(&list, needle), slices.Index(ref, needle), ref); err != nil {
			return err
		}

		p := predicates[rnd.IntN(len(predicates))]
		op = "find " + p.name
		if err := compareFound(step, op, list.FindFunc(p.fn), slices.IndexFunc(ref, p.fn), ref); err != nil {
			return err
		}
	}
	return nil
}

func compareFound(step int, op string, got linkedlist.Iterator[int], want int, ref []int) error {
	if want < 0 {
		if !got.IsEnd() {
			v, _ := got.Value()
			return mismatch(step, op, "found %d, want none", v)
		}
		return nil
	}
	v, err := got.Value()
	if err != nil {
		return mismatch(step, op, "found none, want %d", ref[want])
	}
	if v != ref[want] {
		return mismatch(step, op, "found %d, want %d", v, ref[want])
	}
	return nil
}

// VectorPushPop mixes pushes and pops on both ends of a Vector and of a reference slice,
// and checks the capacity after every step:
// it stays a power of two, never below the size,
// doubles only when a push finds the buffer full,
// and halves when a pop leaves it less than a quarter full.
func VectorPushPop(rnd *random.Random, cfg Config) error {
	var (
		vec vector.Vector[int]
		ref []int
	)
	for range cfg.prefill() {
		v := value(rnd)
		vec.PushBack(v)
		ref = append(ref, v)
	}
	for step := range cfg.steps() {
		var (
			op       string
			capacity = vec.Cap()
			full     = vec.IsFull()
		)
		action := rnd.IntN(4)
		if len(ref) == 0 {
			// popping an empty vector is a programming error, not a behaviour to compare
			action %= 2
		}
		switch action {
		case 0:
			op = "push front"
			v := value(rnd)
			vec.PushFront(v)
			ref = slices.Insert(ref, 0, v)
		case 1:
			op = "push back"
			v := value(rnd)
			vec.PushBack(v)
			ref = append(ref, v)
		case 2:
			op = "pop front"
			vec.PopFront()
			ref = ref[1:]
		case 3:
			op = "pop back"
			vec.PopBack()
			ref = ref[:len(ref)-1]
		}
		if err := compare(step, op, vec.ToSlice(), ref); err != nil {
			return err
		}

		want := capacity
		switch {
		case action < 2 && full:
			want = capacity * 2
		case 2 <= action && 1 < capacity && len(ref)*4 < capacity:
			want = capacity / 2
		}
		if got := vec.Cap(); got != want {
			return mismatch(step, op, "capacity %d, want %d", got, want)
		}
		if vec.Cap() < vec.Size() || bits.OnesCount(uint(vec.Cap())) != 1 {
			return mismatch(step, op, "capacity %d is not a power of two covering size %d", vec.Cap(), vec.Size())
		}
	}
	return nil
}

func isOdd(x int) bool { return x%2 == 1 }

func isPrime(x int) bool {
	for i := 2; i*i <= x; i++ {
		if x%i == 0 {
			return false
		}
	}
	return true
}

func isPalindrome(x int) bool {
	s := strconv.Itoa(x)
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}
