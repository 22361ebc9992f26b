package sequencecontract

import (
	"fmt"
	"slices"
	"testing"

	"go.llib.dev/containerkit/pkg/sequence"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/zerokit"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

func Sequence[T any](make contract.Make[sequence.Sequence[T]], opts ...Option[T]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	s.Test("smoke", func(t *testcase.T) {
		var (
			seq          = make(t)
			expected []T = random.Slice(t.Random.IntBetween(3, 7), func() T { return c.makeT(t) })
		)
		assert.True(t, seq.IsEmpty())
		assert.Equal(t, 0, seq.Size())

		for i, v := range expected {
			seq.PushBack(v)
			assert.Equal(t, i+1, seq.Size())
			assert.False(t, seq.IsEmpty())
		}

		assert.Equal(t, expected, seq.ToSlice())
	})

	s.Test("PushFront builds the sequence in reverse order", func(t *testcase.T) {
		var (
			seq          = make(t)
			values   []T = random.Slice(t.Random.IntBetween(3, 7), func() T { return c.makeT(t) })
			expected     = slices.Clone(values)
		)
		slices.Reverse(expected)
		for _, v := range values {
			seq.PushFront(v)
		}
		assert.Equal(t, len(values), seq.Size())
		assert.Equal(t, expected, seq.ToSlice())
	})

	s.Test("mixed pushes keep the order of a double ended queue", func(t *testcase.T) {
		var (
			seq = make(t)
			exp []T
		)
		t.Random.Repeat(8, 64, func() {
			v := c.makeT(t)
			if t.Random.Bool() {
				seq.PushFront(v)
				exp = append([]T{v}, exp...)
			} else {
				seq.PushBack(v)
				exp = append(exp, v)
			}
			assert.Equal(t, len(exp), seq.Size())
			assert.Equal(t, exp, seq.ToSlice())
		})
	})

	s.Test("ToSlice returns a snapshot", func(t *testcase.T) {
		var (
			seq = make(t)
			v1  = c.makeT(t)
			v2  = random.Unique(func() T { return c.makeT(t) }, v1)
		)
		seq.PushBack(v1)
		snapshot := seq.ToSlice()
		snapshot[0] = v2
		assert.Equal(t, []T{v1}, seq.ToSlice())
	})

	return s.AsSuite(fmt.Sprintf("Sequence[%s]", reflectkit.TypeOf[T]().String()))
}

type Option[T any] interface {
	option.Option[Config[T]]
}

type Config[T any] struct {
	MakeElem func(testing.TB) T
}

var _ Option[any] = Config[any]{}

func (c Config[T]) Configure(o *Config[T]) {
	o.MakeElem = zerokit.Coalesce(c.MakeElem, o.MakeElem)
}

func (c Config[T]) makeT(tb testing.TB) T {
	return zerokit.Coalesce(c.MakeElem, makeRandom[T])(tb)
}

func makeRandom[T any](tb testing.TB) T {
	return testcase.ToT(&tb).Random.Make(*new(T)).(T)
}
