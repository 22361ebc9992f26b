package equivalence_test

import (
	"math/rand"
	"testing"

	"go.llib.dev/containerkit/internal/equivalence"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
	"go.llib.dev/testcase/random"
)

func TestDrivers(t *testing.T) {
	s := testcase.NewSpec(t)

	cfg := let.Var(s, func(t *testcase.T) equivalence.Config {
		return equivalence.Config{
			Prefill: t.Random.IntBetween(0, 50),
			Steps:   t.Random.IntBetween(100, 300),
		}
	})

	for _, d := range equivalence.Drivers {
		s.Test(d.Name, func(t *testcase.T) {
			assert.NoError(t, d.Run(t.Random, cfg.Get(t)))
		})
	}

	s.Test("names are unique", func(t *testcase.T) {
		seen := map[string]struct{}{}
		for _, d := range equivalence.Drivers {
			_, ok := seen[d.Name]
			assert.False(t, ok, assert.Message(d.Name))
			seen[d.Name] = struct{}{}
		}
		assert.Equal(t, 4, len(seen))
	})
}

func TestDrivers_defaultConfig(t *testing.T) {
	rnd := random.New(rand.NewSource(42))
	for _, d := range equivalence.Drivers {
		t.Run(d.Name, func(t *testing.T) {
			assert.NoError(t, d.Run(rnd, equivalence.Config{}))
		})
	}
}

func TestListPushPop_drainsTheList(t *testing.T) {
	// with a tiny prefill the list runs empty repeatedly, so the empty pop errors are compared too
	rnd := random.New(rand.NewSource(7))
	assert.NoError(t, equivalence.ListPushPop(rnd, equivalence.Config{Prefill: 1, Steps: 2000}))
}

func TestVectorPushPop_shrinksToTheFloor(t *testing.T) {
	rnd := random.New(rand.NewSource(7))
	assert.NoError(t, equivalence.VectorPushPop(rnd, equivalence.Config{Prefill: 1, Steps: 2000}))
}
