// Package scenario describes scripted container workloads and replays them step by step.
//
// A scenario is a TOML document:
//
//	container = "list"
//	initial   = [4, 5, 2, 0, 42, 24]
//
//	[[step]]
//	op    = "insert_after"
//	at    = 42
//	value = 1
//
// List positions are addressed by value: "at" names the element that Find locates.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrInvalidScenario errorkit.Error = "invalid scenario"

type Kind string

const (
	KindList   Kind = "list"
	KindVector Kind = "vector"
)

type Op string

const (
	OpPushBack     Op = "push_back"
	OpPushFront    Op = "push_front"
	OpPopBack      Op = "pop_back"
	OpPopFront     Op = "pop_front"
	OpInsertBefore Op = "insert_before"
	OpInsertAfter  Op = "insert_after"
	OpErase        Op = "erase"
	OpEmplaceBack  Op = "emplace_back"
	OpEmplaceFront Op = "emplace_front"
	OpClear        Op = "clear"
)

type Scenario struct {
	Container Kind   `toml:"container"`
	Initial   []int  `toml:"initial"`
	Steps     []Step `toml:"step"`
}

type Step struct {
	Op Op `toml:"op"`
	// Value is the element to insert.
	// Emplace operations fall back to the zero value when it is absent.
	Value *int `toml:"value"`
	// At is the value of the list element the operation is positioned at.
	At *int `toml:"at"`
}

type opRule struct {
	kinds     []Kind
	needValue bool
	needAt    bool
}

var rules = map[Op]opRule{
	OpPushBack:     {kinds: []Kind{KindList, KindVector}, needValue: true},
	OpPushFront:    {kinds: []Kind{KindList, KindVector}, needValue: true},
	OpPopBack:      {kinds: []Kind{KindList, KindVector}},
	OpPopFront:     {kinds: []Kind{KindList, KindVector}},
	OpInsertBefore: {kinds: []Kind{KindList}, needValue: true, needAt: true},
	OpInsertAfter:  {kinds: []Kind{KindList}, needValue: true, needAt: true},
	OpErase:        {kinds: []Kind{KindList}, needAt: true},
	OpEmplaceBack:  {kinds: []Kind{KindVector}},
	OpEmplaceFront: {kinds: []Kind{KindVector}},
	OpClear:        {kinds: []Kind{KindList}},
}

// Decode reads a scenario document and validates it.
// Unknown keys are rejected, so a typo never turns into a silently skipped field.
func Decode(r io.Reader) (Scenario, error) {
	var sc Scenario
	md, err := toml.NewDecoder(r).Decode(&sc)
	if err != nil {
		return Scenario{}, ErrInvalidScenario.Wrap(err)
	}
	if undecoded := md.Undecoded(); 0 < len(undecoded) {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Scenario{}, ErrInvalidScenario.F("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func (sc Scenario) Validate() error {
	switch sc.Container {
	case KindList, KindVector:
	case "":
		return ErrInvalidScenario.F("container is missing")
	default:
		return ErrInvalidScenario.F("unknown container %q", sc.Container)
	}
	var errs []error
	for i, step := range sc.Steps {
		if err := step.validate(sc.Container); err != nil {
			errs = append(errs, ErrInvalidScenario.F("step %d: %s", i+1, err.Error()))
		}
	}
	return errors.Join(errs...)
}

func (s Step) validate(kind Kind) error {
	rule, ok := rules[s.Op]
	if !ok {
		return fmt.Errorf("unknown op %q", s.Op)
	}
	if !slices.Contains(rule.kinds, kind) {
		return fmt.Errorf("%s is not available on a %s", s.Op, kind)
	}
	if rule.needValue && s.Value == nil {
		return fmt.Errorf("%s needs a value", s.Op)
	}
	if rule.needAt && s.At == nil {
		return fmt.Errorf("%s needs an at position", s.Op)
	}
	return nil
}
