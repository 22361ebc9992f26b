package scenario

import (
	"context"
	"io"

	"go.llib.dev/containerkit/pkg/linkedlist"
	"go.llib.dev/containerkit/pkg/vector"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

// ErrPrecondition is returned when a step would break the contract of the container,
// like popping from an empty vector. The replay stops before the step is applied.
const ErrPrecondition errorkit.Error = "scenario step breaks a container precondition"

type Trace struct {
	Container Kind    `json:"container"`
	Frames    []Frame `json:"frames"`
}

// Frame is the observable state of the container after a step.
// The first Frame of a Trace is the initial state, with index 0 and op "initial".
type Frame struct {
	Index    int    `json:"index"`
	Op       Op     `json:"op"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity,omitempty"`
	Values   []int  `json:"values"`
	Error    string `json:"error,omitempty"`
}

const opInitial Op = "initial"

type Replayer struct {
	Logger *logging.Logger
}

// Replay applies the scenario to a fresh container and records a Frame per step.
// Recoverable list errors are recorded in the Frame and the replay goes on.
// The Trace collected so far is returned together with any error that stopped the replay.
func (r Replayer) Replay(ctx context.Context, sc Scenario) (Trace, error) {
	if err := sc.Validate(); err != nil {
		return Trace{}, err
	}
	var c container
	switch sc.Container {
	case KindList:
		c = &listContainer{list: linkedlist.Of(sc.Initial...)}
	case KindVector:
		vc := &vectorContainer{vec: vector.New[int]()}
		for _, v := range sc.Initial {
			vc.vec.PushBack(v)
		}
		c = vc
	}

	trace := Trace{Container: sc.Container}
	trace.Frames = append(trace.Frames, c.frame(0, opInitial))
	r.logger().Debug(ctx, "scenario replay started",
		logging.Field("container", string(sc.Container)),
		logging.Field("initial", len(sc.Initial)),
		logging.Field("steps", len(sc.Steps)))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return trace, err
		}
		index := i + 1
		if err := c.check(step); err != nil {
			r.logger().Debug(ctx, "scenario step rejected",
				logging.Field("index", index),
				logging.Field("op", string(step.Op)),
				logging.ErrField(err))
			return trace, err
		}
		err := c.apply(step)
		frame := c.frame(index, step.Op)
		if err != nil {
			frame.Error = err.Error()
		}
		trace.Frames = append(trace.Frames, frame)
		r.logger().Debug(ctx, "scenario step applied",
			logging.Field("index", index),
			logging.Field("op", string(step.Op)),
			logging.Field("size", frame.Size),
			logging.Field("error", frame.Error))
	}
	return trace, nil
}

func (r Replayer) logger() *logging.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return &logging.Logger{Out: io.Discard}
}

// Replay runs the scenario without logging.
func Replay(ctx context.Context, sc Scenario) (Trace, error) {
	return Replayer{}.Replay(ctx, sc)
}

type container interface {
	// check reports a step that must not reach the container.
	check(Step) error
	apply(Step) error
	frame(index int, op Op) Frame
}

type listContainer struct {
	list *linkedlist.List[int]
}

func (c *listContainer) check(Step) error { return nil }

func (c *listContainer) apply(step Step) error {
	l := c.list
	switch step.Op {
	case OpPushBack:
		l.PushBack(*step.Value)
	case OpPushFront:
		l.PushFront(*step.Value)
	case OpPopBack:
		return l.PopBack()
	case OpPopFront:
		return l.PopFront()
	case OpInsertBefore:
		return l.InsertBefore(linkedlist.Find(l, *step.At), *step.Value)
	case OpInsertAfter:
		return l.InsertAfter(linkedlist.Find(l, *step.At), *step.Value)
	case OpErase:
		return l.Erase(linkedlist.Find(l, *step.At))
	case OpClear:
		l.Clear()
	}
	return nil
}

func (c *listContainer) frame(index int, op Op) Frame {
	return Frame{
		Index:  index,
		Op:     op,
		Size:   c.list.Size(),
		Values: c.list.ToSlice(),
	}
}

type vectorContainer struct {
	vec *vector.Vector[int]
}

func (c *vectorContainer) check(step Step) error {
	switch step.Op {
	case OpPopBack, OpPopFront:
		if c.vec.IsEmpty() {
			return ErrPrecondition.F("%s on an empty vector", step.Op)
		}
	}
	return nil
}

func (c *vectorContainer) apply(step Step) error {
	v := c.vec
	switch step.Op {
	case OpPushBack:
		v.PushBack(*step.Value)
	case OpPushFront:
		v.PushFront(*step.Value)
	case OpPopBack:
		v.PopBack()
	case OpPopFront:
		v.PopFront()
	case OpEmplaceBack:
		v.EmplaceBack(c.init(step))
	case OpEmplaceFront:
		v.EmplaceFront(c.init(step))
	}
	return nil
}

func (c *vectorContainer) init(step Step) func(*int) {
	return func(slot *int) {
		if step.Value != nil {
			*slot = *step.Value
		}
	}
}

func (c *vectorContainer) frame(index int, op Op) Frame {
	return Frame{
		Index:    index,
		Op:       op,
		Size:     c.vec.Size(),
		Capacity: c.vec.Cap(),
		Values:   c.vec.ToSlice(),
	}
}
