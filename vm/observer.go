package vm

import (
	"github.com/braintranscriber/bt/op"
	"github.com/rs/zerolog"
)

// Observer is an interface for observing VM execution.
// Implementations can be used for tracing, step limits or profiling
// without modifying the machine.
//
// Observer methods are called synchronously during VM execution.
// Implementations should be fast to avoid impacting performance.
type Observer interface {
	// OnStep is called before each instruction executes.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the instruction pointer (index into the program).
	IP int

	// Opcode is the instruction being executed.
	Opcode op.Code

	// OpcodeName is the human-readable name of the instruction.
	OpcodeName string

	// Pointer is the data pointer.
	Pointer int

	// Cell is the value of the current cell before the instruction runs.
	Cell byte

	// StackDepth is the number of open loops on the jump stack.
	StackDepth int

	// Step is the 1-based count of instructions executed so far.
	Step int64
}

// NoOpObserver is an Observer implementation that does nothing.
// Embed this in your observer to provide a default implementation.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(event StepEvent) bool

func (f ObserverFunc) OnStep(event StepEvent) bool { return f(event) }

// StepLimit halts execution once more than the given number of
// instructions would run.
type StepLimit int64

func (l StepLimit) OnStep(event StepEvent) bool {
	return event.Step <= int64(l)
}

// Tracer logs every step at trace level.
type Tracer struct {
	Logger zerolog.Logger
}

func (t Tracer) OnStep(event StepEvent) bool {
	t.Logger.Trace().
		Int64("step", event.Step).
		Int("ip", event.IP).
		Str("op", event.OpcodeName).
		Int("ptr", event.Pointer).
		Uint8("cell", event.Cell).
		Int("depth", event.StackDepth).
		Msg("step")
	return true
}

// Observers fans each event out to all of its members. Execution halts as
// soon as one member returns false.
type Observers []Observer

func (o Observers) OnStep(event StepEvent) bool {
	for _, observer := range o {
		if !observer.OnStep(event) {
			return false
		}
	}
	return true
}
