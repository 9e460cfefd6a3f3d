package vm

import (
	"io"

	"github.com/rs/zerolog"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithInput sets the stream read by the Input instruction. The default is
// an empty stream, so Input leaves cells unchanged.
func WithInput(r io.Reader) Option {
	return func(vm *VirtualMachine) {
		vm.input = r
	}
}

// WithOutput sets the stream written by the Output instruction. The default
// discards output. A writer with a Flush() error method is flushed before
// every blocking read and when the run ends.
func WithOutput(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.output = w
	}
}

// WithTapeSize sets the initial tape length. Values below one select
// DefaultTapeSize.
func WithTapeSize(size int) Option {
	return func(vm *VirtualMachine) {
		vm.tapeSize = size
	}
}

// WithMemory sets the initial contents of the first cells of the tape. The
// tape is extended to the configured tape size if memory is shorter.
func WithMemory(cells []byte) Option {
	return func(vm *VirtualMachine) {
		vm.memory = append([]byte(nil), cells...)
	}
}

// WithContextCheckInterval sets how often the VM checks ctx.Done() during
// execution. The interval is specified in number of instructions. A value of 0
// disables checking. The default is DefaultContextCheckInterval (1000).
//
// Lower values provide more responsive cancellation but may slightly impact
// performance due to more frequent checks.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}

// WithObserver sets an observer for VM execution events.
// Observer methods are called synchronously during execution, so
// implementations should be fast to avoid impacting performance.
// Returning false from OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithLogger sets the logger used for tape growth and loop errors. The
// default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}
