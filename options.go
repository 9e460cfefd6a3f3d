package bt

import (
	"io"
	"os"

	"github.com/braintranscriber/bt/vm"
	"github.com/rs/zerolog"
)

// Option configures a run.
type Option func(*options)

type options struct {
	input     io.Reader
	output    io.Writer
	tapeSize  int
	observers vm.Observers
	logger    *zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{
		input:  os.Stdin,
		output: os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) vmOpts() []vm.Option {
	opts := []vm.Option{
		vm.WithInput(o.input),
		vm.WithOutput(o.output),
		vm.WithTapeSize(o.tapeSize),
	}
	switch len(o.observers) {
	case 0:
	case 1:
		opts = append(opts, vm.WithObserver(o.observers[0]))
	default:
		opts = append(opts, vm.WithObserver(o.observers))
	}
	if o.logger != nil {
		opts = append(opts, vm.WithLogger(*o.logger))
	}
	return opts
}

// WithInput sets the stream read by input instructions. The default is
// os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the stream written by output instructions. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithTapeSize sets the initial number of tape cells. The tape still grows
// on demand. Values below one select vm.DefaultTapeSize.
func WithTapeSize(size int) Option {
	return func(o *options) {
		o.tapeSize = size
	}
}

// WithObserver adds an observer for execution steps. This option is
// additive; observers are called in the order they were supplied.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, observer)
	}
}

// WithMaxSteps halts execution with errz.ErrHalted once more than n
// instructions would run. Zero or negative n means no limit.
func WithMaxSteps(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.observers = append(o.observers, vm.StepLimit(n))
		}
	}
}

// WithLogger sets the logger used by the virtual machine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}
