package vm

import (
	"context"

	"github.com/braintranscriber/bt/bytecode"
)

// Run the given program in a new Virtual Machine.
func Run(ctx context.Context, program *bytecode.Program, options ...Option) error {
	return New(program, options...).Run(ctx)
}
