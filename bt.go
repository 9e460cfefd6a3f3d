// Package bt runs and translates programs written in two token-isomorphic
// esoteric notations: single punctuation characters ("+[-]>.") and word
// pairs ("Ook. Ook. Ook! Ook?").
//
//	err := bt.Run(ctx, "++++++++[>++++++++<-]>+.", token.Punctuation,
//		bt.WithOutput(os.Stdout))
//
//	ook := bt.Translate("+++.", token.Punctuation)
//	// "Ook. Ook. Ook. Ook. Ook. Ook. Ook! Ook. "
package bt

import (
	"context"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/lexer"
	"github.com/braintranscriber/bt/token"
	"github.com/braintranscriber/bt/translator"
	"github.com/braintranscriber/bt/vm"
)

// Decode converts source written in the given notation into a Program.
// Decoding never fails; content that is not an instruction is dropped.
func Decode(source string, notation token.Notation) *bytecode.Program {
	return lexer.Decode(source, notation)
}

// Run decodes and executes source. Output bytes are written as they are
// produced and input bytes are read on demand. Execution continues until
// the program ends, ctx is cancelled, an observer halts it, or a loop
// marker without a partner is reached (errz.ErrUnbalancedLoop).
func Run(ctx context.Context, source string, notation token.Notation, opts ...Option) error {
	return RunProgram(ctx, Decode(source, notation), opts...)
}

// RunProgram executes an already decoded program. Each call creates fresh
// runtime state, so the same Program may be run concurrently.
func RunProgram(ctx context.Context, program *bytecode.Program, opts ...Option) error {
	o := collectOptions(opts...)
	return vm.Run(ctx, program, o.vmOpts()...)
}

// Translate decodes source and renders it in the other notation.
func Translate(source string, notation token.Notation) string {
	return translator.Translate(source, notation)
}

// Check reports every loop marker in source that has no partner. It returns
// nil for balanced programs.
func Check(source string, notation token.Notation) error {
	return bytecode.Check(Decode(source, notation))
}
