package bytecode

import (
	"strings"

	"github.com/braintranscriber/bt/op"
)

// Program is an ordered sequence of instructions. It is immutable after
// creation and safe for concurrent use.
type Program struct {
	instructions []op.Code
}

// NewProgram creates a Program holding a copy of the given instructions.
func NewProgram(instructions []op.Code) *Program {
	var copied []op.Code
	if len(instructions) > 0 {
		copied = make([]op.Code, len(instructions))
		copy(copied, instructions)
	}
	return &Program{instructions: copied}
}

// InstructionCount returns the number of instructions in the program.
func (p *Program) InstructionCount() int {
	if p == nil {
		return 0
	}
	return len(p.instructions)
}

// InstructionAt returns the instruction at index i. It panics if i is out
// of range.
func (p *Program) InstructionAt(i int) op.Code {
	return p.instructions[i]
}

// Equal reports whether both programs hold the same instruction sequence.
func (p *Program) Equal(other *Program) bool {
	if p.InstructionCount() != other.InstructionCount() {
		return false
	}
	for i := 0; i < p.InstructionCount(); i++ {
		if p.instructions[i] != other.instructions[i] {
			return false
		}
	}
	return true
}

// String lists the instruction names separated by spaces.
func (p *Program) String() string {
	var sb strings.Builder
	for i := 0; i < p.InstructionCount(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.instructions[i].String())
	}
	return sb.String()
}
