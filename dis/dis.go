// Package dis supports analysis of decoded programs by listing their
// instructions alongside both spellings and the loop structure.
package dis

import (
	"fmt"
	"io"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/internal/table"
	"github.com/braintranscriber/bt/op"
	"github.com/braintranscriber/bt/token"
	"github.com/fatih/color"
)

// Instruction describes a single instruction of a program.
type Instruction struct {
	Offset      int     `json:"offset"`
	Name        string  `json:"name"`
	Opcode      op.Code `json:"opcode"`
	Punctuation string  `json:"punctuation"`
	Phrase      string  `json:"phrase"`
	Depth       int     `json:"depth"`
	Match       int     `json:"match"`
}

// Disassemble returns one Instruction per instruction of p. Depth is the
// number of enclosing loops; Match is the index of the partner loop marker,
// or -1 when there is none.
func Disassemble(p *bytecode.Program) []Instruction {
	matches := bytecode.Match(p)
	instructions := make([]Instruction, 0, p.InstructionCount())
	depth := 0
	for i := 0; i < p.InstructionCount(); i++ {
		code := p.InstructionAt(i)
		if code == op.LoopEnd && matches[i] >= 0 {
			depth--
		}
		instructions = append(instructions, Instruction{
			Offset:      i,
			Name:        op.GetInfo(code).Name,
			Opcode:      code,
			Punctuation: token.Symbol(code, token.Punctuation),
			Phrase:      token.Symbol(code, token.Phrase),
			Depth:       depth,
			Match:       matches[i],
		})
		if code == op.LoopStart && matches[i] >= 0 {
			depth++
		}
	}
	return instructions
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
)

// Print a table of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		var values []string
		values = append(values, fmt.Sprintf("%d", instr.Offset))
		values = append(values, bold(instr.Name))
		values = append(values, yellow(instr.Punctuation))
		values = append(values, cyan(instr.Phrase))
		values = append(values, fmt.Sprintf("%d", instr.Depth))
		switch {
		case instr.Match >= 0:
			values = append(values, magenta(fmt.Sprintf("-> %d", instr.Match)))
		case instr.Opcode.IsLoop():
			values = append(values, red("unmatched"))
		default:
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	return table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "BF", "OOK", "DEPTH", "JUMP"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignCenter,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}
