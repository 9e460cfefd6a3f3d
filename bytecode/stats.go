package bytecode

import "github.com/braintranscriber/bt/op"

// Stats contains statistics about a decoded program.
// This is useful for auditing programs before execution.
type Stats struct {
	// InstructionCount is the total number of instructions.
	InstructionCount int `json:"instruction_count"`

	// Counts holds the number of occurrences of each instruction, keyed by
	// instruction name.
	Counts map[string]int `json:"counts"`

	// LoopCount is the number of matched loop pairs.
	LoopCount int `json:"loop_count"`

	// MaxDepth is the deepest loop nesting reached by matched loops.
	MaxDepth int `json:"max_depth"`

	// Unmatched is the number of loop markers without a partner.
	Unmatched int `json:"unmatched"`
}

// GetStats returns statistics about the given program.
func GetStats(p *Program) Stats {
	stats := Stats{
		InstructionCount: p.InstructionCount(),
		Counts:           map[string]int{},
	}
	for _, code := range op.All() {
		stats.Counts[code.String()] = 0
	}
	matches := Match(p)
	depth := 0
	for i, partner := range matches {
		code := p.InstructionAt(i)
		stats.Counts[code.String()]++
		if !code.IsLoop() {
			continue
		}
		if partner < 0 {
			stats.Unmatched++
			continue
		}
		if code == op.LoopStart {
			stats.LoopCount++
			depth++
			if depth > stats.MaxDepth {
				stats.MaxDepth = depth
			}
		} else {
			depth--
		}
	}
	return stats
}
