package bytecode

import (
	"fmt"

	"github.com/braintranscriber/bt/errz"
	"github.com/braintranscriber/bt/op"
	"github.com/hashicorp/go-multierror"
)

// FindLoopEnd returns the index of the loop end matching the loop start at
// index start. Instructions other than loop markers are ignored. If the loop
// is never closed an ErrUnbalancedLoop error naming start is returned.
func FindLoopEnd(p *Program, start int) (int, error) {
	if start < 0 || start >= p.InstructionCount() {
		return -1, fmt.Errorf("instruction index out of range: %d", start)
	}
	if code := p.InstructionAt(start); code != op.LoopStart {
		return -1, fmt.Errorf("instruction %d is %s, not %s", start, code, op.LoopStart)
	}
	depth := 0
	for i := start + 1; i < p.InstructionCount(); i++ {
		switch p.InstructionAt(i) {
		case op.LoopStart:
			depth++
		case op.LoopEnd:
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return -1, errz.UnbalancedLoop(start, op.LoopStart)
}

// Match pairs the loop markers of p in a single pass. The returned slice has
// one entry per instruction: the index of the partner marker, or -1 for
// instructions that are not loop markers or have no partner.
func Match(p *Program) []int {
	matches := make([]int, p.InstructionCount())
	var open []int
	for i := range matches {
		matches[i] = -1
		switch p.InstructionAt(i) {
		case op.LoopStart:
			open = append(open, i)
		case op.LoopEnd:
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			matches[start] = i
			matches[i] = start
		}
	}
	return matches
}

// Check reports every unmatched loop marker in p, in program order. The
// result is nil for a balanced program and a *multierror.Error otherwise.
func Check(p *Program) error {
	matches := Match(p)
	var unmatched []int
	for i, partner := range matches {
		if partner < 0 && p.InstructionAt(i).IsLoop() {
			unmatched = append(unmatched, i)
		}
	}
	if len(unmatched) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, i := range unmatched {
		result = multierror.Append(result, errz.UnbalancedLoop(i, p.InstructionAt(i)))
	}
	return result.ErrorOrNil()
}
