// Package bytecode provides the immutable instruction sequence produced by
// decoding a program, along with loop resolution over that sequence.
//
// # Immutability Guarantees
//
// A [Program] is created once by the lexer and shared read-only by the
// virtual machine and the translator:
//
//   - No mutation methods exist
//   - The constructor copies its input slice
//   - Access is index-based; no method returns the backing slice
//
//	program := lexer.Decode("+[-]", token.Punctuation)
//	for i := 0; i < program.InstructionCount(); i++ {
//	    fmt.Println(program.InstructionAt(i))
//	}
//
// # Loops
//
// [FindLoopEnd] resolves the loop end matching a loop start by counting
// nesting depth, which is what the virtual machine does when it skips a
// loop body. [Match] pairs every marker in one pass and [Check] reports all
// unmatched markers at once.
package bytecode
