// Package lexer decodes program source in either notation into a Program.
//
// Decoding never fails. Bytes that do not form a token are dropped: in the
// punctuation notation every unrecognized character is a comment, and in the
// phrase notation an unrecognized unit is skipped one byte at a time until a
// full token lines up again.
package lexer

import (
	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/op"
	"github.com/braintranscriber/bt/token"
)

// Lexer scans instructions out of a source string.
type Lexer struct {
	input    string
	notation token.Notation
	position int // offset of the next unread byte
	start    int // offset of the last token returned
}

// New returns a Lexer reading input in the given notation.
func New(input string, notation token.Notation) *Lexer {
	return &Lexer{input: input, notation: notation, start: -1}
}

// Next returns the next instruction in the input. The second result is
// false once the input is exhausted.
func (l *Lexer) Next() (op.Code, bool) {
	if l.notation == token.Phrase {
		return l.nextPhrase()
	}
	return l.nextPunctuation()
}

// Offset returns the byte offset of the last token returned by Next, or -1
// if Next has not produced a token yet.
func (l *Lexer) Offset() int {
	return l.start
}

func (l *Lexer) nextPunctuation() (op.Code, bool) {
	for l.position < len(l.input) {
		offset := l.position
		l.position++
		if code, ok := token.LookupPunctuation(l.input[offset]); ok {
			l.start = offset
			return code, true
		}
	}
	return op.Invalid, false
}

func (l *Lexer) nextPhrase() (op.Code, bool) {
	for l.position+token.PhraseWidth <= len(l.input) {
		unit := l.input[l.position : l.position+token.PhraseWidth]
		if code, ok := token.LookupPhrase(unit); ok {
			l.start = l.position
			l.position += token.PhraseWidth
			return code, true
		}
		// Resynchronize by a single byte rather than a whole unit.
		l.position++
	}
	l.position = len(l.input)
	return op.Invalid, false
}

// Decode returns the instructions found in input, in source order.
func Decode(input string, notation token.Notation) *bytecode.Program {
	l := New(input, notation)
	var codes []op.Code
	for {
		code, ok := l.Next()
		if !ok {
			break
		}
		codes = append(codes, code)
	}
	return bytecode.NewProgram(codes)
}
