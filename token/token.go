// Package token defines the two source notations and the tokens each of them
// uses to spell the eight instructions.
package token

import (
	"fmt"
	"strings"

	"github.com/braintranscriber/bt/op"
)

// Notation identifies a surface syntax for programs.
type Notation uint8

const (
	// Punctuation spells each instruction as one character, as in "+[-]".
	Punctuation Notation = iota
	// Phrase spells each instruction as a pair of words, as in "Ook. Ook!".
	Phrase
)

// PhraseWidth is the length in bytes of one phrase token, including the
// single space between its two words.
const PhraseWidth = 9

// String returns the canonical lower case name of the notation.
func (n Notation) String() string {
	switch n {
	case Punctuation:
		return "punctuation"
	case Phrase:
		return "phrase"
	default:
		return fmt.Sprintf("notation(%d)", uint8(n))
	}
}

// Other returns the notation a program is translated into.
func (n Notation) Other() Notation {
	if n == Phrase {
		return Punctuation
	}
	return Phrase
}

// Separator is written after every token when rendering in this notation.
func (n Notation) Separator() string {
	if n == Phrase {
		return " "
	}
	return ""
}

// ParseNotation converts a user supplied notation name. Common names of the
// two languages are accepted as aliases.
func ParseNotation(name string) (Notation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "punctuation", "brainfuck", "bf", "b":
		return Punctuation, nil
	case "phrase", "ook", "ook!", "o":
		return Phrase, nil
	default:
		return Punctuation, fmt.Errorf("unknown notation: %q", name)
	}
}

type entry struct {
	code   op.Code
	punct  byte
	phrase string
}

var table = []entry{
	{op.MoveRight, '>', "Ook. Ook?"},
	{op.MoveLeft, '<', "Ook? Ook."},
	{op.Increment, '+', "Ook. Ook."},
	{op.Decrement, '-', "Ook! Ook!"},
	{op.LoopStart, '[', "Ook! Ook?"},
	{op.LoopEnd, ']', "Ook? Ook!"},
	{op.Output, '.', "Ook! Ook."},
	{op.Input, ',', "Ook. Ook!"},
}

var (
	punctuations [256]op.Code
	phrases      = make(map[string]op.Code, len(table))
	symbols      = make(map[op.Code][2]string, len(table))
)

func init() {
	for _, e := range table {
		punctuations[e.punct] = e.code
		phrases[e.phrase] = e.code
		symbols[e.code] = [2]string{string(e.punct), e.phrase}
	}
}

// LookupPunctuation returns the instruction spelled by c, if any.
func LookupPunctuation(c byte) (op.Code, bool) {
	code := punctuations[c]
	return code, code != op.Invalid
}

// LookupPhrase returns the instruction spelled by s. Only an exact match of a
// full PhraseWidth token is recognized.
func LookupPhrase(s string) (op.Code, bool) {
	code, ok := phrases[s]
	return code, ok
}

// Symbol returns the token for code in the given notation, or "" when code
// is not an instruction.
func Symbol(code op.Code, n Notation) string {
	s, ok := symbols[code]
	if !ok {
		return ""
	}
	if n == Phrase {
		return s[1]
	}
	return s[0]
}
