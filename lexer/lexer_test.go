package lexer

import (
	"testing"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/op"
	"github.com/braintranscriber/bt/token"
	"github.com/stretchr/testify/require"
)

func TestNextPunctuation(t *testing.T) {
	input := "><+-[].,"

	tests := []struct {
		expectedCode   op.Code
		expectedOffset int
	}{
		{op.MoveRight, 0},
		{op.MoveLeft, 1},
		{op.Increment, 2},
		{op.Decrement, 3},
		{op.LoopStart, 4},
		{op.LoopEnd, 5},
		{op.Output, 6},
		{op.Input, 7},
	}
	l := New(input, token.Punctuation)
	require.Equal(t, -1, l.Offset())
	for i, tt := range tests {
		code, ok := l.Next()
		require.True(t, ok, "tests[%d]", i)
		require.Equal(t, tt.expectedCode, code, "tests[%d]", i)
		require.Equal(t, tt.expectedOffset, l.Offset(), "tests[%d]", i)
	}
	code, ok := l.Next()
	require.False(t, ok)
	require.Equal(t, op.Invalid, code)
}

func TestNextPhrase(t *testing.T) {
	input := "Ook. Ook? Ook? Ook. Ook. Ook. Ook! Ook! Ook! Ook? Ook? Ook! Ook! Ook. Ook. Ook!"

	tests := []struct {
		expectedCode   op.Code
		expectedOffset int
	}{
		{op.MoveRight, 0},
		{op.MoveLeft, 10},
		{op.Increment, 20},
		{op.Decrement, 30},
		{op.LoopStart, 40},
		{op.LoopEnd, 50},
		{op.Output, 60},
		{op.Input, 70},
	}
	l := New(input, token.Phrase)
	for i, tt := range tests {
		code, ok := l.Next()
		require.True(t, ok, "tests[%d]", i)
		require.Equal(t, tt.expectedCode, code, "tests[%d]", i)
		require.Equal(t, tt.expectedOffset, l.Offset(), "tests[%d]", i)
	}
	_, ok := l.Next()
	require.False(t, ok)
}

func TestPunctuationComments(t *testing.T) {
	p := Decode("This is + a comment [ with - words ]\n\t.", token.Punctuation)
	require.Equal(t, "INCREMENT LOOP_START DECREMENT LOOP_END OUTPUT", p.String())
}

func TestPhraseResynchronizes(t *testing.T) {
	// Leading noise is skipped one byte at a time. The word pairs that follow
	// are "Ook! Ook?", "Ook. Ook!" and "Ook? Ook!".
	p := Decode("garbled Ook! Ook? Ook. Ook! Ook? Ook!", token.Phrase)
	expected := bytecode.NewProgram([]op.Code{op.LoopStart, op.Input, op.LoopEnd})
	require.True(t, expected.Equal(p), p.String())
}

func TestPhraseIrregularSeparators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Ook. Ook.Ook! Ook.", "INCREMENT OUTPUT"},
		{"Ook. Ook.\n\nOok! Ook.\t", "INCREMENT OUTPUT"},
		{"  Ook. Ook.  xx  Ook! Ook.", "INCREMENT OUTPUT"},
		// A doubled space inside a token breaks it, and the scan realigns
		// on the next word.
		{"Ook.  Ook. Ook! Ook.", "INPUT"},
		{"ook. ook.", ""},
		{"Ook. Oo", ""},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, Decode(tt.input, token.Phrase).String(), "%q", tt.input)
	}
}

func TestPhraseMisalignedToken(t *testing.T) {
	// "Ook? Ook. Ook?" holds both "Ook? Ook." and, one word later,
	// "Ook. Ook?". The first full match wins and consumes its bytes.
	p := Decode("Ook? Ook. Ook?", token.Phrase)
	require.Equal(t, "MOVE_LEFT", p.String())
}

func TestDecodeEmpty(t *testing.T) {
	require.Equal(t, 0, Decode("", token.Punctuation).InstructionCount())
	require.Equal(t, 0, Decode("no instructions here", token.Punctuation).InstructionCount())
	require.Equal(t, 0, Decode("no instructions here", token.Phrase).InstructionCount())
}

func TestPunctuationInPhraseMode(t *testing.T) {
	require.Equal(t, 0, Decode("+++[>+<-].", token.Phrase).InstructionCount())
}
