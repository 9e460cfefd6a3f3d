package translator

import (
	"errors"
	"testing"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/lexer"
	"github.com/braintranscriber/bt/op"
	"github.com/braintranscriber/bt/token"
	"github.com/stretchr/testify/require"
)

func TestTranslatePunctuationToPhrase(t *testing.T) {
	require.Equal(t, "Ook. Ook. Ook. Ook. Ook. Ook. Ook! Ook. ", Translate("+++.", token.Punctuation))
}

func TestTranslatePhraseToPunctuation(t *testing.T) {
	require.Equal(t, "+++.", Translate("Ook. Ook. Ook. Ook. Ook. Ook. Ook! Ook.", token.Phrase))
}

func TestRenderEveryInstruction(t *testing.T) {
	p := bytecode.NewProgram(op.All())
	require.Equal(t, "><+-[].,", Render(p, token.Punctuation))
	require.Equal(t,
		"Ook. Ook? Ook? Ook. Ook. Ook. Ook! Ook! Ook! Ook? Ook? Ook! Ook! Ook. Ook. Ook! ",
		Render(p, token.Phrase))
}

func TestRenderEmpty(t *testing.T) {
	require.Equal(t, "", Render(bytecode.NewProgram(nil), token.Phrase))
	require.Equal(t, "", Translate("just a comment", token.Punctuation))
}

func TestDropsComments(t *testing.T) {
	require.Equal(t, "Ook. Ook. Ook! Ook. ", Translate("add one + then print .\n", token.Punctuation))
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"+",
		"++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.",
		",[.,]",
		"][<>",
	}
	for _, src := range sources {
		original := lexer.Decode(src, token.Punctuation)

		phrase := Render(original, token.Phrase)
		require.True(t, original.Equal(lexer.Decode(phrase, token.Phrase)), src)

		back := Render(lexer.Decode(phrase, token.Phrase), token.Punctuation)
		require.True(t, original.Equal(lexer.Decode(back, token.Punctuation)), src)
	}
}

func TestRoundTripFromPhrase(t *testing.T) {
	src := "Ook. Ook? Ook! Ook?\nOok. Ook. Ook? Ook!  Ook. Ook!"
	original := lexer.Decode(src, token.Phrase)
	require.Equal(t, 5, original.InstructionCount())
	punct := Render(original, token.Punctuation)
	require.Equal(t, ">[+],", punct)
	require.True(t, original.Equal(lexer.Decode(punct, token.Punctuation)))
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--
	return len(p), nil
}

func TestWriteToError(t *testing.T) {
	p := lexer.Decode("+++", token.Punctuation)
	n, err := WriteTo(&failingWriter{after: 2}, p, token.Phrase)
	require.EqualError(t, err, "disk full")
	require.Equal(t, int64(20), n)
}
