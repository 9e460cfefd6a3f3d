// Package translator renders programs in the other notation.
package translator

import (
	"io"
	"strings"

	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/lexer"
	"github.com/braintranscriber/bt/token"
)

// Render spells every instruction of p in notation n, in order, each
// followed by the notation's separator.
func Render(p *bytecode.Program, n token.Notation) string {
	var sb strings.Builder
	width := 1
	if n == token.Phrase {
		width = token.PhraseWidth
	}
	sb.Grow(p.InstructionCount() * (width + len(n.Separator())))
	// WriteTo on a strings.Builder cannot fail.
	_, _ = WriteTo(&sb, p, n)
	return sb.String()
}

// WriteTo writes the rendering of p in notation n to w.
func WriteTo(w io.Writer, p *bytecode.Program, n token.Notation) (int64, error) {
	var total int64
	sep := n.Separator()
	for i := 0; i < p.InstructionCount(); i++ {
		written, err := io.WriteString(w, token.Symbol(p.InstructionAt(i), n)+sep)
		total += int64(written)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Translate decodes source written in notation from and renders it in the
// other notation. Comments and formatting of the source are not preserved.
func Translate(source string, from token.Notation) string {
	return Render(lexer.Decode(source, from), from.Other())
}
