package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "H2", "h3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignRight})
	table.Append([]string{"ROW1", "ROW2", "foo bar"})
	table.Append([]string{"a", "b", "c"})
	require.Nil(t, table.Render())

	expected := `
+---------+------+---------+
| HEADER1 |  H2  |      h3 |
+---------+------+---------+
| ROW1    | ROW2 | foo bar |
| a       |    b | c       |
+---------+------+---------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestShortRows(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, NewTable(&buf).
		WithHeader([]string{"A", "B"}).
		WithRows([][]string{{"x"}, {"yy", "zzz"}}).
		Render())

	expected := `
+----+-----+
| A  | B   |
+----+-----+
| x  |     |
| yy | zzz |
+----+-----+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestColoredTable(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = previous }()

	var buf bytes.Buffer

	// Create a table with colored content
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "HEADER2", "HEADER3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignCenter})

	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	table.Append([]string{bold("Bold text"), "12345", green("Green text")})
	table.Append([]string{"Normal", bold("999"), green("More color")})
	require.Nil(t, table.Render())

	result := buf.String()
	require.Contains(t, result, "\x1b[")

	// Color codes don't break alignment
	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
	require.Len(t, lines, 6)
	expectedLength := len(lines[0])
	for i := 1; i < len(lines); i++ {
		require.Equal(t, expectedLength, len(stripAnsi(lines[i])),
			"Line %d has incorrect length after stripping ANSI codes", i)
	}
}

func TestWidthIgnoresEscapes(t *testing.T) {
	require.Equal(t, 3, width("\x1b[1mabc\x1b[0m"))
	require.Equal(t, 4, width("日本"))
}
