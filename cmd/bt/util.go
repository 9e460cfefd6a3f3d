package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// processGlobalFlags applies settings that affect every command.
func processGlobalFlags(v *viper.Viper, stdout io.Writer) {
	if v.GetBool("no-color") {
		color.NoColor = true
	} else if f, ok := stdout.(*os.File); ok && !isTerminal(f) {
		color.NoColor = true
	}
}

var outputFormatsCompletion = []string{"json", "text"}

func validOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func isJSON(format string) bool {
	return strings.ToLower(format) == "json"
}

func getOutputJSON(v *viper.Viper, value any) ([]byte, error) {
	if v.GetBool("no-color") || color.NoColor {
		return json.MarshalIndent(value, "", "  ")
	}
	return prettyjson.Marshal(value)
}

// newLogger builds the console logger written to stderr. The --trace flag
// lowers the level so every executed instruction is logged.
func newLogger(v *viper.Viper, stderr io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %q", v.GetString("log-level"))
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if v.GetBool("trace") {
		level = zerolog.TraceLevel
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	noColor := v.GetBool("no-color")
	if f, ok := stderr.(*os.File); !ok || !isTerminal(f) {
		noColor = true
	}
	writer := zerolog.ConsoleWriter{
		Out:        stderr,
		NoColor:    noColor,
		TimeFormat: "15:04:05.000",
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger(), nil
}
