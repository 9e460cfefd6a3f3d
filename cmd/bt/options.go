package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/braintranscriber/bt"
	"github.com/braintranscriber/bt/token"
	"github.com/braintranscriber/bt/vm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// getSource determines the program text. There are three possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. args[0], which is a path when argIsPath is set and code otherwise
func getSource(cmd *cobra.Command, v *viper.Viper, args []string, argIsPath bool) (string, error) {
	codeFlagSet := flagChanged(cmd, "code")
	stdinFlagSet := flagChanged(cmd, "stdin")
	argSupplied := len(args) > 0
	if argSupplied && (codeFlagSet || stdinFlagSet) {
		return "", errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return "", errors.New("multiple input sources specified")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(data), nil
	case argSupplied && argIsPath:
		return readSourceFile(args[0])
	case argSupplied:
		return args[0], nil
	case codeFlagSet:
		return v.GetString("code"), nil
	}
	return "", errors.New("no program specified")
}

func readSourceFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("file empty: %s", path)
	}
	return string(data), nil
}

// getNotation returns the notation of the source. The root command's
// -b and -o flags take precedence over the notation setting.
func getNotation(cmd *cobra.Command, v *viper.Viper) (token.Notation, error) {
	if flagChanged(cmd, "ook") {
		if ook, _ := cmd.Flags().GetBool("ook"); ook {
			return token.Phrase, nil
		}
	}
	if flagChanged(cmd, "brainfuck") {
		if bf, _ := cmd.Flags().GetBool("brainfuck"); bf {
			return token.Punctuation, nil
		}
	}
	return token.ParseNotation(v.GetString("notation"))
}

func getRunOptions(v *viper.Viper, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) ([]bt.Option, error) {
	tapeSize := v.GetInt("tape-size")
	if tapeSize < 1 {
		return nil, fmt.Errorf("invalid tape size: %d", tapeSize)
	}
	opts := []bt.Option{
		bt.WithInput(stdin),
		bt.WithOutput(stdout),
		bt.WithTapeSize(tapeSize),
		bt.WithMaxSteps(v.GetInt64("max-steps")),
		bt.WithLogger(logger),
	}
	if v.GetBool("trace") {
		opts = append(opts, bt.WithObserver(vm.Tracer{Logger: logger}))
	}
	return opts, nil
}
