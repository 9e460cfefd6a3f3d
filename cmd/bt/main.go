package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/braintranscriber/bt/vm"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const longUsage = `Runs or translates programs written in punctuation notation (-b, the
default) or phrase notation (-o). The last argument is the program text,
or a path to it when -f is given.`

// app holds the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: zerolog.Nop(),
	}

	cmd := &cobra.Command{
		Use:   "bt [-b|-o] [-i|-t] [-f] <code|path>",
		Short: "Run and translate punctuation and phrase notation programs",
		Long:  longUsage,
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			isPath, _ := cmd.Flags().GetBool("file")
			source, err := getSource(cmd, a.v, args, isPath)
			if err != nil {
				return err
			}
			notation, err := getNotation(cmd, a.v)
			if err != nil {
				return err
			}
			if translate, _ := cmd.Flags().GetBool("translate"); translate {
				return a.translate(source, notation)
			}
			return a.run(cmd.Context(), source, notation)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolP("brainfuck", "b", false, "Source is in punctuation notation (default)")
	flags.BoolP("ook", "o", false, "Source is in phrase notation")
	flags.BoolP("interpret", "i", false, "Run the program (default)")
	flags.BoolP("translate", "t", false, "Translate the program to the other notation")
	flags.BoolP("file", "f", false, "Treat the argument as a path to the program")
	cmd.MarkFlagsMutuallyExclusive("brainfuck", "ook")
	cmd.MarkFlagsMutuallyExclusive("interpret", "translate")

	pflags := cmd.PersistentFlags()
	pflags.String("config", "", "config file (default is $HOME/.bt.yaml)")
	pflags.StringP("notation", "n", "punctuation", "Source notation: punctuation or phrase")
	pflags.Int("tape-size", vm.DefaultTapeSize, "Initial number of tape cells")
	pflags.Bool("no-color", false, "Disable colored output")
	pflags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")
	pflags.Bool("trace", false, "Log every executed instruction")
	pflags.Int64("max-steps", 0, "Halt after this many instructions (0 for no limit)")

	cmd.RegisterFlagCompletionFunc("notation", cobra.FixedCompletions(
		[]string{"punctuation", "phrase"}, cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(
		newRunCommand(a),
		newTranslateCommand(a),
		newDisCommand(a),
		newCheckCommand(a),
		newVersionCommand(a),
		newServeCommand(a),
	)
	return cmd
}

// setup binds flags, environment and config file into the command's settings
// and prepares the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	a.v.SetEnvPrefix("bt")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cfgFile := a.v.GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".bt")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	processGlobalFlags(a.v, a.stdout)
	logger, err := newLogger(a.v, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("path", used).Msg("config loaded")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd := newRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		fatal(err)
	}
}
