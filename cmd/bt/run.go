package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/braintranscriber/bt"
	"github.com/braintranscriber/bt/token"
	"github.com/spf13/cobra"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Program text")
	cmd.Flags().Bool("stdin", false, "Read the program from stdin")
}

func newRunCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Run a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := getSource(cmd, a.v, args, true)
			if err != nil {
				return err
			}
			notation, err := getNotation(cmd, a.v)
			if err != nil {
				return err
			}
			return a.run(cmd.Context(), source, notation)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

// run executes source against the command's streams. When the program
// itself was read from stdin, input instructions see end of input.
func (a *app) run(ctx context.Context, source string, notation token.Notation) error {
	program := bt.Decode(source, notation)
	a.logger.Debug().
		Str("notation", notation.String()).
		Int("instructions", program.InstructionCount()).
		Msg("decoded program")

	out := bufio.NewWriter(a.stdout)
	opts, err := getRunOptions(a.v, a.stdin, out, a.logger)
	if err != nil {
		return err
	}
	runErr := bt.RunProgram(ctx, program, opts...)
	if err := out.WriteByte('\n'); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if runErr != nil {
		a.logger.Debug().Err(runErr).Msg("run failed")
		return runErr
	}
	return nil
}

func (a *app) translate(source string, notation token.Notation) error {
	translated := bt.Translate(source, notation)
	a.logger.Debug().
		Str("from", notation.String()).
		Str("to", notation.Other().String()).
		Msg("translated program")
	_, err := fmt.Fprintln(a.stdout, translated)
	return err
}
