package main

import (
	"errors"
	"fmt"

	"github.com/braintranscriber/bt"
	"github.com/braintranscriber/bt/errz"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// Problem is an unmatched loop marker found by the check command.
type Problem struct {
	Position int    `json:"position"`
	Opcode   string `json:"opcode"`
	Message  string `json:"message"`
}

type checkOutput struct {
	Problems []Problem `json:"problems"`
}

func getProblems(err error) []Problem {
	problems := []Problem{}
	if err == nil {
		return problems
	}
	errs := []error{err}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		errs = merr.Errors
	}
	for _, e := range errs {
		var serr *errz.StructuredError
		if errors.As(e, &serr) {
			problems = append(problems, Problem{
				Position: serr.Position,
				Opcode:   serr.Opcode.String(),
				Message:  serr.Message,
			})
		} else {
			problems = append(problems, Problem{Position: -1, Message: e.Error()})
		}
	}
	return problems
}

func newCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Report loop markers without a partner",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.v.GetString("output")
			if err := validOutputFormat(format); err != nil {
				return err
			}
			source, err := getSource(cmd, a.v, args, true)
			if err != nil {
				return err
			}
			notation, err := getNotation(cmd, a.v)
			if err != nil {
				return err
			}
			problems := getProblems(bt.Check(source, notation))
			if isJSON(format) {
				data, err := getOutputJSON(a.v, checkOutput{Problems: problems})
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, string(data))
			} else {
				for _, p := range problems {
					fmt.Fprintf(a.stdout, "%s: instruction %d: %s\n", red("error"), p.Position, p.Message)
				}
			}
			if len(problems) > 0 {
				return fmt.Errorf("found %d problem(s)", len(problems))
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("output", "", "Set the output format (text or json)")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
