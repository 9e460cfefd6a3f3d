package main

import (
	"fmt"

	"github.com/braintranscriber/bt"
	"github.com/braintranscriber/bt/bytecode"
	"github.com/braintranscriber/bt/dis"
	"github.com/spf13/cobra"
)

type disOutput struct {
	Stats        bytecode.Stats    `json:"stats"`
	Instructions []dis.Instruction `json:"instructions"`
}

func newDisCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [path]",
		Short: "Disassemble a program",
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
			program := bt.Decode(source, notation)
			instructions := dis.Disassemble(program)
			if !isJSON(format) {
				return dis.Print(instructions, a.stdout)
			}
			data, err := getOutputJSON(a.v, disOutput{
				Stats:        bytecode.GetStats(program),
				Instructions: instructions,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(data))
			return err
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("output", "", "Set the output format (text or json)")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}
