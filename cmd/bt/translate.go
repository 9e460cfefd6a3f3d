package main

import "github.com/spf13/cobra"

func newTranslateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [path]",
		Short: "Translate a program to the other notation",
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
			return a.translate(source, notation)
		},
	}
	addSourceFlags(cmd)
	return cmd
}
