package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func newVersionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.v.GetString("output")
			if err := validOutputFormat(format); err != nil {
				return err
			}
			if !isJSON(format) {
				_, err := fmt.Fprintf(a.stdout, "bt %s (commit %s, built %s)\n", version, commit, date)
				return err
			}
			data, err := getOutputJSON(a.v, versionInfo{Version: version, Commit: commit, Date: date})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(data))
			return err
		},
	}
	cmd.Flags().String("output", "", "Set the output format (text or json)")
	return cmd
}
