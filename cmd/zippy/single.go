package main

import (
	"github.com/spf13/cobra"
)

func newSingleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "single <file>",
		Short: "Process one dictionary",
		Long: `Processes a single dictionary. A bare file name is looked up in the
input directory when it does not exist as given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := opts.newPipeline(cmd)
			if err != nil {
				return err
			}
			res, err := pipeline.ProcessFile(cmd.Context(), args[0])
			if res.File != "" {
				printResult(cmd, res)
			}
			return err
		},
	}
}
