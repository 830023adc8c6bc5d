package main

import (
	"github.com/spf13/cobra"
)

func newAllCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Process every dictionary in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAll(cmd, opts)
		},
	}
}

func runAll(cmd *cobra.Command, opts *options) error {
	pipeline, err := opts.newPipeline(cmd)
	if err != nil {
		return err
	}

	runErr := pipeline.ProcessAll(cmd.Context())

	results := pipeline.Results()
	ok := 0
	for _, r := range results {
		printResult(cmd, r)
		if r.Err == nil {
			ok++
		}
	}
	if len(results) > 0 {
		cmd.Printf("processed %d/%d dictionaries\n", ok, len(results))
	}

	if runErr != nil {
		return runErr
	}
	if pipeline.HasErrors() {
		return errFailures
	}
	return nil
}
