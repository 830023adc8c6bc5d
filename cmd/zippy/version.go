package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/zippy/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("zippy version %s\n", app.BuildVersion())
		},
	}
}
