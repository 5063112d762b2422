package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), ui.VersionString())
		},
	}
}
