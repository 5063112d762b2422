package main

import (
	"github.com/spf13/cobra"

	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the report directory with a base config.json",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ws := opts.workspace()
			if err := ws.Init(force); err != nil {
				return err
			}
			ui.PrintSuccess("Initialized report directory " + ws.Root())
			ui.PrintHelp("Fill in " + ws.ConfigPath() + " and add findings with 'compiloor add-finding'")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing report directory")
	return cmd
}
