package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
)

const defaultSeverity = "medium"

func newAddFindingCmd(opts *globalOptions) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:       fmt.Sprintf("add-finding [%s]", strings.Join(finding.Names(), "|")),
		Short:     "Add a finding scaffold of the given severity (default medium)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: finding.Names(),
		RunE: func(_ *cobra.Command, args []string) error {
			name := defaultSeverity
			if len(args) == 1 {
				name = args[0]
			}
			severity, err := finding.ParseName(name)
			if err != nil {
				return err
			}

			path, err := opts.workspace().AddFinding(severity, title)
			if err != nil {
				return err
			}
			ui.PrintSuccess(fmt.Sprintf("Added %s finding", severity))
			ui.PrintPath("File", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "finding title")
	return cmd
}
