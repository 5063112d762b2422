package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wardens-OSS-Club/compiloor/pkg/compile"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
)

func newCompileCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Compile the findings into a PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCompile(ctx, compile.New(opts.workspace(), compile.WithLogger(opts.logger)))
		},
	}
}

func runCompile(ctx context.Context, p *compile.Pipeline) error {
	ui.PrintBanner()

	activity := ui.StartActivity("Compiling report")
	res, err := p.Run(ctx)
	activity.Stop()
	if err != nil {
		return err
	}

	ui.PrintSection("Findings")
	ui.PrintFindingsTable(severityCounts(res.Findings))

	ui.PrintSection("Report")
	ui.PrintPath("Report", res.Path)
	ui.PrintConfigLine("Run", res.RunID)
	ui.PrintConfigLine("Duration", res.Duration.Round(time.Millisecond).String())
	if n := len(res.Outcome.Deleted); n > 0 {
		ui.PrintInfo(fmt.Sprintf("Removed %d blank page(s)", n))
	}
	for _, token := range res.Outcome.Unresolved {
		ui.PrintWarning("Page number not resolved: " + token)
	}
	ui.PrintSuccess("Report compiled")
	return nil
}

func severityCounts(c *finding.Collection) []ui.SeverityCount {
	rows := make([]ui.SeverityCount, 0, len(finding.Descending()))
	for _, s := range finding.Descending() {
		rows = append(rows, ui.SeverityCount{Severity: s.Display(), Count: c.Count(s)})
	}
	return rows
}
