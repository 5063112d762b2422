package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/logging"
	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
	"github.com/Wardens-OSS-Club/compiloor/pkg/workspace"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	dir     string
	debug   bool
	noColor bool
	logger  *zap.Logger
}

func (o *globalOptions) workspace() *workspace.Workspace {
	return workspace.New(o.dir, workspace.WithLogger(o.logger))
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "compiloor",
		Short:         "Compile security review findings into a PDF report",
		Version:       ui.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ui.SetNoColor(opts.noColor)
			logger, err := logging.New(opts.debug)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = opts.logger.Sync()
		},
	}
	root.SetVersionTemplate(ui.VersionString() + "\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dir, "dir", workspace.DefaultRoot, "report directory")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newInitCmd(opts),
		newAddFindingCmd(opts),
		newCompileCmd(opts),
		newVersionCmd(),
	)
	return root
}
