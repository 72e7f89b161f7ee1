package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/coverapp/internal/config"
)

type rootOptions struct {
	cfg      *config.Config
	logLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "covergen",
		Short: "Event cover generator with bulk spreadsheet export",
		Long: `Covergen renders 800x450 event covers from a layout configuration.

It serves a local HTTP editor, and can render single covers or whole
spreadsheets of sessions into a zip archive from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			config.SetupLogging(os.Stderr, cfg.Log.SlogLevel())
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))

	return cmd
}
