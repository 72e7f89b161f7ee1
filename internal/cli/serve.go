package cli

import (
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP editor API",
		Example: `  # Start on the configured port (PORT, default 8080)
  covergen serve

  # Start on a custom port
  covergen serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				opts.cfg.Server.Port = port
			}
			return Serve(cmd.Context(), opts.cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on")

	return cmd
}
