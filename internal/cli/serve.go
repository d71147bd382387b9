package cli

import (
	"github.com/spf13/cobra"

	"github.com/fileconv/fileconv/internal/api"
)

// newServeCmd creates the serve command, which exposes the conversion
// pipeline over HTTP.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			return api.New(logger).Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8537", "listen address")

	return cmd
}
