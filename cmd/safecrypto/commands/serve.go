package commands

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/overnest/safecrypto-go/service"
)

func serveCmd() *cobra.Command {
	cfg := service.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the primitives as a JSON over HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := service.New(cfg)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.WithField("address", cfg.Address).Debug("starting service")
			if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Address, "address", cfg.Address, "listen address")
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "origin", cfg.AllowedOrigins, "allowed CORS origins")
	cmd.Flags().IntVar(&cfg.DefaultKeySize, "key-size", cfg.DefaultKeySize, "key size for /keys requests without Bits")
	cmd.Flags().IntVar(&cfg.MaxKeySize, "max-key-size", cfg.MaxKeySize, "largest key size a /keys request may ask for")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "request body limit in bytes")
	cmd.Flags().Int64Var(&cfg.MaxOutputBytes, "max-output", cfg.MaxOutputBytes, "response payload limit in bytes for /uncompress and /random")
	return cmd
}
