package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dataset over HTTP for the rankings frontend",
	Long: `Serve exposes /data.json, /data.js, /stats and /health. The dataset file
is re-read on every request, so a new harvest is visible immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("origins")

		h := &serve.Handler{JSONPath: viper.GetString("output_json")}
		srv := &http.Server{
			Addr:              addr,
			Handler:           serve.NewRouter(h, origins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "Serving %s on %s\n", h.JSONPath, addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("origins", nil, "allowed CORS origins (default: any)")
	rootCmd.AddCommand(serveCmd)
}
