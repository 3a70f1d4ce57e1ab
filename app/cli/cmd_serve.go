package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// serveCmd serves the pages so they can be previewed and rendered
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve edit pages and their previews over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Listen on 0.0.0.0 to accept connections from all interfaces
		addr := "0.0.0.0:" + application.Config.Port
		server := &http.Server{
			Addr:              addr,
			Handler:           application.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Printf("⚠️  Server shutdown: %v", err)
			}
		}()

		log.Printf("Server starting on %s", addr)
		log.Printf("Edit page index: GET http://localhost:%s/admin/edit-pages", application.Config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
