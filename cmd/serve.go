package cmd

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"seostudio/internal/acquire"
	"seostudio/internal/publish"
	"seostudio/internal/seo"
	"seostudio/internal/server"
	"seostudio/internal/session"
	"seostudio/internal/storage"
	"seostudio/internal/uploader"
	"seostudio/pkg/config"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload API server",
	Long: `Start the HTTP server exposing POST /api/upload. Requests authenticate
with a bearer token or fall back to the stored YouTube OAuth token
(see: seostudio auth youtube).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	generator := seo.NewGenerator(seo.DefaultLibrary(), rand.New(rand.NewSource(time.Now().UnixNano())))
	store := acquire.NewStore(cfg.Upload.TempDir)
	tokens := session.NewTokenFile(cfg.YouTubeTokenPath)

	var archive publish.Archiver
	if cfg.GCS.Enabled && cfg.GCSBucket != "" {
		gcs, err := storage.NewArchive(ctx, cfg.GCSBucket)
		if err != nil {
			return err
		}
		defer func() { _ = gcs.Close() }()
		archive = gcs
		slog.Info("GCS archive enabled", "bucket", cfg.GCSBucket)
	}

	publisher := publish.NewPublisher(generator, uploader.NewYouTube(), archive)
	api := server.New(publisher, store, tokens)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	slog.Info("API server listening", "addr", httpServer.Addr)
	slog.Info("Endpoints: POST /api/upload, GET /healthz")

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
