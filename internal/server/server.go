// Package server wires the service together: the container codec, the
// office rasterizer, session state, the assembly pipeline and the HTTP
// surface.
//
// Expected outputs:
// - Server listens on the configured port (default 8080)
// - Idle sessions and their files are swept periodically
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go-mergesign/internal/config"
	"go-mergesign/internal/document"
	"go-mergesign/internal/handlers"
	"go-mergesign/internal/office"
	"go-mergesign/internal/pdf"
	"go-mergesign/internal/session"
)

type Server struct {
	sessions *session.Manager
	api      *handlers.APIHandler
}

// NewServer builds the dependency graph from cfg and returns the configured
// http.Server plus a shutdown func that releases the headless browser.
func NewServer(cfg *config.Config) (*http.Server, func() error, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output dir: %w", err)
	}

	logger := slog.Default()
	codec := pdf.NewEncoder()
	chrome := office.NewChromium(office.ChromiumConfig{
		ControlURL: cfg.Chrome.ControlURL,
		PageFormat: cfg.Chrome.PageFormat,
		MarginMM:   cfg.Chrome.MarginMM,
		Timeout:    cfg.Chrome.Timeout(),
		Logger:     logger,
	})

	sessions := session.NewManager()
	srv := &Server{
		sessions: sessions,
		api: &handlers.APIHandler{
			Sessions: sessions,
			Normalizer: document.NewNormalizer(codec, chrome, document.NormalizerConfig{
				MaxImageEdge: cfg.Image.MaxEdge,
				JPEGQuality:  cfg.Image.JPEGQuality,
				Logger:       logger,
			}),
			Merger:       document.NewMerger(codec, logger),
			Stamper:      document.NewStamper(codec, logger),
			UploadDir:    cfg.UploadDir,
			OutputDir:    cfg.OutputDir,
			MaxUpload:    cfg.MaxUploadBytes(),
			Uncompressed: cfg.Output.Uncompressed,
		},
	}

	// Sweep goroutine for idle sessions and their files
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessions.SweepExpired(cfg.SessionTTL()); n > 0 {
				logger.Info("sessions swept", "count", n)
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}
	return httpServer, chrome.Close, nil
}
