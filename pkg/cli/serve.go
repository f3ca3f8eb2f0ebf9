package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/secmon-lab/toolhub/pkg/cli/config"
	httpctrl "github.com/secmon-lab/toolhub/pkg/controller/http"
	"github.com/secmon-lab/toolhub/pkg/service/tools"
	"github.com/secmon-lab/toolhub/pkg/usecase"
	"github.com/secmon-lab/toolhub/pkg/utils/async"
	"github.com/secmon-lab/toolhub/pkg/utils/logging"
	"github.com/secmon-lab/toolhub/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var jpegQuality int
	var maxUploadBytes int64
	var enableMetrics bool
	var catalogPath string
	var repoCfg config.Repository
	var fetchCfg config.Fetch
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TOOLHUB_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "jpeg-quality",
			Usage:       "JPEG quality of resized images (1-100)",
			Value:       tools.DefaultJPEGQuality,
			Sources:     cli.EnvVars("TOOLHUB_JPEG_QUALITY"),
			Destination: &jpegQuality,
		},
		&cli.Int64Flag{
			Name:        "max-upload-bytes",
			Usage:       "Maximum request body size",
			Value:       httpctrl.DefaultMaxUploadBytes,
			Sources:     cli.EnvVars("TOOLHUB_MAX_UPLOAD_BYTES"),
			Destination: &maxUploadBytes,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics at /metrics",
			Value:       true,
			Sources:     cli.EnvVars("TOOLHUB_METRICS"),
			Destination: &enableMetrics,
		},
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Catalog TOML file loaded into the repository at startup",
			Sources:     cli.EnvVars("TOOLHUB_CATALOG"),
			Destination: &catalogPath,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, fetchCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if jpegQuality < 1 || jpegQuality > 100 {
				return goerr.New("jpeg-quality must be between 1 and 100", goerr.V("jpeg_quality", jpegQuality))
			}

			catalog, err := loadServeCatalog(catalogPath, repoCfg.Backend())
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			if catalog != nil {
				if err := seedCatalog(ctx, repo, catalog); err != nil {
					return goerr.Wrap(err, "failed to seed catalog")
				}
			}

			fetcher, err := fetchCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure page fetcher")
			}
			logging.Default().Info("Page fetcher configured", "fetch", fetchCfg)

			executor := tools.New(
				tools.WithFetcher(fetcher),
				tools.WithJPEGQuality(jpegQuality),
			)

			ucOpts := []usecase.Option{
				usecase.WithExecutor(executor),
			}
			httpOpts := []httpctrl.Options{
				httpctrl.WithMaxUploadBytes(maxUploadBytes),
			}

			if enableMetrics {
				registry := prometheus.NewRegistry()
				registry.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				ucOpts = append(ucOpts, usecase.WithMetrics(metrics.New(registry)))
				httpOpts = append(httpOpts, httpctrl.WithMetricsHandler(
					promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
				))
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "metrics", enableMetrics)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				// Pending usage records must land before the repository closes
				async.Wait()

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// loadServeCatalog returns the catalog to seed before serving. Without a
// catalog file the memory backend gets one entry per built-in operation so
// usage and analytics work out of the box; other backends are left as is.
func loadServeCatalog(path, backend string) (*config.Catalog, error) {
	if path != "" {
		catalog, err := config.LoadCatalog(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load catalog")
		}
		return catalog, nil
	}

	if backend == config.BackendMemory {
		return builtinCatalog(), nil
	}
	return nil, nil
}
