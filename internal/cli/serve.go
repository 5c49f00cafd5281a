package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/curbmap/internal/cache"
	"github.com/mesh-intelligence/curbmap/internal/dataset"
	"github.com/mesh-intelligence/curbmap/internal/engine"
	"github.com/mesh-intelligence/curbmap/internal/server"
	"github.com/mesh-intelligence/curbmap/pkg/types"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve datasets and filtered regulations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ServerAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func serve(ctx context.Context, a *app, addr string) error {
	tb, err := types.ParseTieBreak(a.cfg.TieBreak)
	if err != nil {
		return err
	}
	c, err := cache.New(a.cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if a.cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(server.Options{
		Catalog: dataset.NewCatalog(a.cfg.DataDir, a.cfg.Datasets, a.logger),
		Cache:   c,
		Filter: engine.New(
			engine.WithLogger(a.logger),
			engine.WithWorkers(a.cfg.Workers),
			engine.WithTieBreak(tb),
		),
		Logger:      a.logger,
		DefaultDay:  a.cfg.DefaultDay,
		DefaultTime: a.cfg.DefaultTime,
	})

	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		a.logger.Info("http_listen", "addr", addr, "data_dir", a.cfg.DataDir, "cache", a.cfg.CacheBackend)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return sysErrorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("http_shutdown")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return sysErrorf("shutdown: %w", err)
	}
	return nil
}
