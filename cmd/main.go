package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"file-hash-service/internal/config"
	"file-hash-service/internal/handler"
	"file-hash-service/internal/logging"
	"file-hash-service/internal/service"
	"file-hash-service/pkg/storage"
	"file-hash-service/pkg/validator"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is configs/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logger, flush, err := logging.New(logging.Options{
		Service:      handler.ServiceName,
		Production:   cfg.IsProduction(),
		ErrorFile:    cfg.Log.ErrorFile,
		CombinedFile: cfg.Log.CombinedFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer flush()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exit", zap.Error(err))
		flush()
		os.Exit(1)
	}
}

func newSource(cfg *config.Config) (storage.Source, error) {
	switch cfg.Storage.Type {
	case config.StorageLocal:
		return storage.NewLocalSource(cfg.Storage.Local.Root)
	case config.StorageSeaweedFS:
		return storage.NewFilerSource(cfg.Storage.SeaweedFS.FilerURL)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	src, err := newSource(cfg)
	if err != nil {
		return fmt.Errorf("storage init failed: %w", err)
	}

	v, err := validator.NewHashValidator(cfg.Hash.Algorithms)
	if err != nil {
		return fmt.Errorf("validator init failed: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := service.NewHashService(src, cfg.Hash.ChunkSize, logger)
	hdl := handler.NewHashHandler(svc, v, logger)
	r := handler.NewRouter(hdl, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		logger.Info("Server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.Storage.Type),
			zap.Strings("algorithms", v.Algorithms()))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sig)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-sig:
			logger.Info("Shutting down", zap.String("signal", s.String()))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	})

	return g.Wait()
}
