package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ericsocrat/Lokifi-sub000/internal/api"
	"github.com/ericsocrat/Lokifi-sub000/internal/config"
	"github.com/ericsocrat/Lokifi-sub000/internal/engine"
	"github.com/ericsocrat/Lokifi-sub000/internal/netutil"
	"github.com/ericsocrat/Lokifi-sub000/internal/persist"
	"github.com/ericsocrat/Lokifi-sub000/internal/stream"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	slog.Info("workspace config loaded",
		"bind_addr", cfg.BindAddr,
		"bind_auto_fallback", cfg.PortAutoFallback,
		"bind_fallbacks", cfg.PortCandidates,
		"data_dir", cfg.DataDir,
		"log_level", cfg.LogLevel,
		"log_file", cfg.LogFile,
	)

	bindAddr, err := netutil.SelectBindAddr(cfg.BindAddr, cfg.PortCandidates, cfg.PortAutoFallback)
	if err != nil {
		slog.Error("failed to select bind address", "preferred", cfg.BindAddr, "error", err)
		os.Exit(1)
	}

	disk, err := persist.NewStore(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open data dir", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	svc := engine.NewService(disk)

	feed := stream.NewFeed()
	defer feed.Close()
	svc.Subscribe(feed.Publish)

	h := api.NewServer(svc, feed)
	srv := &http.Server{Addr: bindAddr, Handler: h}

	go func() {
		slog.Info("workspace daemon listening", "addr", bindAddr, "docs", "http://"+bindAddr+"/docs")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("workspace server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("workspace shutdown failed", "error", err)
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stdout, logWriter), &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
