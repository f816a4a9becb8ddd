package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/voidAlex/student-roll-call/internal/app"
	"github.com/voidAlex/student-roll-call/internal/config"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.MustLoad()
	cleanup := setupLogger(cfg)
	defer cleanup()

	slog.Info("starting roll call server", "storage", cfg.Storage.Path, "strict_restart", cfg.RandomCall.StrictRestart)

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to init app", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		slog.Error("application stopped with error", "error", err)
		os.Exit(1)
	}
}

// setupLogger настраивает JSON-логи по конфигу. Возвращает функцию закрытия файла логов.
func setupLogger(cfg config.Config) func() {
	writer, closer := logWriter(cfg.Logging.Output)

	handler := slog.Handler(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(slog.New(logging.NewLoggerImpl(handler)))

	return func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
}

func logWriter(output string) (io.Writer, io.Closer) {
	switch strings.ToLower(output) {
	case "stdout", "":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	return f, f
}

// parseLevel понимает debug/info/warn/error в любом регистре, иначе info.
func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
