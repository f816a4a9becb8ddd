package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"

	"github.com/voidAlex/student-roll-call/internal/config"
	"github.com/voidAlex/student-roll-call/internal/http/router"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/nower"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
	"github.com/voidAlex/student-roll-call/internal/repository"
	"github.com/voidAlex/student-roll-call/internal/service"
)

// App отвечает за жизненный цикл сервиса.
type App struct {
	cfg    config.Config
	server *http.Server
	repo   *repository.Storage
	trMgr  trm.Manager
}

// New подготавливает все зависимости приложения: БД, репозитории, сервисы, HTTP-роутер.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	// Инициализация transaction manager для управления транзакциями
	trMgr := manager.Must(trmsql.NewDefaultFactory(db))

	nowerImpl := nower.New()
	repo := repository.New(db, nowerImpl)
	svc := service.New(repo, cfg, trMgr, randomizer.New(), nowerImpl)

	var swaggerSpec []byte
	if data, err := os.ReadFile(cfg.Swagger.SpecPath); err != nil {
		slog.Warn("failed to load swagger spec", "path", cfg.Swagger.SpecPath, "error", err)
	} else {
		swaggerSpec = data
	}
	handler := router.New(svc, swaggerSpec, cfg.HTTP.MaxUploadBytes)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:    cfg,
		server: srv,
		repo:   repo,
		trMgr:  trMgr,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		// Graceful shutdown: даём серверу время завершить обработку текущих запросов
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeouts.Shutdown)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return a.closeStorage()
	case err := <-errCh:
		_ = a.closeStorage()
		return err
	}
}

func (a *App) closeStorage() error {
	if err := a.repo.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// openStorage создаёт каталог данных, открывает файл БД и применяет миграции.
func openStorage(ctx context.Context, cfg config.StorageConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := repository.Open(ctx, cfg.Path, cfg.BusyTimeout)
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}
