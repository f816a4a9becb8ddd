package service

import (
	"context"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/voidAlex/student-roll-call/internal/config"
	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/nower"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
	"github.com/voidAlex/student-roll-call/internal/randomcall"
	"github.com/voidAlex/student-roll-call/internal/repository"
	"github.com/voidAlex/student-roll-call/internal/rollcall"
)

const (
	// DefaultOperationTimeout таймаут по умолчанию для обычных операций
	DefaultOperationTimeout = 5 * time.Second
	// DefaultLongOperationTimeout таймаут по умолчанию для импорта и выгрузок
	DefaultLongOperationTimeout = 30 * time.Second
)

// Repository описывает операции, которые требуются сервису.
type Repository interface {
	repository.Repository
}

// Service агрегирует бизнес-логику приложения: ростер, перекличку,
// случайный вызов и журнал посещаемости.
type Service struct {
	repo       Repository
	health     repository.HealthChecker
	cfg        config.Config
	trMgr      trm.Manager
	randomizer randomizer.Randomizer
	nower      nower.Nower
	rollCall   *rollcall.Manager
	randomCall *randomcall.Manager
}

func New(repo Repository, cfg config.Config, trMgr trm.Manager, rnd randomizer.Randomizer, nower nower.Nower) *Service {
	svc := &Service{
		repo:       repo,
		cfg:        cfg,
		trMgr:      trMgr,
		randomizer: rnd,
		nower:      nower,
		rollCall:   rollcall.New(nower),
		randomCall: randomcall.New(rnd, nower, randomCallOptions(cfg.RandomCall)),
	}
	if svc.cfg.Timeouts.Operation <= 0 {
		svc.cfg.Timeouts.Operation = DefaultOperationTimeout
	}
	if svc.cfg.Timeouts.LongOperation <= 0 {
		svc.cfg.Timeouts.LongOperation = DefaultLongOperationTimeout
	}
	if checker, ok := repo.(repository.HealthChecker); ok {
		svc.health = checker
	}
	return svc
}

func randomCallOptions(cfg config.RandomCallConfig) randomcall.Options {
	return randomcall.Options{
		MaxRecent:     cfg.MaxRecent,
		StrictRestart: cfg.StrictRestart,
		Settings: domain.RandomCallSettings{
			PickCount:       cfg.PickCount,
			ExcludeSelected: cfg.ExcludeSelected,
			EnableSound:     !cfg.DisableSound,
		},
	}
}

// HealthCheck возвращает состояние хранилища.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()
	return s.health.Ping(ctx)
}

// shortOperationContext создаёт контекст с таймаутом для обычных операций.
func (s *Service) shortOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.Operation)
}

// longOperationContext создаёт контекст с таймаутом для длительных операций.
func (s *Service) longOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.LongOperation)
}

// roster возвращает снимок текущего состава класса.
func (s *Service) roster(ctx context.Context, classID string) ([]domain.RollCallStudent, error) {
	students, err := s.repo.ListClassStudents(ctx, classID, false)
	if err != nil {
		return nil, err
	}
	return domain.SnapshotRoster(students), nil
}
