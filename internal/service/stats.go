package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/linemk/order-days/internal/storage"
)

// StatsService - сводная статистика, только чтение
type StatsService interface {
	Summary(ctx context.Context) (*models.Summary, error)
	// Ping возвращает время БД для health-check
	Ping(ctx context.Context) (time.Time, error)
}

type statsService struct {
	log       *slog.Logger
	statsRepo storage.StatsStorage
}

func NewStatsService(log *slog.Logger, statsRepo storage.StatsStorage) StatsService {
	return &statsService{
		log:       log,
		statsRepo: statsRepo,
	}
}

func (s *statsService) Summary(ctx context.Context) (*models.Summary, error) {
	const op = "service.StatsService.Summary"

	summary, err := s.statsRepo.Summary(ctx)
	if err != nil {
		s.log.Error("failed to build summary", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return summary, nil
}

func (s *statsService) Ping(ctx context.Context) (time.Time, error) {
	const op = "service.StatsService.Ping"

	now, err := s.statsRepo.Now(ctx)
	if err != nil {
		s.log.Error("database ping failed", slog.String("op", op), slog.Any("error", err))
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return now, nil
}
