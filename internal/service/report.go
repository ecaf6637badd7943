package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/order-days/internal/report"
	"github.com/linemk/order-days/internal/storage"
)

// ReportService собирает представление дня из свежих данных БД
type ReportService interface {
	DayView(ctx context.Context, dayID int64) (*report.DayView, error)
}

type reportService struct {
	log       *slog.Logger
	dayRepo   storage.OrderDayStorage
	entryRepo storage.EntryStorage
}

func NewReportService(log *slog.Logger, dayRepo storage.OrderDayStorage, entryRepo storage.EntryStorage) ReportService {
	return &reportService{
		log:       log,
		dayRepo:   dayRepo,
		entryRepo: entryRepo,
	}
}

func (s *reportService) DayView(ctx context.Context, dayID int64) (*report.DayView, error) {
	const op = "service.ReportService.DayView"
	logger := s.log.With(slog.String("op", op), slog.Int64("dayID", dayID))

	day, err := s.dayRepo.GetDay(ctx, dayID)
	if err != nil {
		if errors.Is(err, storage.ErrDayNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errDayNotFound)
		}
		logger.Error("failed to get day", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.entryRepo.ListEntries(ctx, dayID)
	if err != nil {
		logger.Error("failed to list entries", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return report.NewDayView(day, entries), nil
}
