package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/linemk/order-days/internal/storage"
	"github.com/shopspring/decimal"
)

// OrderDayService - дни заказов и их агрегаты
type OrderDayService interface {
	ListDays(ctx context.Context) ([]*models.DaySummary, error)
	GetDay(ctx context.Context, id int64) (*models.DaySummary, error)
	CreateDay(ctx context.Context, in models.NewOrderDay) (*models.DaySummary, error)
	PatchActualSpent(ctx context.Context, id int64, in models.ActualSpentPatch) (*models.OrderDay, error)
}

type orderDayService struct {
	log     *slog.Logger
	dayRepo storage.OrderDayStorage
}

func NewOrderDayService(log *slog.Logger, dayRepo storage.OrderDayStorage) OrderDayService {
	return &orderDayService{
		log:     log,
		dayRepo: dayRepo,
	}
}

func (s *orderDayService) ListDays(ctx context.Context) ([]*models.DaySummary, error) {
	const op = "service.OrderDayService.ListDays"

	days, err := s.dayRepo.ListDays(ctx)
	if err != nil {
		s.log.Error("failed to list days", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return days, nil
}

func (s *orderDayService) GetDay(ctx context.Context, id int64) (*models.DaySummary, error) {
	const op = "service.OrderDayService.GetDay"

	day, err := s.dayRepo.GetDay(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrDayNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errDayNotFound)
		}
		s.log.Error("failed to get day", slog.String("op", op), slog.Int64("dayID", id), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return day, nil
}

// CreateDay создаёт день. Строк у нового дня нет, поэтому агрегаты нулевые.
func (s *orderDayService) CreateDay(ctx context.Context, in models.NewOrderDay) (*models.DaySummary, error) {
	const op = "service.OrderDayService.CreateDay"
	logger := s.log.With(slog.String("op", op))

	in.OrderDate = strings.TrimSpace(in.OrderDate)
	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	date, err := models.ParseDate(in.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, newValidationError("order_date must be a date in YYYY-MM-DD format."))
	}

	// пустой заголовок храним как NULL
	var title *string
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		t := strings.TrimSpace(*in.Title)
		title = &t
	}

	spent := decimal.Zero
	if in.ActualSpentILS != nil {
		spent = *in.ActualSpentILS
	}

	day, err := s.dayRepo.CreateDay(ctx, date, title, spent)
	if err != nil {
		logger.Error("failed to create day", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("order day created", slog.Int64("dayID", day.ID), slog.String("orderDate", date.String()))
	return &models.DaySummary{
		OrderDay: *day,
		TotalILS: decimal.Zero,
	}, nil
}

// PatchActualSpent обновляет только фактические расходы.
// Агрегаты в ответе не пересчитываются, за ними клиент идёт в GetDay.
func (s *orderDayService) PatchActualSpent(ctx context.Context, id int64, in models.ActualSpentPatch) (*models.OrderDay, error) {
	const op = "service.OrderDayService.PatchActualSpent"
	logger := s.log.With(slog.String("op", op), slog.Int64("dayID", id))

	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	day, err := s.dayRepo.UpdateActualSpent(ctx, id, *in.ActualSpentILS)
	if err != nil {
		if errors.Is(err, storage.ErrDayNotFound) {
			return nil, fmt.Errorf("%s: %w", op, errDayNotFound)
		}
		logger.Error("failed to update actual spent", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("actual spent updated", slog.String("actualSpent", day.ActualSpentILS.StringFixed(2)))
	return day, nil
}
