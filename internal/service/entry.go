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

// EntryService - строки заказов внутри дня
type EntryService interface {
	ListEntries(ctx context.Context, dayID int64) ([]*models.Entry, error)
	CreateEntry(ctx context.Context, dayID int64, in models.NewEntry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, entryID int64, patch models.EntryPatch) (*models.Entry, error)
	DeleteEntry(ctx context.Context, entryID int64) error
}

type entryService struct {
	log       *slog.Logger
	entryRepo storage.EntryStorage
}

func NewEntryService(log *slog.Logger, entryRepo storage.EntryStorage) EntryService {
	return &entryService{
		log:       log,
		entryRepo: entryRepo,
	}
}

func (s *entryService) ListEntries(ctx context.Context, dayID int64) ([]*models.Entry, error) {
	const op = "service.EntryService.ListEntries"

	entries, err := s.entryRepo.ListEntries(ctx, dayID)
	if err != nil {
		s.log.Error("failed to list entries", slog.String("op", op), slog.Int64("dayID", dayID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s *entryService) CreateEntry(ctx context.Context, dayID int64, in models.NewEntry) (*models.Entry, error) {
	const op = "service.EntryService.CreateEntry"
	logger := s.log.With(slog.String("op", op), slog.Int64("dayID", dayID))

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if err := validateStruct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	quantity := 0
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	total := decimal.Zero
	if in.TotalILS != nil {
		total = *in.TotalILS
	}

	entry, err := s.entryRepo.CreateEntry(ctx, dayID, in.CustomerName, quantity, total, normalizeNotes(in.Notes))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDayNotFound):
			return nil, fmt.Errorf("%s: %w", op, errDayNotFound)
		case errors.Is(err, storage.ErrConstraint):
			return nil, fmt.Errorf("%s: %w", op, newValidationError("customer_name is required."))
		}
		logger.Error("failed to create entry", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("entry created", slog.Int64("entryID", entry.ID))
	return entry, nil
}

// UpdateEntry применяет частичное обновление.
// Отметка "забрал" без явного значения "оплачено" выставляет и оплату.
func (s *entryService) UpdateEntry(ctx context.Context, entryID int64, patch models.EntryPatch) (*models.Entry, error) {
	const op = "service.EntryService.UpdateEntry"
	logger := s.log.With(slog.String("op", op), slog.Int64("entryID", entryID))

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", op, newValidationError("No fields to update"))
	}
	if patch.CustomerName != nil {
		name := strings.TrimSpace(*patch.CustomerName)
		if name == "" {
			return nil, fmt.Errorf("%s: %w", op, newValidationError("customer_name must not be empty."))
		}
		patch.CustomerName = &name
	}
	if err := validateStruct(patch); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patch.PickedUp != nil && *patch.PickedUp && patch.Paid == nil {
		paid := true
		patch.Paid = &paid
	}
	if patch.Notes != nil {
		notes := strings.TrimSpace(*patch.Notes)
		patch.Notes = &notes
	}

	entry, err := s.entryRepo.UpdateEntry(ctx, entryID, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEntryNotFound):
			return nil, fmt.Errorf("%s: %w", op, errEntryNotFound)
		case errors.Is(err, storage.ErrConstraint):
			return nil, fmt.Errorf("%s: %w", op, newValidationError("customer_name must not be empty."))
		}
		logger.Error("failed to update entry", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

// DeleteEntry идемпотентен: отсутствие строки ошибкой не считается
func (s *entryService) DeleteEntry(ctx context.Context, entryID int64) error {
	const op = "service.EntryService.DeleteEntry"

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.log.Error("failed to delete entry", slog.String("op", op), slog.Int64("entryID", entryID), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil
	}
	return &n
}
