package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrderDayStorage описывает методы для работы с днями заказов.
type OrderDayStorage interface {
	// ListDays возвращает все дни с агрегатами, новые сверху.
	ListDays(ctx context.Context) ([]*models.DaySummary, error)
	// GetDay возвращает один день с агрегатами.
	GetDay(ctx context.Context, id int64) (*models.DaySummary, error)
	CreateDay(ctx context.Context, date models.Date, title *string, actualSpent decimal.Decimal) (*models.OrderDay, error)
	// UpdateActualSpent перезаписывает фактические расходы дня.
	UpdateActualSpent(ctx context.Context, id int64, actualSpent decimal.Decimal) (*models.OrderDay, error)
}

// orderDayRepository - конкретная реализация OrderDayStorage.
type orderDayRepository struct {
	db *sql.DB
}

func NewOrderDayRepository(db *sql.DB) OrderDayStorage {
	return &orderDayRepository{db: db}
}

// Единственный запрос агрегации: и список, и одиночное чтение идут через него,
// дни без строк дают нули благодаря LEFT JOIN и COALESCE.
const daySummarySelect = `
	SELECT
		od.id,
		od.order_date,
		od.title,
		od.actual_spent_ils,
		od.created_at,
		COALESCE(SUM(oe.quantity), 0) AS total_quantity,
		COALESCE(SUM(oe.total_ils), 0) AS total_ils,
		COUNT(oe.id) FILTER (WHERE oe.picked_up) AS picked_up_count,
		COUNT(oe.id) FILTER (WHERE oe.paid) AS paid_count
	FROM order_days od
	LEFT JOIN order_entries oe ON oe.order_day_id = od.id`

const orderDayColumns = "id, order_date, title, actual_spent_ils, created_at"

func (r *orderDayRepository) ListDays(ctx context.Context) ([]*models.DaySummary, error) {
	query := daySummarySelect + `
	GROUP BY od.id
	ORDER BY od.order_date DESC, od.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list order days: %w", err)
	}
	defer rows.Close()

	days := make([]*models.DaySummary, 0)
	for rows.Next() {
		day, err := scanDaySummary(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *orderDayRepository) GetDay(ctx context.Context, id int64) (*models.DaySummary, error) {
	query := daySummarySelect + `
	WHERE od.id = $1
	GROUP BY od.id`

	day, err := scanDaySummary(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	return day, nil
}

func (r *orderDayRepository) CreateDay(ctx context.Context, date models.Date, title *string, actualSpent decimal.Decimal) (*models.OrderDay, error) {
	query := `INSERT INTO order_days (order_date, title, actual_spent_ils)
	          VALUES ($1, $2, $3)
	          RETURNING ` + orderDayColumns

	day, err := scanOrderDay(r.db.QueryRowContext(ctx, query, date, title, actualSpent))
	if err != nil {
		return nil, fmt.Errorf("failed to create order day: %w", err)
	}
	return day, nil
}

func (r *orderDayRepository) UpdateActualSpent(ctx context.Context, id int64, actualSpent decimal.Decimal) (*models.OrderDay, error) {
	query := `UPDATE order_days
	          SET actual_spent_ils = $1
	          WHERE id = $2
	          RETURNING ` + orderDayColumns

	day, err := scanOrderDay(r.db.QueryRowContext(ctx, query, actualSpent, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("failed to update order day: %w", err)
	}
	return day, nil
}

// rowScanner покрывает и *sql.Row, и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderDay(row rowScanner) (*models.OrderDay, error) {
	day := &models.OrderDay{}
	if err := row.Scan(&day.ID, &day.OrderDate, &day.Title, &day.ActualSpentILS, &day.CreatedAt); err != nil {
		return nil, err
	}
	return day, nil
}

func scanDaySummary(row rowScanner) (*models.DaySummary, error) {
	day := &models.DaySummary{}
	err := row.Scan(
		&day.ID, &day.OrderDate, &day.Title, &day.ActualSpentILS, &day.CreatedAt,
		&day.TotalQuantity, &day.TotalILS, &day.PickedUpCount, &day.PaidCount,
	)
	if err != nil {
		return nil, err
	}
	return day, nil
}
