package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linemk/order-days/internal/domain/models"
)

// StatsStorage - только чтение, сводная статистика по всем дням.
type StatsStorage interface {
	Summary(ctx context.Context) (*models.Summary, error)
	// Now возвращает время на стороне БД, используется в health-check.
	Now(ctx context.Context) (time.Time, error)
}

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsStorage {
	return &statsRepository{db: db}
}

const topCustomersLimit = 5

// Summary выполняет запросы по очереди, без общей транзакции.
func (r *statsRepository) Summary(ctx context.Context) (*models.Summary, error) {
	s := &models.Summary{
		TopCustomers: make([]models.TopCustomer, 0),
		DailyRevenue: make([]models.DailyRevenue, 0),
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM order_days").Scan(&s.TotalDays); err != nil {
		return nil, fmt.Errorf("failed to count days: %w", err)
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_ils), 0), COALESCE(SUM(quantity), 0)
		FROM order_entries`).Scan(&s.TotalRevenue, &s.TotalPieces)
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_ils), 0), COUNT(*)
		FROM order_entries
		WHERE paid = false`).Scan(&s.TotalUnpaidAmount, &s.TotalUnpaidOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unpaid: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT customer_name)
		FROM order_entries
		WHERE TRIM(customer_name) <> ''`).Scan(&s.TotalCustomers)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	if s.TopCustomers, err = r.topCustomers(ctx); err != nil {
		return nil, err
	}
	if s.DailyRevenue, err = r.dailyRevenue(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *statsRepository) topCustomers(ctx context.Context) ([]models.TopCustomer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT customer_name, COALESCE(SUM(total_ils), 0) AS total_ils, COALESCE(SUM(quantity), 0) AS total_quantity
		FROM order_entries
		WHERE TRIM(customer_name) <> ''
		GROUP BY customer_name
		ORDER BY total_ils DESC
		LIMIT $1`, topCustomersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top customers: %w", err)
	}
	defer rows.Close()

	top := make([]models.TopCustomer, 0, topCustomersLimit)
	for rows.Next() {
		var c models.TopCustomer
		if err := rows.Scan(&c.CustomerName, &c.TotalILS, &c.TotalQuantity); err != nil {
			return nil, err
		}
		top = append(top, c)
	}
	return top, rows.Err()
}

// в ряд попадают только даты, у которых есть хотя бы одна строка
func (r *statsRepository) dailyRevenue(ctx context.Context) ([]models.DailyRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT od.order_date, COALESCE(SUM(oe.total_ils), 0)
		FROM order_days od
		JOIN order_entries oe ON oe.order_day_id = od.id
		GROUP BY od.order_date
		ORDER BY od.order_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily revenue: %w", err)
	}
	defer rows.Close()

	daily := make([]models.DailyRevenue, 0)
	for rows.Next() {
		var d models.DailyRevenue
		if err := rows.Scan(&d.OrderDate, &d.TotalILS); err != nil {
			return nil, err
		}
		daily = append(daily, d)
	}
	return daily, rows.Err()
}

func (r *statsRepository) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := r.db.QueryRowContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}
