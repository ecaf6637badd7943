package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/shopspring/decimal"
)

// EntryStorage описывает методы для работы со строками заказов.
type EntryStorage interface {
	// ListEntries возвращает строки дня в порядке добавления.
	ListEntries(ctx context.Context, dayID int64) ([]*models.Entry, error)
	CreateEntry(ctx context.Context, dayID int64, customerName string, quantity int, totalILS decimal.Decimal, notes *string) (*models.Entry, error)
	// UpdateEntry применяет все заданные поля патча одним UPDATE.
	UpdateEntry(ctx context.Context, id int64, patch models.EntryPatch) (*models.Entry, error)
	// DeleteEntry не различает "удалено" и "не было".
	DeleteEntry(ctx context.Context, id int64) error
}

type entryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) EntryStorage {
	return &entryRepository{db: db}
}

const entryColumns = "id, order_day_id, customer_name, quantity, total_ils, picked_up, paid, needs_change, notes, created_at"

func (r *entryRepository) ListEntries(ctx context.Context, dayID int64) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + `
		FROM order_entries
		WHERE order_day_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) CreateEntry(ctx context.Context, dayID int64, customerName string, quantity int, totalILS decimal.Decimal, notes *string) (*models.Entry, error) {
	query := `INSERT INTO order_entries (order_day_id, customer_name, quantity, total_ils, notes)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, dayID, customerName, quantity, totalILS, notes))
	if err != nil {
		switch {
		case isPQCode(err, pqForeignKeyViolation):
			return nil, ErrDayNotFound
		case isPQCode(err, pqCheckViolation):
			return nil, fmt.Errorf("failed to create entry: %w", ErrConstraint)
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

func (r *entryRepository) UpdateEntry(ctx context.Context, id int64, patch models.EntryPatch) (*models.Entry, error) {
	sets, args := entryPatchColumns(patch)
	if len(sets) == 0 {
		return nil, errors.New("empty entry patch")
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE order_entries
	          SET %s
	          WHERE id = $%d
	          RETURNING %s`, strings.Join(sets, ", "), len(args), entryColumns)

	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrEntryNotFound
		case isPQCode(err, pqCheckViolation):
			return nil, fmt.Errorf("failed to update entry: %w", ErrConstraint)
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

func (r *entryRepository) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM order_entries WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// entryPatchColumns раскладывает патч в "колонка = $n" в фиксированном порядке.
// Имена колонок берутся только отсюда, из тела запроса они не попадают в SQL.
func entryPatchColumns(p models.EntryPatch) ([]string, []interface{}) {
	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if p.CustomerName != nil {
		add("customer_name", *p.CustomerName)
	}
	if p.Quantity != nil {
		add("quantity", *p.Quantity)
	}
	if p.TotalILS != nil {
		add("total_ils", *p.TotalILS)
	}
	if p.PickedUp != nil {
		add("picked_up", *p.PickedUp)
	}
	if p.Paid != nil {
		add("paid", *p.Paid)
	}
	if p.NeedsChange != nil {
		add("needs_change", *p.NeedsChange)
	}
	if p.Notes != nil {
		add("notes", *p.Notes)
	}
	return sets, args
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	e := &models.Entry{}
	err := row.Scan(
		&e.ID, &e.OrderDayID, &e.CustomerName, &e.Quantity, &e.TotalILS,
		&e.PickedUp, &e.Paid, &e.NeedsChange, &e.Notes, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
