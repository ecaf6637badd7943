package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry - строка заказа одного покупателя внутри дня
type Entry struct {
	ID           int64           `json:"id"`
	OrderDayID   int64           `json:"order_day_id"`
	CustomerName string          `json:"customer_name"`
	Quantity     int             `json:"quantity"`
	TotalILS     decimal.Decimal `json:"total_ils"`
	PickedUp     bool            `json:"picked_up"`
	Paid         bool            `json:"paid"`
	NeedsChange  bool            `json:"needs_change"`
	Notes        *string         `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewEntry - входные данные для создания строки
type NewEntry struct {
	CustomerName string           `json:"customer_name" validate:"required"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	TotalILS     *decimal.Decimal `json:"total_ils"`
	Notes        *string          `json:"notes"`
}

// EntryPatch - частичное обновление строки.
// Набор полей закрыт: обновить можно только перечисленные колонки.
type EntryPatch struct {
	CustomerName *string          `json:"customer_name"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	TotalILS     *decimal.Decimal `json:"total_ils"`
	PickedUp     *bool            `json:"picked_up"`
	Paid         *bool            `json:"paid"`
	NeedsChange  *bool            `json:"needs_change"`
	Notes        *string          `json:"notes"`
}

// IsEmpty сообщает, что в патче нет ни одного поля
func (p EntryPatch) IsEmpty() bool {
	return p.CustomerName == nil &&
		p.Quantity == nil &&
		p.TotalILS == nil &&
		p.PickedUp == nil &&
		p.Paid == nil &&
		p.NeedsChange == nil &&
		p.Notes == nil
}
