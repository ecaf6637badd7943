package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// суммы в шекелях отдаём числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderDay - партия заказов за один день
type OrderDay struct {
	ID             int64           `json:"id"`
	OrderDate      Date            `json:"order_date"`
	Title          *string         `json:"title"`
	ActualSpentILS decimal.Decimal `json:"actual_spent_ils"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DaySummary - день вместе с агрегатами по его строкам.
// Агрегаты не хранятся, а считаются при чтении.
type DaySummary struct {
	OrderDay
	TotalQuantity int64           `json:"total_quantity"`
	TotalILS      decimal.Decimal `json:"total_ils"`
	PickedUpCount int64           `json:"picked_up_count"`
	PaidCount     int64           `json:"paid_count"`
}

// NewOrderDay - входные данные для создания дня
type NewOrderDay struct {
	OrderDate      string           `json:"order_date" validate:"required,datetime=2006-01-02"`
	Title          *string          `json:"title"`
	ActualSpentILS *decimal.Decimal `json:"actual_spent_ils"`
}

// ActualSpentPatch - тело PATCH /api/order-days/{id}
type ActualSpentPatch struct {
	ActualSpentILS *decimal.Decimal `json:"actual_spent_ils" validate:"required"`
}
