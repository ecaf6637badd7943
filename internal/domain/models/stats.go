package models

import "github.com/shopspring/decimal"

// Summary - общая статистика по всем дням и строкам
type Summary struct {
	TotalDays         int64           `json:"total_days"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalPieces       int64           `json:"total_pieces"`
	TotalUnpaidAmount decimal.Decimal `json:"total_unpaid_amount"`
	TotalUnpaidOrders int64           `json:"total_unpaid_orders"`
	TotalCustomers    int64           `json:"total_customers"`
	TopCustomers      []TopCustomer   `json:"top_customers"`
	DailyRevenue      []DailyRevenue  `json:"daily_revenue"`
}

type TopCustomer struct {
	CustomerName  string          `json:"customer_name"`
	TotalILS      decimal.Decimal `json:"total_ils"`
	TotalQuantity int64           `json:"total_quantity"`
}

type DailyRevenue struct {
	OrderDate Date            `json:"order_date"`
	TotalILS  decimal.Decimal `json:"total_ils"`
}
