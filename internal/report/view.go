// Package report держит представление одного дня для клиента:
// фильтры, итоги по видимым строкам и выгрузки в CSV и печатный HTML.
// Представление каждый раз строится заново из данных БД, а не сливается с локальным состоянием.
package report

import (
	"strings"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Filter - поиск по имени и флаги "не забрал" / "не оплатил"
type Filter struct {
	Search        string
	OnlyNotPicked bool
	OnlyNotPaid   bool
}

func (f Filter) match(e *models.Entry) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(e.CustomerName), term) {
			return false
		}
	}
	if f.OnlyNotPicked && e.PickedUp {
		return false
	}
	if f.OnlyNotPaid && e.Paid {
		return false
	}
	return true
}

// Totals - итоги по набору строк
type Totals struct {
	Quantity int64           `json:"quantity"`
	TotalILS decimal.Decimal `json:"total_ils"`
}

// Outstanding - что по дню ещё не закрыто
type Outstanding struct {
	UnpaidCount      int             `json:"unpaid_count"`
	UnpaidAmount     decimal.Decimal `json:"unpaid_amount"`
	NeedsChangeCount int             `json:"needs_change_count"`
}

// Snapshot - то, что видит клиент после применения фильтра
type Snapshot struct {
	Day         *models.DaySummary `json:"day"`
	Entries     []*models.Entry    `json:"entries"`
	Totals      Totals             `json:"totals"`
	Outstanding Outstanding        `json:"outstanding"`
}

type DayView struct {
	Day     *models.DaySummary
	Entries []*models.Entry
}

func NewDayView(day *models.DaySummary, entries []*models.Entry) *DayView {
	if entries == nil {
		entries = make([]*models.Entry, 0)
	}
	return &DayView{Day: day, Entries: entries}
}

// Filter возвращает строки, прошедшие фильтр, в исходном порядке
func (v *DayView) Filter(f Filter) []*models.Entry {
	filtered := make([]*models.Entry, 0, len(v.Entries))
	for _, e := range v.Entries {
		if f.match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func SumEntries(entries []*models.Entry) Totals {
	t := Totals{TotalILS: decimal.Zero}
	for _, e := range entries {
		t.Quantity += int64(e.Quantity)
		t.TotalILS = t.TotalILS.Add(e.TotalILS)
	}
	return t
}

// Outstanding считается по всем строкам дня, фильтр на него не влияет
func (v *DayView) Outstanding() Outstanding {
	o := Outstanding{UnpaidAmount: decimal.Zero}
	for _, e := range v.Entries {
		if !e.Paid {
			o.UnpaidCount++
			o.UnpaidAmount = o.UnpaidAmount.Add(e.TotalILS)
		}
		if e.NeedsChange {
			o.NeedsChangeCount++
		}
	}
	return o
}

func (v *DayView) Snapshot(f Filter) Snapshot {
	filtered := v.Filter(f)
	return Snapshot{
		Day:         v.Day,
		Entries:     filtered,
		Totals:      SumEntries(filtered),
		Outstanding: v.Outstanding(),
	}
}

// FormatILS - сумма с двумя знаками и значком шекеля
func FormatILS(d decimal.Decimal) string {
	return "₪" + d.StringFixed(2)
}
