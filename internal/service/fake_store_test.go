package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/linemk/order-days/internal/storage"
	"github.com/shopspring/decimal"
)

// fakeStore - фиктивное хранилище в памяти, реализует все интерфейсы storage.
type fakeStore struct {
	users       map[string]*models.User
	days        []*models.OrderDay
	entries     []*models.Entry
	nextDayID   int64
	nextEntryID int64
	nextUserID  int64
}

var (
	_ storage.UserStorage     = (*fakeStore)(nil)
	_ storage.OrderDayStorage = (*fakeStore)(nil)
	_ storage.EntryStorage    = (*fakeStore)(nil)
	_ storage.StatsStorage    = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	if existing, ok := f.users[user.Username]; ok {
		existing.PasswordHash = user.PasswordHash
		existing.Name = user.Name
		user.ID = existing.ID
		return user, nil
	}
	f.nextUserID++
	user.ID = f.nextUserID
	f.users[user.Username] = &models.User{ID: user.ID, Username: user.Username, PasswordHash: user.PasswordHash, Name: user.Name}
	return user, nil
}

func (f *fakeStore) summarize(day *models.OrderDay) *models.DaySummary {
	s := &models.DaySummary{OrderDay: *day, TotalILS: decimal.Zero}
	for _, e := range f.entries {
		if e.OrderDayID != day.ID {
			continue
		}
		s.TotalQuantity += int64(e.Quantity)
		s.TotalILS = s.TotalILS.Add(e.TotalILS)
		if e.PickedUp {
			s.PickedUpCount++
		}
		if e.Paid {
			s.PaidCount++
		}
	}
	return s
}

func (f *fakeStore) ListDays(ctx context.Context) ([]*models.DaySummary, error) {
	out := make([]*models.DaySummary, 0, len(f.days))
	for _, d := range f.days {
		out = append(out, f.summarize(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate.Time) {
			return out[i].OrderDate.After(out[j].OrderDate.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeStore) findDay(id int64) *models.OrderDay {
	for _, d := range f.days {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (f *fakeStore) GetDay(ctx context.Context, id int64) (*models.DaySummary, error) {
	d := f.findDay(id)
	if d == nil {
		return nil, storage.ErrDayNotFound
	}
	return f.summarize(d), nil
}

func (f *fakeStore) CreateDay(ctx context.Context, date models.Date, title *string, actualSpent decimal.Decimal) (*models.OrderDay, error) {
	f.nextDayID++
	d := &models.OrderDay{ID: f.nextDayID, OrderDate: date, Title: title, ActualSpentILS: actualSpent, CreatedAt: time.Now()}
	f.days = append(f.days, d)
	copied := *d
	return &copied, nil
}

func (f *fakeStore) UpdateActualSpent(ctx context.Context, id int64, actualSpent decimal.Decimal) (*models.OrderDay, error) {
	d := f.findDay(id)
	if d == nil {
		return nil, storage.ErrDayNotFound
	}
	d.ActualSpentILS = actualSpent
	copied := *d
	return &copied, nil
}

func (f *fakeStore) ListEntries(ctx context.Context, dayID int64) ([]*models.Entry, error) {
	out := make([]*models.Entry, 0)
	for _, e := range f.entries {
		if e.OrderDayID == dayID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateEntry(ctx context.Context, dayID int64, customerName string, quantity int, totalILS decimal.Decimal, notes *string) (*models.Entry, error) {
	if f.findDay(dayID) == nil {
		return nil, storage.ErrDayNotFound
	}
	f.nextEntryID++
	e := &models.Entry{ID: f.nextEntryID, OrderDayID: dayID, CustomerName: customerName, Quantity: quantity, TotalILS: totalILS, Notes: notes}
	f.entries = append(f.entries, e)
	copied := *e
	return &copied, nil
}

func (f *fakeStore) UpdateEntry(ctx context.Context, id int64, p models.EntryPatch) (*models.Entry, error) {
	for _, e := range f.entries {
		if e.ID != id {
			continue
		}
		if p.CustomerName != nil {
			e.CustomerName = *p.CustomerName
		}
		if p.Quantity != nil {
			e.Quantity = *p.Quantity
		}
		if p.TotalILS != nil {
			e.TotalILS = *p.TotalILS
		}
		if p.PickedUp != nil {
			e.PickedUp = *p.PickedUp
		}
		if p.Paid != nil {
			e.Paid = *p.Paid
		}
		if p.NeedsChange != nil {
			e.NeedsChange = *p.NeedsChange
		}
		if p.Notes != nil {
			e.Notes = p.Notes
		}
		copied := *e
		return &copied, nil
	}
	return nil, storage.ErrEntryNotFound
}

func (f *fakeStore) DeleteEntry(ctx context.Context, id int64) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeStore) Summary(ctx context.Context) (*models.Summary, error) {
	s := &models.Summary{
		TotalDays:         int64(len(f.days)),
		TotalRevenue:      decimal.Zero,
		TotalUnpaidAmount: decimal.Zero,
		TopCustomers:      make([]models.TopCustomer, 0),
		DailyRevenue:      make([]models.DailyRevenue, 0),
	}
	customers := map[string]*models.TopCustomer{}
	for _, e := range f.entries {
		s.TotalRevenue = s.TotalRevenue.Add(e.TotalILS)
		s.TotalPieces += int64(e.Quantity)
		if !e.Paid {
			s.TotalUnpaidAmount = s.TotalUnpaidAmount.Add(e.TotalILS)
			s.TotalUnpaidOrders++
		}
		if strings.TrimSpace(e.CustomerName) == "" {
			continue
		}
		c, ok := customers[e.CustomerName]
		if !ok {
			c = &models.TopCustomer{CustomerName: e.CustomerName, TotalILS: decimal.Zero}
			customers[e.CustomerName] = c
		}
		c.TotalILS = c.TotalILS.Add(e.TotalILS)
		c.TotalQuantity += int64(e.Quantity)
	}
	s.TotalCustomers = int64(len(customers))
	return s, nil
}

func (f *fakeStore) Now(ctx context.Context) (time.Time, error) {
	return time.Now(), nil
}
