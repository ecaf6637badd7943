package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/linemk/order-days/internal/domain/models"
	security "github.com/linemk/order-days/internal/jwt-new"
	"github.com/linemk/order-days/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "testsecret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type services struct {
	store   *fakeStore
	auth    *service.AuthService
	days    service.OrderDayService
	entries service.EntryService
	stats   service.StatsService
	reports service.ReportService
}

func newServices() services {
	store := newFakeStore()
	log := testLogger()
	return services{
		store:   store,
		auth:    service.NewAuthService(log, store, testSecret, time.Hour),
		days:    service.NewOrderDayService(log, store),
		entries: service.NewEntryService(log, store),
		stats:   service.NewStatsService(log, store),
		reports: service.NewReportService(log, store, store),
	}
}

func addUser(t *testing.T, s services, username, password, name string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = s.store.UpsertUser(context.Background(), &models.User{Username: username, PasswordHash: hash, Name: name})
	require.NoError(t, err)
}

func TestLogin_Success(t *testing.T) {
	s := newServices()
	addUser(t, s, "rahaf", "rahaf123", "Rahaf")

	res, err := s.auth.Login(context.Background(), "rahaf", "rahaf123")
	require.NoError(t, err)
	assert.Equal(t, "rahaf", res.User.Username)
	assert.Equal(t, "Rahaf", res.User.Name)

	claims, err := security.ParseToken(res.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User, claims.Profile())
}

func TestLogin_WrongPasswordLooksLikeUnknownUser(t *testing.T) {
	s := newServices()
	addUser(t, s, "rahaf", "rahaf123", "Rahaf")

	_, wrongPass := s.auth.Login(context.Background(), "rahaf", "nope")
	_, unknown := s.auth.Login(context.Background(), "ghost", "nope")

	assert.ErrorIs(t, wrongPass, service.ErrUnauthorized)
	assert.ErrorIs(t, unknown, service.ErrUnauthorized)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestProvisionUser_Upserts(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	first, err := s.auth.ProvisionUser(ctx, "rahaf", "old-pass", "Rahaf")
	require.NoError(t, err)

	second, err := s.auth.ProvisionUser(ctx, "rahaf", "new-pass", "Rahaf A.")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = s.auth.Login(ctx, "rahaf", "old-pass")
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	res, err := s.auth.Login(ctx, "rahaf", "new-pass")
	require.NoError(t, err)
	assert.Equal(t, "Rahaf A.", res.User.Name)

	_, err = s.auth.ProvisionUser(ctx, "", "x", "")
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = s.auth.ProvisionUser(ctx, "lina", "", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateDay_Validation(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.days.CreateDay(ctx, models.NewOrderDay{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "10/01/2025"})
	assert.ErrorIs(t, err, service.ErrValidation)

	assert.Empty(t, s.store.days)
}

func TestCreateDay_Defaults(t *testing.T) {
	s := newServices()

	day, err := s.days.CreateDay(context.Background(), models.NewOrderDay{OrderDate: "2025-01-10", Title: strPtr("   ")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), day.ID)
	assert.Nil(t, day.Title)
	assert.True(t, day.ActualSpentILS.IsZero())
	assert.Equal(t, int64(0), day.TotalQuantity)
	assert.True(t, day.TotalILS.IsZero())
	assert.Equal(t, int64(0), day.PickedUpCount)
	assert.Equal(t, int64(0), day.PaidCount)
}

func TestGetDay_NotFound(t *testing.T) {
	s := newServices()

	_, err := s.days.GetDay(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPatchActualSpent(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)

	_, err = s.days.PatchActualSpent(ctx, day.ID, models.ActualSpentPatch{})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = s.days.PatchActualSpent(ctx, 999, models.ActualSpentPatch{ActualSpentILS: decPtr("10")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	updated, err := s.days.PatchActualSpent(ctx, day.ID, models.ActualSpentPatch{ActualSpentILS: decPtr("120.75")})
	require.NoError(t, err)
	assert.Equal(t, "120.75", updated.ActualSpentILS.StringFixed(2))

	// ноль - допустимое значение
	updated, err = s.days.PatchActualSpent(ctx, day.ID, models.ActualSpentPatch{ActualSpentILS: decPtr("0")})
	require.NoError(t, err)
	assert.True(t, updated.ActualSpentILS.IsZero())
}

func TestListDays_OrderedByDateThenID(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	for _, date := range []string{"2025-01-10", "2025-01-12", "2025-01-10"} {
		_, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: date})
		require.NoError(t, err)
	}

	days, err := s.days.ListDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, int64(2), days[0].ID)
	assert.Equal(t, int64(3), days[1].ID)
	assert.Equal(t, int64(1), days[2].ID)
}

func TestCreateEntry_BlankNameIsRejected(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: name})
		assert.ErrorIs(t, err, service.ErrValidation)
	}
	assert.Empty(t, s.store.entries)
}

func TestCreateEntry_Defaults(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)

	entry, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: " Sara "})
	require.NoError(t, err)
	assert.Equal(t, "Sara", entry.CustomerName)
	assert.Equal(t, 0, entry.Quantity)
	assert.True(t, entry.TotalILS.IsZero())
	assert.Nil(t, entry.Notes)
	assert.False(t, entry.Paid)
	assert.False(t, entry.PickedUp)
}

func TestCreateEntry_NegativeQuantity(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)

	_, err = s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: "Sara", Quantity: intPtr(-1)})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateEntry_UnknownDay(t *testing.T) {
	s := newServices()

	_, err := s.entries.CreateEntry(context.Background(), 5, models.NewEntry{CustomerName: "Sara"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateEntry_EmptyPatchMutatesNothing(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)
	entry, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: "Sara", Quantity: intPtr(3)})
	require.NoError(t, err)

	_, err = s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{})
	assert.ErrorIs(t, err, service.ErrValidation)

	entries, err := s.entries.ListEntries(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, *entry, *entries[0])
}

func TestUpdateEntry_BlankNameAndMissingRow(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.entries.UpdateEntry(ctx, 1, models.EntryPatch{CustomerName: strPtr("  ")})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = s.entries.UpdateEntry(ctx, 1, models.EntryPatch{Paid: boolPtr(true)})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateEntry_PickupImpliesPaid(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)
	entry, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: "Sara"})
	require.NoError(t, err)

	updated, err := s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{PickedUp: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.PickedUp)
	assert.True(t, updated.Paid)

	// явное значение paid в том же патче сохраняется
	updated, err = s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{PickedUp: boolPtr(true), Paid: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, updated.PickedUp)
	assert.False(t, updated.Paid)

	// снятие отметки не трогает оплату
	updated, err = s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{Paid: boolPtr(true)})
	require.NoError(t, err)
	updated, err = s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{PickedUp: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.PickedUp)
	assert.True(t, updated.Paid)
}

func TestDeleteEntry_Idempotent(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)
	_, err = s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: "Sara"})
	require.NoError(t, err)

	assert.NoError(t, s.entries.DeleteEntry(ctx, 999))
	assert.Len(t, s.store.entries, 1)
}

func TestOrderDayScenario(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10", Title: strPtr("Batch A")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), day.ID)

	entry, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{
		CustomerName: "Sara",
		Quantity:     intPtr(3),
		TotalILS:     decPtr("45.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)

	got, err := s.days.GetDay(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalQuantity)
	assert.Equal(t, "45.50", got.TotalILS.StringFixed(2))
	assert.Equal(t, int64(0), got.PickedUpCount)
	assert.Equal(t, int64(0), got.PaidCount)

	_, err = s.entries.UpdateEntry(ctx, entry.ID, models.EntryPatch{PickedUp: boolPtr(true), Paid: boolPtr(true)})
	require.NoError(t, err)

	got, err = s.days.GetDay(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.PickedUpCount)
	assert.Equal(t, int64(1), got.PaidCount)

	require.NoError(t, s.entries.DeleteEntry(ctx, entry.ID))

	got, err = s.days.GetDay(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.TotalQuantity)
	assert.True(t, got.TotalILS.IsZero())
	assert.Equal(t, int64(0), got.PickedUpCount)
	assert.Equal(t, int64(0), got.PaidCount)
}

func TestSummary_RevenueEqualsSumOfEntries(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	want := decimal.Zero
	for i, date := range []string{"2025-01-10", "2025-01-11"} {
		day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: date})
		require.NoError(t, err)
		for j, total := range []string{"10.10", "20.25", "0"} {
			_, err := s.entries.CreateEntry(ctx, day.ID, models.NewEntry{
				CustomerName: []string{"Sara", "Lina", "Maya"}[(i+j)%3],
				TotalILS:     decPtr(total),
			})
			require.NoError(t, err)
			want = want.Add(decimal.RequireFromString(total))
		}
	}

	summary, err := s.stats.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(summary.TotalRevenue), "want %s got %s", want, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.TotalDays)
	assert.Equal(t, int64(6), summary.TotalUnpaidOrders)
	assert.Equal(t, int64(3), summary.TotalCustomers)
}

func TestSummary_EmptyStore(t *testing.T) {
	s := newServices()

	summary, err := s.stats.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalDays)
	assert.True(t, summary.TotalRevenue.IsZero())
	assert.NotNil(t, summary.TopCustomers)
	assert.NotNil(t, summary.DailyRevenue)
}

func TestReportDayView(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.reports.DayView(ctx, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)

	day, err := s.days.CreateDay(ctx, models.NewOrderDay{OrderDate: "2025-01-10"})
	require.NoError(t, err)
	_, err = s.entries.CreateEntry(ctx, day.ID, models.NewEntry{CustomerName: "Sara", Quantity: intPtr(2), TotalILS: decPtr("30")})
	require.NoError(t, err)

	view, err := s.reports.DayView(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.Day.TotalQuantity)
	assert.Len(t, view.Entries, 1)
}

func TestValidationErrorMessage(t *testing.T) {
	s := newServices()

	_, err := s.days.CreateDay(context.Background(), models.NewOrderDay{})
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "order_date is required.", vErr.Msg)
}
