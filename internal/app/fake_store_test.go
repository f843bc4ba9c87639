package app

import (
	"context"
	"time"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres repositories, shared
// by the service tests in this package.
type fakeStore struct {
	users        map[string]domain.User
	items        map[string]domain.Item
	bookings     map[string]domain.Booking
	bookingOrder []string
	txs          []domain.Transaction
	savedRates   []domain.Rate
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]domain.User),
		items:    make(map[string]domain.Item),
		bookings: make(map[string]domain.Booking),
	}
}

func (f *fakeStore) addUser(u domain.User) { f.users[u.ID] = u }

func (f *fakeStore) addItem(i domain.Item) {
	if i.WeightGrams.IsZero() {
		i.WeightGrams = dec("10")
	}
	if i.Purity == 0 {
		i.Purity = 22
	}
	if i.MakingChargeKind == "" {
		i.MakingChargeKind = domain.MakingChargeFixed
	}
	f.items[i.ID] = i
}

func (f *fakeStore) txsFor(userID string) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) GetUser(_ context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) GetItem(_ context.Context, id string) (domain.Item, error) {
	i, ok := f.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return i, nil
}

func (f *fakeStore) GetItemForUpdate(ctx context.Context, id string) (domain.Item, error) {
	return f.GetItem(ctx, id)
}

func (f *fakeStore) AdjustItemStock(_ context.Context, id string, delta int) error {
	item, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	if item.StockCount+delta < 0 {
		return domain.ErrInsufficientStock
	}
	item.StockCount += delta
	f.items[id] = item
	return nil
}

func (f *fakeStore) CreateItem(_ context.Context, item domain.Item) error {
	for _, existing := range f.items {
		if existing.SKU == item.SKU {
			return domain.ErrSKUConflict
		}
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) ListItems(_ context.Context) ([]domain.Item, error) {
	out := make([]domain.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) SetItemVisibility(_ context.Context, id string, visible bool) error {
	item, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.IsVisible = visible
	f.items[id] = item
	return nil
}

func (f *fakeStore) SetItemStock(_ context.Context, id string, stock int) error {
	item, ok := f.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.StockCount = stock
	f.items[id] = item
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) CreateBooking(_ context.Context, b domain.Booking) error {
	f.bookings[b.ID] = b
	f.bookingOrder = append(f.bookingOrder, b.ID)
	return nil
}

func (f *fakeStore) GetBookingForUpdate(_ context.Context, id string) (domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeStore) SetBookingStatus(_ context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	f.bookings[id] = b
	return true, nil
}

func (f *fakeStore) SetBookingExpiry(_ context.Context, id string, expiresAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	b.ExpiresAt = expiresAt
	f.bookings[id] = b
	return nil
}

func (f *fakeStore) ListExpiredActive(_ context.Context, now time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, id := range f.bookingOrder {
		b := f.bookings[id]
		if b.Status == domain.BookingStatusActive && now.After(b.ExpiresAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for i := len(f.bookingOrder) - 1; i >= 0; i-- {
		b := f.bookings[f.bookingOrder[i]]
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTransactionsByUser(_ context.Context, userID string) ([]domain.Transaction, error) {
	return f.txsFor(userID), nil
}

func (f *fakeStore) AppendTransaction(_ context.Context, tx domain.Transaction) error {
	f.txs = append(f.txs, tx)
	return nil
}

func (f *fakeStore) SaveRate(_ context.Context, rate domain.Rate) error {
	f.savedRates = append(f.savedRates, rate)
	return nil
}
