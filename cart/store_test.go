package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// fakeMirror records every replace-all save.
type fakeMirror struct {
	mu      sync.Mutex
	records map[string]models.CartItems
	saves   int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{records: map[string]models.CartItems{}}
}

func (f *fakeMirror) Load(_ context.Context, userID string) (models.CartItems, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, ok := f.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return items, nil
}

func (f *fakeMirror) Save(_ context.Context, userID string, items models.CartItems) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[userID] = append(models.CartItems{}, items...)
	f.saves++
	return nil
}

func (f *fakeMirror) saved(userID string) models.CartItems {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[userID]
}

func item(id string, price float64, qty int) models.CartItem {
	return models.CartItem{
		ProductID: id,
		Name:      localized.NewString(id),
		Price:     localized.NewAmount(price),
		Quantity:  qty,
	}
}

func newTestStore(t *testing.T) (*Store, *fakeMirror) {
	t.Helper()
	mirror := newFakeMirror()
	store, err := NewManager(mirror, 0).ForUser(context.Background(), "u1")
	require.NoError(t, err)
	return store, mirror
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add(item("p1", 50, 1))
	store.Add(item("p1", 50, 1))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 100, store.Total(localized.LangEN), 1e-9)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	store, _ := newTestStore(t)

	store.Add(item("p1", 10, 0))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveDeletesLine(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(item("p1", 10, 1))
	store.Add(item("p2", 20, 1))

	assert.True(t, store.Remove("p1"))
	assert.False(t, store.Remove("p1"))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestUpdateQuantityRejectsNonPositive(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(item("p1", 10, 2))

	assert.ErrorIs(t, store.UpdateQuantity("p1", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, store.UpdateQuantity("p1", -3), ErrInvalidQuantity)
	assert.ErrorIs(t, store.UpdateQuantity("missing", 1), ErrNotFound)

	// No zero-quantity lines persist
	for _, it := range store.Items() {
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
}

func TestClearEmptiesCartAndMirror(t *testing.T) {
	store, mirror := newTestStore(t)
	store.Add(item("p1", 100, 2))

	store.Clear()

	assert.Empty(t, store.Items())
	assert.Empty(t, mirror.saved("u1"))
	assert.Zero(t, store.Total(localized.LangEN))
}

func TestTotalUsesSalePriceWhenOnSale(t *testing.T) {
	store, _ := newTestStore(t)

	sale := localized.NewAmount(80)
	onSale := item("p1", 100, 2)
	onSale.IsSale = true
	onSale.SalePrice = &sale
	store.Add(onSale)
	store.Add(item("p2", 30, 3))

	// 80*2 + 30*3
	assert.InDelta(t, 250, store.Total(localized.LangEN), 1e-9)
}

func TestTotalResolvesLocalizedPrices(t *testing.T) {
	store, _ := newTestStore(t)

	it := models.CartItem{
		ProductID: "p1",
		Name:      localized.String{PerLang: map[localized.Lang]string{localized.LangEN: "hat"}},
		Price: localized.Amount{PerLang: map[localized.Lang]float64{
			localized.LangEN: 10,
			localized.LangRU: 900,
		}},
		Quantity: 2,
	}
	store.Add(it)

	assert.InDelta(t, 1800, store.Total(localized.LangRU), 1e-9)
	assert.InDelta(t, 20, store.Total(localized.LangEN), 1e-9)
	// ua has no entry: falls back to en
	assert.InDelta(t, 20, store.Total(localized.LangUA), 1e-9)
}

func TestEveryMutationMirrorsFullList(t *testing.T) {
	store, mirror := newTestStore(t)

	store.Add(item("p1", 10, 1))
	require.Len(t, mirror.saved("u1"), 1)

	store.Add(item("p2", 20, 1))
	require.Len(t, mirror.saved("u1"), 2)

	require.NoError(t, store.UpdateQuantity("p2", 5))
	assert.Equal(t, 5, mirror.saved("u1")[1].Quantity)

	store.Remove("p1")
	require.Len(t, mirror.saved("u1"), 1)
	assert.Equal(t, "p2", mirror.saved("u1")[0].ProductID)

	mirror.mu.Lock()
	defer mirror.mu.Unlock()
	assert.Equal(t, 4, mirror.saves)
}

func TestSignInLoadsRemoteListOnce(t *testing.T) {
	mirror := newFakeMirror()
	mirror.records["u1"] = models.CartItems{item("p1", 10, 3)}
	m := NewManager(mirror, 0)

	store, err := m.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, store.Items(), 1)
	assert.Equal(t, 3, store.Items()[0].Quantity)

	// Local mutations win over the remote record on later accesses.
	store.Add(item("p2", 5, 1))
	again, err := m.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, again.Items(), 2)
}

func TestSignOutClearsLocalButNotRemote(t *testing.T) {
	mirror := newFakeMirror()
	m := NewManager(mirror, 0)
	store, err := m.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	store.Add(item("p1", 10, 1))
	require.Len(t, mirror.saved("u1"), 1)

	m.SignOut("u1")

	// The remote record keeps the last mirrored state.
	assert.Len(t, mirror.saved("u1"), 1)

	// A fresh sign-in loads the remote record again.
	fresh, err := m.ForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, fresh.Items(), 1)
}

func TestDebounceCoalescesWrites(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewManager(mirror, 50*time.Millisecond).ForUser(context.Background(), "u1")
	require.NoError(t, err)

	store.Add(item("p1", 10, 1))
	store.Add(item("p2", 20, 1))
	store.Add(item("p3", 30, 1))

	mirror.mu.Lock()
	saves := mirror.saves
	mirror.mu.Unlock()
	assert.Zero(t, saves, "write should still be pending")

	require.Eventually(t, func() bool {
		mirror.mu.Lock()
		defer mirror.mu.Unlock()
		return mirror.saves == 1 && len(mirror.records["u1"]) == 3
	}, time.Second, 10*time.Millisecond)
}

func TestFlushWritesImmediately(t *testing.T) {
	mirror := newFakeMirror()
	store, err := NewManager(mirror, time.Hour).ForUser(context.Background(), "u1")
	require.NoError(t, err)

	store.Add(item("p1", 10, 1))
	require.NoError(t, store.Flush(context.Background()))
	assert.Len(t, mirror.saved("u1"), 1)
}

func TestMissingRemoteRecordYieldsEmptyCart(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Empty(t, store.Items())
}
