// Package cart keeps each signed-in user's line items in memory and mirrors
// every mutation to a single remote row with replace-all semantics. The last
// mutation before the debounced write wins; concurrent sessions are not
// reconciled.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// ErrNotFound is returned by a Mirror when the user has no remote cart row.
var ErrNotFound = errors.New("cart record not found")

// ErrInvalidQuantity rejects UpdateQuantity calls with n <= 0; callers must
// remove the line instead.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Mirror persists the full item list for a user. Save replaces the whole
// list; there is no diffing.
type Mirror interface {
	Load(ctx context.Context, userID string) (models.CartItems, error)
	Save(ctx context.Context, userID string, items models.CartItems) error
}

// Manager hands out one Store per user, loading the remote record once on
// first access after sign-in.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	mirror Mirror
	delay  time.Duration
}

func NewManager(mirror Mirror, delay time.Duration) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		mirror: mirror,
		delay:  delay,
	}
}

// ForUser returns the user's store, fetching the remote record on the first
// call. A missing remote row yields an empty cart.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	items, err := m.mirror.Load(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "load remote cart")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have loaded the cart meanwhile; its copy wins.
	if s, ok := m.stores[userID]; ok {
		return s, nil
	}
	s := &Store{
		userID: userID,
		items:  append(models.CartItems{}, items...),
		mirror: m.mirror,
		delay:  m.delay,
	}
	m.stores[userID] = s
	return s, nil
}

// SignOut forcibly clears the user's local list. The remote record is left
// as it was; a pending debounced write is dropped.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		s.drop()
		delete(m.stores, userID)
	}
}

// Store is one user's cart.
type Store struct {
	mu     sync.Mutex
	userID string
	items  models.CartItems
	mirror Mirror
	delay  time.Duration
	timer  *time.Timer
}

// Items returns a copy of the current line items.
func (s *Store) Items() models.CartItems {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(models.CartItems{}, s.items...)
}

// Add increments the quantity when the product is already in the cart,
// otherwise appends a new line. A non-positive quantity counts as 1.
func (s *Store) Add(item models.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			s.scheduleSave()
			return
		}
	}
	s.items = append(s.items, item)
	s.scheduleSave()
}

// Remove deletes the line with the given product id. Reports whether a line
// was removed.
func (s *Store) Remove(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.scheduleSave()
			return true
		}
	}
	return false
}

// UpdateQuantity sets the line's quantity. n <= 0 is rejected so no
// zero-quantity lines can persist.
func (s *Store) UpdateQuantity(productID string, n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = n
			s.scheduleSave()
			return nil
		}
	}
	return ErrNotFound
}

// Clear empties the cart and mirrors the empty list immediately, so a
// checkout or explicit clear is never undone by a stale debounced write.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = models.CartItems{}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := append(models.CartItems{}, s.items...)
	s.mu.Unlock()
	s.save(snapshot)
}

// Total sums effective price x quantity over the remaining lines, resolved
// for the given language.
func (s *Store) Total(lang localized.Lang) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, item := range s.items {
		price := decimal.NewFromFloat(item.EffectivePrice().Resolve(lang))
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	f, _ := sum.Float64()
	return f
}

// Flush writes the current list to the mirror right away, cancelling any
// pending debounced write.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	snapshot := append(models.CartItems{}, s.items...)
	s.mu.Unlock()
	return s.mirror.Save(ctx, s.userID, snapshot)
}

// scheduleSave arranges a replace-all upsert after the debounce window.
// Must be called with s.mu held. A zero delay saves synchronously.
func (s *Store) scheduleSave() {
	if s.delay <= 0 {
		s.save(append(models.CartItems{}, s.items...))
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		snapshot := append(models.CartItems{}, s.items...)
		s.timer = nil
		s.mu.Unlock()
		s.save(snapshot)
	})
}

func (s *Store) save(snapshot models.CartItems) {
	if err := s.mirror.Save(context.Background(), s.userID, snapshot); err != nil {
		log.WithError(err).WithField("user_id", s.userID).Warn("cart mirror save failed")
	}
}

func (s *Store) drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.items = models.CartItems{}
}
