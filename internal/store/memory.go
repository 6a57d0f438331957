package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

// In-memory store implementations for tests and development. They mirror the
// Mongo implementations' sorting and not-found behavior.

type MemoryMenuStore struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

func NewMemoryMenuStore(items ...models.MenuItem) *MemoryMenuStore {
	s := &MemoryMenuStore{}
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		s.items = append(s.items, item)
	}
	return s
}

func (s *MemoryMenuStore) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MenuItem
	for _, item := range s.items {
		if item.Available {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ItemNumber < out[j].ItemNumber
	})
	return out, nil
}

func (s *MemoryMenuStore) FindByNumber(ctx context.Context, itemNumber int) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ItemNumber == itemNumber && item.Available {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

type memoryOrder struct {
	order models.Order
	seq   int
}

type MemoryOrderStore struct {
	mu     sync.RWMutex
	orders []memoryOrder
	seq    int
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{}
}

func (s *MemoryOrderStore) Insert(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.seq++
	s.orders = append(s.orders, memoryOrder{order: *order, seq: s.seq})
	return nil
}

func (s *MemoryOrderStore) Update(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].order.ID == order.ID {
			s.orders[i].order = *order
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mo := range s.orders {
		if mo.order.ID == id {
			found := mo.order
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryOrderStore) FindPending(ctx context.Context, sessionID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mo := range s.orders {
		if mo.order.SessionID == sessionID && mo.order.Status == models.OrderStatusPending {
			found := mo.order
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryOrderStore) FindMostRecentPlaced(ctx context.Context, sessionID string) (*models.Order, error) {
	matches := s.newestFirst(sessionID, []string{models.OrderStatusPlaced})
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	found := matches[0]
	return &found, nil
}

func (s *MemoryOrderStore) FindBySessionAndStatuses(ctx context.Context, sessionID string, statuses []string) ([]models.Order, error) {
	return s.newestFirst(sessionID, statuses), nil
}

func (s *MemoryOrderStore) FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if reference == "" {
		return nil, ErrNotFound
	}
	for _, mo := range s.orders {
		if mo.order.PaymentReference == reference {
			found := mo.order
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryOrderStore) newestFirst(sessionID string, statuses []string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		allowed[status] = true
	}

	var matches []memoryOrder
	for _, mo := range s.orders {
		if mo.order.SessionID == sessionID && allowed[mo.order.Status] {
			matches = append(matches, mo)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].order.CreatedAt.Equal(matches[j].order.CreatedAt) {
			return matches[i].order.CreatedAt.After(matches[j].order.CreatedAt)
		}
		return matches[i].seq > matches[j].seq
	})

	out := make([]models.Order, 0, len(matches))
	for _, mo := range matches {
		out = append(out, mo.order)
	}
	return out
}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*models.Session)}
}

func (s *MemorySessionStore) GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateLocked(sessionID)
	found := *session
	return &found, nil
}

func (s *MemorySessionStore) SetState(ctx context.Context, sessionID, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateLocked(sessionID)
	session.State = state
	session.UpdatedAt = time.Now()
	return nil
}

func (s *MemorySessionStore) SetCurrentOrder(ctx context.Context, sessionID string, orderID *primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.getOrCreateLocked(sessionID)
	session.CurrentOrder = orderID
	session.UpdatedAt = time.Now()
	return nil
}

func (s *MemorySessionStore) getOrCreateLocked(sessionID string) *models.Session {
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	now := time.Now()
	session := &models.Session{
		ID:        primitive.NewObjectID(),
		SessionID: sessionID,
		State:     models.StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sessionID] = session
	return session
}
