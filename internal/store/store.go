package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

// ErrNotFound is returned by point lookups that match no document.
var ErrNotFound = errors.New("store: not found")

// MenuStore is the read-only lookup surface for purchasable items.
type MenuStore interface {
	// ListAvailable returns available items sorted by category then item number.
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	// FindByNumber returns the available item with the given number, or
	// ErrNotFound. Unavailable and unknown numbers are indistinguishable.
	FindByNumber(ctx context.Context, itemNumber int) (*models.MenuItem, error)
}

// OrderStore persists order documents. Orders are never deleted; status
// transitions are soft.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// FindPending returns the session's single pending order, or ErrNotFound.
	FindPending(ctx context.Context, sessionID string) (*models.Order, error)
	// FindMostRecentPlaced returns the latest placed order for the session,
	// newest by creation time, or ErrNotFound.
	FindMostRecentPlaced(ctx context.Context, sessionID string) (*models.Order, error)
	// FindBySessionAndStatuses returns matching orders newest first.
	FindBySessionAndStatuses(ctx context.Context, sessionID string, statuses []string) ([]models.Order, error)
	FindByPaymentReference(ctx context.Context, reference string) (*models.Order, error)
}

// SessionStore maps opaque visitor ids to conversation state.
type SessionStore interface {
	// GetOrCreate returns the session for the visitor id, creating an idle
	// one if none exists. Safe under concurrent calls for the same id.
	GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error)
	// SetState overwrites the session state unconditionally. Transition
	// legality is the conversation engine's concern.
	SetState(ctx context.Context, sessionID, state string) error
	SetCurrentOrder(ctx context.Context, sessionID string, orderID *primitive.ObjectID) error
}
