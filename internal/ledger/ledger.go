package ledger

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

var (
	// ErrItemNotFound reports an unknown or unavailable menu item number.
	ErrItemNotFound = errors.New("ledger: menu item not found")
	// ErrEmptyOrder reports an attempt to place an order with no lines.
	ErrEmptyOrder = errors.New("ledger: order has no items")
	// ErrNoPendingOrder reports that the session has no pending order.
	ErrNoPendingOrder = errors.New("ledger: no pending order")
)

// Ledger owns the per-session shopping cart and its lifecycle through
// placement, scheduling, payment and cancellation.
type Ledger struct {
	orders   store.OrderStore
	sessions store.SessionStore
	menu     store.MenuStore
}

func New(orders store.OrderStore, sessions store.SessionStore, menu store.MenuStore) *Ledger {
	return &Ledger{orders: orders, sessions: sessions, menu: menu}
}

// GetPending returns the session's single pending order, or nil when the
// session has none.
func (l *Ledger) GetPending(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := l.orders.FindPending(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return order, err
}

// AddItem resolves the item number against the catalog and adds qty units to
// the session's pending order, creating the order if none exists. Adding an
// item already in the order increments its quantity instead of appending a
// duplicate line.
func (l *Ledger) AddItem(ctx context.Context, sessionID string, itemNumber, qty int) (*models.Order, error) {
	item, err := l.menu.FindByNumber(ctx, itemNumber)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	order, err := l.GetPending(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		order, err = l.createOrder(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	merged := false
	for i := range order.Items {
		if order.Items[i].MenuItemID == item.ID {
			order.Items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: item.ID,
			ItemNumber: item.ItemNumber,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   qty,
		})
	}

	order.RecalculateTotal()
	order.UpdatedAt = time.Now()
	if err := l.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Place flips the session's pending order to placed and clears the session's
// active-order reference. Session state is left to the caller.
func (l *Ledger) Place(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := l.GetPending(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoPendingOrder
	}
	if len(order.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	order.Status = models.OrderStatusPlaced
	order.UpdatedAt = time.Now()
	if err := l.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	if err := l.sessions.SetCurrentOrder(ctx, sessionID, nil); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel flips the session's pending order to cancelled. It reports false,
// without error, when there is nothing to cancel.
func (l *Ledger) Cancel(ctx context.Context, sessionID string) (bool, error) {
	order, err := l.GetPending(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, nil
	}

	order.Status = models.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	if err := l.orders.Update(ctx, order); err != nil {
		return false, err
	}
	if err := l.sessions.SetCurrentOrder(ctx, sessionID, nil); err != nil {
		return false, err
	}
	if err := l.sessions.SetState(ctx, sessionID, models.StateIdle); err != nil {
		return false, err
	}
	return true, nil
}

// Schedule sets the scheduled-for timestamp on an order. The order's status
// is not changed.
func (l *Ledger) Schedule(ctx context.Context, orderID primitive.ObjectID, when time.Time) error {
	order, err := l.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	order.ScheduledFor = &when
	order.UpdatedAt = time.Now()
	return l.orders.Update(ctx, order)
}

// SetPaymentReference stores the gateway reference on an order ahead of the
// payment round trip.
func (l *Ledger) SetPaymentReference(ctx context.Context, orderID primitive.ObjectID, reference string) error {
	order, err := l.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	order.PaymentReference = reference
	order.UpdatedAt = time.Now()
	return l.orders.Update(ctx, order)
}

// MostRecentPlaced returns the latest placed order for the session, or nil
// when none exists. Used to resume an interrupted payment flow.
func (l *Ledger) MostRecentPlaced(ctx context.Context, sessionID string) (*models.Order, error) {
	order, err := l.orders.FindMostRecentPlaced(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return order, err
}

// History returns the session's placed and paid orders, newest first.
func (l *Ledger) History(ctx context.Context, sessionID string) ([]models.Order, error) {
	return l.orders.FindBySessionAndStatuses(ctx, sessionID, []string{
		models.OrderStatusPlaced,
		models.OrderStatusPaid,
	})
}

// MarkPaid flips the order carrying the payment reference from placed to
// paid and resets the owning session to idle. Calling it again for an
// already-paid order is a no-op success.
func (l *Ledger) MarkPaid(ctx context.Context, reference string) (*models.Order, error) {
	order, err := l.orders.FindByPaymentReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusPaid {
		return order, nil
	}

	order.Status = models.OrderStatusPaid
	order.UpdatedAt = time.Now()
	if err := l.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	if err := l.sessions.SetState(ctx, order.SessionID, models.StateIdle); err != nil {
		return nil, err
	}
	return order, nil
}

func (l *Ledger) createOrder(ctx context.Context, sessionID string) (*models.Order, error) {
	now := time.Now()
	order := &models.Order{
		SessionID: sessionID,
		Items:     []models.OrderItem{},
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	if err := l.sessions.SetCurrentOrder(ctx, sessionID, &order.ID); err != nil {
		return nil, err
	}
	return order, nil
}
