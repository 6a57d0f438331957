package bot

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/catalog"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/ledger"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/payment"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

// Response is the engine's reply to a single inbound message. Every path
// through the engine produces one; conversational failures steer the visitor
// back to a valid option instead of terminating the conversation.
type Response struct {
	Message       string `json:"message"`
	ShowPayButton bool   `json:"showPayButton"`
}

// PaymentResponse extends Response with the gateway authorization URL.
type PaymentResponse struct {
	Response
	PaymentURL string `json:"paymentUrl,omitempty"`
}

// Engine interprets each inbound message against the visitor's current state
// and the order ledger.
type Engine struct {
	sessions store.SessionStore
	catalog  *catalog.Catalog
	ledger   *ledger.Ledger
	payments *payment.Bridge
}

func NewEngine(sessions store.SessionStore, cat *catalog.Catalog, led *ledger.Ledger, payments *payment.Bridge) *Engine {
	return &Engine{
		sessions: sessions,
		catalog:  cat,
		ledger:   led,
		payments: payments,
	}
}

// InitSession lazily creates the visitor's session. First contact does not
// change state by itself.
func (e *Engine) InitSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return e.sessions.GetOrCreate(ctx, sessionID)
}

// Welcome returns the fixed greeting plus the main-menu option list.
func (e *Engine) Welcome() Response {
	return Response{Message: msgWelcome + msgMainOptions}
}

// Process sanitizes the inbound message, routes it through the handler for
// the session's current state, and returns the reply. Infrastructure faults
// past the session lookup fold into a generic retry reply so the conversation
// stays alive.
func (e *Engine) Process(ctx context.Context, sessionID, message string) (Response, error) {
	sanitized := Sanitize(message)

	session, err := e.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}

	input := Parse(session.State, sanitized)

	var resp Response
	switch session.State {
	case models.StateOrdering:
		resp, err = e.handleOrdering(ctx, sessionID, input)
	case models.StateScheduling:
		resp, err = e.handleScheduling(ctx, sessionID, input)
	default:
		// idle and checkout share one handler.
		resp, err = e.handleIdle(ctx, sessionID, input)
	}
	if err != nil {
		log.Println("[BOT] [ERROR] message handling failed:", err)
		return Response{Message: msgSomethingWentWrong}, nil
	}
	return resp, nil
}

func (e *Engine) handleIdle(ctx context.Context, sessionID string, input Input) (Response, error) {
	switch input.Kind {
	case KindShowMenu:
		return e.startOrdering(ctx, sessionID)
	case KindCheckout:
		return e.checkout(ctx, sessionID)
	case KindHistory:
		return e.orderHistory(ctx, sessionID)
	case KindShowCurrent:
		return e.currentOrder(ctx, sessionID)
	case KindCancel:
		return e.cancelOrder(ctx, sessionID)
	default:
		return Response{Message: msgInvalidOption + msgMainOptions}, nil
	}
}

func (e *Engine) handleOrdering(ctx context.Context, sessionID string, input Input) (Response, error) {
	switch input.Kind {
	case KindCheckout:
		return e.checkout(ctx, sessionID)
	case KindShowCurrent:
		return e.currentOrder(ctx, sessionID)
	case KindCancel:
		return e.cancelOrder(ctx, sessionID)
	case KindAddItem:
		return e.addItem(ctx, sessionID, input.ItemNumber)
	default:
		return e.invalidItem(ctx)
	}
}

func (e *Engine) handleScheduling(ctx context.Context, sessionID string, input Input) (Response, error) {
	switch input.Kind {
	case KindScheduleNo:
		if err := e.sessions.SetState(ctx, sessionID, models.StateIdle); err != nil {
			return Response{}, err
		}
		order, err := e.ledger.MostRecentPlaced(ctx, sessionID)
		if err != nil {
			return Response{}, err
		}
		if order == nil {
			return Response{Message: msgNoOrderToPlace}, nil
		}
		return Response{Message: msgCheckoutSuccess(order.TotalAmount), ShowPayButton: true}, nil

	case KindScheduleYes:
		return Response{Message: msgScheduleTimePrompt}, nil

	default:
		when, ok := ParseScheduleDate(input.Text, time.Now())
		if !ok {
			return Response{Message: msgScheduleRetry}, nil
		}
		order, err := e.ledger.MostRecentPlaced(ctx, sessionID)
		if err != nil {
			return Response{}, err
		}
		if order == nil {
			return Response{Message: msgScheduleRetry}, nil
		}
		if err := e.ledger.Schedule(ctx, order.ID, when); err != nil {
			return Response{}, err
		}
		if err := e.sessions.SetState(ctx, sessionID, models.StateIdle); err != nil {
			return Response{}, err
		}
		return Response{Message: msgOrderScheduled(FormatScheduleDate(when)), ShowPayButton: true}, nil
	}
}

func (e *Engine) startOrdering(ctx context.Context, sessionID string) (Response, error) {
	if err := e.sessions.SetState(ctx, sessionID, models.StateOrdering); err != nil {
		return Response{}, err
	}
	menu, err := e.catalog.RenderMenu(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{Message: msgMenuHeader + "\n" + menu}, nil
}

func (e *Engine) addItem(ctx context.Context, sessionID string, itemNumber int) (Response, error) {
	item, err := e.catalog.FindByNumber(ctx, itemNumber)
	if errors.Is(err, store.ErrNotFound) {
		return e.invalidItem(ctx)
	}
	if err != nil {
		return Response{}, err
	}

	if _, err := e.ledger.AddItem(ctx, sessionID, itemNumber, 1); err != nil {
		if errors.Is(err, ledger.ErrItemNotFound) {
			return e.invalidItem(ctx)
		}
		return Response{}, err
	}
	return Response{Message: msgItemAdded(item.Name, 1)}, nil
}

func (e *Engine) invalidItem(ctx context.Context) (Response, error) {
	menu, err := e.catalog.RenderMenu(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{Message: msgInvalidMenuItem + "\n\n" + menu}, nil
}

func (e *Engine) checkout(ctx context.Context, sessionID string) (Response, error) {
	current, err := e.ledger.GetPending(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}

	if current == nil || len(current.Items) == 0 {
		placed, err := e.ledger.MostRecentPlaced(ctx, sessionID)
		if err != nil {
			return Response{}, err
		}
		if placed != nil {
			return Response{Message: msgAwaitingPayment(placed.TotalAmount), ShowPayButton: true}, nil
		}
		return Response{Message: msgNoOrderToPlace}, nil
	}

	placed, err := e.ledger.Place(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ledger.ErrEmptyOrder) || errors.Is(err, ledger.ErrNoPendingOrder) {
			return Response{Message: msgNoOrderToPlace}, nil
		}
		return Response{}, err
	}

	if err := e.sessions.SetState(ctx, sessionID, models.StateScheduling); err != nil {
		return Response{}, err
	}
	return Response{Message: msgOrderTotal(placed.TotalAmount)}, nil
}

func (e *Engine) currentOrder(ctx context.Context, sessionID string) (Response, error) {
	order, err := e.ledger.GetPending(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}
	if order == nil || len(order.Items) == 0 {
		return Response{Message: msgNoCurrentOrder}, nil
	}
	return Response{Message: msgCurrentOrder(formatOrderItems(order.Items), order.TotalAmount)}, nil
}

func (e *Engine) cancelOrder(ctx context.Context, sessionID string) (Response, error) {
	cancelled, err := e.ledger.Cancel(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}
	if cancelled {
		return Response{Message: msgOrderCancelled}, nil
	}
	return Response{Message: msgNoOrderToCancel}, nil
}

func (e *Engine) orderHistory(ctx context.Context, sessionID string) (Response, error) {
	orders, err := e.ledger.History(ctx, sessionID)
	if err != nil {
		return Response{}, err
	}
	if len(orders) == 0 {
		return Response{Message: msgNoOrderHistory}, nil
	}
	return Response{Message: formatHistory(orders)}, nil
}

// InitializePayment starts the gateway round trip for the session's most
// recent placed order and wraps the outcome as a bot reply.
func (e *Engine) InitializePayment(ctx context.Context, sessionID, email string) (PaymentResponse, error) {
	result := e.payments.Initiate(ctx, sessionID, email)
	if !result.Success {
		return PaymentResponse{Response: Response{Message: result.Message + msgMainOptions}}, nil
	}
	return PaymentResponse{
		Response:   Response{Message: msgPaymentInitialized(result.Amount)},
		PaymentURL: result.AuthorizationURL,
	}, nil
}

// HandlePaymentCallback reconciles a gateway callback into an order state
// change. The boolean reports whether the payment verified.
func (e *Engine) HandlePaymentCallback(ctx context.Context, reference string) (Response, bool) {
	result := e.payments.Reconcile(ctx, reference)
	if result.Success {
		return Response{Message: msgPaymentSuccess}, true
	}
	log.Println("[PAYMENT] [WARN] callback verification failed:", result.Message)
	return Response{Message: msgPaymentFailed}, false
}
