package payment

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/ledger"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

// InitiateResult reports the outcome of a payment initialization. Failures
// carry a user-facing message; gateway errors never escape the bridge.
type InitiateResult struct {
	Success          bool
	Message          string
	AuthorizationURL string
	Reference        string
	Amount           float64
}

// ReconcileResult reports the outcome of a callback verification.
type ReconcileResult struct {
	Success bool
	Message string
	Order   *models.Order
}

// StatusResult is the read-only verification passthrough used for polling.
type StatusResult struct {
	Status  string
	Message string
}

// Bridge turns a placed order into a gateway payment request and reconciles
// the gateway's callback back into an order state change.
type Bridge struct {
	ledger      *ledger.Ledger
	gateway     Gateway
	callbackURL string
}

func NewBridge(led *ledger.Ledger, gateway Gateway, callbackURL string) *Bridge {
	return &Bridge{ledger: led, gateway: gateway, callbackURL: callbackURL}
}

// Initiate starts a gateway payment for the session's most recent placed
// order. No gateway call is made when there is nothing to pay for.
func (b *Bridge) Initiate(ctx context.Context, sessionID, email string) InitiateResult {
	order, err := b.ledger.MostRecentPlaced(ctx, sessionID)
	if err != nil {
		log.Println("[PAYMENT] [ERROR] order lookup failed:", err)
		return InitiateResult{Message: "An error occurred while initializing payment."}
	}
	if order == nil {
		return InitiateResult{Message: "No order found to pay for. Please place an order first."}
	}

	reference := NewReference()
	paymentEmail := email
	if paymentEmail == "" {
		paymentEmail = tempEmail(sessionID)
	}

	resp, err := b.gateway.Initialize(ctx, paymentEmail, ToKobo(order.TotalAmount), reference, b.callbackURL)
	if err != nil {
		log.Println("[PAYMENT] [ERROR] initialize failed:", err)
		return InitiateResult{Message: "An error occurred while initializing payment."}
	}
	if !resp.Status {
		return InitiateResult{Message: "Failed to initialize payment. Please try again."}
	}

	if err := b.ledger.SetPaymentReference(ctx, order.ID, reference); err != nil {
		log.Println("[PAYMENT] [ERROR] storing reference failed:", err)
		return InitiateResult{Message: "An error occurred while initializing payment."}
	}

	return InitiateResult{
		Success:          true,
		Message:          "Payment initialized successfully",
		AuthorizationURL: resp.AuthorizationURL,
		Reference:        reference,
		Amount:           order.TotalAmount,
	}
}

// Reconcile verifies a payment reference with the gateway and, on success,
// marks the matching order paid. Re-verifying an already-paid order succeeds.
func (b *Bridge) Reconcile(ctx context.Context, reference string) ReconcileResult {
	resp, err := b.gateway.Verify(ctx, reference)
	if err != nil {
		log.Println("[PAYMENT] [ERROR] verify failed:", err)
		return ReconcileResult{Message: "An error occurred while verifying payment."}
	}

	if !resp.Status || resp.TxStatus != "success" {
		return ReconcileResult{Message: fmt.Sprintf("Payment verification failed: %s", resp.TxStatus)}
	}

	order, err := b.ledger.MarkPaid(ctx, reference)
	if errors.Is(err, store.ErrNotFound) {
		return ReconcileResult{Message: "Order not found for this payment reference."}
	}
	if err != nil {
		log.Println("[PAYMENT] [ERROR] marking order paid failed:", err)
		return ReconcileResult{Message: "An error occurred while verifying payment."}
	}

	return ReconcileResult{Success: true, Message: "Payment verified successfully", Order: order}
}

// Status passes a verification through to the gateway for polling and
// debugging. Transport errors fold into an "error" status.
func (b *Bridge) Status(ctx context.Context, reference string) StatusResult {
	resp, err := b.gateway.Verify(ctx, reference)
	if err != nil {
		return StatusResult{Status: "error", Message: "Could not verify payment status"}
	}
	return StatusResult{Status: resp.TxStatus, Message: resp.Message}
}

// NewReference builds a globally-unique, human-inspectable payment reference
// from the current time and a random suffix.
func NewReference() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(buf[:])%2176782336, 36) // 36^6

	return strings.ToUpper(fmt.Sprintf("PAY_%s_%s", ts, suffix))
}

// ToKobo converts a naira amount to Paystack's integer minor unit.
func ToKobo(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromKobo converts a kobo amount back to naira.
func FromKobo(kobo int64) float64 {
	return float64(kobo) / 100
}

func tempEmail(sessionID string) string {
	shortID := sessionID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("customer_%s@gmail.com", shortID)
}
