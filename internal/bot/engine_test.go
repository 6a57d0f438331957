package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/catalog"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/ledger"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/payment"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

type fakeGateway struct {
	initCalls   int
	verifyCalls int
	initResp    *payment.InitializeResponse
	verifyResp  *payment.VerifyResponse
}

func (g *fakeGateway) Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (*payment.InitializeResponse, error) {
	g.initCalls++
	if g.initResp != nil {
		return g.initResp, nil
	}
	return &payment.InitializeResponse{Status: true, AuthorizationURL: "https://checkout.example/x", Reference: reference}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, reference string) (*payment.VerifyResponse, error) {
	g.verifyCalls++
	if g.verifyResp != nil {
		return g.verifyResp, nil
	}
	return &payment.VerifyResponse{Status: true, TxStatus: "success"}, nil
}

type engineFixture struct {
	engine   *Engine
	sessions *store.MemorySessionStore
	ledger   *ledger.Ledger
	gateway  *fakeGateway
}

func newEngineFixture() *engineFixture {
	menu := store.NewMemoryMenuStore(
		models.MenuItem{ItemNumber: 1, Name: "Jollof Rice with Chicken", Description: "Smoky Nigerian jollof rice served with grilled chicken", Price: 3500, Category: models.CategoryMainCourse, Available: true},
		models.MenuItem{ItemNumber: 3, Name: "Pounded Yam with Egusi", Description: "Soft pounded yam with rich egusi soup and assorted meat", Price: 4500, Category: models.CategoryMainCourse, Available: true},
		models.MenuItem{ItemNumber: 12, Name: "Zobo", Description: "Chilled hibiscus drink with ginger", Price: 500, Category: models.CategoryDrinks, Available: true},
	)
	orders := store.NewMemoryOrderStore()
	sessions := store.NewMemorySessionStore()

	cat := catalog.New(menu)
	led := ledger.New(orders, sessions, menu)
	gateway := &fakeGateway{}
	bridge := payment.NewBridge(led, gateway, "http://localhost:3000/api/payment/callback")

	return &engineFixture{
		engine:   NewEngine(sessions, cat, led, bridge),
		sessions: sessions,
		ledger:   led,
		gateway:  gateway,
	}
}

func (f *engineFixture) state(t *testing.T, visitor string) string {
	t.Helper()
	session, err := f.sessions.GetOrCreate(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	return session.State
}

func (f *engineFixture) send(t *testing.T, visitor, message string) Response {
	t.Helper()
	resp, err := f.engine.Process(context.Background(), visitor, message)
	if err != nil {
		t.Fatalf("Process(%q) returned error: %v", message, err)
	}
	return resp
}

func TestWelcomeMessage(t *testing.T) {
	f := newEngineFixture()

	resp := f.engine.Welcome()
	if !strings.Contains(resp.Message, "Welcome to Delicious Bites Restaurant") {
		t.Fatalf("unexpected welcome: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Select 1 to Place an order") {
		t.Fatalf("welcome should include main options: %s", resp.Message)
	}
}

func TestInitSessionDoesNotChangeState(t *testing.T) {
	f := newEngineFixture()

	session, err := f.engine.InitSession(context.Background(), "v1")
	if err != nil {
		t.Fatal(err)
	}
	if session.State != models.StateIdle {
		t.Fatalf("expected idle, got %s", session.State)
	}
}

func TestFullOrderingScenario(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	// idle -> ordering with rendered menu.
	resp := f.send(t, visitor, "1")
	if !strings.Contains(resp.Message, "Here's our menu") {
		t.Fatalf("expected menu header, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "3. Pounded Yam with Egusi - ₦4,500") {
		t.Fatalf("expected item line, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateOrdering {
		t.Fatalf("expected ordering state, got %s", f.state(t, visitor))
	}

	// First add.
	resp = f.send(t, visitor, "3")
	if !strings.Contains(resp.Message, "Added 1x Pounded Yam with Egusi") {
		t.Fatalf("expected item-added reply, got: %s", resp.Message)
	}

	// Second add merges the line.
	f.send(t, visitor, "3")
	pending, err := f.ledger.GetPending(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending.Items) != 1 || pending.Items[0].Quantity != 2 {
		t.Fatalf("expected merged line with quantity 2, got %+v", pending.Items)
	}

	// Checkout places the order and asks about scheduling.
	resp = f.send(t, visitor, "99")
	if !strings.Contains(resp.Message, "Order total: ₦9,000") {
		t.Fatalf("expected order total, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "schedule this order for later") {
		t.Fatalf("expected scheduling prompt, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateScheduling {
		t.Fatalf("expected scheduling state, got %s", f.state(t, visitor))
	}

	// Skip scheduling: back to idle with pay affordance, total unchanged.
	resp = f.send(t, visitor, "2")
	if !resp.ShowPayButton {
		t.Fatal("expected pay affordance")
	}
	if !strings.Contains(resp.Message, "₦9,000") {
		t.Fatalf("expected unchanged total, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateIdle {
		t.Fatalf("expected idle state, got %s", f.state(t, visitor))
	}
}

func TestCheckoutWithEmptyCart(t *testing.T) {
	f := newEngineFixture()

	resp := f.send(t, "v1", "99")
	if !strings.Contains(resp.Message, "Your cart is empty") {
		t.Fatalf("expected empty-cart reply, got: %s", resp.Message)
	}
	if f.state(t, "v1") != models.StateIdle {
		t.Fatalf("empty checkout must not change state, got %s", f.state(t, "v1"))
	}
}

func TestCheckoutResumesAwaitingPayment(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	f.send(t, visitor, "1")
	f.send(t, visitor, "99")
	f.send(t, visitor, "2")

	// A second checkout must surface the existing placed order instead of
	// creating a duplicate.
	resp := f.send(t, visitor, "99")
	if !resp.ShowPayButton {
		t.Fatal("expected pay affordance for awaiting order")
	}
	if !strings.Contains(resp.Message, "waiting for payment") {
		t.Fatalf("expected awaiting-payment reply, got: %s", resp.Message)
	}

	history, err := f.ledger.History(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("expected a single placed order, got %d", len(history))
	}
}

func TestInvalidOptionInIdle(t *testing.T) {
	f := newEngineFixture()

	resp := f.send(t, "v1", "banana")
	if !strings.Contains(resp.Message, "Invalid option") {
		t.Fatalf("expected invalid-option reply, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Select 1 to Place an order") {
		t.Fatalf("expected main options appended, got: %s", resp.Message)
	}
}

func TestInvalidItemWhileOrdering(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	resp := f.send(t, visitor, "42")
	if !strings.Contains(resp.Message, "Invalid item number") {
		t.Fatalf("expected invalid-item reply, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "MAIN COURSE") {
		t.Fatalf("expected menu re-render, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateOrdering {
		t.Fatal("invalid item must not change state")
	}
}

func TestSchedulingDateAttachesToOrder(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	f.send(t, visitor, "1")
	f.send(t, visitor, "99")

	resp := f.send(t, visitor, "tomorrow 2pm")
	if !strings.Contains(resp.Message, "has been scheduled for") {
		t.Fatalf("expected schedule confirmation, got: %s", resp.Message)
	}
	if !resp.ShowPayButton {
		t.Fatal("expected pay affordance after scheduling")
	}
	if f.state(t, visitor) != models.StateIdle {
		t.Fatalf("expected idle state, got %s", f.state(t, visitor))
	}

	order, err := f.ledger.MostRecentPlaced(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if order.ScheduledFor == nil || order.ScheduledFor.Hour() != 14 {
		t.Fatalf("expected 14:00 schedule, got %v", order.ScheduledFor)
	}
}

func TestSchedulingRejectsGarbageWithoutStateChange(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	f.send(t, visitor, "1")
	f.send(t, visitor, "99")

	resp := f.send(t, visitor, "whenever works")
	if !strings.Contains(resp.Message, "couldn't understand that date") {
		t.Fatalf("expected re-prompt, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateScheduling {
		t.Fatal("rejected date must not advance state")
	}

	order, err := f.ledger.MostRecentPlaced(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if order.ScheduledFor != nil {
		t.Fatal("rejected date must not attach a schedule")
	}
}

func TestSchedulingYesPromptsForTime(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	f.send(t, visitor, "1")
	f.send(t, visitor, "99")

	resp := f.send(t, visitor, "1")
	if !strings.Contains(resp.Message, "enter the date and time") {
		t.Fatalf("expected time prompt, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateScheduling {
		t.Fatal("prompt must not change state")
	}
}

func TestCurrentOrderAndCancel(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	resp := f.send(t, visitor, "97")
	if !strings.Contains(resp.Message, "don't have any items") {
		t.Fatalf("expected no-current-order reply, got: %s", resp.Message)
	}

	f.send(t, visitor, "1")
	f.send(t, visitor, "1")
	f.send(t, visitor, "12")

	resp = f.send(t, visitor, "97")
	if !strings.Contains(resp.Message, "1. Jollof Rice with Chicken x1 - ₦3,500") {
		t.Fatalf("expected itemized order, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Total: ₦4,000") {
		t.Fatalf("expected total, got: %s", resp.Message)
	}

	resp = f.send(t, visitor, "0")
	if !strings.Contains(resp.Message, "has been cancelled") {
		t.Fatalf("expected cancellation reply, got: %s", resp.Message)
	}
	if f.state(t, visitor) != models.StateIdle {
		t.Fatalf("expected idle after cancel, got %s", f.state(t, visitor))
	}

	resp = f.send(t, visitor, "0")
	if !strings.Contains(resp.Message, "don't have any order to cancel") {
		t.Fatalf("expected nothing-to-cancel reply, got: %s", resp.Message)
	}
}

func TestOrderHistoryRendering(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	resp := f.send(t, visitor, "98")
	if !strings.Contains(resp.Message, "haven't placed any orders yet") {
		t.Fatalf("expected empty history reply, got: %s", resp.Message)
	}

	f.send(t, visitor, "1")
	f.send(t, visitor, "3")
	f.send(t, visitor, "99")
	f.send(t, visitor, "2")

	resp = f.send(t, visitor, "98")
	if !strings.Contains(resp.Message, "Your order history:") {
		t.Fatalf("expected history header, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Status: PLACED") {
		t.Fatalf("expected placed status, got: %s", resp.Message)
	}
	if !strings.Contains(resp.Message, "Total: ₦4,500") {
		t.Fatalf("expected total, got: %s", resp.Message)
	}
}

func TestInitializePaymentWithoutOrder(t *testing.T) {
	f := newEngineFixture()

	resp, err := f.engine.InitializePayment(context.Background(), "v1", "")
	if err != nil {
		t.Fatal(err)
	}
	if resp.PaymentURL != "" {
		t.Fatal("expected no payment URL without a placed order")
	}
	if !strings.Contains(resp.Message, "No order found to pay for") {
		t.Fatalf("expected no-order reply, got: %s", resp.Message)
	}
	if f.gateway.initCalls != 0 {
		t.Fatal("gateway must not be called without a placed order")
	}
}

type failingOrderStore struct {
	*store.MemoryOrderStore
}

func (failingOrderStore) FindPending(ctx context.Context, sessionID string) (*models.Order, error) {
	return nil, errors.New("connection reset by peer")
}

func TestStoreFailureKeepsConversationAlive(t *testing.T) {
	menu := store.NewMemoryMenuStore(
		models.MenuItem{ItemNumber: 1, Name: "Jollof Rice with Chicken", Price: 3500, Category: models.CategoryMainCourse, Available: true},
	)
	orders := failingOrderStore{store.NewMemoryOrderStore()}
	sessions := store.NewMemorySessionStore()

	led := ledger.New(orders, sessions, menu)
	bridge := payment.NewBridge(led, &fakeGateway{}, "http://localhost:3000/api/payment/callback")
	engine := NewEngine(sessions, catalog.New(menu), led, bridge)

	if _, err := engine.Process(context.Background(), "v1", "1"); err != nil {
		t.Fatal(err)
	}

	resp, err := engine.Process(context.Background(), "v1", "1")
	if err != nil {
		t.Fatalf("store failure must not surface as an error: %v", err)
	}
	if !strings.Contains(resp.Message, "Something went wrong") {
		t.Fatalf("expected retry reply, got: %s", resp.Message)
	}
}

func TestPaymentRoundTrip(t *testing.T) {
	f := newEngineFixture()
	const visitor = "v1"

	f.send(t, visitor, "1")
	f.send(t, visitor, "3")
	f.send(t, visitor, "99")
	f.send(t, visitor, "2")

	resp, err := f.engine.InitializePayment(context.Background(), visitor, "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if resp.PaymentURL == "" {
		t.Fatalf("expected payment URL, got message: %s", resp.Message)
	}

	order, err := f.ledger.MostRecentPlaced(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if order.PaymentReference == "" {
		t.Fatal("expected payment reference stored on the order")
	}

	reply, ok := f.engine.HandlePaymentCallback(context.Background(), order.PaymentReference)
	if !ok {
		t.Fatalf("expected callback success, got: %s", reply.Message)
	}
	if !strings.Contains(reply.Message, "Payment successful") {
		t.Fatalf("expected success copy, got: %s", reply.Message)
	}

	history, err := f.ledger.History(context.Background(), visitor)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 || history[0].Status != models.OrderStatusPaid {
		t.Fatalf("expected one paid order, got %+v", history)
	}
	if f.state(t, visitor) != models.StateIdle {
		t.Fatalf("expected idle after payment, got %s", f.state(t, visitor))
	}
}
