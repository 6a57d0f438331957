package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/bot"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/catalog"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/ledger"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/payment"
	"github.com/ibraheembello/Restaurant-Chatbot/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	menu := store.NewMemoryMenuStore(
		models.MenuItem{ItemNumber: 1, Name: "Jollof Rice with Chicken", Price: 3500, Category: models.CategoryMainCourse, Available: true},
	)
	orders := store.NewMemoryOrderStore()
	sessions := store.NewMemorySessionStore()

	led := ledger.New(orders, sessions, menu)
	gateway := payment.NewPaystackGateway("sk_test_unused", time.Second)
	bridge := payment.NewBridge(led, gateway, "http://localhost:3000/api/payment/callback")
	engine := bot.NewEngine(sessions, catalog.New(menu), led, bridge)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("visitorId", "test-visitor")
	})
	r.GET("/api/chat/init", InitChat(engine))
	r.POST("/api/chat/message", ProcessMessage(engine))
	r.GET("/api/chat/session", GetSessionState(engine))
	return r
}

func decodeData(t *testing.T, body string) map[string]any {
	t.Helper()
	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("decoding response failed: %v\nbody: %s", err, body)
	}
	if !resp.Success {
		t.Fatalf("expected success=true, body: %s", body)
	}
	return resp.Data
}

func TestInitChatReturnsWelcome(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/chat/init", nil))

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w.Body.String())
	if data["sessionId"] != "test-visitor" {
		t.Fatalf("unexpected sessionId: %v", data["sessionId"])
	}
	message, _ := data["message"].(string)
	if !strings.Contains(message, "Welcome") || !strings.Contains(message, "Select 1") {
		t.Fatalf("unexpected welcome message: %s", message)
	}
}

func TestProcessMessageValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing body", `{}`},
		{"not json", `menu please`},
		{"empty message", `{"message":"   "}`},
		{"too long", `{"message":"` + strings.Repeat("a", 501) + `"}`},
		{"too long multibyte", `{"message":"` + strings.Repeat("🍛", 501) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/chat/message", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != 400 {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"success":false`) {
				t.Fatalf("expected success=false, got: %s", w.Body.String())
			}
		})
	}
}

func TestProcessMessageLimitCountsCharactersNotBytes(t *testing.T) {
	r := newTestRouter(t)

	// 500 four-byte runes: 2000 bytes but exactly at the character limit.
	body := `{"message":"` + strings.Repeat("🍛", 500) + `"}`
	req := httptest.NewRequest("POST", "/api/chat/message", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProcessMessageRoutesThroughEngine(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/chat/message", strings.NewReader(`{"message":"1"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w.Body.String())
	message, _ := data["message"].(string)
	if !strings.Contains(message, "Jollof Rice with Chicken") {
		t.Fatalf("expected menu in response, got: %s", message)
	}
	if pay, _ := data["showPayButton"].(bool); pay {
		t.Fatal("pay button must not show for a menu response")
	}
}

func TestGetSessionStateReflectsConversation(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/chat/session", nil))
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if data := decodeData(t, w.Body.String()); data["state"] != "idle" {
		t.Fatalf("expected idle state, got %v", data["state"])
	}

	req := httptest.NewRequest("POST", "/api/chat/message", strings.NewReader(`{"message":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/chat/session", nil))
	if data := decodeData(t, w.Body.String()); data["state"] != "ordering" {
		t.Fatalf("expected ordering state, got %v", data["state"])
	}
}
