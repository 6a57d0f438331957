package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// Gateway abstracts the payment provider so the bridge can be exercised with
// a fake in tests. Amounts are in kobo (minor units).
type Gateway interface {
	Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (*InitializeResponse, error)
	Verify(ctx context.Context, reference string) (*VerifyResponse, error)
}

// InitializeResponse is the gateway's answer to a payment initialization.
type InitializeResponse struct {
	Status           bool
	Message          string
	AuthorizationURL string
	Reference        string
}

// VerifyResponse is the gateway's answer to a verification call. TxStatus is
// the inner transaction status ("success", "abandoned", "failed", ...).
type VerifyResponse struct {
	Status   bool
	Message  string
	TxStatus string
}

// PaystackGateway calls the Paystack REST API. The HTTP client carries an
// explicit timeout; expiry is reported as a transport error.
type PaystackGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackGateway(secretKey string, timeout time.Duration) *PaystackGateway {
	return &PaystackGateway{
		secretKey: secretKey,
		baseURL:   defaultPaystackBaseURL,
		client:    &http.Client{Timeout: timeout},
	}
}

type paystackInitializeBody struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
	Currency    string `json:"currency"`
}

type paystackInitializeReply struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyReply struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

func (g *PaystackGateway) Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (*InitializeResponse, error) {
	body, err := json.Marshal(paystackInitializeBody{
		Email:       email,
		Amount:      amountKobo,
		Reference:   reference,
		CallbackURL: callbackURL,
		Currency:    "NGN",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	var reply paystackInitializeReply
	if err := g.do(req, &reply); err != nil {
		return nil, err
	}

	return &InitializeResponse{
		Status:           reply.Status,
		Message:          reply.Message,
		AuthorizationURL: reply.Data.AuthorizationURL,
		Reference:        reply.Data.Reference,
	}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	g.setHeaders(req)

	var reply paystackVerifyReply
	if err := g.do(req, &reply); err != nil {
		return nil, err
	}

	return &VerifyResponse{
		Status:   reply.Status,
		Message:  reply.Message,
		TxStatus: reply.Data.Status,
	}, nil
}

func (g *PaystackGateway) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")
}

func (g *PaystackGateway) do(req *http.Request, out interface{}) error {
	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("paystack: unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
