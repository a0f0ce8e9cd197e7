package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"event_ticketing/model"
)

// PaymentGateway is the remote payment provider. Kept as an interface so the
// payment handlers (and tests) can swap in a stub.
type PaymentGateway interface {
	CreateIntent(req model.IntentRequest) (*model.IntentResponse, error)
	VerifySignature(gatewayOrderId, gatewayPaymentId, signature string) bool
}

// Gateway Service
type Gateway struct {
	Config model.GatewayConfig
	Client *http.Client
}

func NewGateway() *Gateway {
	return &Gateway{
		Config: model.GatewayConfig{
			KeyId:     os.Getenv("GATEWAY_KEY_ID"),
			KeySecret: os.Getenv("GATEWAY_KEY_SECRET"),
			BaseURL:   os.Getenv("GATEWAY_URL"),
		},
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntent registers a payment order with the provider. Amount is in
// minor currency units.
func (g *Gateway) CreateIntent(req model.IntentRequest) (*model.IntentResponse, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":   req.Amount,
		"currency": "INR",
		"receipt":  req.Receipt,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, g.Config.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(g.Config.KeyId, g.Config.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var body struct {
		Id       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &model.IntentResponse{
		GatewayOrderId: body.Id,
		Amount:         body.Amount,
		Currency:       body.Currency,
	}, nil
}

// VerifySignature checks the HMAC-SHA256 the provider sends back with the
// payment callback. The signed message is "<gatewayOrderId>|<gatewayPaymentId>".
func (g *Gateway) VerifySignature(gatewayOrderId, gatewayPaymentId, signature string) bool {
	h := hmac.New(sha256.New, []byte(g.Config.KeySecret))
	h.Write([]byte(gatewayOrderId + "|" + gatewayPaymentId))
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
