package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	"event_ticketing/constants"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayment(secret, gatewayOrderId, gatewayPaymentId string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderId + "|" + gatewayPaymentId))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := &Gateway{Config: model.GatewayConfig{KeySecret: "shhh"}}

	sig := signPayment("shhh", "order_123", "pay_456")
	assert.True(t, g.VerifySignature("order_123", "pay_456", sig))

	assert.False(t, g.VerifySignature("order_123", "pay_456", signPayment("wrong", "order_123", "pay_456")))
	assert.False(t, g.VerifySignature("order_999", "pay_456", sig))
	assert.False(t, g.VerifySignature("order_123", "pay_456", "not-a-signature"))
}

type stubGateway struct {
	secret     string
	intentErr  error
	lastAmount int64
}

func (s *stubGateway) CreateIntent(req model.IntentRequest) (*model.IntentResponse, error) {
	if s.intentErr != nil {
		return nil, s.intentErr
	}
	s.lastAmount = req.Amount
	return &model.IntentResponse{GatewayOrderId: "order_stub", Amount: req.Amount, Currency: "INR"}, nil
}

func (s *stubGateway) VerifySignature(gatewayOrderId, gatewayPaymentId, signature string) bool {
	return signature == signPayment(s.secret, gatewayOrderId, gatewayPaymentId)
}

func newPaymentApp() *fiber.App {
	app := fiber.New()
	app.Post("/orders/:orderId/gateway-intent", middleware.Protected(), validate.GetById("orderId"), CreateGatewayIntent)
	app.Post("/orders/:orderId/verify-payment", middleware.Protected(), validate.GetById("orderId"), validate.VerifyPayment(), VerifyGatewayPayment)
	return app
}

func TestCreateGatewayIntent(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)
	order := createPendingOrder(t, db, customer, event, seats)

	stub := &stubGateway{secret: "shhh"}
	prev := ActiveGateway
	ActiveGateway = stub
	defer func() { ActiveGateway = prev }()

	app := newPaymentApp()
	path := fmt.Sprintf("/orders/%d/gateway-intent", order.ID)
	resp, parsed := doJSON(t, app, http.MethodPost, path, authToken(t, customer), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]any)
	assert.Equal(t, "order_stub", data["gatewayOrderId"])
	assert.Equal(t, int64(order.TotalAmount*100), stub.lastAmount)

	// the order stays pending until the callback is verified
	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderPending, reloaded.Status)
}

func TestCreateGatewayIntentProviderDown(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)
	order := createPendingOrder(t, db, customer, event, seats)

	prev := ActiveGateway
	ActiveGateway = &stubGateway{secret: "shhh", intentErr: fmt.Errorf("connection refused")}
	defer func() { ActiveGateway = prev }()

	app := newPaymentApp()
	path := fmt.Sprintf("/orders/%d/gateway-intent", order.ID)
	resp, _ := doJSON(t, app, http.MethodPost, path, authToken(t, customer), "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderPending, reloaded.Status)
}

func TestVerifyGatewayPayment(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)
	order := createPendingOrder(t, db, customer, event, seats)

	prev := ActiveGateway
	ActiveGateway = &stubGateway{secret: "shhh"}
	defer func() { ActiveGateway = prev }()

	app := newPaymentApp()
	path := fmt.Sprintf("/orders/%d/verify-payment", order.ID)

	// tampered signature leaves everything untouched
	badBody := fmt.Sprintf(`{"gatewayOrderId":"order_stub","gatewayPaymentId":"pay_1","signature":"bogus","seatIds":[%d,%d]}`,
		seats[0].ID, seats[1].ID)
	resp, _ := doJSON(t, app, http.MethodPost, path, authToken(t, customer), badBody)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var reloaded model.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderPending, reloaded.Status)

	// a valid signature confirms the order through the gateway path
	goodBody := fmt.Sprintf(`{"gatewayOrderId":"order_stub","gatewayPaymentId":"pay_1","signature":%q,"seatIds":[%d,%d]}`,
		signPayment("shhh", "order_stub", "pay_1"), seats[0].ID, seats[1].ID)
	resp, parsed := doJSON(t, app, http.MethodPost, path, authToken(t, customer), goodBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := parsed["data"].(map[string]any)
	assert.Equal(t, float64(2), data["ticketCount"])

	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, model.OrderConfirmed, reloaded.Status)
	assert.Equal(t, model.PaymentGateway, reloaded.PaymentMode)
}
