package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"event_ticketing/constants"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRefundApp() *fiber.App {
	app := fiber.New()
	app.Post("/refunds", middleware.Protected(), middleware.AllowRoles(constants.ROLE_CUSTOMER), validate.CreateRefund(), RequestRefund)
	app.Put("/refunds/:refundId", middleware.Protected(), middleware.AllowRoles(constants.ROLE_SUPPORT), validate.GetById("refundId"), validate.ResolveRefund(), ResolveRefund)
	return app
}

func createRefundRequest(t *testing.T, db *gorm.DB, order model.Order, requestedBy uint) model.RefundRequest {
	t.Helper()

	refund := model.RefundRequest{
		OrderId:     order.ID,
		RequestedBy: requestedBy,
		Reason:      "cannot attend",
		Status:      model.RefundPending,
	}
	require.NoError(t, db.Create(&refund).Error)
	return refund
}

func TestRequestRefundRequiresConfirmedOrder(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)

	pending := createPendingOrder(t, db, customer, event, seats)

	app := newRefundApp()
	body := fmt.Sprintf(`{"orderId":%d,"reason":"cannot attend"}`, pending.ID)
	resp, parsed := doJSON(t, app, http.MethodPost, "/refunds", authToken(t, customer), body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.INVALID_REFUND_STATE, parsed["message"])
}

func TestRequestRefundAfterEventDate(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)

	order, _ := createConfirmedOrder(t, db, customer, event, seats)
	require.NoError(t, db.Model(&model.Event{}).
		Where("id = ?", event.ID).
		Update("event_date", time.Now().Add(-time.Hour)).Error)

	app := newRefundApp()
	body := fmt.Sprintf(`{"orderId":%d,"reason":"missed it"}`, order.ID)
	resp, parsed := doJSON(t, app, http.MethodPost, "/refunds", authToken(t, customer), body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.EVENT_ALREADY_OVER, parsed["message"])
}

func TestResolveRefundApprovalReversesBooking(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	agent := createUser(t, db, constants.ROLE_SUPPORT)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)

	order, tickets := createConfirmedOrder(t, db, customer, event, seats)
	refund := createRefundRequest(t, db, order, customer.ID)

	app := newRefundApp()
	path := fmt.Sprintf("/refunds/%d", refund.ID)
	resp, _ := doJSON(t, app, http.MethodPut, path, authToken(t, agent), `{"approve":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, model.OrderRefunded, reloadedOrder.Status)

	for _, ticket := range tickets {
		var reloaded model.Ticket
		require.NoError(t, db.First(&reloaded, ticket.ID).Error)
		assert.Equal(t, model.TicketCancelled, reloaded.Status)
	}

	var available int64
	db.Model(&model.Seat{}).
		Where("event_id = ? AND status = ?", event.ID, model.SeatAvailable).
		Count(&available)
	assert.Equal(t, int64(2), available)

	var reloadedRefund model.RefundRequest
	require.NoError(t, db.First(&reloadedRefund, refund.ID).Error)
	assert.Equal(t, model.RefundApproved, reloadedRefund.Status)
	require.NotNil(t, reloadedRefund.ResolvedBy)
	assert.Equal(t, agent.ID, *reloadedRefund.ResolvedBy)
	assert.NotNil(t, reloadedRefund.ResolvedAt)
}

func TestResolveRefundRejectionKeepsBooking(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	agent := createUser(t, db, constants.ROLE_SUPPORT)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)

	order, _ := createConfirmedOrder(t, db, customer, event, seats)
	refund := createRefundRequest(t, db, order, customer.ID)

	app := newRefundApp()
	path := fmt.Sprintf("/refunds/%d", refund.ID)
	resp, _ := doJSON(t, app, http.MethodPut, path, authToken(t, agent), `{"approve":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, model.OrderConfirmed, reloadedOrder.Status)

	var booked int64
	db.Model(&model.Seat{}).
		Where("event_id = ? AND status = ?", event.ID, model.SeatBooked).
		Count(&booked)
	assert.Equal(t, int64(2), booked)
}

func TestResolveRefundTwice(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)
	customer := createUser(t, db, constants.ROLE_CUSTOMER)
	agent := createUser(t, db, constants.ROLE_SUPPORT)
	event, seats := createEventWithSeats(t, db, organizer.ID, 2, 4)

	order, _ := createConfirmedOrder(t, db, customer, event, seats)
	refund := createRefundRequest(t, db, order, customer.ID)

	app := newRefundApp()
	path := fmt.Sprintf("/refunds/%d", refund.ID)
	resp, _ := doJSON(t, app, http.MethodPut, path, authToken(t, agent), `{"approve":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// flipping the decision afterwards is rejected
	resp, parsed := doJSON(t, app, http.MethodPut, path, authToken(t, agent), `{"approve":true}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.REFUND_NOT_PENDING, parsed["message"])

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, model.OrderConfirmed, reloadedOrder.Status)
}
