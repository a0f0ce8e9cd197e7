package handler

import (
	"errors"
	"log"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActiveGateway is the provider used by the payment handlers. Overridable so
// tests can substitute a stub.
var ActiveGateway PaymentGateway = NewGateway()

// POST /customer/orders/:orderId/gateway-intent
//
// Registers the pending order with the remote provider so the client can open
// the payment widget. The order stays PENDING whatever the provider answers.
func CreateGatewayIntent(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var order model.Order
	if err := database.DB.Where("id = ? AND user_id = ?", orderId, user.ID).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_ORDER_STATE, nil)
	}
	if order.Status != model.OrderPending {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_ORDER_STATE, nil)
	}

	intent, err := ActiveGateway.CreateIntent(model.IntentRequest{
		Amount:  int64(order.TotalAmount * 100),
		Receipt: order.PublicCode,
	})
	if err != nil {
		log.Printf("create gateway intent for order %s: %v", order.PublicCode, err)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Payment gateway unavailable", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"gatewayOrderId": intent.GatewayOrderId,
		"amount":         intent.Amount,
		"currency":       intent.Currency,
	})
}

// POST /customer/orders/:orderId/verify-payment
//
// The provider's callback signature is checked before anything else; a bad
// signature rejects the request with no state change.
func VerifyGatewayPayment(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.VerifyPaymentInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	if !ActiveGateway.VerifySignature(input.GatewayOrderId, input.GatewayPaymentId, input.Signature) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Payment verification failed", nil)
	}

	db := database.DB
	var tickets []model.Ticket
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", orderId, user.ID).First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, constants.INVALID_ORDER_STATE)
		}
		if order.Status != model.OrderPending {
			return fiber.NewError(fiber.StatusBadRequest, constants.INVALID_ORDER_STATE)
		}

		var err error
		tickets, err = confirmOrder(tx, &order, input.SeatIds, model.PaymentGateway)
		return err
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	order.PaymentMode = model.PaymentGateway
	sendOrderConfirmation(user, order, tickets)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Payment verified and tickets generated",
		"orderId":     order.ID,
		"ticketCount": len(tickets),
		"tickets":     tickets,
	})
}
