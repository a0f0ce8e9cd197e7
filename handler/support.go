package handler

import (
	"errors"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /customer/support-cases
func CreateSupportCase(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSupportCaseInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	if input.OrderId != nil {
		var order model.Order
		if err := database.DB.Where("id = ? AND user_id = ?", *input.OrderId, user.ID).First(&order).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Order not found", nil)
		}
	}

	supportCase := model.SupportCase{
		RaisedBy:    user.ID,
		OrderId:     input.OrderId,
		Description: input.Description,
		Status:      model.SupportOpen,
	}
	if err := database.DB.Create(&supportCase).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, supportCase)
}

// GET /customer/support-cases
func GetMySupportCases(c *fiber.Ctx) error {
	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var cases []model.SupportCase
	if err := database.DB.Where("raised_by = ?", user.ID).Order("created_at desc").Find(&cases).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cases)
}

// GET /support/cases
func GetSupportCases(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var cases []model.SupportCase
	if err := query.Find(&cases).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cases)
}

// PUT /support/cases/:caseId
//
// Picking up a case assigns it to the acting agent.
func UpdateSupportCase(c *fiber.Ctx) error {
	caseId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.UpdateSupportCaseInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var supportCase model.SupportCase
	if err := database.DB.First(&supportCase, caseId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Support case not found", nil)
	}

	supportCase.Status = input.Status
	supportCase.AssignedTo = &user.ID
	if input.Notes != "" {
		supportCase.ResolutionNotes = input.Notes
	}
	if err := database.DB.Save(&supportCase).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, supportCase)
}

// POST /customer/refunds
func RequestRefund(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateRefundInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var order model.Order
	if err := database.DB.Where("id = ? AND user_id = ?", input.OrderId, user.ID).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REFUND_STATE, nil)
	}
	if order.Status != model.OrderConfirmed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REFUND_STATE, nil)
	}

	var event model.Event
	if err := database.DB.First(&event, order.EventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if time.Now().After(event.EventDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EVENT_ALREADY_OVER, nil)
	}

	var existing int64
	database.DB.Model(&model.RefundRequest{}).
		Where("order_id = ? AND status = ?", order.ID, model.RefundPending).
		Count(&existing)
	if existing > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_REFUND_STATE, nil)
	}

	refund := model.RefundRequest{
		OrderId:     order.ID,
		RequestedBy: user.ID,
		Reason:      input.Reason,
		Status:      model.RefundPending,
	}
	if err := database.DB.Create(&refund).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, refund)
}

// GET /support/refunds
func GetRefundRequests(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var refunds []model.RefundRequest
	if err := query.Find(&refunds).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, refunds)
}

// PUT /support/refunds/:refundId
//
// Approval reverses the whole booking in one transaction: the order becomes
// REFUNDED, its tickets are cancelled and its seats go back on sale.
// Rejection only closes the request.
func ResolveRefund(c *fiber.Ctx) error {
	refundId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.ResolveRefundInput)

	_, agent := helper.GetInfoUserFromToken(c)
	if agent == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	db := database.DB
	var refund model.RefundRequest
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&refund, refundId).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Refund request not found")
		}

		newStatus := model.RefundRejected
		if input.Approve {
			newStatus = model.RefundApproved
		}

		now := time.Now()
		// Write-time PENDING guard; a request resolved once stays resolved.
		result := tx.Model(&model.RefundRequest{}).
			Where("id = ? AND status = ?", refund.ID, model.RefundPending).
			Updates(map[string]any{"status": newStatus, "resolved_by": agent.ID, "resolved_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, constants.REFUND_NOT_PENDING)
		}
		refund.Status = newStatus
		refund.ResolvedBy = &agent.ID
		refund.ResolvedAt = &now

		if !input.Approve {
			return nil
		}

		if err := tx.Preload("Seats").First(&order, refund.OrderId).Error; err != nil {
			return err
		}
		orderResult := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, model.OrderConfirmed).
			Update("status", model.OrderRefunded)
		if orderResult.Error != nil {
			return orderResult.Error
		}
		if orderResult.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusBadRequest, constants.INVALID_REFUND_STATE)
		}

		if err := tx.Model(&model.Ticket{}).
			Where("order_id = ?", order.ID).
			Update("status", model.TicketCancelled).Error; err != nil {
			return err
		}

		seatIds := make([]uint, 0, len(order.Seats))
		for _, s := range order.Seats {
			seatIds = append(seatIds, s.ID)
		}
		return ReleaseSeats(tx, seatIds)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.Approve {
		PublishSeatUpdate(order.EventId)
	}
	sendRefundResult(refund)

	return utils.SuccessResponse(c, fiber.StatusOK, refund)
}

func sendRefundResult(refund model.RefundRequest) {
	var order model.Order
	if err := database.DB.First(&order, refund.OrderId).Error; err != nil {
		return
	}
	var customer model.User
	if err := database.DB.First(&customer, refund.RequestedBy).Error; err != nil {
		return
	}
	var event model.Event
	database.DB.First(&event, order.EventId)

	utils.SendRefundResultEmail(customer.Email, utils.RefundResultData{
		OrderCode: order.PublicCode,
		EventName: event.Name,
		Approved:  refund.Status == model.RefundApproved,
		Amount:    order.TotalAmount,
	})
}
