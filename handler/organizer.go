package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// GET /organizer/events
func GetOrganizerEvents(c *fiber.Ctx) error {
	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var events []model.Event
	if err := database.DB.Preload("Venue").
		Where("organizer_id = ?", user.ID).
		Order("event_date").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

// GET /organizer/events/:eventId/summary
func GetEventSummary(c *fiber.Ctx) error {
	eventId := uint(c.Locals("inputId").(int))

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var event model.Event
	if err := database.DB.Where("id = ? AND organizer_id = ?", eventId, user.ID).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}

	var totalSeats, bookedSeats int64
	database.DB.Model(&model.Seat{}).Where("event_id = ?", event.ID).Count(&totalSeats)
	database.DB.Model(&model.Seat{}).
		Where("event_id = ? AND status = ?", event.ID, model.SeatBooked).
		Count(&bookedSeats)

	var revenue float64
	database.DB.Model(&model.Order{}).
		Where("event_id = ? AND status = ?", event.ID, model.OrderConfirmed).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"eventId":     event.ID,
		"eventName":   event.Name,
		"status":      event.Status,
		"totalSeats":  totalSeats,
		"bookedSeats": bookedSeats,
		"revenue":     revenue,
	})
}

// PUT /organizer/events/:eventId/close
func CloseEvent(c *fiber.Ctx) error {
	eventId := uint(c.Locals("inputId").(int))

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var event model.Event
	if err := database.DB.Where("id = ? AND organizer_id = ?", eventId, user.ID).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}
	if event.Status != model.EventUpcoming {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status transition", nil)
	}

	if err := database.DB.Model(&event).Update("status", model.EventClosed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}
