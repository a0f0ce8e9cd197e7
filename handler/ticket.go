package handler

import (
	"encoding/base64"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

type ticketView struct {
	ID         uint   `json:"id"`
	TicketCode string `json:"ticketCode"`
	Status     string `json:"status"`
	SeatLabel  string `json:"seatLabel"`
	EventName  string `json:"eventName"`
	OrderCode  string `json:"orderCode"`
	QRCode     string `json:"qrCode,omitempty"`
}

// GET /customer/tickets
func GetMyTickets(c *fiber.Ctx) error {
	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var tickets []model.Ticket
	if err := database.DB.
		Joins("JOIN orders ON orders.id = tickets.order_id").
		Where("orders.user_id = ?", user.ID).
		Preload("Order").
		Preload("Seat").
		Order("tickets.created_at desc").
		Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	views := make([]ticketView, 0, len(tickets))
	for _, t := range tickets {
		var event model.Event
		database.DB.First(&event, t.Order.EventId)

		view := ticketView{
			ID:         t.ID,
			TicketCode: t.TicketCode,
			Status:     t.Status,
			SeatLabel:  t.Seat.Label,
			EventName:  event.Name,
			OrderCode:  t.Order.PublicCode,
		}
		if t.Status == model.TicketActive {
			if png, err := utils.GenerateQRCode(t.TicketCode, 256); err == nil {
				view.QRCode = base64.StdEncoding.EncodeToString(png)
			}
		}
		views = append(views, view)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, views)
}
