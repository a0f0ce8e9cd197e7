package handler

import (
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func appendEntryLog(ticketId *uint, validatedBy uint, result string) {
	entry := model.EntryLog{
		TicketId:    ticketId,
		ValidatedBy: validatedBy,
		Result:      result,
		ScannedAt:   time.Now(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		// The scan outcome was already decided; a lost audit row must not
		// change it.
		return
	}
}

// POST /entry/validate
//
// Every scan is recorded, including scans of codes that match no ticket.
func ValidateTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ValidateTicketInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var ticket model.Ticket
	if err := database.DB.Preload("Seat").Where("ticket_code = ?", input.TicketCode).First(&ticket).Error; err != nil {
		appendEntryLog(nil, user.ID, model.EntryFailed)
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ENTRY_INVALID_TICKET, nil)
	}

	switch ticket.Status {
	case model.TicketUsed:
		appendEntryLog(&ticket.ID, user.ID, model.EntryFailed)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ENTRY_TICKET_USED, nil)
	case model.TicketCancelled:
		appendEntryLog(&ticket.ID, user.ID, model.EntryFailed)
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ENTRY_TICKET_CANCEL, nil)
	}

	appendEntryLog(&ticket.ID, user.ID, model.EntrySuccess)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":    constants.ENTRY_TICKET_VALID,
		"ticketId":   ticket.ID,
		"ticketCode": ticket.TicketCode,
		"seatLabel":  ticket.Seat.Label,
		"status":     ticket.Status,
	})
}

// POST /entry/tickets/:ticketId/use
func MarkTicketUsed(c *fiber.Ctx) error {
	ticketId := uint(c.Locals("inputId").(int))

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var ticket model.Ticket
	if err := database.DB.First(&ticket, ticketId).Error; err != nil {
		appendEntryLog(nil, user.ID, model.EntryFailed)
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ENTRY_INVALID_TICKET, nil)
	}

	now := time.Now()
	// Write-time status guard; two scanners racing on the same ticket admit
	// exactly one.
	result := database.DB.Model(&model.Ticket{}).
		Where("id = ? AND status = ?", ticket.ID, model.TicketActive).
		Updates(map[string]any{"status": model.TicketUsed, "used_at": now})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		appendEntryLog(&ticket.ID, user.ID, model.EntryFailed)
		if ticket.Status == model.TicketCancelled {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ENTRY_TICKET_CANCEL, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ENTRY_TICKET_USED, nil)
	}

	appendEntryLog(&ticket.ID, user.ID, model.EntrySuccess)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":  "Ticket marked as used",
		"ticketId": ticket.ID,
		"usedAt":   now,
	})
}

// GET /entry/logs
func GetEntryLogs(c *fiber.Ctx) error {
	var logs []model.EntryLog
	query := database.DB.Order("scanned_at desc")
	if result := c.Query("result"); result != "" {
		query = query.Where("result = ?", result)
	}
	if limit := c.QueryInt("limit"); limit > 0 {
		page := c.QueryInt("page", 1)
		query = utils.ApplyPagination(query, &limit, &page)
	}
	if err := query.Find(&logs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, logs)
}
