package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// GET /events
func GetUpcomingEvents(c *fiber.Ctx) error {
	filter := new(model.FilterEventInput)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Preload("Venue").Order("event_date")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else {
		query = query.Where("status = ?", model.EventUpcoming)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)

	var events []model.Event
	if err := query.Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

// GET /events/:slug
func GetEventBySlug(c *fiber.Ctx) error {
	eventSlug := c.Params("slug")

	var event model.Event
	if err := database.DB.Preload("Venue").Where("slug = ?", eventSlug).First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}
