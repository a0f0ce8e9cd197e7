package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// POST /admin/venues
func CreateVenue(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateVenueInput)

	venue := model.Venue{
		Name:          input.Name,
		City:          input.City,
		TotalCapacity: input.TotalCapacity,
		Address:       input.Address,
	}
	if err := database.DB.Create(&venue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, venue)
}

// GET /admin/venues
func GetVenues(c *fiber.Ctx) error {
	var venues []model.Venue
	if err := database.DB.Order("name").Find(&venues).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, venues)
}

// POST /admin/events
func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)

	db := database.DB
	var event model.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		var venue model.Venue
		if err := tx.First(&venue, input.VenueId).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venue not found")
		}

		var organizer model.User
		if err := tx.Where("id = ? AND role = ?", input.OrganizerId, constants.ROLE_ORGANIZER).
			First(&organizer).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Organizer not found")
		}

		event = model.Event{
			Slug:              helper.GenerateUniqueEventSlug(tx, input.Name),
			VenueId:           venue.ID,
			OrganizerId:       organizer.ID,
			Name:              input.Name,
			Category:          input.Category,
			EventDate:         input.EventDate,
			TicketPrice:       input.TicketPrice,
			MaxTicketsPerUser: input.MaxTicketsPerUser,
			Status:            model.EventUpcoming,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

// GET /admin/events
func GetAllEvents(c *fiber.Ctx) error {
	query := database.DB.Preload("Venue").Order("event_date")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var events []model.Event
	if err := query.Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, events)
}

// PUT /admin/events/:eventId/status
//
// Lifecycle moves forward only: UPCOMING may become CLOSED or CANCELLED,
// terminal states stay put.
func UpdateEventStatus(c *fiber.Ctx) error {
	eventId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.UpdateEventStatusInput)

	var event model.Event
	if err := database.DB.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", nil)
	}

	if event.Status != model.EventUpcoming || input.Status == model.EventUpcoming {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status transition", nil)
	}

	if err := database.DB.Model(&event).Update("status", input.Status).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

// GET /admin/organizers
func GetOrganizers(c *fiber.Ctx) error {
	var organizers []model.User
	if err := database.DB.Where("role = ?", constants.ROLE_ORGANIZER).Find(&organizers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, organizers)
}

// GET /admin/organizers/:organizerId/profile
func GetOrganizerProfile(c *fiber.Ctx) error {
	organizerId := uint(c.Locals("inputId").(int))

	var profile model.OrganizerProfile
	if err := database.DB.Where("user_id = ?", organizerId).First(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, profile)
}

// POST /admin/seed
func SeedDemoData(c *fiber.Ctx) error {
	database.SeedData(database.DB)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "seed complete"})
}
