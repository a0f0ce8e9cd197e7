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
)

func newSeatAdminApp() *fiber.App {
	app := fiber.New()
	app.Post("/events/:eventId/seats",
		middleware.Protected(),
		middleware.AllowRoles(constants.ROLE_ORGANIZER),
		validate.GetById("eventId"),
		validate.ExpandSeats(),
		CreateSeats)
	return app
}

func TestCreateSeatsRespectsVenueCapacity(t *testing.T) {
	db := setupTestDB(t)
	organizer := createUser(t, db, constants.ROLE_ORGANIZER)

	venue := model.Venue{Name: "Small Hall", City: "Pune", TotalCapacity: 5}
	require.NoError(t, db.Create(&venue).Error)

	event := model.Event{
		Slug:              "small-hall-gig",
		VenueId:           venue.ID,
		OrganizerId:       organizer.ID,
		Name:              "Small Hall Gig",
		EventDate:         time.Now().Add(48 * time.Hour),
		TicketPrice:       300,
		MaxTicketsPerUser: 4,
		Status:            model.EventUpcoming,
	}
	require.NoError(t, db.Create(&event).Error)

	app := newSeatAdminApp()
	token := authToken(t, organizer)
	path := fmt.Sprintf("/events/%d/seats", event.ID)

	resp, _ := doJSON(t, app, http.MethodPost, path, token, `{"seatCount":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// 3 existing + 3 more would exceed the capacity of 5
	resp, parsed := doJSON(t, app, http.MethodPost, path, token, `{"seatCount":3}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, constants.CAPACITY_EXCEEDED, parsed["message"])

	// topping up to the exact capacity is fine
	resp, _ = doJSON(t, app, http.MethodPost, path, token, `{"seatCount":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var total int64
	db.Model(&model.Seat{}).Where("event_id = ?", event.ID).Count(&total)
	assert.Equal(t, int64(5), total)

	// labels continue the sequence
	var last model.Seat
	require.NoError(t, db.Where("event_id = ?", event.ID).Order("id desc").First(&last).Error)
	assert.Equal(t, "S5", last.Label)
}

func TestCreateSeatsOwnershipCheck(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, db, constants.ROLE_ORGANIZER)
	other := createUser(t, db, constants.ROLE_ORGANIZER)
	event, _ := createEventWithSeats(t, db, owner.ID, 2, 4)

	app := newSeatAdminApp()
	path := fmt.Sprintf("/events/%d/seats", event.ID)
	resp, _ := doJSON(t, app, http.MethodPost, path, authToken(t, other), `{"seatCount":2}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
