package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.DB = db
	helper.JwtSecret = []byte("test-secret")
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) model.User {
	t.Helper()

	hash, err := helper.HashPassword("password123")
	require.NoError(t, err)

	user := model.User{
		Name:     role + " user",
		Email:    role + "-" + time.Now().Format("150405.000000") + "@example.com",
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createEventWithSeats(t *testing.T, db *gorm.DB, organizerId uint, seatCount, maxPerUser int) (model.Event, []model.Seat) {
	t.Helper()

	venue := model.Venue{Name: "Test Hall", City: "Pune", TotalCapacity: 100}
	require.NoError(t, db.Create(&venue).Error)

	event := model.Event{
		Slug:              "test-event-" + time.Now().Format("150405.000000"),
		VenueId:           venue.ID,
		OrganizerId:       organizerId,
		Name:              "Test Event",
		Category:          "music",
		EventDate:         time.Now().Add(48 * time.Hour),
		TicketPrice:       500,
		MaxTicketsPerUser: maxPerUser,
		Status:            model.EventUpcoming,
	}
	require.NoError(t, db.Create(&event).Error)

	seats := make([]model.Seat, 0, seatCount)
	for i := 1; i <= seatCount; i++ {
		seats = append(seats, model.Seat{
			EventId: event.ID,
			Label:   fmt.Sprintf("S%d", i),
			Status:  model.SeatAvailable,
		})
	}
	require.NoError(t, db.Create(&seats).Error)
	return event, seats
}

func seatIdsOf(seats []model.Seat) []uint {
	ids := make([]uint, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}
	return ids
}

// createConfirmedOrder books the given seats and confirms the order, minting
// one active ticket per seat.
func createConfirmedOrder(t *testing.T, db *gorm.DB, user model.User, event model.Event, seats []model.Seat) (model.Order, []model.Ticket) {
	t.Helper()

	order := createPendingOrder(t, db, user, event, seats)

	var tickets []model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		tickets, txErr = confirmOrder(tx, &order, seatIdsOf(seats), model.PaymentSimulation)
		return txErr
	})
	require.NoError(t, err)
	order.Status = model.OrderConfirmed
	return order, tickets
}

func createPendingOrder(t *testing.T, db *gorm.DB, user model.User, event model.Event, seats []model.Seat) model.Order {
	t.Helper()

	require.NoError(t, ReserveSeats(db, event.ID, seatIdsOf(seats)))

	order := model.Order{
		PublicCode:  newOrderCode(),
		UserId:      user.ID,
		EventId:     event.ID,
		TotalAmount: event.TicketPrice * float64(len(seats)),
		PaymentMode: model.PaymentSimulation,
		Status:      model.OrderPending,
		BookingTime: time.Now(),
		Seats:       seats,
	}
	require.NoError(t, db.Omit("Seats.*").Create(&order).Error)
	return order
}

func authToken(t *testing.T, user model.User) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}
