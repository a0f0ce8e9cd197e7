package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrSeatUnavailable = errors.New("seat unavailable")

// ReserveSeats marks every requested seat BOOKED in one conditional bulk
// update guarded by status = AVAILABLE. If any seat is missing, belongs to a
// different event or is already booked, RowsAffected falls short and the
// caller must roll back: no seat is left half-reserved.
func ReserveSeats(tx *gorm.DB, eventId uint, seatIds []uint) error {
	result := tx.Model(&model.Seat{}).
		Where("id IN ? AND event_id = ? AND status = ?", seatIds, eventId, model.SeatAvailable).
		Update("status", model.SeatBooked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(seatIds)) {
		return ErrSeatUnavailable
	}
	return nil
}

// ReleaseSeats sets seats back to AVAILABLE. Releasing an already-available
// seat is a no-op, so the call is idempotent.
func ReleaseSeats(tx *gorm.DB, seatIds []uint) error {
	if len(seatIds) == 0 {
		return nil
	}
	return tx.Model(&model.Seat{}).
		Where("id IN ?", seatIds).
		Update("status", model.SeatAvailable).Error
}

// POST /organizer/events/:eventId/seats
func CreateSeats(c *fiber.Ctx) error {
	eventId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.ExpandSeatsInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	db := database.DB
	var created []model.Seat
	err := db.Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.First(&event, eventId).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Event not found")
		}
		if event.OrganizerId != user.ID {
			return fiber.NewError(fiber.StatusForbidden, "Not authorized for this event")
		}

		var venue model.Venue
		if err := tx.First(&venue, event.VenueId).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venue not found")
		}

		var existing int64
		if err := tx.Model(&model.Seat{}).Where("event_id = ?", eventId).Count(&existing).Error; err != nil {
			return err
		}
		if int(existing)+input.SeatCount > venue.TotalCapacity {
			return fiber.NewError(fiber.StatusBadRequest, constants.CAPACITY_EXCEEDED)
		}

		for i := 0; i < input.SeatCount; i++ {
			created = append(created, model.Seat{
				EventId: eventId,
				Label:   fmt.Sprintf("S%d", int(existing)+i+1),
				Status:  model.SeatAvailable,
			})
		}
		// The (event_id, label) unique index makes two concurrent expansions
		// collide on overlapping labels instead of overshooting capacity.
		return tx.Create(&created).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishSeatUpdate(eventId)
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"created": len(created),
		"seats":   created,
	})
}

// GET /events/:eventId/seats
func GetEventSeats(c *fiber.Ctx) error {
	eventId, err := strconv.Atoi(c.Params("eventId"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid event id", err)
	}

	var seats []model.Seat
	if err := database.DB.
		Where("event_id = ?", eventId).
		Order("id asc").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seats)
}

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	seatConns = make(map[uint]map[*websocket.Conn]bool)
	seatMu    sync.Mutex
)

func getRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

// PublishSeatUpdate notifies websocket subscribers that an event's seat map
// changed. Best effort: booking never fails because redis is down.
func PublishSeatUpdate(eventId uint) {
	if err := getRedis().Publish(context.Background(), fmt.Sprintf("event_seats:%d", eventId), "updated").Err(); err != nil {
		log.Printf("publish seat update for event %d: %v", eventId, err)
	}
}

// SeatWebsocket streams the seat map for one event, refreshing on every
// redis pubsub notification.
func SeatWebsocket(c *websocket.Conn) {
	id64, err := strconv.ParseUint(c.Params("eventId"), 10, 64)
	if err != nil {
		c.Close()
		return
	}
	eventId := uint(id64)

	seatMu.Lock()
	if seatConns[eventId] == nil {
		seatConns[eventId] = make(map[*websocket.Conn]bool)
	}
	seatConns[eventId][c] = true
	seatMu.Unlock()

	defer func() {
		seatMu.Lock()
		delete(seatConns[eventId], c)
		if len(seatConns[eventId]) == 0 {
			delete(seatConns, eventId)
		}
		seatMu.Unlock()
		c.Close()
	}()

	writeSeatState(c, eventId)

	pubsub := getRedis().Subscribe(context.Background(), fmt.Sprintf("event_seats:%d", eventId))
	defer pubsub.Close()

	for range pubsub.Channel() {
		seatMu.Lock()
		conns := seatConns[eventId]
		for conn := range conns {
			if err := writeSeatState(conn, eventId); err != nil {
				conn.Close()
				delete(conns, conn)
			}
		}
		seatMu.Unlock()
	}
}

func writeSeatState(c *websocket.Conn, eventId uint) error {
	var seats []model.Seat
	if err := database.DB.Where("event_id = ?", eventId).Order("id asc").Find(&seats).Error; err != nil {
		log.Printf("load seats for event %d: %v", eventId, err)
		return nil
	}
	return c.WriteJSON(seats)
}
