package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PendingOrderTimeout is how long a PENDING order may hold its seats before
// the expiry sweep cancels it and releases them.
const PendingOrderTimeout = 15 * time.Minute

func newOrderCode() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func newTicketCode() string {
	return "TICK-" + strings.ToUpper(uuid.New().String()[:8])
}

// POST /customer/orders
func PlaceOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.PlaceOrderInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	db := database.DB
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var event model.Event
		if err := tx.First(&event, input.EventId).Error; err != nil || event.Status != model.EventUpcoming {
			return fiber.NewError(fiber.StatusBadRequest, constants.EVENT_NOT_BOOKABLE)
		}

		if len(input.SeatIds) > event.MaxTicketsPerUser {
			return fiber.NewError(fiber.StatusBadRequest, constants.QUOTA_EXCEEDED)
		}

		// Quota counts tickets of CONFIRMED orders only; concurrent PENDING
		// orders are deliberately not counted.
		confirmed, err := helper.ConfirmedSeatCount(tx, user.ID, event.ID)
		if err != nil {
			return err
		}
		if int(confirmed)+len(input.SeatIds) > event.MaxTicketsPerUser {
			return fiber.NewError(fiber.StatusBadRequest, constants.QUOTA_EXCEEDED)
		}

		if err := ReserveSeats(tx, event.ID, input.SeatIds); err != nil {
			if errors.Is(err, ErrSeatUnavailable) {
				return fiber.NewError(fiber.StatusBadRequest, constants.SEAT_UNAVAILABLE)
			}
			return err
		}

		total := event.TicketPrice * float64(len(input.SeatIds))
		total, _, err = ApplyOffer(tx, event.ID, input.OfferCode, total)
		if err != nil {
			return err
		}

		var seats []model.Seat
		if err := tx.Where("id IN ?", input.SeatIds).Find(&seats).Error; err != nil {
			return err
		}

		order = model.Order{
			PublicCode:  newOrderCode(),
			UserId:      user.ID,
			EventId:     event.ID,
			TotalAmount: total,
			PaymentMode: model.PaymentSimulation,
			Status:      model.OrderPending,
			BookingTime: time.Now(),
			Seats:       seats,
		}
		// Omit("Seats.*") writes the order_seats join rows without touching
		// the seat rows themselves.
		return tx.Omit("Seats.*").Create(&order).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	PublishSeatUpdate(order.EventId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Order created",
		"orderId":     order.ID,
		"publicCode":  order.PublicCode,
		"totalAmount": order.TotalAmount,
	})
}

// GET /customer/orders
func GetMyOrders(c *fiber.Ctx) error {
	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Seats").
		Preload("Tickets").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

// confirmOrder flips a PENDING order to CONFIRMED and mints one ACTIVE ticket
// per seat. Both the simulated confirmation and the verified gateway callback
// end up here; they differ only in the payment mode recorded on the order.
func confirmOrder(tx *gorm.DB, order *model.Order, seatIds []uint, paymentMode string) ([]model.Ticket, error) {
	// Defends against stale client state: every given seat must still be
	// BOOKED and belong to the order's event.
	var seats []model.Seat
	if err := tx.Where("id IN ? AND event_id = ? AND status = ?",
		seatIds, order.EventId, model.SeatBooked).
		Find(&seats).Error; err != nil {
		return nil, err
	}
	if len(seats) != len(seatIds) {
		return nil, fiber.NewError(fiber.StatusBadRequest, constants.SEAT_MISMATCH)
	}

	// Status guard at write time: a second confirmation of the same order
	// finds zero PENDING rows and fails.
	result := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", order.ID, model.OrderPending).
		Updates(map[string]any{"status": model.OrderConfirmed, "payment_mode": paymentMode})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, constants.INVALID_ORDER_STATE)
	}

	now := time.Now()
	tickets := make([]model.Ticket, 0, len(seats))
	for _, seat := range seats {
		tickets = append(tickets, model.Ticket{
			OrderId:    order.ID,
			SeatId:     seat.ID,
			TicketCode: newTicketCode(),
			Status:     model.TicketActive,
			IssuedAt:   now,
		})
	}
	if err := tx.Create(&tickets).Error; err != nil {
		// uniqueIndex on ticket_code; a collision here is vanishingly rare
		// and treated as an internal error.
		return nil, err
	}
	return tickets, nil
}

// POST /customer/orders/:orderId/confirm-payment
func ConfirmPayment(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.ConfirmPaymentInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
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
		tickets, err = confirmOrder(tx, &order, input.SeatIds, model.PaymentSimulation)
		return err
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	sendOrderConfirmation(user, order, tickets)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":     "Payment successful and tickets generated",
		"orderId":     order.ID,
		"ticketCount": len(tickets),
		"tickets":     tickets,
	})
}

func sendOrderConfirmation(user *model.User, order model.Order, tickets []model.Ticket) {
	var event model.Event
	if err := database.DB.First(&event, order.EventId).Error; err != nil {
		log.Printf("load event %d for confirmation email: %v", order.EventId, err)
		return
	}

	var seats []model.Seat
	seatIds := make([]uint, 0, len(tickets))
	codes := make([]string, 0, len(tickets))
	for _, t := range tickets {
		seatIds = append(seatIds, t.SeatId)
		codes = append(codes, t.TicketCode)
	}
	database.DB.Where("id IN ?", seatIds).Find(&seats)
	labels := make([]string, 0, len(seats))
	for _, s := range seats {
		labels = append(labels, s.Label)
	}

	utils.SendOrderConfirmationEmail(user.Email, utils.OrderConfirmationData{
		OrderCode:   order.PublicCode,
		EventName:   event.Name,
		EventDate:   event.EventDate.Format("02/01/2006 15:04"),
		Seats:       strings.Join(labels, ", "),
		TicketCodes: codes,
		TotalAmount: order.TotalAmount,
		PaymentMode: order.PaymentMode,
	})
}

// ExpireOrders cancels PENDING orders older than PendingOrderTimeout and
// releases their reserved seats back to inventory.
func ExpireOrders() {
	db := database.DB
	cutoff := time.Now().Add(-PendingOrderTimeout)

	var stale []model.Order
	if err := db.Preload("Seats").
		Where("status = ? AND booking_time < ?", model.OrderPending, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("scan stale orders: %v", err)
		return
	}

	for _, order := range stale {
		order := order
		err := db.Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&model.Order{}).
				Where("id = ? AND status = ?", order.ID, model.OrderPending).
				Update("status", model.OrderCancelled)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// confirmed in the meantime
				return nil
			}
			seatIds := make([]uint, 0, len(order.Seats))
			for _, s := range order.Seats {
				seatIds = append(seatIds, s.ID)
			}
			return ReleaseSeats(tx, seatIds)
		})
		if err != nil {
			log.Printf("expire order %d: %v", order.ID, err)
			continue
		}
		PublishSeatUpdate(order.EventId)
		log.Printf("expired pending order %s, released %d seats", order.PublicCode, len(order.Seats))
	}
}

var orderSweeper *cron.Cron

func StartOrderExpirySweep() {
	orderSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	if _, err := orderSweeper.AddFunc("*/5 * * * *", ExpireOrders); err != nil {
		log.Printf("start order expiry sweep: %v", err)
		return
	}

	orderSweeper.Start()
	log.Println("order expiry sweep started (every 5 minutes)")
}

func StopOrderExpirySweep() {
	if orderSweeper != nil {
		orderSweeper.Stop()
	}
}
