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

// ApplyOffer adjusts baseAmount by the offer's discount when the code is
// valid for the event. Discount codes are advisory: a missing, expired or
// exhausted code leaves the amount unchanged and reports consumed=false
// rather than failing the order.
//
// The usage counter increment is conditioned on used_count < max_uses at
// write time, inside the caller's transaction, so two orders racing for the
// last remaining use cannot both get the discount.
func ApplyOffer(tx *gorm.DB, eventId uint, code string, baseAmount float64) (float64, bool, error) {
	if code == "" {
		return baseAmount, false, nil
	}

	var offer model.Offer
	err := tx.Where("code = ? AND event_id = ?", code, eventId).First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return baseAmount, false, nil
		}
		return baseAmount, false, err
	}

	if !offer.ValidUntil.After(time.Now()) {
		return baseAmount, false, nil
	}

	result := tx.Model(&model.Offer{}).
		Where("id = ? AND used_count < max_uses", offer.ID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return baseAmount, false, result.Error
	}
	if result.RowsAffected == 0 {
		// cap reached, full price
		return baseAmount, false, nil
	}

	adjusted := baseAmount - baseAmount*offer.DiscountPercent/100
	return adjusted, true, nil
}

// POST /organizer/offers
func CreateOffer(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOfferInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var event model.Event
	if err := database.DB.First(&event, input.EventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Event not found", err)
	}
	if event.OrganizerId != user.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized for this event", nil)
	}

	offer := model.Offer{
		EventId:         input.EventId,
		Code:            input.Code,
		DiscountPercent: input.DiscountPercent,
		ValidUntil:      input.ValidUntil,
		MaxUses:         input.MaxUses,
	}
	if err := database.DB.Create(&offer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Offer code already exists", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, offer)
}
