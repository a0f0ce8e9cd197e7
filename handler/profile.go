package handler

import (
	"errors"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// GET /organizer/profile
func GetMyProfile(c *fiber.Ctx) error {
	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var profile model.OrganizerProfile
	if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, profile)
}

// PUT /organizer/profile
//
// Creates the profile on first save, updates it afterwards.
func UpsertMyProfile(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateProfileInput)

	_, user := helper.GetInfoUserFromToken(c)
	if user == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_TOKEN, nil)
	}

	var profile model.OrganizerProfile
	err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if copyErr := copier.Copy(&profile, &input); copyErr != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, copyErr)
	}
	profile.UserId = user.ID

	if err := database.DB.Save(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, profile)
}
