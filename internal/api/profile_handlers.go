package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) ListSymptomTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"symptom_types": models.DefaultSymptomTypes()})
}

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	var request createProfileRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	request.Name = strings.TrimSpace(request.Name)
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	profile := models.Profile{
		Name:               request.Name,
		AverageCycleLength: request.AverageCycleLength,
		Language:           handler.i18n.NormalizeLanguage(request.Language),
	}
	if err := handler.repositories.Profiles.Create(&profile); err != nil {
		return internalError(c, "failed to create profile", err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfileSettings keeps the stored language when the payload omits it.
// An omitted average cycle length clears the setting.
func (handler *Handler) UpdateProfileSettings(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	var request updateSettingsRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	language := profile.Language
	if request.Language != "" {
		language = handler.i18n.NormalizeLanguage(request.Language)
	}
	err = handler.repositories.Profiles.UpdateSettings(profile.ID, request.AverageCycleLength, language)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "profile not found")
	}
	if err != nil {
		return internalError(c, "failed to update settings", err)
	}

	profile.AverageCycleLength = request.AverageCycleLength
	profile.Language = language
	return c.JSON(profile)
}
