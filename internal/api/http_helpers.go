package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclesense/internal/logger"
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// internalError logs err with the request route and hides it from the client.
func internalError(c *fiber.Ctx, message string, err error) error {
	logger.Log.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).WithError(err).Error(message)
	return apiError(c, fiber.StatusInternalServerError, message)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// loadProfile resolves :id and writes the error response itself when the
// profile cannot be used.
func (handler *Handler) loadProfile(c *fiber.Ctx) (models.Profile, bool, error) {
	profileID, ok := parseIDParam(c, "id")
	if !ok {
		return models.Profile{}, false, apiError(c, fiber.StatusBadRequest, "invalid profile id")
	}

	profile, err := handler.repositories.Profiles.FindByID(profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Profile{}, false, apiError(c, fiber.StatusNotFound, "profile not found")
	}
	if err != nil {
		return models.Profile{}, false, internalError(c, "failed to load profile", err)
	}
	return profile, true, nil
}
