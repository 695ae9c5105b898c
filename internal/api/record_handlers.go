package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	cycles, err := handler.repositories.Cycles.ListByProfile(profile.ID)
	if err != nil {
		return internalError(c, "failed to load cycles", err)
	}
	return c.JSON(cycles)
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	var request createCycleRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	cycle := request.toModel(profile.ID)
	if cycle.EndDate != nil && cycle.EndDate.Before(cycle.StartDate) {
		return apiError(c, fiber.StatusBadRequest, "end_date must not be before start_date")
	}
	if err := handler.repositories.Cycles.Create(&cycle); err != nil {
		return internalError(c, "failed to save cycle", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}
	cycleID, ok := parseIDParam(c, "cycleID")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	cycle, err := handler.repositories.Cycles.FindByIDForProfile(cycleID, profile.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apiError(c, fiber.StatusNotFound, "cycle not found")
	}
	if err != nil {
		return internalError(c, "failed to load cycle", err)
	}
	if err := handler.repositories.Cycles.Delete(&cycle); err != nil {
		return internalError(c, "failed to delete cycle", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSymptomRecord replaces any record already stored for the same day.
func (handler *Handler) CreateSymptomRecord(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	var request createSymptomRecordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	record := request.toModel(profile.ID)
	if err := handler.repositories.Symptoms.Upsert(&record); err != nil {
		return internalError(c, "failed to save symptoms", err)
	}
	return c.JSON(record)
}

// CreateDailyNote replaces any note already stored for the same day.
func (handler *Handler) CreateDailyNote(c *fiber.Ctx) error {
	profile, ok, err := handler.loadProfile(c)
	if !ok {
		return err
	}

	var request createDailyNoteRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.validate.Struct(request); err != nil {
		return apiError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	note := request.toModel(profile.ID)
	if err := handler.repositories.Notes.Upsert(&note); err != nil {
		return internalError(c, "failed to save note", err)
	}
	return c.JSON(note)
}
