package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/cyclesense/internal/db"
	"github.com/terraincognita07/cyclesense/internal/i18n"
	"github.com/terraincognita07/cyclesense/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	repositories *db.Repositories
	analysis     *services.AnalysisService
	i18n         *i18n.Manager
	location     *time.Location
	validate     *validator.Validate
	now          func() time.Time
}

func NewHandler(database *gorm.DB, analyzer *services.CycleAnalyzer, location *time.Location, i18nManager *i18n.Manager) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}

	validate, err := newPayloadValidator()
	if err != nil {
		return nil, err
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		repositories: repositories,
		analysis:     services.NewAnalysisService(analyzer, repositories.Cycles, repositories.Symptoms, repositories.Notes),
		i18n:         i18nManager,
		location:     location,
		validate:     validate,
		now:          time.Now,
	}, nil
}

// today is the current calendar day in the configured location.
func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
