package db

import (
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyNoteRepository struct {
	database *gorm.DB
}

func NewDailyNoteRepository(database *gorm.DB) *DailyNoteRepository {
	return &DailyNoteRepository{database: database}
}

func (repo *DailyNoteRepository) ListByProfile(profileID uint) ([]models.DailyNote, error) {
	notes := make([]models.DailyNote, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("date ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (repo *DailyNoteRepository) Upsert(note *models.DailyNote) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"text", "mood", "energy", "flow"}),
	}).Create(note).Error
}
