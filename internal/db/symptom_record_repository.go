package db

import (
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SymptomRecordRepository struct {
	database *gorm.DB
}

func NewSymptomRecordRepository(database *gorm.DB) *SymptomRecordRepository {
	return &SymptomRecordRepository{database: database}
}

func (repo *SymptomRecordRepository) ListByProfile(profileID uint) ([]models.SymptomRecord, error) {
	records := make([]models.SymptomRecord, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert stores one record per profile and day; logging the same day again
// replaces the earlier entries.
func (repo *SymptomRecordRepository) Upsert(record *models.SymptomRecord) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"symptoms", "notes"}),
	}).Create(record).Error
}
