package db

import (
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

// ListByProfile returns the profile's cycles oldest first. The analyzer
// re-sorts anyway; the order here is for API listings.
func (repo *CycleRecordRepository) ListByProfile(profileID uint) ([]models.CycleRecord, error) {
	cycles := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("start_date ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRecordRepository) FindByIDForProfile(cycleID uint, profileID uint) (models.CycleRecord, error) {
	cycle := models.CycleRecord{}
	if err := repo.database.Where("id = ? AND profile_id = ?", cycleID, profileID).First(&cycle).Error; err != nil {
		return models.CycleRecord{}, err
	}
	return cycle, nil
}

func (repo *CycleRecordRepository) Create(cycle *models.CycleRecord) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRecordRepository) Delete(cycle *models.CycleRecord) error {
	return repo.database.Delete(cycle).Error
}
