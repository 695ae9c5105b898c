package db

import (
	"github.com/terraincognita07/cyclesense/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) Create(profile *models.Profile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) FindByID(profileID uint) (models.Profile, error) {
	var profile models.Profile
	if err := repo.database.First(&profile, profileID).Error; err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) UpdateSettings(profileID uint, averageCycleLength int, language string) error {
	result := repo.database.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Updates(map[string]any{
			"average_cycle_length": averageCycleLength,
			"language":             language,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
