package db

import "gorm.io/gorm"

type Repositories struct {
	Profiles *ProfileRepository
	Cycles   *CycleRecordRepository
	Symptoms *SymptomRecordRepository
	Notes    *DailyNoteRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Profiles: NewProfileRepository(database),
		Cycles:   NewCycleRecordRepository(database),
		Symptoms: NewSymptomRecordRepository(database),
		Notes:    NewDailyNoteRepository(database),
	}
}
