package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	CheckIns *CheckInRepository
	HRV      *HRVRepository
	Habits   *HabitAnchorRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		CheckIns: NewCheckInRepository(database),
		HRV:      NewHRVRepository(database),
		Habits:   NewHabitAnchorRepository(database),
	}
}
