package api

import (
	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.checkInService = services.NewCheckInService(handler.repositories.CheckIns).WithClock(handler.clock.Now)
	handler.hrvService = services.NewHRVService(handler.repositories.HRV).WithClock(handler.clock.Now)
	handler.habitService = services.NewHabitService(handler.repositories.Habits, handler.random)
	handler.dashboardService = services.NewDashboardService(handler.repositories.CheckIns, handler.repositories.HRV, handler.analytics)
	handler.exportService = services.NewExportService(handler.repositories.CheckIns, handler.repositories.HRV)
	return handler
}
