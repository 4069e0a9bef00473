package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "steady_auth"
	contextUserKey = "current_user"

	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	clock        services.Clock
	analytics    services.AnalyticsConfig
	random       services.RandomSource
	authLimiter  *attemptLimiter
	metrics      *Metrics
	metricsUser  string
	metricsPass  string

	repositories     *db.Repositories
	authService      *services.AuthService
	checkInService   *services.CheckInService
	hrvService       *services.HRVService
	habitService     *services.HabitService
	dashboardService *services.DashboardService
	exportService    *services.ExportService
}

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type checkInPayload struct {
	Date   string   `json:"date"`
	Mood   int      `json:"mood"`
	Status string   `json:"status"`
	Note   string   `json:"note"`
	Tags   []string `json:"tags"`
}

type hrvPayload struct {
	Date       string     `json:"date"`
	RMSSDMs    *float64   `json:"rmssd_ms"`
	SDNNMs     *float64   `json:"sdnn_ms"`
	RestingHR  *float64   `json:"resting_hr"`
	MeasuredAt *time.Time `json:"measured_at"`
}

type habitAnchorPayload struct {
	Name       string `json:"name"`
	AnchorText string `json:"anchor_text"`
}
