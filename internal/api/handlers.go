package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/steady/internal/services"
	"gorm.io/gorm"
)

// HandlerOptions carries the optional collaborators; zero values fall back to production defaults.
type HandlerOptions struct {
	CookieSecure bool
	Clock        services.Clock
	Analytics    *services.AnalyticsConfig
	Random       services.RandomSource
	Metrics      *Metrics
	// MetricsUser and MetricsPassword protect /metrics with basic auth when both are set.
	MetricsUser     string
	MetricsPassword string
	// PasswordHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
	PasswordHashCost int
	// authLimiter replaces the default login limiter; only settable inside this package.
	authLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}

	analytics := services.DefaultAnalyticsConfig()
	if options.Analytics != nil {
		analytics = *options.Analytics
	}
	if err := analytics.Validate(); err != nil {
		return nil, err
	}

	clock := options.Clock
	if clock == nil {
		clock = services.SystemClock{}
	}
	metrics := options.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	limiter := options.authLimiter
	if limiter == nil {
		limiter = newAttemptLimiter(defaultAuthAttemptRate, defaultAuthAttemptBurst)
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: options.CookieSecure,
		clock:        clock,
		analytics:    analytics,
		random:       options.Random,
		authLimiter:  limiter,
		metrics:      metrics,
		metricsUser:  options.MetricsUser,
		metricsPass:  options.MetricsPassword,
	}
	handler = handler.withDependencies(database)
	if options.PasswordHashCost > 0 {
		handler.authService.WithHashCost(options.PasswordHashCost)
	}
	return handler, nil
}

func (handler *Handler) Metrics() *Metrics {
	return handler.metrics
}

// today is the calendar day in the configured TZ, in the stored UTC-midnight form.
func (handler *Handler) today() time.Time {
	return services.CivilDay(handler.clock.Now(), handler.location)
}
