package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/steady/internal/api"
	"github.com/terraincognita07/steady/internal/cli"
	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/services"
)

const usage = `usage: steady [command]

commands:
  serve                         run the HTTP server (default)
  reset-password <username>     set a temporary password that must be changed
  seed-demo [--days N]          create the demo user with N days of data
  export-checkins <output.csv>  export all labelled check-ins`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location
	dbPath := getEnv("DB_PATH", filepath.Join("data", "steady.db"))

	command := "serve"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	switch command {
	case "serve":
		return serve(dbPath, location)
	case "reset-password":
		if len(args) != 1 {
			return errors.New("usage: steady reset-password <username>")
		}
		return cli.RunResetPasswordCommand(dbPath, args[0], out)
	case "seed-demo":
		options, err := parseSeedOptions(args, location)
		if err != nil {
			return err
		}
		_, err = cli.RunSeedDemoCommand(dbPath, options, out)
		return err
	case "export-checkins":
		if len(args) != 1 {
			return errors.New("usage: steady export-checkins <output.csv>")
		}
		_, err := cli.RunExportCheckInsCommand(dbPath, args[0], out)
		return err
	case "help", "-h", "--help":
		fmt.Fprintln(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func parseSeedOptions(args []string, location *time.Location) (cli.SeedOptions, error) {
	flags := flag.NewFlagSet("seed-demo", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	days := flags.Int("days", cli.DefaultSeedDays, "number of days to seed")
	seed := flags.Int64("seed", 42, "random seed")
	if err := flags.Parse(args); err != nil {
		return cli.SeedOptions{}, fmt.Errorf("seed-demo: %w", err)
	}
	if *days < 1 {
		return cli.SeedOptions{}, errors.New("seed-demo: --days must be positive")
	}
	return cli.SeedOptions{
		Days:  *days,
		Seed:  *seed,
		Today: services.CivilDay(time.Now(), location),
	}, nil
}

func serve(dbPath string, location *time.Location) error {
	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	port, err := resolvePort()
	if err != nil {
		return err
	}
	analytics := loadAnalyticsConfig()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, secretKey, location, api.HandlerOptions{
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
		Analytics:       &analytics,
		MetricsUser:     os.Getenv("METRICS_USER"),
		MetricsPassword: os.Getenv("METRICS_PASS"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp()
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Steady listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Steady",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	return app
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	switch {
	case secret == "":
		return "", errors.New("SECRET_KEY is required")
	case secret == "change_me_in_production", secret == "replace_with_at_least_32_random_characters":
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	case len(secret) < 32:
		return "", errors.New("SECRET_KEY must be at least 32 characters")
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

// loadAnalyticsConfig applies STEADY_* overrides. Unparsable values are skipped and an
// inconsistent combination falls back to the defaults.
func loadAnalyticsConfig() services.AnalyticsConfig {
	cfg := services.DefaultAnalyticsConfig()

	overrideInt("STEADY_SMOOTHING_WINDOW", &cfg.SmoothingWindow)
	overrideInt("STEADY_RISK_MOOD_THRESHOLD", &cfg.RiskMoodThreshold)
	overrideFloat("STEADY_HRV_HIGH_RMSSD", &cfg.HRVHighRMSSD)
	overrideFloat("STEADY_HRV_LOW_RMSSD", &cfg.HRVLowRMSSD)
	overrideFloat("STEADY_HRV_HIGH_RESTING_HR", &cfg.HRVHighRestingHR)

	weightsChanged := overrideFloat("STEADY_FORECAST_WEIGHT_MOOD", &cfg.Weights.Mood)
	weightsChanged = overrideFloat("STEADY_FORECAST_WEIGHT_STREAK", &cfg.Weights.Streak) || weightsChanged
	weightsChanged = overrideFloat("STEADY_FORECAST_WEIGHT_READINESS", &cfg.Weights.Readiness) || weightsChanged
	if weightsChanged {
		cfg.ForecastBias = services.NeutralForecastBias(cfg.Weights)
	}

	if err := cfg.Validate(); err != nil {
		log.Printf("ignoring analytics overrides: %v", err)
		return services.DefaultAnalyticsConfig()
	}
	return cfg
}

func overrideInt(key string, target *int) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return false
	}
	*target = value
	return true
}

func overrideFloat(key string, target *float64) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return false
	}
	*target = value
	return true
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}
