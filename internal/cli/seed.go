package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/models"
	"github.com/terraincognita07/steady/internal/services"
)

const (
	DemoUsername    = "demo"
	DemoPassword    = "DemoPass1"
	DefaultSeedDays = 10
)

var (
	seedStatuses = []string{models.StatusOK, models.StatusOK, models.StatusWarn, models.StatusBlock}
	seedMoods    = []int{2, 3, 4, 5}
	seedRMSSD    = []float64{0, 35, 50, 70}
)

type SeedOptions struct {
	Days  int
	Seed  int64
	Today time.Time
}

type SeedResult struct {
	UserID   uint
	CheckIns int
	Readings int
}

// RunSeedDemoCommand creates (or reuses) the demo account and fills the last N days with random
// check-ins and HRV readings. Existing days are overwritten so repeated runs stay one-per-day.
func RunSeedDemoCommand(dbPath string, options SeedOptions, out io.Writer) (SeedResult, error) {
	if options.Days <= 0 {
		options.Days = DefaultSeedDays
	}
	if options.Today.IsZero() {
		options.Today = time.Now()
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return SeedResult{}, fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	repositories := db.NewRepositories(database)
	authService := services.NewAuthService(repositories.Users)

	user, err := authService.FindByUsername(DemoUsername)
	switch {
	case errors.Is(err, services.ErrAuthUserNotFound):
		user, err = authService.Register(DemoUsername, DemoPassword, options.Today)
		if err != nil {
			return SeedResult{}, fmt.Errorf("create demo user: %w", err)
		}
	case err != nil:
		return SeedResult{}, fmt.Errorf("load demo user: %w", err)
	default:
		if err := authService.SetPassword(user.ID, DemoPassword, false); err != nil {
			return SeedResult{}, fmt.Errorf("reset demo password: %w", err)
		}
	}

	random := rand.New(rand.NewSource(options.Seed))
	checkIns := services.NewCheckInService(repositories.CheckIns)
	readings := services.NewHRVService(repositories.HRV)
	today := services.CivilDay(options.Today, options.Today.Location())

	result := SeedResult{UserID: user.ID}
	for offset := 0; offset < options.Days; offset++ {
		day := today.AddDate(0, 0, -offset)

		input := services.CheckInInput{
			Mood:   seedMoods[random.Intn(len(seedMoods))],
			Status: seedStatuses[random.Intn(len(seedStatuses))],
			Source: services.CheckInSourceSeed,
		}
		if _, _, err := checkIns.Upsert(user.ID, day, today, input); err != nil {
			return result, fmt.Errorf("seed check-in %s: %w", day.Format("2006-01-02"), err)
		}
		result.CheckIns++

		rmssd := seedRMSSD[random.Intn(len(seedRMSSD))]
		if rmssd == 0 {
			continue
		}
		restingHR := 52 + float64(random.Intn(30))
		if _, err := readings.Upsert(user.ID, day, services.HRVInput{
			RMSSDMs:   rmssd,
			SDNNMs:    rmssd * 1.25,
			RestingHR: restingHR,
		}); err != nil {
			return result, fmt.Errorf("seed hrv %s: %w", day.Format("2006-01-02"), err)
		}
		result.Readings++
	}

	fmt.Fprintf(out, "Seeded %d check-ins and %d HRV readings for %s/%s\n", result.CheckIns, result.Readings, DemoUsername, DemoPassword)
	return result, nil
}
