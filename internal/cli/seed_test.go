package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/models"
)

func TestRunSeedDemoCommandIsRepeatable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	today := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)

	first, err := RunSeedDemoCommand(dbPath, SeedOptions{Days: 10, Seed: 42, Today: today}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if first.CheckIns != 10 {
		t.Fatalf("expected 10 check-ins, got %d", first.CheckIns)
	}

	second, err := RunSeedDemoCommand(dbPath, SeedOptions{Days: 10, Seed: 42, Today: today}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if second.UserID != first.UserID || second.Readings != first.Readings {
		t.Fatalf("expected deterministic reseed, got %#v vs %#v", first, second)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	t.Cleanup(func() { closeDatabase(database) })

	var checkIns int64
	if err := database.Model(&models.CheckIn{}).Where("user_id = ?", first.UserID).Count(&checkIns).Error; err != nil {
		t.Fatalf("count check-ins: %v", err)
	}
	if checkIns != 10 {
		t.Fatalf("expected one check-in per day after reseed, got %d", checkIns)
	}

	var readings int64
	if err := database.Model(&models.HRVReading{}).Where("user_id = ?", first.UserID).Count(&readings).Error; err != nil {
		t.Fatalf("count readings: %v", err)
	}
	if readings != int64(first.Readings) {
		t.Fatalf("expected %d readings, got %d", first.Readings, readings)
	}

	var sources []string
	if err := database.Model(&models.CheckIn{}).Distinct().Pluck("source", &sources).Error; err != nil {
		t.Fatalf("load sources: %v", err)
	}
	if len(sources) != 1 || sources[0] != "seed" {
		t.Fatalf("expected seed source, got %v", sources)
	}
}
