package services

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/steady/internal/models"
)

type stubCheckInRepository struct {
	entries   []models.CheckIn
	nextID    uint
	createErr error
	findErr   error
	saved     int
}

func (stub *stubCheckInRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CheckIn, error) {
	result := make([]models.CheckIn, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if fromStart != nil && entry.Date.Before(*fromStart) {
			continue
		}
		if toEnd != nil && !entry.Date.Before(*toEnd) {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

func (stub *stubCheckInRepository) ListSince(userID uint, since time.Time) ([]models.CheckIn, error) {
	return stub.ListByUserRange(userID, &since, nil)
}

func (stub *stubCheckInRepository) FindByID(userID uint, id uint) (models.CheckIn, bool, error) {
	for _, entry := range stub.entries {
		if entry.UserID == userID && entry.ID == id {
			return entry, true, nil
		}
	}
	return models.CheckIn{}, false, nil
}

func (stub *stubCheckInRepository) FindByUserAndDay(userID uint, day time.Time) (models.CheckIn, bool, error) {
	if stub.findErr != nil {
		return models.CheckIn{}, false, stub.findErr
	}
	for _, entry := range stub.entries {
		if entry.UserID == userID && entry.Date.Equal(day) {
			return entry, true, nil
		}
	}
	return models.CheckIn{}, false, nil
}

func (stub *stubCheckInRepository) Create(entry *models.CheckIn) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.nextID++
	entry.ID = stub.nextID
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *stubCheckInRepository) Save(entry *models.CheckIn) error {
	stub.saved++
	for index := range stub.entries {
		if stub.entries[index].ID == entry.ID {
			stub.entries[index] = *entry
			return nil
		}
	}
	return errors.New("missing row")
}

func (stub *stubCheckInRepository) DeleteByID(userID uint, id uint) (bool, error) {
	for index, entry := range stub.entries {
		if entry.UserID == userID && entry.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestCheckInService(repo *stubCheckInRepository) *CheckInService {
	return NewCheckInService(repo).WithClock(func() time.Time {
		return time.Date(2026, 3, 10, 8, 15, 0, 0, time.UTC)
	})
}

func TestCheckInServiceUpsertCreatesThenReplaces(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	created, isNew, err := service.Upsert(7, today, today, CheckInInput{Mood: 4, Note: "  walked  ", Tags: []string{"Walk", "walk, Sleep"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !isNew || created.ID == 0 {
		t.Fatalf("expected new check-in, got isNew=%v id=%d", isNew, created.ID)
	}
	if created.Status != models.StatusOK || created.Note != "walked" || created.Source != CheckInSourceAPI {
		t.Fatalf("unexpected normalized entry %#v", created)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "sleep" || created.Tags[1] != "walk" {
		t.Fatalf("expected sorted deduped tags, got %#v", created.Tags)
	}

	replaced, isNew, err := service.Upsert(7, today, today, CheckInInput{Mood: 2, Status: "WARN"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if isNew || replaced.ID != created.ID {
		t.Fatalf("expected replacement of %d, got isNew=%v id=%d", created.ID, isNew, replaced.ID)
	}
	if replaced.Mood != 2 || replaced.Status != models.StatusWarn {
		t.Fatalf("unexpected replacement %#v", replaced)
	}
	if created.Mood != 4 {
		t.Fatalf("expected original value untouched, got mood %d", created.Mood)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one stored entry, got %d", len(repo.entries))
	}
}

func TestCheckInServiceUpsertRejectsInvalidInput(t *testing.T) {
	service := newTestCheckInService(&stubCheckInRepository{})
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input CheckInInput
		field string
	}{
		{name: "mood too low", input: CheckInInput{Mood: 0}, field: "mood"},
		{name: "mood too high", input: CheckInInput{Mood: 6}, field: "mood"},
		{name: "unknown status", input: CheckInInput{Mood: 3, Status: "meh"}, field: "status"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := service.Upsert(1, today, today, testCase.input)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := validationErr.Fields[testCase.field]; !ok {
				t.Fatalf("expected %s to be flagged, got %#v", testCase.field, validationErr.Fields)
			}
		})
	}
}

func TestCheckInServiceUpsertRejectsFutureDay(t *testing.T) {
	service := newTestCheckInService(&stubCheckInRepository{})
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if _, _, err := service.Upsert(1, today.AddDate(0, 0, 1), today, CheckInInput{Mood: 3}); !errors.Is(err, ErrCheckInFutureDate) {
		t.Fatalf("expected ErrCheckInFutureDate, got %v", err)
	}
}

func TestCheckInServiceWrapsPersistenceErrors(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	service := newTestCheckInService(&stubCheckInRepository{findErr: errors.New("locked")})
	if _, _, err := service.Upsert(1, today, today, CheckInInput{Mood: 3}); !errors.Is(err, ErrCheckInLoadFailed) {
		t.Fatalf("expected ErrCheckInLoadFailed, got %v", err)
	}

	service = newTestCheckInService(&stubCheckInRepository{createErr: errors.New("disk full")})
	if _, _, err := service.Upsert(1, today, today, CheckInInput{Mood: 3}); !errors.Is(err, ErrCheckInCreateFailed) {
		t.Fatalf("expected ErrCheckInCreateFailed, got %v", err)
	}
}

func TestCheckInServiceCheckInTodayIsIdempotent(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	today := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)

	first, created, err := service.CheckInToday(3, today, "")
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	if first.Status != models.StatusOK || first.Mood != 3 || first.Source != CheckInSourceWeb {
		t.Fatalf("unexpected default check-in %#v", first)
	}
	if !first.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected civil day, got %s", first.Date)
	}

	second, created, err := service.CheckInToday(3, today, "")
	if err != nil || created {
		t.Fatalf("expected existing entry, got created=%v err=%v", created, err)
	}
	if second.ID != first.ID || len(repo.entries) != 1 {
		t.Fatalf("expected single entry, got id=%d stored=%d", second.ID, len(repo.entries))
	}
}

func TestCheckInServiceUpdateGetDeleteScopedByUser(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, _, err := service.Upsert(1, today, today, CheckInInput{Mood: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := service.Get(2, entry.ID); !errors.Is(err, ErrCheckInNotFound) {
		t.Fatalf("expected other user to see not found, got %v", err)
	}
	if _, err := service.Update(2, entry.ID, CheckInInput{Mood: 5}); !errors.Is(err, ErrCheckInNotFound) {
		t.Fatalf("expected update by other user to fail, got %v", err)
	}

	updated, err := service.Update(1, entry.ID, CheckInInput{Mood: 5, Status: models.StatusBlock, Note: "sick"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Mood != 5 || updated.Status != models.StatusBlock || updated.Note != "sick" {
		t.Fatalf("unexpected update %#v", updated)
	}

	if err := service.Delete(2, entry.ID); !errors.Is(err, ErrCheckInNotFound) {
		t.Fatalf("expected delete by other user to fail, got %v", err)
	}
	if err := service.Delete(1, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(1, entry.ID); !errors.Is(err, ErrCheckInNotFound) {
		t.Fatalf("expected second delete to report not found, got %v", err)
	}
}

func TestCheckInServiceUpdateWithBlankStatusKeepsStoredStatus(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, _, err := service.Upsert(1, today, today, CheckInInput{Mood: 2, Status: models.StatusWarn})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(1, entry.ID, CheckInInput{Mood: 4, Status: "  "})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusWarn || updated.Mood != 4 {
		t.Fatalf("expected warn status kept with mood 4, got %#v", updated)
	}

	updated, err = service.Update(1, entry.ID, CheckInInput{Mood: 4, Status: "OK"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusOK {
		t.Fatalf("expected explicit status to replace warn, got %q", updated.Status)
	}
}

func TestCheckInTodayEntryCountsTowardDashboard(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, _, err := service.CheckInToday(1, today, "")
	if err != nil {
		t.Fatalf("check in: %v", err)
	}

	summary := AssembleDashboardSummary([]models.CheckIn{entry}, nil, today, DefaultAnalyticsConfig())
	if summary.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", summary.Streak)
	}
	if len(summary.Trend) != 1 || summary.Trend[0].Mood != 3 || summary.Trend[0].Smoothed != 3 {
		t.Fatalf("expected neutral mood in trend, got %+v", summary.Trend)
	}
	want := sigmoid(-2.25 + DefaultForecastWeightMood*0.5 + DefaultForecastWeightStreak/14 + DefaultForecastWeightReadiness*0.5)
	if !almostEqual(summary.CompletionProb, want, 1e-9) {
		t.Fatalf("expected forecast %v from the neutral entry, got %v", want, summary.CompletionProb)
	}
}

func TestCheckInServiceListUsesInclusiveDays(t *testing.T) {
	repo := &stubCheckInRepository{}
	service := newTestCheckInService(repo)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 5; offset++ {
		day := base.AddDate(0, 0, offset)
		if _, _, err := service.Upsert(1, day, day, CheckInInput{Mood: 3}); err != nil {
			t.Fatalf("seed day %d: %v", offset, err)
		}
	}

	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 3)
	entries, err := service.List(1, &from, &to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries in inclusive range, got %d", len(entries))
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Gym ", "gym", "", "sleep,  focus ,", "a-very-long-tag-that-keeps-going-and-going-forever"})
	want := []string{"a-very-long-tag-that-keeps-going-and-goi", "focus", "gym", "sleep"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestNormalizeTagsCutsOnRuneBoundary(t *testing.T) {
	long := "caf" + strings.Repeat("é", 45)
	got := NormalizeTags([]string{long})
	if len(got) != 1 {
		t.Fatalf("expected one tag, got %v", got)
	}
	if !utf8.ValidString(got[0]) {
		t.Fatalf("expected valid utf-8 tag, got %q", got[0])
	}
	if count := utf8.RuneCountInString(got[0]); count != maxTagLength {
		t.Fatalf("expected %d runes, got %d", maxTagLength, count)
	}
	if want := "caf" + strings.Repeat("é", maxTagLength-3); got[0] != want {
		t.Fatalf("expected %q, got %q", want, got[0])
	}

	short := "ŝlafo"
	if got := NormalizeTags([]string{short}); len(got) != 1 || got[0] != short {
		t.Fatalf("expected short multi-byte tag unchanged, got %v", got)
	}
}
