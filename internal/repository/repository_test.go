package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "guardian.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsageRecords_UpsertAndRange(t *testing.T) {
	db := openTestDB(t)
	repo := NewUsageRecordRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		record := models.UsageRecord{
			Date:               base.AddDate(0, 0, i),
			ScreenTimeMinutes:  100 + i*10,
			SocialMediaMinutes: 40,
			ProductiveMinutes:  30,
			UnlockCount:        50,
			AppCategories:      []string{"social", "games"},
		}
		if err := repo.Upsert(ctx, record); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	// Range excludes the first and last day
	records, err := repo.GetByDateRange(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records in range, got %d", len(records))
	}
	if records[0].DayKey() != "2026-08-02" {
		t.Errorf("Expected range ordered by date from 2026-08-02, got %s", records[0].DayKey())
	}
	if len(records[0].AppCategories) != 2 || records[0].AppCategories[0] != "social" {
		t.Errorf("App categories not preserved: %v", records[0].AppCategories)
	}

	// Re-ingesting a day overwrites it
	corrected := models.UsageRecord{
		Date:              base.AddDate(0, 0, 1),
		ScreenTimeMinutes: 999,
	}
	if err := repo.Upsert(ctx, corrected); err != nil {
		t.Fatalf("Correcting upsert failed: %v", err)
	}
	records, err = repo.GetByDateRange(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(records) != 1 || records[0].ScreenTimeMinutes != 999 {
		t.Errorf("Expected corrected record with 999 minutes, got %+v", records)
	}
}

func TestMoodRecords_UpsertAndRange(t *testing.T) {
	db := openTestDB(t)
	repo := NewMoodRecordRepository(db)
	ctx := context.Background()

	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	record := models.MoodRecord{
		Date:            date,
		MoodScore:       7,
		EnergyLevel:     6,
		SleepQuality:    8,
		StressIndicator: 3,
	}
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	record.MoodScore = 4
	if err := repo.Upsert(ctx, record); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}

	records, err := repo.GetByDateRange(ctx, date, date)
	if err != nil {
		t.Fatalf("GetByDateRange failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].MoodScore != 4 {
		t.Errorf("Expected overwritten mood score 4, got %d", records[0].MoodScore)
	}
	if records[0].SleepQuality != 8 {
		t.Errorf("Expected sleep quality 8, got %d", records[0].SleepQuality)
	}
}

func TestRules_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRuleRepository(db)
	ctx := context.Background()

	rule := models.InterventionRule{
		ID:         "evening-cutoff",
		Title:      "Evening Cutoff",
		ActionText: "Stop scrolling after 10 PM",
		Trigger: models.TriggerCondition{
			MinTier:  models.TierMedium,
			Factor:   models.FactorScreenTime,
			MinScore: 60,
			Trend:    models.TrendWorsening,
		},
		Priority:      models.PriorityHigh,
		Effectiveness: 3.5,
		CreatedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.Insert(ctx, rule); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := repo.UpdateEffectiveness(ctx, rule.ID, 4.2); err != nil {
		t.Fatalf("UpdateEffectiveness failed: %v", err)
	}

	rules, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(rules))
	}
	got := rules[0]
	if got.Effectiveness != 4.2 {
		t.Errorf("Expected updated effectiveness 4.2, got %v", got.Effectiveness)
	}
	if got.Trigger.MinTier != models.TierMedium || got.Trigger.Factor != models.FactorScreenTime ||
		got.Trigger.MinScore != 60 || got.Trigger.Trend != models.TrendWorsening {
		t.Errorf("Trigger condition not preserved: %+v", got.Trigger)
	}
	if !got.CreatedAt.Equal(rule.CreatedAt) {
		t.Errorf("CreatedAt not preserved: %v vs %v", got.CreatedAt, rule.CreatedAt)
	}
}

func TestRules_UpdateUnknownID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRuleRepository(db)

	if err := repo.UpdateEffectiveness(context.Background(), "missing", 3); err == nil {
		t.Error("Expected an error updating a missing rule")
	}
}

func TestChallengeState_SaveAndLoad(t *testing.T) {
	db := openTestDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	// No state saved yet
	state, counter, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if state != nil || counter != 0 {
		t.Fatalf("Expected empty load, got %+v / %d", state, counter)
	}

	startedAt := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	saved := models.ChallengeState{
		CurrentDay:    4,
		Points:        35,
		CompletedDays: []int{1, 2, 3},
		Difficulty:    models.DifficultyModerate,
		Status:        models.ChallengeInProgress,
		StartedAt:     &startedAt,
		UpdatedAt:     startedAt.Add(72 * time.Hour),
	}
	if err := repo.Save(ctx, saved, 1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Saving again replaces the single row
	saved.Points = 50
	saved.CurrentDay = 5
	if err := repo.Save(ctx, saved, 2); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, counter, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a loaded state")
	}
	if loaded.CurrentDay != 5 || loaded.Points != 50 {
		t.Errorf("Expected day 5 with 50 points, got day %d with %d", loaded.CurrentDay, loaded.Points)
	}
	if counter != 2 {
		t.Errorf("Expected consecutive_full counter 2, got %d", counter)
	}
	if len(loaded.CompletedDays) != 3 {
		t.Errorf("Completed days not preserved: %v", loaded.CompletedDays)
	}
	if loaded.Difficulty != models.DifficultyModerate || loaded.Status != models.ChallengeInProgress {
		t.Errorf("Enum fields not preserved: %s / %s", loaded.Difficulty, loaded.Status)
	}
	if loaded.StartedAt == nil || !loaded.StartedAt.Equal(startedAt) {
		t.Errorf("StartedAt not preserved: %v", loaded.StartedAt)
	}
}
