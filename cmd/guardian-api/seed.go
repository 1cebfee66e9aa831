package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/digitalwellness/guardian/backend/internal/config"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/repository"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample records",
	Long:  `Generate a trailing window of plausible usage and mood records for local development.`,
	RunE:  runSeed,
}

var seedDays int

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", 30, "Number of trailing days to generate")
}

func runSeed(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	usageRepo := repository.NewUsageRecordRepository(db)
	moodRepo := repository.NewMoodRecordRepository(db)

	// Fixed seed keeps reseeding idempotent for demos
	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()
	today := time.Now().Truncate(24 * time.Hour)

	for i := seedDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		// Weekends skew heavier; usage drifts up over the window so the
		// correlation endpoints have something to find.
		screen := 180 + rng.Intn(120) + (seedDays-i)*2
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			screen += 60
		}
		social := screen * (25 + rng.Intn(30)) / 100

		usage := models.UsageRecord{
			Date:               date,
			ScreenTimeMinutes:  screen,
			SocialMediaMinutes: social,
			ProductiveMinutes:  30 + rng.Intn(90),
			UnlockCount:        40 + rng.Intn(70),
			AppCategories:      []string{"social", "entertainment", "productivity"},
		}
		if err := usageRepo.Upsert(ctx, usage); err != nil {
			return fmt.Errorf("failed to seed usage record for %s: %w", usage.DayKey(), err)
		}

		// Mood degrades loosely as screen time climbs
		mood := 8 - screen/120 + rng.Intn(3)
		if mood < 1 {
			mood = 1
		}
		if mood > 10 {
			mood = 10
		}
		record := models.MoodRecord{
			Date:            date,
			MoodScore:       mood,
			EnergyLevel:     clampScale(mood + rng.Intn(3) - 1),
			SleepQuality:    clampScale(mood + rng.Intn(3) - 1),
			StressIndicator: clampScale(11 - mood + rng.Intn(2) - 1),
		}
		if err := moodRepo.Upsert(ctx, record); err != nil {
			return fmt.Errorf("failed to seed mood record for %s: %w", record.DayKey(), err)
		}
	}

	fmt.Printf("Seeded %d days of usage and mood records into %s\n", seedDays, cfg.Database.Path)
	return nil
}

func clampScale(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
