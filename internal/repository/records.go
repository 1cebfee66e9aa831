package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

type usageRecordRepository struct {
	db *DB
}

// NewUsageRecordRepository creates the usage record store.
func NewUsageRecordRepository(db *DB) UsageRecordRepository {
	return &usageRecordRepository{db: db}
}

// Upsert inserts or replaces the record for its calendar day. Re-ingesting a
// day is treated as a correction, not an error.
func (r *usageRecordRepository) Upsert(ctx context.Context, record models.UsageRecord) error {
	categories, err := json.Marshal(record.AppCategories)
	if err != nil {
		return fmt.Errorf("marshal app categories: %w", err)
	}

	_, err = r.db.conn.ExecContext(ctx, `
		INSERT INTO usage_records (date, screen_time_minutes, social_media_minutes, productive_minutes, unlock_count, app_categories)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			screen_time_minutes = excluded.screen_time_minutes,
			social_media_minutes = excluded.social_media_minutes,
			productive_minutes = excluded.productive_minutes,
			unlock_count = excluded.unlock_count,
			app_categories = excluded.app_categories`,
		record.DayKey(), record.ScreenTimeMinutes, record.SocialMediaMinutes,
		record.ProductiveMinutes, record.UnlockCount, string(categories))
	if err != nil {
		return fmt.Errorf("upsert usage record: %w", err)
	}
	return nil
}

// GetByDateRange returns records with start <= date <= end, ordered by date.
func (r *usageRecordRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.UsageRecord, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT date, screen_time_minutes, social_media_minutes, productive_minutes, unlock_count, app_categories
		FROM usage_records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC`,
		start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query usage records: %w", err)
	}
	defer rows.Close()

	var records []models.UsageRecord
	for rows.Next() {
		var (
			day        string
			categories string
			rec        models.UsageRecord
		)
		if err := rows.Scan(&day, &rec.ScreenTimeMinutes, &rec.SocialMediaMinutes,
			&rec.ProductiveMinutes, &rec.UnlockCount, &categories); err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		rec.Date, err = time.Parse(models.DateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("parse usage date %q: %w", day, err)
		}
		if err := json.Unmarshal([]byte(categories), &rec.AppCategories); err != nil {
			return nil, fmt.Errorf("unmarshal app categories: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type moodRecordRepository struct {
	db *DB
}

// NewMoodRecordRepository creates the mood record store.
func NewMoodRecordRepository(db *DB) MoodRecordRepository {
	return &moodRecordRepository{db: db}
}

func (r *moodRecordRepository) Upsert(ctx context.Context, record models.MoodRecord) error {
	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO mood_records (date, mood_score, energy_level, sleep_quality, stress_indicator)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			mood_score = excluded.mood_score,
			energy_level = excluded.energy_level,
			sleep_quality = excluded.sleep_quality,
			stress_indicator = excluded.stress_indicator`,
		record.DayKey(), record.MoodScore, record.EnergyLevel,
		record.SleepQuality, record.StressIndicator)
	if err != nil {
		return fmt.Errorf("upsert mood record: %w", err)
	}
	return nil
}

func (r *moodRecordRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.MoodRecord, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT date, mood_score, energy_level, sleep_quality, stress_indicator
		FROM mood_records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC`,
		start.Format(models.DateLayout), end.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query mood records: %w", err)
	}
	defer rows.Close()

	var records []models.MoodRecord
	for rows.Next() {
		var (
			day string
			rec models.MoodRecord
		)
		if err := rows.Scan(&day, &rec.MoodScore, &rec.EnergyLevel,
			&rec.SleepQuality, &rec.StressIndicator); err != nil {
			return nil, fmt.Errorf("scan mood record: %w", err)
		}
		rec.Date, err = time.Parse(models.DateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("parse mood date %q: %w", day, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
