package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

type challengeRepository struct {
	db *DB
}

// NewChallengeRepository creates the single-row challenge state store.
func NewChallengeRepository(db *DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Save(ctx context.Context, state models.ChallengeState, consecutiveFull int) error {
	days, err := json.Marshal(state.CompletedDays)
	if err != nil {
		return fmt.Errorf("marshal completed days: %w", err)
	}

	var startedAt any
	if state.StartedAt != nil {
		startedAt = state.StartedAt.Format(time.RFC3339)
	}

	_, err = r.db.conn.ExecContext(ctx, `
		INSERT INTO challenge_state (id, current_day, points, completed_days, difficulty, status, consecutive_full, started_at, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_day = excluded.current_day,
			points = excluded.points,
			completed_days = excluded.completed_days,
			difficulty = excluded.difficulty,
			status = excluded.status,
			consecutive_full = excluded.consecutive_full,
			started_at = excluded.started_at,
			updated_at = excluded.updated_at`,
		state.CurrentDay, state.Points, string(days), string(state.Difficulty),
		string(state.Status), consecutiveFull, startedAt,
		state.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save challenge state: %w", err)
	}
	return nil
}

func (r *challengeRepository) Load(ctx context.Context) (*models.ChallengeState, int, error) {
	row := r.db.conn.QueryRowContext(ctx, `
		SELECT current_day, points, completed_days, difficulty, status, consecutive_full, started_at, updated_at
		FROM challenge_state WHERE id = 1`)

	var (
		state           models.ChallengeState
		days            string
		difficulty      string
		status          string
		consecutiveFull int
		startedAt       sql.NullString
		updatedAt       string
	)
	err := row.Scan(&state.CurrentDay, &state.Points, &days, &difficulty,
		&status, &consecutiveFull, &startedAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load challenge state: %w", err)
	}

	if err := json.Unmarshal([]byte(days), &state.CompletedDays); err != nil {
		return nil, 0, fmt.Errorf("unmarshal completed days: %w", err)
	}
	state.Difficulty = models.Difficulty(difficulty)
	state.Status = models.ChallengeStatus(status)

	if startedAt.Valid {
		t, err := time.Parse(time.RFC3339, startedAt.String)
		if err != nil {
			return nil, 0, fmt.Errorf("parse started_at: %w", err)
		}
		state.StartedAt = &t
	}
	state.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("parse updated_at: %w", err)
	}

	return &state, consecutiveFull, nil
}
