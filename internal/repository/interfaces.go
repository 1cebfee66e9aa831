// Package repository provides the persistence collaborators the analytical
// core reads from and writes to. The core itself never performs I/O; callers
// load record windows here and hand them to the services.
package repository

import (
	"context"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

// UsageRecordRepository stores daily usage records keyed by calendar day.
type UsageRecordRepository interface {
	Upsert(ctx context.Context, record models.UsageRecord) error
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.UsageRecord, error)
}

// MoodRecordRepository stores daily mood records keyed by calendar day.
type MoodRecordRepository interface {
	Upsert(ctx context.Context, record models.MoodRecord) error
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.MoodRecord, error)
}

// RuleRepository stores custom intervention rules and effectiveness feedback.
type RuleRepository interface {
	Insert(ctx context.Context, rule models.InterventionRule) error
	UpdateEffectiveness(ctx context.Context, id string, rating float64) error
	GetAll(ctx context.Context) ([]models.InterventionRule, error)
}

// ChallengeRepository persists the single-user challenge state between runs.
// Load returns (nil, 0, nil) when no state has been saved yet.
type ChallengeRepository interface {
	Save(ctx context.Context, state models.ChallengeState, consecutiveFull int) error
	Load(ctx context.Context) (*models.ChallengeState, int, error)
}
