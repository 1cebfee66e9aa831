package service

import (
	"context"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

// ScoringService converts a usage window into a risk assessment.
// Pure function of its input; safe for concurrent callers.
type ScoringService interface {
	Assess(window []models.UsageRecord) (*models.RiskAssessment, error)
	Summarize(window []models.UsageRecord) (*models.UsageSummary, error)
}

// CorrelationService relates usage and mood series over a window.
// Pure function of its input; never returns an error - insufficient data is
// a valid, distinguishable result.
type CorrelationService interface {
	Correlate(window []models.UsageRecord, moods []models.MoodRecord) models.CorrelationResult
}

// InterventionService matches rules against an assessment and correlation
// and manages the rule store.
type InterventionService interface {
	Recommend(assessment *models.RiskAssessment, correlation models.CorrelationResult, limit int) []models.InterventionRule
	AddCustomRule(ctx context.Context, rule models.InterventionRule) (*models.InterventionRule, error)
	Rules() []models.InterventionRule
	RecordFeedback(ctx context.Context, id string, rating float64) (*models.InterventionRule, error)
}

// ChallengeService drives the 7-day minimalism challenge state machine.
type ChallengeService interface {
	Start(ctx context.Context) (*models.ChallengeState, error)
	CheckIn(ctx context.Context, performance models.DayPerformance) (*models.ChallengeState, error)
	Abandon(ctx context.Context) (*models.ChallengeState, error)
	State(ctx context.Context) (*models.ChallengeState, error)
	SuggestDifficulty(assessment *models.RiskAssessment) models.Difficulty
}

// ActivityService suggests offline activities keyed by interest.
type ActivityService interface {
	Suggest(interests []string) []models.ActivitySuggestion
	Interests() []string
}
