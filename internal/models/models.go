package models

import "time"

// DateLayout is the canonical calendar-day format used for record joins.
const DateLayout = "2006-01-02"

// UsageRecord is one day of digital usage. Immutable once ingested.
type UsageRecord struct {
	Date               time.Time `json:"date"`
	ScreenTimeMinutes  int       `json:"screen_time_minutes"`
	SocialMediaMinutes int       `json:"social_media_minutes"`
	ProductiveMinutes  int       `json:"productive_minutes"`
	UnlockCount        int       `json:"unlock_count"`
	AppCategories      []string  `json:"app_categories,omitempty"`
}

// DayKey returns the calendar-day key used to join usage and mood records.
func (r UsageRecord) DayKey() string {
	return r.Date.Format(DateLayout)
}

// MoodRecord is one day of self-reported wellbeing scores (1-10 scales).
type MoodRecord struct {
	Date            time.Time `json:"date"`
	MoodScore       int       `json:"mood_score"`
	EnergyLevel     int       `json:"energy_level"`
	SleepQuality    int       `json:"sleep_quality"`
	StressIndicator int       `json:"stress_indicator"`
}

// DayKey returns the calendar-day key used to join usage and mood records.
func (r MoodRecord) DayKey() string {
	return r.Date.Format(DateLayout)
}

// RiskTier is the coarse bucket derived from the continuous risk score.
type RiskTier string

const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Rank orders tiers so trigger conditions can compare them.
func (t RiskTier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	case TierHigh:
		return 2
	default:
		return -1
	}
}

// RiskFactor is one labeled sub-score contributing to a risk assessment.
type RiskFactor struct {
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// Sub-score labels used in RiskAssessment.ContributingFactors and in
// intervention trigger conditions.
const (
	FactorScreenTime  = "screen_time"
	FactorSocialRatio = "social_ratio"
	FactorUnlocks     = "unlock_frequency"
	FactorVolatility  = "volatility"
)

// RiskAssessment is the result of scoring a usage window. Recomputed on every
// call, never mutated in place.
type RiskAssessment struct {
	Score               float64      `json:"score"`
	Tier                RiskTier     `json:"tier"`
	ContributingFactors []RiskFactor `json:"contributing_factors"`
	WindowDays          int          `json:"window_days"`
	ComputedAt          time.Time    `json:"computed_at"`
}

// Factor returns the sub-score with the given label, or (0, false).
func (a *RiskAssessment) Factor(label string) (float64, bool) {
	for _, f := range a.ContributingFactors {
		if f.Label == label {
			return f.Score, true
		}
	}
	return 0, false
}

// Trend classifies how mood moved across the correlation window.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendWorsening        Trend = "worsening"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient_data"
)

// CorrelationResult relates screen time to mood over joined days.
// Coefficient is nil when undefined (fewer than 3 joined pairs, or zero
// variance in either series) - callers must distinguish "no relationship"
// from "not enough data".
type CorrelationResult struct {
	Coefficient *float64 `json:"coefficient,omitempty"`
	SampleSize  int      `json:"sample_size"`
	Trend       Trend    `json:"trend"`
}

// RulePriority orders intervention rules for recommendation.
type RulePriority string

const (
	PriorityHigh   RulePriority = "high"
	PriorityMedium RulePriority = "medium"
	PriorityLow    RulePriority = "low"
)

// Rank orders priorities descending: high > medium > low.
func (p RulePriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	default:
		return -1
	}
}

// TriggerCondition is a typed predicate over an assessment and correlation
// result. All set fields must hold (AND); the zero value matches everything.
type TriggerCondition struct {
	// MinTier matches assessments at or above this tier.
	MinTier RiskTier `json:"min_tier,omitempty"`
	// Factor names a sub-score to threshold; empty means the composite score.
	Factor string `json:"factor,omitempty"`
	// MinScore is the inclusive lower bound for Factor (or the composite).
	MinScore float64 `json:"min_score,omitempty"`
	// Trend, when set, must equal the correlation trend.
	Trend Trend `json:"trend,omitempty"`
}

// Matches evaluates the condition against an assessment and correlation.
func (tc TriggerCondition) Matches(a *RiskAssessment, c CorrelationResult) bool {
	if tc.MinTier != "" && a.Tier.Rank() < tc.MinTier.Rank() {
		return false
	}
	if tc.MinScore > 0 {
		value := a.Score
		if tc.Factor != "" {
			v, ok := a.Factor(tc.Factor)
			if !ok {
				return false
			}
			value = v
		}
		if value < tc.MinScore {
			return false
		}
	}
	if tc.Trend != "" && c.Trend != tc.Trend {
		return false
	}
	return true
}

// InterventionRule is one recommendation with its eligibility predicate.
// Effectiveness is the only mutable field, adjusted via user feedback.
type InterventionRule struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	ActionText    string           `json:"action_text"`
	Trigger       TriggerCondition `json:"trigger"`
	Priority      RulePriority     `json:"priority"`
	Effectiveness float64          `json:"effectiveness_rating"`
	BuiltIn       bool             `json:"built_in"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Difficulty is the challenge difficulty level driving point values.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

// BasePoints is the full-completion point value at this difficulty.
func (d Difficulty) BasePoints() int {
	switch d {
	case DifficultyModerate:
		return 15
	case DifficultyHard:
		return 20
	default:
		return 10
	}
}

// Next returns the next harder difficulty, capped at hard.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyModerate
	default:
		return DifficultyHard
	}
}

// ChallengeStatus is the lifecycle state of a 7-day challenge.
type ChallengeStatus string

const (
	ChallengeNotStarted ChallengeStatus = "not_started"
	ChallengeInProgress ChallengeStatus = "in_progress"
	ChallengeCompleted  ChallengeStatus = "completed"
	ChallengeAbandoned  ChallengeStatus = "abandoned"
)

// DayPerformance is the self-reported outcome of one challenge day.
type DayPerformance string

const (
	PerformanceFull    DayPerformance = "full"
	PerformancePartial DayPerformance = "partial"
	PerformanceSkipped DayPerformance = "skipped"
)

// ActivitySuggestion is one offline activity matched to a user interest.
type ActivitySuggestion struct {
	Interest string `json:"interest"`
	Activity string `json:"activity"`
}

// ChallengeTask is one named day of the 7-day minimalism program.
type ChallengeTask struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
}

// ChallengeState is the tracked state of the 7-day minimalism challenge.
// CompletedDays is kept sorted ascending.
type ChallengeState struct {
	CurrentDay    int             `json:"current_day"`
	Points        int             `json:"points"`
	CompletedDays []int           `json:"completed_days"`
	Difficulty    Difficulty      `json:"difficulty_level"`
	Status        ChallengeStatus `json:"status"`
	TodayTask     *ChallengeTask  `json:"today_task,omitempty"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
