package models

import "time"

// CreateUsageRecordRequest is the ingestion payload for one usage day.
// Validation here is the schema gate the core relies on: non-negative
// minutes and social time bounded by screen time.
type CreateUsageRecordRequest struct {
	Date               time.Time `json:"date" binding:"required"`
	ScreenTimeMinutes  int       `json:"screen_time_minutes" binding:"min=0"`
	SocialMediaMinutes int       `json:"social_media_minutes" binding:"min=0,ltefield=ScreenTimeMinutes"`
	ProductiveMinutes  int       `json:"productive_minutes" binding:"min=0"`
	UnlockCount        int       `json:"unlock_count" binding:"min=0"`
	AppCategories      []string  `json:"app_categories"`
}

// Record converts the request into a domain record.
func (r *CreateUsageRecordRequest) Record() UsageRecord {
	return UsageRecord{
		Date:               r.Date,
		ScreenTimeMinutes:  r.ScreenTimeMinutes,
		SocialMediaMinutes: r.SocialMediaMinutes,
		ProductiveMinutes:  r.ProductiveMinutes,
		UnlockCount:        r.UnlockCount,
		AppCategories:      r.AppCategories,
	}
}

// CreateMoodRecordRequest is the ingestion payload for one mood day.
type CreateMoodRecordRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	MoodScore       int       `json:"mood_score" binding:"required,min=1,max=10"`
	EnergyLevel     int       `json:"energy_level" binding:"required,min=1,max=10"`
	SleepQuality    int       `json:"sleep_quality" binding:"required,min=1,max=10"`
	StressIndicator int       `json:"stress_indicator" binding:"required,min=1,max=10"`
}

// Record converts the request into a domain record.
func (r *CreateMoodRecordRequest) Record() MoodRecord {
	return MoodRecord{
		Date:            r.Date,
		MoodScore:       r.MoodScore,
		EnergyLevel:     r.EnergyLevel,
		SleepQuality:    r.SleepQuality,
		StressIndicator: r.StressIndicator,
	}
}

// CreateRuleRequest is the payload for adding a custom intervention rule.
// ID is optional; a UUID is assigned when omitted.
type CreateRuleRequest struct {
	ID            string           `json:"id"`
	Title         string           `json:"title" binding:"required"`
	ActionText    string           `json:"action_text" binding:"required"`
	Trigger       TriggerCondition `json:"trigger"`
	Priority      RulePriority     `json:"priority" binding:"required,oneof=high medium low"`
	Effectiveness float64          `json:"effectiveness_rating" binding:"min=0,max=5"`
}

// RuleFeedbackRequest adjusts a rule's effectiveness rating.
type RuleFeedbackRequest struct {
	Rating float64 `json:"rating" binding:"min=0,max=5"`
}

// CheckInRequest reports the outcome of the current challenge day.
type CheckInRequest struct {
	Performance DayPerformance `json:"performance" binding:"required,oneof=full partial skipped"`
}

// WellnessReport bundles assessment, correlation and recommendations for the
// dashboard in a single response.
type WellnessReport struct {
	Assessment          *RiskAssessment    `json:"assessment"`
	Correlation         CorrelationResult  `json:"correlation"`
	Recommendations     []InterventionRule `json:"recommendations"`
	SuggestedDifficulty Difficulty         `json:"suggested_challenge_difficulty"`
}

// UsageSummary is the aggregate view of a usage window.
type UsageSummary struct {
	Days              int            `json:"days"`
	AvgScreenTime     float64        `json:"avg_screen_time_minutes"`
	AvgSocialMedia    float64        `json:"avg_social_media_minutes"`
	AvgProductive     float64        `json:"avg_productive_minutes"`
	AvgUnlocks        float64        `json:"avg_unlocks"`
	TotalScreenTime   int            `json:"total_screen_time_minutes"`
	CategoryFrequency map[string]int `json:"category_frequency"`
}
