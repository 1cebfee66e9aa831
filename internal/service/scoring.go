package service

import (
	"fmt"
	"math"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

// ScoringConfig holds the weights and scales for the risk score. Weights must
// sum to 1.0 and tier boundaries must be contiguous over [0,100].
type ScoringConfig struct {
	WeightScreenTime  float64
	WeightSocialRatio float64
	WeightUnlocks     float64
	WeightVolatility  float64

	// ScreenTimeCeiling is the daily mean (minutes) at which the screen-time
	// sub-score saturates at 100.
	ScreenTimeCeiling float64
	// UnlockCeiling is the daily mean unlock count at which the
	// unlock-frequency sub-score saturates at 100.
	UnlockCeiling float64

	// TierMediumMin is the lowest score classified as medium.
	TierMediumMin float64
	// TierHighMin is the score above which the tier is high.
	TierHighMin float64
}

// DefaultScoringConfig returns the default weights and scales.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		WeightScreenTime:  0.35,
		WeightSocialRatio: 0.30,
		WeightUnlocks:     0.20,
		WeightVolatility:  0.15,
		ScreenTimeCeiling: 300,
		UnlockCeiling:     100,
		TierMediumMin:     34,
		TierHighMin:       66,
	}
}

// Validate checks weight sum and tier boundary contiguity.
func (c ScoringConfig) Validate() error {
	sum := c.WeightScreenTime + c.WeightSocialRatio + c.WeightUnlocks + c.WeightVolatility
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}
	if c.ScreenTimeCeiling <= 0 || c.UnlockCeiling <= 0 {
		return fmt.Errorf("scoring ceilings must be positive")
	}
	if c.TierMediumMin <= 0 || c.TierHighMin <= c.TierMediumMin || c.TierHighMin > 100 {
		return fmt.Errorf("tier boundaries must satisfy 0 < medium < high <= 100")
	}
	return nil
}

type scoringService struct {
	cfg ScoringConfig
}

// NewScoringService creates a scoring service with the given configuration.
func NewScoringService(cfg ScoringConfig) ScoringService {
	return &scoringService{cfg: cfg}
}

// Assess computes the risk assessment for a trailing usage window.
// The window must be non-empty and every record must satisfy the ingestion
// invariants; otherwise ErrInvalidInput is returned.
func (s *scoringService) Assess(window []models.UsageRecord) (*models.RiskAssessment, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	screenScore := s.screenTimeScore(window)
	socialScore := socialRatioScore(window)
	unlockScore := s.unlockScore(window)
	volatilityScore := volatilityScore(window)

	factors := []models.RiskFactor{
		{Label: models.FactorScreenTime, Score: screenScore, Weight: s.cfg.WeightScreenTime},
		{Label: models.FactorSocialRatio, Score: socialScore, Weight: s.cfg.WeightSocialRatio},
		{Label: models.FactorUnlocks, Score: unlockScore, Weight: s.cfg.WeightUnlocks},
		{Label: models.FactorVolatility, Score: volatilityScore, Weight: s.cfg.WeightVolatility},
	}

	composite := 0.0
	for _, f := range factors {
		composite += f.Score * f.Weight
	}
	composite = clamp(composite, 0, 100)

	return &models.RiskAssessment{
		Score:               composite,
		Tier:                s.tierFor(composite),
		ContributingFactors: factors,
		WindowDays:          len(window),
		ComputedAt:          time.Now(),
	}, nil
}

// Summarize aggregates a usage window for the dashboard.
func (s *scoringService) Summarize(window []models.UsageRecord) (*models.UsageSummary, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	summary := &models.UsageSummary{
		Days:              len(window),
		CategoryFrequency: make(map[string]int),
	}

	var screen, social, productive, unlocks int
	for _, rec := range window {
		screen += rec.ScreenTimeMinutes
		social += rec.SocialMediaMinutes
		productive += rec.ProductiveMinutes
		unlocks += rec.UnlockCount
		for _, cat := range rec.AppCategories {
			summary.CategoryFrequency[cat]++
		}
	}

	n := float64(len(window))
	summary.TotalScreenTime = screen
	summary.AvgScreenTime = float64(screen) / n
	summary.AvgSocialMedia = float64(social) / n
	summary.AvgProductive = float64(productive) / n
	summary.AvgUnlocks = float64(unlocks) / n

	return summary, nil
}

// tierFor maps a composite score to a tier. Monotonic in the score.
func (s *scoringService) tierFor(score float64) models.RiskTier {
	switch {
	case score > s.cfg.TierHighMin:
		return models.TierHigh
	case score >= s.cfg.TierMediumMin:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

func (s *scoringService) screenTimeScore(window []models.UsageRecord) float64 {
	var total float64
	for _, rec := range window {
		total += float64(rec.ScreenTimeMinutes)
	}
	mean := total / float64(len(window))
	return clamp(mean/s.cfg.ScreenTimeCeiling*100, 0, 100)
}

// socialRatioScore is the mean social/screen ratio scaled to [0,100].
// Zero-screen-time days contribute 0 rather than dividing by zero.
func socialRatioScore(window []models.UsageRecord) float64 {
	var total float64
	for _, rec := range window {
		if rec.ScreenTimeMinutes == 0 {
			continue
		}
		total += float64(rec.SocialMediaMinutes) / float64(rec.ScreenTimeMinutes)
	}
	return clamp(total/float64(len(window))*100, 0, 100)
}

func (s *scoringService) unlockScore(window []models.UsageRecord) float64 {
	var total float64
	for _, rec := range window {
		total += float64(rec.UnlockCount)
	}
	mean := total / float64(len(window))
	return clamp(mean/s.cfg.UnlockCeiling*100, 0, 100)
}

// volatilityScore is the coefficient of variation of daily screen time
// scaled so a CV of 1.0 maps to 100. Consistent days score low, erratic
// binge patterns score high.
func volatilityScore(window []models.UsageRecord) float64 {
	n := float64(len(window))
	var sum float64
	for _, rec := range window {
		sum += float64(rec.ScreenTimeMinutes)
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}

	var sumSq float64
	for _, rec := range window {
		d := float64(rec.ScreenTimeMinutes) - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / n)

	return clamp(stddev/mean*100, 0, 100)
}

// validateWindow rejects empty windows and invariant-violating records.
func validateWindow(window []models.UsageRecord) error {
	if len(window) == 0 {
		return fmt.Errorf("%w: empty usage window", ErrInvalidInput)
	}
	for _, rec := range window {
		if rec.ScreenTimeMinutes < 0 || rec.SocialMediaMinutes < 0 ||
			rec.ProductiveMinutes < 0 || rec.UnlockCount < 0 {
			return fmt.Errorf("%w: negative minutes on %s", ErrInvalidInput, rec.DayKey())
		}
		if rec.SocialMediaMinutes > rec.ScreenTimeMinutes {
			return fmt.Errorf("%w: social media time exceeds screen time on %s", ErrInvalidInput, rec.DayKey())
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
