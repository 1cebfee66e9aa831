package service

import (
	"math"
	"sort"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

// MinJoinedPairs is the minimum number of usage/mood days sharing a date
// before a correlation is attempted.
const MinJoinedPairs = 3

// CorrelationConfig holds the thresholds for the trend heuristic.
type CorrelationConfig struct {
	// MoodDeltaThreshold is the minimum first-half/second-half mood mean
	// difference that counts as a shift (in mood points).
	MoodDeltaThreshold float64
	// ScreenShiftTolerance is the relative screen-time change below which
	// screen time is considered flat (0.10 = 10%).
	ScreenShiftTolerance float64
}

// DefaultCorrelationConfig returns the default trend thresholds.
func DefaultCorrelationConfig() CorrelationConfig {
	return CorrelationConfig{
		MoodDeltaThreshold:   0.5,
		ScreenShiftTolerance: 0.10,
	}
}

type correlationService struct {
	cfg CorrelationConfig
}

// NewCorrelationService creates a correlation service.
func NewCorrelationService(cfg CorrelationConfig) CorrelationService {
	return &correlationService{cfg: cfg}
}

type joinedPair struct {
	day    string
	screen float64
	mood   float64
}

// Correlate joins usage and mood records on date and computes the linear
// correlation between daily screen time and mood score, plus a trend
// classification. The trend split is a heuristic, not a statistical test.
func (s *correlationService) Correlate(window []models.UsageRecord, moods []models.MoodRecord) models.CorrelationResult {
	pairs := joinOnDate(window, moods)

	if len(pairs) < MinJoinedPairs {
		return models.CorrelationResult{
			SampleSize: len(pairs),
			Trend:      models.TrendInsufficientData,
		}
	}

	result := models.CorrelationResult{
		SampleSize: len(pairs),
		Trend:      s.classifyTrend(pairs),
	}

	screen := make([]float64, len(pairs))
	mood := make([]float64, len(pairs))
	for i, p := range pairs {
		screen[i] = p.screen
		mood[i] = p.mood
	}

	// Zero variance in either series leaves the coefficient undefined
	// rather than propagating NaN.
	if r, ok := pearson(screen, mood); ok {
		result.Coefficient = &r
	}

	return result
}

// joinOnDate keeps only dates present in both record sets, ordered by date.
// Unmatched dates are skipped.
func joinOnDate(window []models.UsageRecord, moods []models.MoodRecord) []joinedPair {
	moodByDay := make(map[string]models.MoodRecord, len(moods))
	for _, m := range moods {
		moodByDay[m.DayKey()] = m
	}

	pairs := make([]joinedPair, 0, len(window))
	for _, rec := range window {
		m, ok := moodByDay[rec.DayKey()]
		if !ok {
			continue
		}
		pairs = append(pairs, joinedPair{
			day:    rec.DayKey(),
			screen: float64(rec.ScreenTimeMinutes),
			mood:   float64(m.MoodScore),
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].day < pairs[j].day })
	return pairs
}

// pearson computes the Pearson correlation coefficient. Returns false when
// either series has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var numerator, denomX, denomY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0, false
	}
	return numerator / math.Sqrt(denomX*denomY), true
}

// classifyTrend splits the date-ordered pairs into halves and compares mood
// means. Mood improvement only counts when screen time did not rise by more
// than the configured tolerance over the same split (and symmetrically for
// worsening).
func (s *correlationService) classifyTrend(pairs []joinedPair) models.Trend {
	half := len(pairs) / 2
	firstMood, firstScreen := halfMeans(pairs[:half])
	secondMood, secondScreen := halfMeans(pairs[half:])

	moodDelta := secondMood - firstMood
	screenShift := relativeShift(firstScreen, secondScreen)

	switch {
	case moodDelta > s.cfg.MoodDeltaThreshold && screenShift <= s.cfg.ScreenShiftTolerance:
		return models.TrendImproving
	case moodDelta < -s.cfg.MoodDeltaThreshold && screenShift >= -s.cfg.ScreenShiftTolerance:
		return models.TrendWorsening
	default:
		return models.TrendStable
	}
}

func halfMeans(pairs []joinedPair) (mood, screen float64) {
	if len(pairs) == 0 {
		return 0, 0
	}
	for _, p := range pairs {
		mood += p.mood
		screen += p.screen
	}
	n := float64(len(pairs))
	return mood / n, screen / n
}

// relativeShift is (second-first)/first, with a floor of 1 minute on the
// denominator for all-zero baselines.
func relativeShift(first, second float64) float64 {
	return (second - first) / math.Max(first, 1)
}
