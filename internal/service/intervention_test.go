package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
)

// mockRuleRepository is an in-memory RuleRepository for testing
type mockRuleRepository struct {
	rules       map[string]models.InterventionRule
	insertCalls int
	updateCalls int
}

func newMockRuleRepository() *mockRuleRepository {
	return &mockRuleRepository{rules: make(map[string]models.InterventionRule)}
}

func (m *mockRuleRepository) Insert(ctx context.Context, rule models.InterventionRule) error {
	m.insertCalls++
	m.rules[rule.ID] = rule
	return nil
}

func (m *mockRuleRepository) UpdateEffectiveness(ctx context.Context, id string, rating float64) error {
	m.updateCalls++
	rule := m.rules[id]
	rule.Effectiveness = rating
	m.rules[id] = rule
	return nil
}

func (m *mockRuleRepository) GetAll(ctx context.Context) ([]models.InterventionRule, error) {
	all := make([]models.InterventionRule, 0, len(m.rules))
	for _, rule := range m.rules {
		all = append(all, rule)
	}
	return all, nil
}

func newTestInterventionService(t *testing.T) InterventionService {
	t.Helper()
	service, err := NewInterventionService(context.Background(), nil, logger.Default())
	if err != nil {
		t.Fatalf("NewInterventionService failed: %v", err)
	}
	return service
}

// highRiskAssessment matches every built-in trigger
func highRiskAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		Score: 90,
		Tier:  models.TierHigh,
		ContributingFactors: []models.RiskFactor{
			{Label: models.FactorScreenTime, Score: 95},
			{Label: models.FactorSocialRatio, Score: 80},
			{Label: models.FactorUnlocks, Score: 85},
			{Label: models.FactorVolatility, Score: 70},
		},
	}
}

func lowRiskAssessment() *models.RiskAssessment {
	return &models.RiskAssessment{
		Score: 10,
		Tier:  models.TierLow,
		ContributingFactors: []models.RiskFactor{
			{Label: models.FactorScreenTime, Score: 12},
			{Label: models.FactorSocialRatio, Score: 8},
			{Label: models.FactorUnlocks, Score: 15},
			{Label: models.FactorVolatility, Score: 5},
		},
	}
}

func TestRecommend_OrderingAndLimit(t *testing.T) {
	service := newTestInterventionService(t)

	worsening := models.CorrelationResult{Trend: models.TrendWorsening}
	matches := service.Recommend(highRiskAssessment(), worsening, 0)

	if len(matches) != DefaultRecommendLimit {
		t.Fatalf("Expected %d recommendations, got %d", DefaultRecommendLimit, len(matches))
	}

	// Priority desc, then effectiveness desc, then id asc
	wantOrder := []string{
		"mood-protection",
		"screen-time-limit",
		"social-media-break",
		"reduce-phone-checking",
		"steady-routine",
	}
	for i, want := range wantOrder {
		if matches[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, matches[i].ID)
		}
	}
}

func TestRecommend_LimitTruncates(t *testing.T) {
	service := newTestInterventionService(t)

	worsening := models.CorrelationResult{Trend: models.TrendWorsening}
	matches := service.Recommend(highRiskAssessment(), worsening, 2)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(matches))
	}
	if matches[0].ID != "mood-protection" || matches[1].ID != "screen-time-limit" {
		t.Errorf("Unexpected top recommendations: %s, %s", matches[0].ID, matches[1].ID)
	}
}

func TestRecommend_LowRiskOnlyMatchesUnconditionalHabits(t *testing.T) {
	service := newTestInterventionService(t)

	stable := models.CorrelationResult{Trend: models.TrendStable}
	matches := service.Recommend(lowRiskAssessment(), stable, 0)

	// Only the always-on habit rules carry an empty trigger
	if len(matches) != 2 {
		t.Fatalf("Expected 2 recommendations for low risk, got %d", len(matches))
	}
	if matches[0].ID != "digital-sunset" || matches[1].ID != "mindful-morning" {
		t.Errorf("Unexpected low-risk recommendations: %s, %s", matches[0].ID, matches[1].ID)
	}
}

func TestAddCustomRule_DuplicateLeavesStoreUnchanged(t *testing.T) {
	service := newTestInterventionService(t)
	before := len(service.Rules())

	_, err := service.AddCustomRule(context.Background(), models.InterventionRule{
		ID:         "screen-time-limit",
		Title:      "Imposter",
		ActionText: "Should never be stored",
		Priority:   models.PriorityHigh,
	})
	if !errors.Is(err, ErrDuplicateRule) {
		t.Fatalf("Expected ErrDuplicateRule, got %v", err)
	}

	rules := service.Rules()
	if len(rules) != before {
		t.Errorf("Rule count changed after rejected insert: %d -> %d", before, len(rules))
	}
	for _, rule := range rules {
		if rule.ID == "screen-time-limit" && rule.Title == "Imposter" {
			t.Error("Duplicate insert overwrote the existing rule")
		}
	}
}

func TestAddCustomRule_Validation(t *testing.T) {
	service := newTestInterventionService(t)

	tests := []struct {
		name string
		rule models.InterventionRule
	}{
		{
			name: "empty id",
			rule: models.InterventionRule{ActionText: "do something", Priority: models.PriorityLow},
		},
		{
			name: "empty action text",
			rule: models.InterventionRule{ID: "r1", Priority: models.PriorityLow},
		},
		{
			name: "unknown priority",
			rule: models.InterventionRule{ID: "r2", ActionText: "x", Priority: "urgent"},
		},
		{
			name: "effectiveness out of range",
			rule: models.InterventionRule{ID: "r3", ActionText: "x", Priority: models.PriorityLow, Effectiveness: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddCustomRule(context.Background(), tt.rule)
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("Expected ErrInvalidRule, got %v", err)
			}
		})
	}
}

func TestAddCustomRule_PersistsAndMatches(t *testing.T) {
	repo := newMockRuleRepository()
	service, err := NewInterventionService(context.Background(), repo, logger.Default())
	if err != nil {
		t.Fatalf("NewInterventionService failed: %v", err)
	}

	rule := models.InterventionRule{
		ID:         "weekend-detox",
		Title:      "Weekend Detox",
		ActionText: "Leave your phone at home on Saturday morning",
		Trigger:    models.TriggerCondition{MinTier: models.TierHigh},
		Priority:   models.PriorityHigh,
	}
	created, err := service.AddCustomRule(context.Background(), rule)
	if err != nil {
		t.Fatalf("AddCustomRule failed: %v", err)
	}
	if created.BuiltIn {
		t.Error("Custom rule must not be marked built-in")
	}
	if repo.insertCalls != 1 {
		t.Errorf("Expected 1 repository insert, got %d", repo.insertCalls)
	}

	matches := service.Recommend(highRiskAssessment(), models.CorrelationResult{Trend: models.TrendStable}, 10)
	found := false
	for _, m := range matches {
		if m.ID == "weekend-detox" {
			found = true
		}
	}
	if !found {
		t.Error("Expected custom rule to appear in recommendations")
	}

	// A fresh service over the same repository sees the persisted rule
	restored, err := NewInterventionService(context.Background(), repo, logger.Default())
	if err != nil {
		t.Fatalf("NewInterventionService (restore) failed: %v", err)
	}
	foundRestored := false
	for _, r := range restored.Rules() {
		if r.ID == "weekend-detox" {
			foundRestored = true
		}
	}
	if !foundRestored {
		t.Error("Expected persisted custom rule after restart")
	}
}

func TestRecordFeedback_BlendsRating(t *testing.T) {
	service := newTestInterventionService(t)

	// screen-time-limit starts at 4.0; one 5-star rating moves it by the
	// blend factor, not all the way
	updated, err := service.RecordFeedback(context.Background(), "screen-time-limit", 5)
	if err != nil {
		t.Fatalf("RecordFeedback failed: %v", err)
	}
	want := (1-feedbackBlend)*4.0 + feedbackBlend*5
	if math.Abs(updated.Effectiveness-want) > 1e-9 {
		t.Errorf("Expected effectiveness %.2f, got %.2f", want, updated.Effectiveness)
	}
}

func TestRecordFeedback_UnknownRule(t *testing.T) {
	service := newTestInterventionService(t)

	_, err := service.RecordFeedback(context.Background(), "no-such-rule", 3)
	if !errors.Is(err, ErrRuleNotFound) {
		t.Fatalf("Expected ErrRuleNotFound, got %v", err)
	}
}

func TestRecordFeedback_RatingOutOfRange(t *testing.T) {
	service := newTestInterventionService(t)

	for _, rating := range []float64{-1, 5.5} {
		_, err := service.RecordFeedback(context.Background(), "screen-time-limit", rating)
		if !errors.Is(err, ErrInvalidRule) {
			t.Errorf("Expected ErrInvalidRule for rating %v, got %v", rating, err)
		}
	}
}

// TestConcurrentRecommendAndMutate exercises the read/write lock split under
// the race detector.
func TestConcurrentRecommendAndMutate(t *testing.T) {
	service := newTestInterventionService(t)
	ctx := context.Background()

	assessment := highRiskAssessment()
	correlation := models.CorrelationResult{Trend: models.TrendWorsening}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				service.Recommend(assessment, correlation, 5)
				service.Rules()
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				rule := models.InterventionRule{
					ID:         fmt.Sprintf("concurrent-%d-%d", n, j),
					ActionText: "concurrent insert",
					Priority:   models.PriorityLow,
				}
				if _, err := service.AddCustomRule(ctx, rule); err != nil {
					t.Errorf("AddCustomRule failed: %v", err)
				}
				if _, err := service.RecordFeedback(ctx, rule.ID, 4); err != nil {
					t.Errorf("RecordFeedback failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	// 7 built-ins plus 100 concurrent inserts
	if got := len(service.Rules()); got != 107 {
		t.Errorf("Expected 107 rules after concurrent inserts, got %d", got)
	}
}
