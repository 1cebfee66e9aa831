package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/logger"
	"github.com/digitalwellness/guardian/backend/internal/models"
	"github.com/digitalwellness/guardian/backend/internal/repository"
)

// DefaultRecommendLimit caps recommendations when the caller passes limit <= 0.
const DefaultRecommendLimit = 5

// feedbackBlend is the weight given to new feedback when updating a rule's
// effectiveness rating (exponential moving average).
const feedbackBlend = 0.3

type interventionService struct {
	mu       sync.RWMutex
	rules    map[string]models.InterventionRule
	ruleRepo repository.RuleRepository
	log      logger.Logger
}

// NewInterventionService creates the rule store seeded with the built-in
// rules plus any custom rules previously persisted. The store follows
// single-writer-many-reader discipline: Recommend and Rules take a read
// lock, mutations take the write lock.
func NewInterventionService(ctx context.Context, ruleRepo repository.RuleRepository, log logger.Logger) (InterventionService, error) {
	s := &interventionService{
		rules:    make(map[string]models.InterventionRule),
		ruleRepo: ruleRepo,
		log:      log,
	}

	for _, rule := range builtinRules() {
		s.rules[rule.ID] = rule
	}

	if ruleRepo != nil {
		stored, err := ruleRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load stored rules: %w", err)
		}
		for _, rule := range stored {
			s.rules[rule.ID] = rule
		}
	}

	return s, nil
}

// Recommend evaluates every rule against the assessment and correlation and
// returns the matches ordered by (priority desc, effectiveness desc, id asc).
// An empty result is a valid outcome, not an error.
func (s *interventionService) Recommend(assessment *models.RiskAssessment, correlation models.CorrelationResult, limit int) []models.InterventionRule {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	s.mu.RLock()
	matches := make([]models.InterventionRule, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule.Trigger.Matches(assessment, correlation) {
			matches = append(matches, rule)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Priority.Rank() != matches[j].Priority.Rank() {
			return matches[i].Priority.Rank() > matches[j].Priority.Rank()
		}
		if matches[i].Effectiveness != matches[j].Effectiveness {
			return matches[i].Effectiveness > matches[j].Effectiveness
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// AddCustomRule validates and inserts a rule. Existing rules are never
// silently overwritten.
func (s *interventionService) AddCustomRule(ctx context.Context, rule models.InterventionRule) (*models.InterventionRule, error) {
	if err := validateRule(rule); err != nil {
		return nil, err
	}
	rule.BuiltIn = false
	rule.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rules[rule.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.ID)
	}

	if s.ruleRepo != nil {
		if err := s.ruleRepo.Insert(ctx, rule); err != nil {
			return nil, fmt.Errorf("failed to persist rule: %w", err)
		}
	}
	s.rules[rule.ID] = rule

	s.log.Info("custom intervention rule added",
		logger.String("rule_id", rule.ID),
		logger.String("priority", string(rule.Priority)))

	return &rule, nil
}

// Rules returns all rules ordered by id.
func (s *interventionService) Rules() []models.InterventionRule {
	s.mu.RLock()
	all := make([]models.InterventionRule, 0, len(s.rules))
	for _, rule := range s.rules {
		all = append(all, rule)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// RecordFeedback folds a user rating into the rule's effectiveness rating.
func (s *interventionService) RecordFeedback(ctx context.Context, id string, rating float64) (*models.InterventionRule, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %v out of range [0,5]", ErrInvalidRule, rating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, exists := s.rules[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}

	rule.Effectiveness = (1-feedbackBlend)*rule.Effectiveness + feedbackBlend*rating

	if s.ruleRepo != nil && !rule.BuiltIn {
		if err := s.ruleRepo.UpdateEffectiveness(ctx, id, rule.Effectiveness); err != nil {
			return nil, fmt.Errorf("failed to persist effectiveness: %w", err)
		}
	}
	s.rules[id] = rule

	return &rule, nil
}

// validateRule checks required fields and value ranges before insertion.
func validateRule(rule models.InterventionRule) error {
	if rule.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRule)
	}
	if rule.ActionText == "" {
		return fmt.Errorf("%w: empty action text", ErrInvalidRule)
	}
	if rule.Priority.Rank() < 0 {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidRule, rule.Priority)
	}
	if rule.Effectiveness < 0 || rule.Effectiveness > 5 {
		return fmt.Errorf("%w: effectiveness %v out of range [0,5]", ErrInvalidRule, rule.Effectiveness)
	}
	return nil
}

// builtinRules is the seed rule set covering the classic digital-wellness
// interventions: screen-time limits, social media breaks, unlock reduction
// and general wellness habits.
func builtinRules() []models.InterventionRule {
	now := time.Now()
	return []models.InterventionRule{
		{
			ID:         "screen-time-limit",
			Title:      "Screen Time Limit",
			ActionText: "Your daily screen time is elevated. Set a 2-hour app limit in settings.",
			Trigger:    models.TriggerCondition{Factor: models.FactorScreenTime, MinScore: 50},
			Priority:   models.PriorityHigh, Effectiveness: 4.0,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "social-media-break",
			Title:      "Social Media Break",
			ActionText: "Social apps dominate your screen time. Take a 24-hour break and disable their notifications.",
			Trigger:    models.TriggerCondition{Factor: models.FactorSocialRatio, MinScore: 40},
			Priority:   models.PriorityMedium, Effectiveness: 3.5,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "reduce-phone-checking",
			Title:      "Reduce Phone Checking",
			ActionText: "You unlock your phone very often. Keep it out of reach and enable grayscale mode.",
			Trigger:    models.TriggerCondition{Factor: models.FactorUnlocks, MinScore: 60},
			Priority:   models.PriorityMedium, Effectiveness: 3.0,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "steady-routine",
			Title:      "Steady Daily Routine",
			ActionText: "Your usage swings between binge days and quiet days. Schedule fixed phone-free blocks.",
			Trigger:    models.TriggerCondition{Factor: models.FactorVolatility, MinScore: 50},
			Priority:   models.PriorityMedium, Effectiveness: 3.0,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "mood-protection",
			Title:      "Protect Your Mood",
			ActionText: "Your mood has been declining alongside your usage. Replace evening scrolling with an offline wind-down.",
			Trigger:    models.TriggerCondition{MinTier: models.TierMedium, Trend: models.TrendWorsening},
			Priority:   models.PriorityHigh, Effectiveness: 4.5,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "digital-sunset",
			Title:      "Digital Sunset",
			ActionText: "No screens one hour before bedtime for better sleep quality. Set a daily 9 PM reminder.",
			Priority:   models.PriorityLow, Effectiveness: 3.5,
			BuiltIn: true, CreatedAt: now,
		},
		{
			ID:         "mindful-morning",
			Title:      "Mindful Morning",
			ActionText: "Start your day phone-free for the first 30 minutes. Leave the phone outside the bedroom.",
			Priority:   models.PriorityLow, Effectiveness: 3.0,
			BuiltIn: true, CreatedAt: now,
		},
	}
}
