package models

import "testing"

func TestTriggerCondition_Matches(t *testing.T) {
	assessment := &RiskAssessment{
		Score: 70,
		Tier:  TierHigh,
		ContributingFactors: []RiskFactor{
			{Label: FactorScreenTime, Score: 90},
			{Label: FactorSocialRatio, Score: 30},
		},
	}
	worsening := CorrelationResult{Trend: TrendWorsening}
	stable := CorrelationResult{Trend: TrendStable}

	tests := []struct {
		name        string
		condition   TriggerCondition
		correlation CorrelationResult
		want        bool
	}{
		{
			name:        "zero value matches everything",
			condition:   TriggerCondition{},
			correlation: stable,
			want:        true,
		},
		{
			name:        "min tier satisfied",
			condition:   TriggerCondition{MinTier: TierMedium},
			correlation: stable,
			want:        true,
		},
		{
			name:        "composite score threshold",
			condition:   TriggerCondition{MinScore: 65},
			correlation: stable,
			want:        true,
		},
		{
			name:        "composite score threshold not met",
			condition:   TriggerCondition{MinScore: 75},
			correlation: stable,
			want:        false,
		},
		{
			name:        "factor threshold satisfied",
			condition:   TriggerCondition{Factor: FactorScreenTime, MinScore: 80},
			correlation: stable,
			want:        true,
		},
		{
			name:        "factor threshold not met",
			condition:   TriggerCondition{Factor: FactorSocialRatio, MinScore: 50},
			correlation: stable,
			want:        false,
		},
		{
			name:        "unknown factor never matches",
			condition:   TriggerCondition{Factor: "sleep_debt", MinScore: 10},
			correlation: stable,
			want:        false,
		},
		{
			name:        "trend must match exactly",
			condition:   TriggerCondition{Trend: TrendWorsening},
			correlation: stable,
			want:        false,
		},
		{
			name:        "all conditions AND together",
			condition:   TriggerCondition{MinTier: TierMedium, Factor: FactorScreenTime, MinScore: 80, Trend: TrendWorsening},
			correlation: worsening,
			want:        true,
		},
		{
			name:        "one failing condition rejects the rule",
			condition:   TriggerCondition{MinTier: TierMedium, Trend: TrendImproving},
			correlation: worsening,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.condition.Matches(assessment, tt.correlation); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLowTierNeverSatisfiesHigherMinTier(t *testing.T) {
	low := &RiskAssessment{Score: 10, Tier: TierLow}
	cond := TriggerCondition{MinTier: TierMedium}
	if cond.Matches(low, CorrelationResult{Trend: TrendStable}) {
		t.Error("Low tier must not satisfy a medium minimum tier")
	}
}

func TestDifficultyProgression(t *testing.T) {
	if DifficultyEasy.Next() != DifficultyModerate {
		t.Error("easy should escalate to moderate")
	}
	if DifficultyModerate.Next() != DifficultyHard {
		t.Error("moderate should escalate to hard")
	}
	if DifficultyHard.Next() != DifficultyHard {
		t.Error("hard should cap at hard")
	}

	points := map[Difficulty]int{
		DifficultyEasy:     10,
		DifficultyModerate: 15,
		DifficultyHard:     20,
	}
	for d, want := range points {
		if got := d.BasePoints(); got != want {
			t.Errorf("BasePoints(%s) = %d, want %d", d, got, want)
		}
	}
}
