package service

import (
	"reflect"
	"testing"
	"time"
)

func fixedClock(day int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	service := &activityService{now: fixedClock(40)}

	first := service.Suggest([]string{"reading", "nature"})
	second := service.Suggest([]string{"reading", "nature"})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical suggestions for the same day, got %v vs %v", first, second)
	}
	if len(first) != 4 {
		t.Fatalf("Expected 2 suggestions per interest, got %d", len(first))
	}
	for _, s := range first {
		if s.Interest != "reading" && s.Interest != "nature" {
			t.Errorf("Unexpected interest %q in suggestions", s.Interest)
		}
	}
}

func TestSuggest_RotatesAcrossDays(t *testing.T) {
	day1 := (&activityService{now: fixedClock(1)}).Suggest([]string{"sports"})
	day2 := (&activityService{now: fixedClock(2)}).Suggest([]string{"sports"})

	if reflect.DeepEqual(day1, day2) {
		t.Error("Expected different suggestions on different days")
	}
}

func TestSuggest_SkipsUnknownInterests(t *testing.T) {
	service := &activityService{now: fixedClock(10)}

	suggestions := service.Suggest([]string{"skydiving", "reading"})
	for _, s := range suggestions {
		if s.Interest != "reading" {
			t.Errorf("Expected only reading suggestions, got %q", s.Interest)
		}
	}
	if len(suggestions) != 2 {
		t.Errorf("Expected 2 suggestions, got %d", len(suggestions))
	}
}

func TestSuggest_CapsInterests(t *testing.T) {
	service := &activityService{now: fixedClock(10)}

	suggestions := service.Suggest([]string{"reading", "sports", "creative", "social", "nature"})
	if len(suggestions) != maxInterests*suggestionsPerInterest {
		t.Errorf("Expected %d suggestions for capped interests, got %d",
			maxInterests*suggestionsPerInterest, len(suggestions))
	}
}

func TestSuggest_NormalizesInterestNames(t *testing.T) {
	service := &activityService{now: fixedClock(10)}

	suggestions := service.Suggest([]string{" Reading "})
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions for normalized interest, got %d", len(suggestions))
	}
	if suggestions[0].Interest != "reading" {
		t.Errorf("Expected normalized interest name, got %q", suggestions[0].Interest)
	}
}

func TestSuggest_EmptyInterestsUsesCatalog(t *testing.T) {
	service := &activityService{now: fixedClock(10)}

	suggestions := service.Suggest(nil)
	if len(suggestions) != maxInterests*suggestionsPerInterest {
		t.Errorf("Expected catalog fallback to yield %d suggestions, got %d",
			maxInterests*suggestionsPerInterest, len(suggestions))
	}
}

func TestInterests_StableOrder(t *testing.T) {
	service := NewActivityService()

	want := []string{"creative", "nature", "reading", "social", "sports"}
	if got := service.Interests(); !reflect.DeepEqual(got, want) {
		t.Errorf("Interests() = %v, want %v", got, want)
	}
}
