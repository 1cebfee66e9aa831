package service

import (
	"sort"
	"strings"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

const (
	maxInterests           = 3
	suggestionsPerInterest = 2
)

// activityCatalog maps interests to offline activities. Selection rotates
// deterministically by day of year so the daily suggestions change without
// being random.
var activityCatalog = map[string][]string{
	"reading": {
		"Visit the local library",
		"Start a physical book club",
		"Journal writing session",
		"Read in a park",
	},
	"sports": {
		"30-minute walk or run",
		"Yoga or stretching session",
		"Try a new sport",
		"Home workout routine",
	},
	"creative": {
		"Drawing or painting",
		"Learn a musical instrument",
		"Cook a new recipe",
		"DIY craft project",
	},
	"social": {
		"Meet friends for coffee",
		"Family board game night",
		"Community volunteering",
		"Join a local club",
	},
	"nature": {
		"Park walk or hike",
		"Gardening",
		"Outdoor photography",
		"Beach or lake visit",
	},
}

type activityService struct {
	now func() time.Time
}

// NewActivityService creates the offline-activity suggester.
func NewActivityService() ActivityService {
	return &activityService{now: time.Now}
}

// Suggest returns up to two activities for each of the first three known
// interests. Unknown interests are skipped; an empty interest list falls
// back to the full catalog.
func (s *activityService) Suggest(interests []string) []models.ActivitySuggestion {
	if len(interests) == 0 {
		interests = s.Interests()
	}

	offset := s.now().YearDay()

	suggestions := make([]models.ActivitySuggestion, 0, maxInterests*suggestionsPerInterest)
	used := 0
	for _, interest := range interests {
		if used >= maxInterests {
			break
		}
		key := strings.ToLower(strings.TrimSpace(interest))
		activities, ok := activityCatalog[key]
		if !ok {
			continue
		}
		used++
		for i := 0; i < suggestionsPerInterest && i < len(activities); i++ {
			suggestions = append(suggestions, models.ActivitySuggestion{
				Interest: key,
				Activity: activities[(offset+i)%len(activities)],
			})
		}
	}
	return suggestions
}

// Interests lists the catalog keys in stable order.
func (s *activityService) Interests() []string {
	keys := make([]string, 0, len(activityCatalog))
	for k := range activityCatalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
