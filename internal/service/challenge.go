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

// ChallengeDays is the length of the minimalism program.
const ChallengeDays = 7

// fullsToEscalate is how many consecutive full completions raise difficulty.
const fullsToEscalate = 2

// dayTasks is the named 7-day program. The same task list serves every
// difficulty; difficulty only scales the point values.
var dayTasks = [ChallengeDays]string{
	"No social media before noon",
	"Delete one unused app",
	"30-minute walk without your phone",
	"Read a physical book for 30 minutes",
	"No phone during meals",
	"Digital sunset after 9 PM",
	"Full day under 3 hours screen time",
}

type challengeService struct {
	mu sync.Mutex

	state           models.ChallengeState
	consecutiveFull int

	repo repository.ChallengeRepository
	log  logger.Logger
}

// NewChallengeService restores the persisted challenge state if one exists.
// Transition methods serialize on an internal mutex: check-in ordering
// matters, so concurrent calls for the same session are not allowed to
// interleave.
func NewChallengeService(ctx context.Context, repo repository.ChallengeRepository, log logger.Logger) (ChallengeService, error) {
	s := &challengeService{
		state: models.ChallengeState{
			Status:     models.ChallengeNotStarted,
			Difficulty: models.DifficultyEasy,
			UpdatedAt:  time.Now(),
		},
		repo: repo,
		log:  log,
	}

	if repo != nil {
		stored, counter, err := repo.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load challenge state: %w", err)
		}
		if stored != nil {
			s.state = *stored
			s.consecutiveFull = counter
		}
	}

	return s, nil
}

// Start begins a fresh 7-day challenge. Valid only when no challenge is in
// progress; points and completed days from a previous run are discarded.
func (s *challengeService) Start(ctx context.Context) (*models.ChallengeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status == models.ChallengeInProgress {
		return nil, ErrChallengeActive
	}

	now := time.Now()
	s.state = models.ChallengeState{
		CurrentDay:    1,
		Points:        0,
		CompletedDays: []int{},
		Difficulty:    models.DifficultyEasy,
		Status:        models.ChallengeInProgress,
		StartedAt:     &now,
		UpdatedAt:     now,
	}
	s.consecutiveFull = 0

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.log.Info("challenge started")
	return s.snapshot(), nil
}

// CheckIn scores the current day and advances the challenge by one day.
// A skipped day consumes its slot: there are no retries.
func (s *challengeService) CheckIn(ctx context.Context, performance models.DayPerformance) (*models.ChallengeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Status {
	case models.ChallengeInProgress:
	case models.ChallengeCompleted:
		return nil, ErrChallengeFinished
	default:
		return nil, ErrChallengeNotActive
	}

	switch performance {
	case models.PerformanceSkipped:
		// A skip discards any pending escalation but never demotes
		// difficulty already reached.
		s.consecutiveFull = 0
	case models.PerformanceFull, models.PerformancePartial:
		if s.consecutiveFull >= fullsToEscalate {
			s.state.Difficulty = s.state.Difficulty.Next()
			s.consecutiveFull = 0
		}
		base := s.state.Difficulty.BasePoints()
		if performance == models.PerformancePartial {
			s.state.Points += base / 2
			s.consecutiveFull = 0
		} else {
			s.state.Points += base
			s.consecutiveFull++
		}
		s.state.CompletedDays = append(s.state.CompletedDays, s.state.CurrentDay)
		sort.Ints(s.state.CompletedDays)
	default:
		return nil, fmt.Errorf("%w: unknown performance %q", ErrInvalidInput, performance)
	}

	s.state.CurrentDay++
	if s.state.CurrentDay > ChallengeDays {
		s.state.CurrentDay = ChallengeDays
		s.state.Status = models.ChallengeCompleted
	}
	s.state.UpdatedAt = time.Now()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.log.Info("challenge check-in",
		logger.String("performance", string(performance)),
		logger.Int("points", s.state.Points),
		logger.String("difficulty", string(s.state.Difficulty)))

	return s.snapshot(), nil
}

// Abandon cancels an in-progress challenge, preserving accumulated points
// and completed days for historical display.
func (s *challengeService) Abandon(ctx context.Context) (*models.ChallengeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Status != models.ChallengeInProgress {
		return nil, ErrChallengeNotActive
	}

	s.state.Status = models.ChallengeAbandoned
	s.state.UpdatedAt = time.Now()
	s.consecutiveFull = 0

	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.log.Info("challenge abandoned", logger.Int("points", s.state.Points))
	return s.snapshot(), nil
}

// State returns the current challenge snapshot.
func (s *challengeService) State(ctx context.Context) (*models.ChallengeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// SuggestDifficulty maps a risk tier to a starting difficulty: the heavier
// the usage, the harder the suggested program.
func (s *challengeService) SuggestDifficulty(assessment *models.RiskAssessment) models.Difficulty {
	if assessment == nil {
		return models.DifficultyEasy
	}
	switch assessment.Tier {
	case models.TierHigh:
		return models.DifficultyHard
	case models.TierMedium:
		return models.DifficultyModerate
	default:
		return models.DifficultyEasy
	}
}

// snapshot copies the state so callers never observe later mutations.
func (s *challengeService) snapshot() *models.ChallengeState {
	snap := s.state
	snap.CompletedDays = append([]int(nil), s.state.CompletedDays...)
	if snap.Status == models.ChallengeInProgress {
		snap.TodayTask = &models.ChallengeTask{
			Day:         snap.CurrentDay,
			Description: dayTasks[snap.CurrentDay-1],
		}
	}
	return &snap
}

func (s *challengeService) persist(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, s.state, s.consecutiveFull); err != nil {
		return fmt.Errorf("failed to persist challenge state: %w", err)
	}
	return nil
}
