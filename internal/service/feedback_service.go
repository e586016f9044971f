package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"surveylab/internal/model"
	"surveylab/internal/repository"
)

var (
	// ErrInvalidFeedback is returned for anything other than "yes" or "no"
	ErrInvalidFeedback = errors.New("feedback must be \"yes\" or \"no\"")
	// ErrInvalidRating is returned for ratings outside 1..5
	ErrInvalidRating = fmt.Errorf("rating must be an integer from %d to %d", model.MinRating, model.MaxRating)
)

// FeedbackService owns the yes/no counter and the star histogram.
// One mutex covers both so every read-modify-write is serialized in-process.
type FeedbackService struct {
	mu    sync.Mutex
	yesNo repository.CounterRepo
	stars repository.CounterRepo
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(yesNo, stars repository.CounterRepo) *FeedbackService {
	return &FeedbackService{
		yesNo: yesNo,
		stars: stars,
	}
}

// Init writes both counter files, creating missing ones and resetting corrupt ones
func (s *FeedbackService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	noop := func(model.Tally) error { return nil }
	if _, err := s.yesNo.Update(ctx, noop); err != nil {
		return fmt.Errorf("init %s: %w", s.yesNo.Path(), err)
	}
	if _, err := s.stars.Update(ctx, noop); err != nil {
		return fmt.Errorf("init %s: %w", s.stars.Path(), err)
	}
	return nil
}

// IncrementYesNo adds one to the "yes" or "no" tally and returns the new totals
func (s *FeedbackService) IncrementYesNo(ctx context.Context, choice string) (model.Tally, error) {
	if choice != model.FeedbackYes && choice != model.FeedbackNo {
		return nil, ErrInvalidFeedback
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.yesNo.Update(ctx, func(t model.Tally) error {
		t[choice]++
		return nil
	})
}

// IncrementStar adds one to the bucket for rating and returns the histogram
func (s *FeedbackService) IncrementStar(ctx context.Context, rating int) (model.Tally, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strconv.Itoa(rating)
	return s.stars.Update(ctx, func(t model.Tally) error {
		t[key]++
		return nil
	})
}

// YesNoTotals returns the current yes/no counts
func (s *FeedbackService) YesNoTotals(ctx context.Context) (model.Tally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.yesNo.Load(ctx)
}

// StarTotals returns the current star histogram
func (s *FeedbackService) StarTotals(ctx context.Context) (model.Tally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stars.Load(ctx)
}
