package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"surveylab/internal/model"
	"surveylab/internal/repository"
)

// ErrSurveyComplete is returned by Select when there is nothing left to serve
var ErrSurveyComplete = errors.New("survey complete")

// PageService picks the next survey page and advances client progress
type PageService struct {
	questions repository.QuestionRepo
	shuffle   func(n int, swap func(i, j int))
}

// NewPageService creates a new page service
func NewPageService(questions repository.QuestionRepo) *PageService {
	return &PageService{
		questions: questions,
		shuffle:   rand.Shuffle,
	}
}

// SetShuffle replaces the ordering function used by Select
func (s *PageService) SetShuffle(shuffle func(n int, swap func(i, j int))) {
	s.shuffle = shuffle
}

// Select returns a random question none of whose slots are set in page.
// The pool is read from disk on every call.
func (s *PageService) Select(ctx context.Context, page string) (*model.Question, error) {
	mask, err := model.ParseMask(page)
	if err != nil {
		return nil, err
	}
	if mask.IsTerminal() {
		return nil, ErrSurveyComplete
	}

	pool, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for i := range pool {
		if mask.Covers(pool[i].Slots()) {
			continue
		}
		return &pool[i], nil
	}
	return nil, ErrSurveyComplete
}

// Advance computes the progress value after answering the question with id
func (s *PageService) Advance(page, id string) (string, error) {
	return model.Advance(page, id)
}
