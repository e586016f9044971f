package service

import (
	"context"
	"log/slog"
	"time"

	"surveylab/internal/model"
	"surveylab/internal/repository"
)

// ResponseService records submitted answer sets
type ResponseService struct {
	responses repository.ResponseRepo
	now       func() time.Time
	logger    *slog.Logger
}

// NewResponseService creates a new response service
func NewResponseService(responses repository.ResponseRepo, logger *slog.Logger) *ResponseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseService{
		responses: responses,
		now:       time.Now,
		logger:    logger,
	}
}

// SetClock replaces the time source, for tests
func (s *ResponseService) SetClock(now func() time.Time) {
	s.now = now
}

// Record stores fields plus the client address and a timestamp as a new
// record and returns the file it was written to. Storage errors are returned as is.
func (s *ResponseService) Record(ctx context.Context, fields map[string]string, ip string) (string, error) {
	at := s.now()

	rec := make(model.Response, len(fields)+2)
	for k, v := range fields {
		rec[k] = v
	}
	rec[model.ResponseIPKey] = ip
	rec[model.ResponseTimestampKey] = at.Format(time.RFC3339)

	name, err := s.responses.Save(ctx, rec, at, ip)
	if err != nil {
		return "", err
	}

	s.logger.Info("response recorded", "file", name, "id", fields["id"], "page", fields["page"])
	return name, nil
}

// Load reads a stored record back
func (s *ResponseService) Load(ctx context.Context, name string) (model.Response, error) {
	return s.responses.Load(ctx, name)
}

// Count returns the number of stored records
func (s *ResponseService) Count(ctx context.Context) (int, error) {
	return s.responses.Count(ctx)
}
