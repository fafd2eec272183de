// internal/app/status_service.go
package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/domain/homework"
)

// StatusFetcher is the API client as seen by the pipeline.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, cursor int64) (any, error)
}

// OutcomeKind tells which variant of Outcome is set.
type OutcomeKind int

const (
	// OutcomeVerdict carries the message rendered from the most recent homework.
	OutcomeVerdict OutcomeKind = iota
	// OutcomeEmpty means the API returned no homeworks for the cursor.
	OutcomeEmpty
	// OutcomeFailure carries the error of a failed fetch, validation or extraction.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeVerdict:
		return "verdict"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of one fetch-validate-extract pass.
// Message is the text to notify for verdicts and failures.
type Outcome struct {
	Kind           OutcomeKind
	Message        string
	CurrentDate    int64
	HasCurrentDate bool
	Err            error
}

// StatusService runs the fetch-validate-extract pipeline for one cycle.
type StatusService struct {
	fetcher  StatusFetcher
	verdicts homework.Verdicts
	logger   logrus.FieldLogger
}

func NewStatusService(fetcher StatusFetcher, verdicts homework.Verdicts, logger logrus.FieldLogger) *StatusService {
	return &StatusService{fetcher: fetcher, verdicts: verdicts, logger: logger}
}

// Check never returns an error: every failure is folded into an OutcomeFailure.
func (s *StatusService) Check(ctx context.Context, cursor int64) Outcome {
	raw, err := s.fetcher.FetchStatus(ctx, cursor)
	if err != nil {
		return failure(err)
	}

	resp, err := homework.ValidateResponse(raw)
	if err != nil {
		return failure(err)
	}
	s.logger.WithField("homeworks", len(resp.Homeworks)).Info("Response validated")

	if len(resp.Homeworks) == 0 {
		return Outcome{Kind: OutcomeEmpty, CurrentDate: resp.CurrentDate, HasCurrentDate: resp.HasCurrentDate}
	}

	latest := resp.Homeworks[0]
	s.logger.Debugf("Latest homework: %v", latest)
	message, err := s.verdicts.ParseStatus(latest)
	if err != nil {
		return failure(err)
	}

	return Outcome{
		Kind:           OutcomeVerdict,
		Message:        message,
		CurrentDate:    resp.CurrentDate,
		HasCurrentDate: resp.HasCurrentDate,
	}
}

func failure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: homework.FailureMessage(err), Err: err}
}
