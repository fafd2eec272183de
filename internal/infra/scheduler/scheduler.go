package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"homework_status_bot/internal/app" // For Outcome
)

// minRetryWait is the wait used when the schedule yields no future activation.
const minRetryWait = time.Minute

// StatusChecker runs one fetch-validate-extract pass.
type StatusChecker interface {
	Check(ctx context.Context, cursor int64) app.Outcome
}

// MessageNotifier delivers a message and reports whether it got through.
type MessageNotifier interface {
	Notify(ctx context.Context, text string) bool
}

// StatusPoller owns the cursor and the last notified message. It is driven by a
// single goroutine; nothing else touches its state.
type StatusPoller struct {
	checker  StatusChecker
	notifier MessageNotifier
	schedule cron.Schedule
	logger   logrus.FieldLogger
	now      func() time.Time

	cursor      int64
	lastMessage string
}

func NewStatusPoller(
	checker StatusChecker,
	notifier MessageNotifier,
	schedule cron.Schedule, // e.g., cron.Every(600 * time.Second)
	logger logrus.FieldLogger,
	startCursor int64, // usually time.Now().Unix()
) *StatusPoller {
	return &StatusPoller{
		checker:  checker,
		notifier: notifier,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
		cursor:   startCursor,
	}
}

// Cursor returns the timestamp the next cycle will fetch from.
func (p *StatusPoller) Cursor() int64 { return p.cursor }

// LastNotified returns the last message that was delivered.
func (p *StatusPoller) LastNotified() string { return p.lastMessage }

// Run polls until ctx is cancelled. Every cycle is followed by a wait for the
// next activation of the schedule, whatever the cycle's outcome.
func (p *StatusPoller) Run(ctx context.Context) {
	p.logger.WithField("cursor", p.cursor).Info("Starting homework status polling...")
	for {
		p.RunCycle(ctx)

		wait := p.nextWait()
		p.logger.Debugf("Next cycle in %s", wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("Homework status polling stopped.")
			return
		case <-timer.C:
		}
	}
}

// nextWait is the time until the next activation of the schedule. A schedule
// with no upcoming activation falls back to minRetryWait so the loop never spins.
func (p *StatusPoller) nextWait() time.Duration {
	now := p.now()
	next := p.schedule.Next(now)
	if next.IsZero() || !next.After(now) {
		p.logger.Warnf("Schedule has no upcoming activation, retrying in %s.", minRetryWait)
		return minRetryWait
	}
	return next.Sub(now)
}

// RunCycle performs a single fetch-validate-extract-notify pass.
func (p *StatusPoller) RunCycle(ctx context.Context) {
	log := p.logger.WithFields(logrus.Fields{
		"cycle":  uuid.NewString(),
		"cursor": p.cursor,
	})

	outcome := p.checker.Check(ctx, p.cursor)

	switch outcome.Kind {
	case app.OutcomeEmpty:
		log.Info("No homework status updates.")
		p.advance(log, outcome)

	case app.OutcomeVerdict:
		if outcome.Message == p.lastMessage {
			log.Info("Homework status unchanged, notification skipped.")
			p.advance(log, outcome)
			return
		}
		if !p.notifier.Notify(ctx, outcome.Message) {
			log.Error("Verdict not delivered; cursor kept for the next cycle.")
			return
		}
		p.lastMessage = outcome.Message
		p.advance(log, outcome)
		log.Infof("Verdict delivered: %s", outcome.Message)

	case app.OutcomeFailure:
		log.WithError(outcome.Err).Error(outcome.Message)
		if outcome.Message == p.lastMessage {
			log.Info("Same failure already reported, notification skipped.")
			return
		}
		if p.notifier.Notify(ctx, outcome.Message) {
			p.lastMessage = outcome.Message
		}
	}
}

// advance moves the cursor to the server time of the response. It never moves backwards.
func (p *StatusPoller) advance(log logrus.FieldLogger, outcome app.Outcome) {
	if !outcome.HasCurrentDate {
		return
	}
	if outcome.CurrentDate < p.cursor {
		log.Warnf("Server current_date %d is behind cursor %d, keeping cursor.", outcome.CurrentDate, p.cursor)
		return
	}
	p.cursor = outcome.CurrentDate
}
