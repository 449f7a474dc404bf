package service

import (
	"context"
	"time"

	"github.com/montyapp/monty-backend/internal/util"
	"github.com/rs/zerolog/log"
)

// Daily digest time, Almaty wall clock.
const (
	digestHour   = 21
	digestMinute = 0
)

// DigestScheduler fires the daily digest at a fixed Almaty wall-clock time.
type DigestScheduler struct {
	digest *DigestService
}

// NewDigestScheduler creates a new DigestScheduler
func NewDigestScheduler(digest *DigestService) *DigestScheduler {
	return &DigestScheduler{digest: digest}
}

// Run blocks until ctx is cancelled, sending the digest once per day.
func (s *DigestScheduler) Run(ctx context.Context) {
	log.Info().Int("hour", digestHour).Msg("Digest scheduler started")
	for {
		timer := time.NewTimer(time.Until(s.nextRun(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Digest scheduler stopped")
			return
		case <-timer.C:
			if _, err := s.digest.Send(ctx, time.Now()); err != nil {
				log.Error().Err(err).Msg("Failed to send daily digest")
			} else {
				log.Info().Msg("Daily digest sent")
			}
		}
	}
}

// nextRun returns the next digestHour:digestMinute after now, Almaty time.
func (s *DigestScheduler) nextRun(now time.Time) time.Time {
	now = now.In(util.Almaty)
	next := time.Date(now.Year(), now.Month(), now.Day(), digestHour, digestMinute, 0, 0, util.Almaty)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
