package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"parkwise/internal/cache"
	"parkwise/internal/repository"
)

// JobService hosts the cron-driven maintenance work: sweeping active
// reservations whose end time has passed into completed, with the cache
// invalidation and notification that follow.
type JobService struct {
	repo        repository.JobRepository
	invalidator *cache.Invalidator
	notifier    Notifier
	logger      *zap.Logger
}

func NewJobService(repo repository.JobRepository, invalidator *cache.Invalidator, notifier Notifier, logger *zap.Logger) *JobService {
	return &JobService{repo: repo, invalidator: invalidator, notifier: notifier, logger: logger}
}

// ExpireReservations moves every active reservation past its end time to
// completed. Dashboard keys of affected users are invalidated after the
// update; notification failures are logged and never retried here.
func (s *JobService) ExpireReservations(ctx context.Context) error {
	expired, err := s.repo.ActivePastEndTime(ctx)
	if err != nil {
		return fmt.Errorf("expiry sweep: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	ids := make([]int, 0, len(expired))
	for _, e := range expired {
		ids = append(ids, e.ID)
	}

	updated, err := s.repo.MarkCompleted(ctx, ids)
	if err != nil {
		return fmt.Errorf("expiry sweep: %w", err)
	}
	s.logger.Info("expired reservations completed", zap.Int64("count", updated))

	for _, e := range expired {
		s.invalidator.Invalidate(ctx, cache.OpExpireReservation, cache.Scope{UserID: e.UserID})

		body := fmt.Sprintf("Your parking reservation #%d ended at %s and has been marked completed. Thank you for parking with us.",
			e.ID, e.EndTime.Format("02 Jan 2006 15:04 MST"))
		if err := s.notifier.NotifyEmail(e.UserEmail, "Your parking reservation has ended", body); err != nil {
			s.logger.Warn("expiry email failed", zap.Int("reservation_id", e.ID), zap.Error(err))
		}
		if e.UserPhone != "" {
			if err := s.notifier.NotifySMS(e.UserPhone, fmt.Sprintf("Parkwise: reservation #%d has ended.", e.ID)); err != nil {
				s.logger.Warn("expiry SMS failed", zap.Int("reservation_id", e.ID), zap.Error(err))
			}
		}
	}

	return nil
}
