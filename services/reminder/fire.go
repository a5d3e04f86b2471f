package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// fireTimeout bounds the collaborator calls made by one tick.
const fireTimeout = 10 * time.Second

// fire handles one scheduled tick. An expired reminder is retired without
// producing anything. A set ignore flag skips exactly one production. The
// next date advances after production so the announcement reflects the
// fields valid at this tick, and it advances even when production fails.
func (s *DefaultScheduler) fire(entry *scheduledReminder) {
	r := entry.reminder
	if r.Expired() {
		s.retire(entry)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	if r.IgnoreNext {
		r.IgnoreNext = false
		if err := s.Repo.SetIgnoreFlag(ctx, r.ID, false); err != nil {
			s.Logger.Error("reminder: failed to persist cleared ignore flag",
				zap.Int64("id", r.ID), zap.Error(err))
		}
		s.Logger.Info("reminder: tick skipped by ignore flag", zap.Int64("id", r.ID))
	} else {
		if _, err := s.Announcer.CreateFromReminder(ctx, r); err != nil {
			s.Logger.Error("reminder: announcement production failed",
				zap.Int64("id", r.ID), zap.Error(err))
		}
	}

	r.Advance()
	if r.Expired() {
		s.retire(entry)
	}
}
