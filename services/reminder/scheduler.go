package reminder

import (
	"fmt"
	"sync"
	"time"

	reminderRepo "campusnews/database/repository/reminder"
	"campusnews/models"

	"go.uber.org/zap"
)

// DefaultScheduler is the production Scheduler. Each active reminder owns a
// private copy of its entity and a goroutine driving its timer; the id→entry
// map is the only shared state.
type DefaultScheduler struct {
	Repo      reminderRepo.ReminderRepository
	Announcer Announcer
	Logger    *zap.Logger

	mu     sync.Mutex
	active map[int64]*scheduledReminder
}

type scheduledReminder struct {
	reminder *models.Reminder
	stop     chan struct{}
}

// NewDefaultScheduler wires the scheduler with its collaborators.
func NewDefaultScheduler(repo reminderRepo.ReminderRepository, announcer Announcer, logger *zap.Logger) *DefaultScheduler {
	return &DefaultScheduler{
		Repo:      repo,
		Announcer: announcer,
		Logger:    logger,
		active:    make(map[int64]*scheduledReminder),
	}
}

// Activate registers a timer for the reminder. Already-active reminders are
// left alone. The first fire instant is the reminder's next date advanced to
// now or later; an already-expired reminder is never armed.
func (s *DefaultScheduler) Activate(reminder *models.Reminder) error {
	if err := reminder.Validate(); err != nil {
		return fmt.Errorf("Activate: invalid reminder %d: %w", reminder.ID, err)
	}

	r := *reminder
	r.AlignNextDate(time.Now())
	if r.Expired() {
		s.Logger.Debug("reminder: not arming expired reminder", zap.Int64("id", r.ID))
		return nil
	}

	entry := &scheduledReminder{reminder: &r, stop: make(chan struct{})}
	s.mu.Lock()
	if _, ok := s.active[r.ID]; ok {
		s.mu.Unlock()
		return nil
	}
	s.active[r.ID] = entry
	s.mu.Unlock()

	s.Logger.Info("reminder: activated",
		zap.Int64("id", r.ID), zap.Time("nextDate", r.NextDate), zap.Int64("interval", r.Interval))
	go s.run(entry)
	return nil
}

// Deactivate cancels the reminder's future ticks. A tick already executing
// runs to completion.
func (s *DefaultScheduler) Deactivate(id int64) {
	s.mu.Lock()
	entry, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	s.mu.Unlock()

	if ok {
		close(entry.stop)
		s.Logger.Info("reminder: deactivated", zap.Int64("id", id))
	}
}

// retire removes the entry from the active set, but only while it is still
// the registered one. A concurrent Replace may already have re-armed the id
// with a fresh entry, which must survive a stale tick's retirement.
func (s *DefaultScheduler) retire(entry *scheduledReminder) {
	id := entry.reminder.ID

	s.mu.Lock()
	current, ok := s.active[id]
	if ok && current == entry {
		delete(s.active, id)
	} else {
		ok = false
	}
	s.mu.Unlock()

	if ok {
		close(entry.stop)
		s.Logger.Info("reminder: retired", zap.Int64("id", id))
	}
}

// Replace re-arms a reminder whose schedule-affecting fields changed.
func (s *DefaultScheduler) Replace(reminder *models.Reminder) error {
	s.Deactivate(reminder.ID)
	return s.Activate(reminder)
}

// Active reports whether a timer is currently registered for the id.
func (s *DefaultScheduler) Active(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	return ok
}

// run drives one reminder's timer until the reminder is deactivated or, for
// one-shots, after the single fire. Periodic reminders repeat at a fixed
// rate: the next tick is always NextDate, which fire advances by exactly one
// interval.
func (s *DefaultScheduler) run(entry *scheduledReminder) {
	r := entry.reminder
	timer := time.NewTimer(time.Until(r.NextDate))
	defer timer.Stop()

	for {
		select {
		case <-entry.stop:
			return
		case <-timer.C:
		}

		s.fire(entry)

		if r.Interval == 0 {
			s.retire(entry)
			return
		}
		select {
		case <-entry.stop:
			return
		default:
		}
		timer.Reset(time.Until(r.NextDate))
	}
}
