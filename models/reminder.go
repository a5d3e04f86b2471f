package models

import (
	"errors"
	"time"
)

const (
	// ReminderMinInterval is one day in seconds, the granularity of periodic reminders.
	ReminderMinInterval = 86400
	// ReminderMaxInterval is 28 days in seconds.
	ReminderMaxInterval = 28 * 86400
)

var (
	ErrReminderInterval = errors.New("reminder interval must be 0 or a multiple of 86400 in [86400, 2419200]")
	ErrReminderDates    = errors.New("reminder start date must not be after end date")
)

// Reminder is a persisted, time-driven rule that periodically yields an
// announcement in its owning channel. Interval 0 means one-shot.
type Reminder struct {
	ID          int64     `bson:"id" json:"id"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	ModifiedAt  time.Time `bson:"modifiedAt" json:"modifiedAt"`
	StartDate   time.Time `bson:"startDate" json:"startDate"`
	NextDate    time.Time `bson:"nextDate" json:"nextDate"`
	EndDate     time.Time `bson:"endDate" json:"endDate"`
	Interval    int64     `bson:"interval" json:"interval"` // seconds
	IgnoreNext  bool      `bson:"ignoreNextFire" json:"ignoreNextFire"`
	Title       string    `bson:"title" json:"title"`
	Text        string    `bson:"text" json:"text"`
	Priority    int       `bson:"priority" json:"priority"`
	ChannelID   int64     `bson:"channelId" json:"channelId"`
	ModeratorID int64     `bson:"moderatorId" json:"moderatorId"`
}

// Validate checks the schedule-affecting invariants before a reminder may be
// persisted or activated.
func (r *Reminder) Validate() error {
	if r.Interval != 0 {
		if r.Interval%ReminderMinInterval != 0 || r.Interval < ReminderMinInterval || r.Interval > ReminderMaxInterval {
			return ErrReminderInterval
		}
	}
	if r.StartDate.After(r.EndDate) {
		return ErrReminderDates
	}
	return nil
}

// AlignNextDate advances NextDate to the first fire instant at or after now.
// One-shot reminders keep their NextDate; a past NextDate fires immediately
// on activation.
func (r *Reminder) AlignNextDate(now time.Time) {
	if r.NextDate.IsZero() {
		r.NextDate = r.StartDate
	}
	if r.Interval == 0 {
		return
	}
	step := time.Duration(r.Interval) * time.Second
	for r.NextDate.Before(now) {
		r.NextDate = r.NextDate.Add(step)
	}
}

// Advance moves NextDate one interval forward after a fire. No-op for
// one-shot reminders.
func (r *Reminder) Advance() {
	if r.Interval == 0 {
		return
	}
	r.NextDate = r.NextDate.Add(time.Duration(r.Interval) * time.Second)
}

// Expired reports whether the reminder will never fire again. An expired
// reminder must be retired and never re-armed.
func (r *Reminder) Expired() bool {
	return r.NextDate.After(r.EndDate)
}
