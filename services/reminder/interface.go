package reminder

import (
	"context"

	"campusnews/models"
)

// Scheduler owns the in-memory set of active reminders and their timers.
// Activating an active reminder and deactivating an unknown one are no-ops,
// never errors.
type Scheduler interface {
	Activate(reminder *models.Reminder) error
	Deactivate(id int64)
	Replace(reminder *models.Reminder) error
}

// Announcer is the message-production collaborator a firing reminder calls
// into. A failure here is logged by the fire handler; the reminder still
// advances so it never re-produces the same tick.
type Announcer interface {
	CreateFromReminder(ctx context.Context, reminder *models.Reminder) (string, error)
}
