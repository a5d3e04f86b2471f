package announcement

import (
	"context"

	"campusnews/models"
)

// Service publishes announcements: persist first, then request a push to the
// owning channel's subscribers.
type Service interface {
	Create(ctx context.Context, announcement models.Announcement) (string, error)
	CreateFromReminder(ctx context.Context, reminder *models.Reminder) (string, error)
	ListByChannel(ctx context.Context, channelID int64) ([]models.Announcement, error)
}
