package announcement

import (
	"context"
	"fmt"

	announcementRepo "campusnews/database/repository/announcement"
	"campusnews/models"
	"campusnews/services/device"
	"campusnews/services/push"

	"go.uber.org/zap"
)

// DefaultAnnouncementService is the production Service.
type DefaultAnnouncementService struct {
	Repo    announcementRepo.AnnouncementRepository
	Devices device.Registry
	Push    push.PushService
	Logger  *zap.Logger
}

// Create persists the announcement and requests a push to the channel's
// subscribers. Failing to resolve or notify subscribers does not undo the
// persisted announcement.
func (s *DefaultAnnouncementService) Create(ctx context.Context, announcement models.Announcement) (string, error) {
	id, err := s.Repo.Create(ctx, announcement)
	if err != nil {
		return "", fmt.Errorf("Create: failed to persist announcement: %w", err)
	}

	recipients, err := s.Devices.RecipientsForChannel(ctx, announcement.ChannelID)
	if err != nil {
		s.Logger.Warn("announcement: could not resolve channel recipients, push skipped",
			zap.Int64("channelId", announcement.ChannelID), zap.Error(err))
		return id, nil
	}
	s.Push.RequestNotification(models.PushAnnouncementNew, recipients, announcement.ChannelID, nil, nil)

	return id, nil
}

// ListByChannel returns the channel's announcements, newest first.
func (s *DefaultAnnouncementService) ListByChannel(ctx context.Context, channelID int64) ([]models.Announcement, error) {
	announcements, err := s.Repo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("ListByChannel: failed to load announcements for channel %d: %w", channelID, err)
	}
	return announcements, nil
}

// CreateFromReminder builds an announcement from the reminder's payload
// fields valid at this tick.
func (s *DefaultAnnouncementService) CreateFromReminder(ctx context.Context, reminder *models.Reminder) (string, error) {
	return s.Create(ctx, models.Announcement{
		ChannelID:   reminder.ChannelID,
		ModeratorID: reminder.ModeratorID,
		Title:       reminder.Title,
		Text:        reminder.Text,
		Priority:    reminder.Priority,
		ReminderID:  reminder.ID,
	})
}
