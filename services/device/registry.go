package device

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	deviceRepo "campusnews/database/repository/device"
	"campusnews/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 10 * time.Minute

// DefaultDeviceRegistry is the production Registry: MongoDB-backed with a
// Redis cache for per-channel recipient lists.
type DefaultDeviceRegistry struct {
	Repo   deviceRepo.DeviceRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

func cacheKey(channelID int64) string {
	return fmt.Sprintf("channel:%d:recipients", channelID)
}

// Subscribe registers a device for a channel and drops the cached list.
func (s *DefaultDeviceRegistry) Subscribe(ctx context.Context, device models.Device) error {
	if err := s.Repo.Subscribe(ctx, device); err != nil {
		return fmt.Errorf("Subscribe: failed to store device: %w", err)
	}
	s.invalidate(ctx, device.ChannelID)
	return nil
}

// Unsubscribe removes a device from a channel and drops the cached list.
func (s *DefaultDeviceRegistry) Unsubscribe(ctx context.Context, channelID int64, token string) error {
	if err := s.Repo.Unsubscribe(ctx, channelID, token); err != nil {
		return fmt.Errorf("Unsubscribe: failed to remove device: %w", err)
	}
	s.invalidate(ctx, channelID)
	return nil
}

// RecipientsForChannel returns the channel's subscribers as push recipients.
func (s *DefaultDeviceRegistry) RecipientsForChannel(ctx context.Context, channelID int64) ([]models.PushRecipient, error) {
	key := cacheKey(channelID)

	if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
		var recipients []models.PushRecipient
		if err := json.Unmarshal([]byte(cached), &recipients); err == nil {
			return recipients, nil
		}
		// A corrupt entry falls through to the store.
	}

	devices, err := s.Repo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("RecipientsForChannel: failed to load devices for channel %d: %w", channelID, err)
	}

	recipients := make([]models.PushRecipient, 0, len(devices))
	for _, d := range devices {
		recipients = append(recipients, models.PushRecipient{Platform: d.Platform, Token: d.Token})
	}

	if raw, err := json.Marshal(recipients); err == nil {
		if err := s.Cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			s.Logger.Warn("device: failed to cache recipients", zap.Int64("channelId", channelID), zap.Error(err))
		}
	}
	return recipients, nil
}

func (s *DefaultDeviceRegistry) invalidate(ctx context.Context, channelID int64) {
	if err := s.Cache.Del(ctx, cacheKey(channelID)).Err(); err != nil {
		s.Logger.Warn("device: failed to invalidate recipient cache", zap.Int64("channelId", channelID), zap.Error(err))
	}
}
