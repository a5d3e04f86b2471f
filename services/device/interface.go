package device

import (
	"context"

	"campusnews/models"
)

// Registry resolves and maintains the push endpoints subscribed to a
// channel. Lookups are served from a cache in front of the store; writes
// invalidate it.
type Registry interface {
	Subscribe(ctx context.Context, device models.Device) error
	Unsubscribe(ctx context.Context, channelID int64, token string) error
	RecipientsForChannel(ctx context.Context, channelID int64) ([]models.PushRecipient, error)
}
