package push

import "campusnews/models"

// PushService is the entry point used by the rest of the system to request a
// notification. Accepted requests are fire-and-forget: delivery failures are
// logged, never returned to the caller.
type PushService interface {
	RequestNotification(pushType models.PushType, recipients []models.PushRecipient, id1 int64, id2, id3 *int64)
}

// Sender delivers one serialized payload to a batch of same-platform tokens.
// Implementations own their batching and retry policy and must never block
// the dispatch path's caller.
type Sender interface {
	Send(tokens []string, payload []byte)
}
