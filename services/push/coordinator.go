package push

import (
	"sync"
	"time"

	"campusnews/models"

	"go.uber.org/zap"
)

// DefaultCoalesceWindow is how long burst-prone push types are held back so
// that logically-identical requests collapse into one dispatch.
const DefaultCoalesceWindow = 5 * time.Second

// DefaultPushService coalesces burst-prone requests and fans dispatch out to
// the per-platform senders.
type DefaultPushService struct {
	Senders map[models.Platform]Sender
	Window  time.Duration
	Logger  *zap.Logger

	mu      sync.Mutex
	pending map[models.PushKey]*pendingPush
}

// pendingPush tracks one cached request and how many logically-equivalent
// requests arrived while it waited for its flush.
type pendingPush struct {
	message *models.PushMessage
	count   int
}

// NewDefaultPushService wires the coordinator with its platform senders.
func NewDefaultPushService(senders map[models.Platform]Sender, window time.Duration, logger *zap.Logger) *DefaultPushService {
	if window <= 0 {
		window = DefaultCoalesceWindow
	}
	return &DefaultPushService{
		Senders: senders,
		Window:  window,
		Logger:  logger,
		pending: make(map[models.PushKey]*pendingPush),
	}
}

// RequestNotification accepts a push request. Coalescing-eligible types are
// debounced for the configured window; everything else dispatches right away.
// An empty recipient list is a no-op.
func (s *DefaultPushService) RequestNotification(pushType models.PushType, recipients []models.PushRecipient, id1 int64, id2, id3 *int64) {
	if len(recipients) == 0 {
		return
	}

	msg := &models.PushMessage{
		Type:       pushType,
		Recipients: recipients,
		ID1:        id1,
		ID2:        id2,
		ID3:        id3,
	}

	if !pushType.Coalescing() {
		s.dispatch(msg)
		return
	}

	key := msg.Key()
	s.mu.Lock()
	if entry, ok := s.pending[key]; ok {
		// An equivalent request is already waiting; absorb this one.
		entry.count++
		s.mu.Unlock()
		return
	}
	s.pending[key] = &pendingPush{message: msg, count: 1}
	s.mu.Unlock()

	time.AfterFunc(s.Window, func() { s.flush(msg, key) })
}

// flush runs once per cached request after the window elapses. When more than
// one equivalent request arrived, the message is rewritten to its bulk
// variant before dispatch.
func (s *DefaultPushService) flush(msg *models.PushMessage, key models.PushKey) {
	s.mu.Lock()
	entry, ok := s.pending[key]
	delete(s.pending, key)
	s.mu.Unlock()

	if ok && entry.count > 1 {
		s.Logger.Debug("push: coalesced burst into bulk notification",
			zap.String("pushType", string(msg.Type)), zap.Int("absorbed", entry.count))
		msg.Type = msg.Type.Bulk()
	}
	s.dispatch(msg)
}

// dispatch partitions the recipients by platform and hands every non-empty
// partition to its sender on its own goroutine, so a slow gateway never
// delays the caller.
func (s *DefaultPushService) dispatch(msg *models.PushMessage) {
	payload, err := msg.Payload()
	if err != nil {
		s.Logger.Error("push: failed to serialize payload",
			zap.String("pushType", string(msg.Type)), zap.Error(err))
		return
	}

	partitions := make(map[models.Platform][]string)
	for _, r := range msg.Recipients {
		partitions[r.Platform] = append(partitions[r.Platform], r.Token)
	}

	for platform, tokens := range partitions {
		sender, ok := s.Senders[platform]
		if !ok {
			s.Logger.Warn("push: no sender registered for platform",
				zap.String("platform", string(platform)), zap.Int("tokens", len(tokens)))
			continue
		}
		go sender.Send(tokens, payload)
	}
}
