package push

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// wnsMaxAttempts caps the per-token delivery loop: one retry beyond the
// first attempt.
const wnsMaxAttempts = 2

type sendState int

const (
	stateSuccess sendState = iota
	stateRetryable
	stateTerminal
)

// WNSSender delivers raw notifications to WNS channel URIs with bearer-token
// auth. A stale token surfaces as 401, which triggers an asynchronous
// refresh and one more attempt with whatever token is available by then.
type WNSSender struct {
	Credentials *WNSCredentials
	Logger      *zap.Logger

	client *resty.Client
}

// NewWNSSender returns a sender backed by the given credential holder.
func NewWNSSender(credentials *WNSCredentials, logger *zap.Logger) *WNSSender {
	return &WNSSender{
		Credentials: credentials,
		Logger:      logger,
		client:      resty.New().SetTimeout(15 * time.Second),
	}
}

// Send delivers the payload to every channel URI and logs how many succeeded.
func (s *WNSSender) Send(tokens []string, payload []byte) {
	var success int
	for _, channelURI := range tokens {
		if s.sendOne(channelURI, payload) {
			success++
		}
	}
	s.Logger.Info("wns: dispatch finished", zap.Int("tokens", len(tokens)), zap.Int("success", success))
}

// sendOne runs the per-token attempt loop. It stops on success, on a
// terminal failure, or once both attempts are used up.
func (s *WNSSender) sendOne(channelURI string, payload []byte) bool {
	u, err := url.Parse(channelURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		s.Logger.Warn("wns: malformed channel URI, not attempted", zap.String("uri", channelURI))
		return false
	}

	for attempt := 1; attempt <= wnsMaxAttempts; attempt++ {
		switch s.attempt(channelURI, payload) {
		case stateSuccess:
			return true
		case stateTerminal:
			return false
		}
		// Retryable: the attempt is consumed, loop if one remains.
	}
	return false
}

func (s *WNSSender) attempt(channelURI string, payload []byte) sendState {
	token := s.Credentials.Read()

	resp, err := s.client.R().
		SetHeader("X-WNS-Type", "wns/raw").
		SetHeader("X-WNS-Cache-Policy", "cache").
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader("Authorization", "Bearer "+token).
		SetBody(payload).
		Post(channelURI)
	if err != nil {
		s.Logger.Warn("wns: transport error", zap.Error(err))
		return stateRetryable
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return stateSuccess
	case http.StatusUnauthorized:
		// Token went stale. Kick off a refresh without blocking this batch.
		go s.Credentials.Refresh()
		return stateRetryable
	case http.StatusNotFound, http.StatusGone:
		s.Logger.Warn("wns: channel no longer registered", zap.Int("status", resp.StatusCode()))
		return stateTerminal
	case http.StatusNotAcceptable:
		s.Logger.Warn("wns: throttled by gateway, dropping notification")
		return stateTerminal
	default:
		s.Logger.Warn("wns: unexpected gateway status", zap.Int("status", resp.StatusCode()))
		return stateRetryable
	}
}
