package push

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	fcmEndpoint = "https://fcm.googleapis.com/fcm/send"
	// fcmBatchLimit is the gateway's cap on registration ids per request.
	fcmBatchLimit = 1000
)

// FCMSender delivers notifications through the FCM legacy HTTP gateway.
// Failed batches are logged and not retried; the gateway reports per-token
// results in its response body.
type FCMSender struct {
	APIKey   string
	Endpoint string
	Logger   *zap.Logger

	client *resty.Client
}

// NewFCMSender returns a sender for the production FCM endpoint.
func NewFCMSender(apiKey string, logger *zap.Logger) *FCMSender {
	return &FCMSender{
		APIKey:   apiKey,
		Endpoint: fcmEndpoint,
		Logger:   logger,
		client:   resty.New().SetTimeout(15 * time.Second),
	}
}

type fcmRequest struct {
	Data            fcmData  `json:"data"`
	RegistrationIDs []string `json:"registration_ids"`
}

type fcmData struct {
	Message string `json:"message"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Send posts the payload to the gateway in batches of at most 1000 tokens.
func (s *FCMSender) Send(tokens []string, payload []byte) {
	var success, failure int

	for start := 0; start < len(tokens); start += fcmBatchLimit {
		end := min(start+fcmBatchLimit, len(tokens))
		batch := tokens[start:end]

		resp, err := s.client.R().
			SetHeader("Authorization", "key="+s.APIKey).
			SetHeader("Content-Type", "application/json").
			SetBody(fcmRequest{
				Data:            fcmData{Message: string(payload)},
				RegistrationIDs: batch,
			}).
			Post(s.Endpoint)
		if err != nil {
			s.Logger.Warn("fcm: batch send failed", zap.Int("tokens", len(batch)), zap.Error(err))
			continue
		}
		if resp.StatusCode() != http.StatusOK {
			s.Logger.Warn("fcm: gateway rejected batch",
				zap.Int("status", resp.StatusCode()), zap.Int("tokens", len(batch)))
			continue
		}
		var out fcmResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			s.Logger.Warn("fcm: unparseable gateway response", zap.Error(err))
			continue
		}
		success += out.Success
		failure += out.Failure
	}

	s.Logger.Info("fcm: dispatch finished",
		zap.Int("tokens", len(tokens)), zap.Int("success", success), zap.Int("failure", failure))
}
