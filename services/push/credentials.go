package push

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	wnsTokenEndpoint = "https://login.live.com/accesstoken.srf"
	wnsTokenScope    = "notify.windows.com"
)

// WNSCredentials holds the bearer token for the WNS gateway. Reads are
// shared; a refresh takes the exclusive lock for the duration of the token
// exchange and concurrent refresh attempts return without doing anything.
type WNSCredentials struct {
	SID      string
	Secret   string
	Endpoint string
	Logger   *zap.Logger

	mu          sync.RWMutex
	accessToken string
	client      *resty.Client
}

// NewWNSCredentials returns a credential holder for the production token
// endpoint. The holder starts without a token; the first 401 from the
// gateway triggers the initial refresh.
func NewWNSCredentials(sid, secret string, logger *zap.Logger) *WNSCredentials {
	return &WNSCredentials{
		SID:      sid,
		Secret:   secret,
		Endpoint: wnsTokenEndpoint,
		Logger:   logger,
		client:   resty.New().SetTimeout(15 * time.Second),
	}
}

// Read returns the current token, possibly empty.
func (c *WNSCredentials) Read() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// Refresh performs the client-credentials exchange. When another refresh is
// already in flight the call returns immediately; callers proceed with
// whatever token that refresh stores.
func (c *WNSCredentials) Refresh() {
	if !c.mu.TryLock() {
		return
	}
	defer c.mu.Unlock()

	resp, err := c.client.R().
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.SID,
			"client_secret": c.Secret,
			"scope":         wnsTokenScope,
		}).
		Post(c.Endpoint)
	if err != nil {
		c.Logger.Warn("wns: token exchange failed", zap.Error(err))
		c.accessToken = ""
		return
	}
	if resp.IsError() {
		c.Logger.Warn("wns: token endpoint returned error", zap.Int("status", resp.StatusCode()))
		c.accessToken = ""
		return
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		c.Logger.Warn("wns: unparseable token response", zap.Error(err))
		c.accessToken = ""
		return
	}
	c.accessToken = out.AccessToken
}
