package push

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestWNSSender(tokenEndpoint string) *WNSSender {
	creds := NewWNSCredentials("sid", "secret", zap.NewNop())
	if tokenEndpoint != "" {
		creds.Endpoint = tokenEndpoint
	}
	return NewWNSSender(creds, zap.NewNop())
}

func TestWNSSenderStatusHandling(t *testing.T) {
	cases := []struct {
		name         string
		status       int
		wantAttempts int32
	}{
		{"success stops after first attempt", http.StatusOK, 1},
		{"not found is terminal", http.StatusNotFound, 1},
		{"gone is terminal", http.StatusGone, 1},
		{"throttled is terminal", http.StatusNotAcceptable, 1},
		{"server error retries once", http.StatusInternalServerError, 2},
		{"unauthorized retries once", http.StatusUnauthorized, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var attempts int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&attempts, 1)
				if got := r.Header.Get("X-WNS-Type"); got != "wns/raw" {
					t.Errorf("X-WNS-Type = %q", got)
				}
				if got := r.Header.Get("X-WNS-Cache-Policy"); got != "cache" {
					t.Errorf("X-WNS-Cache-Policy = %q", got)
				}
				if got := r.Header.Get("Content-Type"); got != "application/octet-stream" {
					t.Errorf("Content-Type = %q", got)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"access_token":"fresh"}`)
			}))
			defer tokenSrv.Close()

			s := newTestWNSSender(tokenSrv.URL)
			s.Send([]string{srv.URL}, []byte("raw-bytes"))

			// The 401 case refreshes on a background goroutine; give it a beat.
			time.Sleep(50 * time.Millisecond)
			if got := atomic.LoadInt32(&attempts); got != tc.wantAttempts {
				t.Fatalf("saw %d attempts, want %d", got, tc.wantAttempts)
			}
		})
	}
}

func TestWNSSenderMalformedTokenNotAttempted(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer srv.Close()

	s := newTestWNSSender("")
	s.Send([]string{"not a channel uri"}, []byte("raw-bytes"))

	if got := atomic.LoadInt32(&attempts); got != 0 {
		t.Fatalf("malformed token was attempted %d times", got)
	}
}

func TestWNSSenderUnauthorizedTriggersRefresh(t *testing.T) {
	var refreshes int32
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "client_credentials" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.PostForm.Get("scope"); got != "notify.windows.com" {
			t.Errorf("scope = %q", got)
		}
		fmt.Fprint(w, `{"access_token":"fresh"}`)
	}))
	defer tokenSrv.Close()

	var mu sync.Mutex
	var bearers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		bearers = append(bearers, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := newTestWNSSender(tokenSrv.URL)
	s.Send([]string{srv.URL}, []byte("raw-bytes"))

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&refreshes) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if atomic.LoadInt32(&refreshes) == 0 {
		t.Fatal("stale token must trigger a refresh")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bearers) != wnsMaxAttempts {
		t.Fatalf("saw %d attempts, want %d", len(bearers), wnsMaxAttempts)
	}
	// The server trims trailing whitespace, so the empty initial token
	// arrives as a bare scheme.
	if bearers[0] != "Bearer" {
		t.Fatalf("first attempt should carry the empty initial token, got %q", bearers[0])
	}
}

func TestWNSSenderCountsSuccesses(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okSrv.Close()
	goneSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer goneSrv.Close()

	s := newTestWNSSender("")
	// Mixed outcomes in one batch exercise the per-token isolation.
	s.Send([]string{okSrv.URL, goneSrv.URL, "garbage"}, []byte("raw-bytes"))
}
