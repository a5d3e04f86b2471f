package push

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestFCMSenderBatches(t *testing.T) {
	var mu sync.Mutex
	var batchSizes []int
	var messages []string
	var authHeaders []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req fcmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		batchSizes = append(batchSizes, len(req.RegistrationIDs))
		messages = append(messages, req.Data.Message)
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		fmt.Fprintf(w, `{"success":%d,"failure":0}`, len(req.RegistrationIDs))
	}))
	defer srv.Close()

	s := NewFCMSender("test-key", zap.NewNop())
	s.Endpoint = srv.URL

	tokens := make([]string, 2500)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("reg-%d", i)
	}
	payload := []byte(`{"pushType":"ANNOUNCEMENT_NEW","id1":1,"id2":null,"id3":null}`)

	s.Send(tokens, payload)

	mu.Lock()
	defer mu.Unlock()
	if len(batchSizes) != 3 {
		t.Fatalf("2500 tokens must produce 3 batches, got %d", len(batchSizes))
	}
	want := []int{1000, 1000, 500}
	for i, size := range batchSizes {
		if size != want[i] {
			t.Errorf("batch %d has %d tokens, want %d", i, size, want[i])
		}
	}
	for i, msg := range messages {
		if msg != string(payload) {
			t.Errorf("batch %d carried payload %s", i, msg)
		}
	}
	for i, auth := range authHeaders {
		if auth != "key=test-key" {
			t.Errorf("batch %d authorization %q", i, auth)
		}
	}
}

func TestFCMSenderNoRetryOnGatewayError(t *testing.T) {
	var mu sync.Mutex
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewFCMSender("test-key", zap.NewNop())
	s.Endpoint = srv.URL

	s.Send([]string{"reg-1", "reg-2"}, []byte(`{}`))

	mu.Lock()
	defer mu.Unlock()
	if requests != 1 {
		t.Fatalf("failed batch must not be retried, saw %d requests", requests)
	}
}
