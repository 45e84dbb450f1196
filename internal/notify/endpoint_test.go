package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/caseworks/intake/internal/i18n"
)

func testSummary() *Summary {
	return BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
}

func TestEndpointSendSuccess(t *testing.T) {
	var got submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewEndpointNotifier(srv.URL, WithRetryDelay(time.Millisecond))
	if err := n.Send(context.Background(), "case@agency.test", testSummary()); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if got.Recipient != "case@agency.test" {
		t.Errorf("recipient = %q", got.Recipient)
	}
	if got.Subject != "New Social Support Application (APP-12345678)" {
		t.Errorf("subject = %q", got.Subject)
	}
	if got.Summary == nil || len(got.Summary.Sections) != 3 {
		t.Error("payload missing structured summary")
	}
}

func TestEndpointRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewEndpointNotifier(srv.URL, WithRetryDelay(time.Millisecond))
	if err := n.Send(context.Background(), "case@agency.test", testSummary()); err != nil {
		t.Fatalf("Send should recover after transient 5xx, got: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
}

func TestEndpointDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	n := NewEndpointNotifier(srv.URL, WithRetryDelay(time.Millisecond))
	if err := n.Send(context.Background(), "case@agency.test", testSummary()); err == nil {
		t.Fatal("Send should fail on 4xx")
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestEndpointExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewEndpointNotifier(srv.URL, WithRetries(2), WithRetryDelay(time.Millisecond))
	if err := n.Send(context.Background(), "case@agency.test", testSummary()); err == nil {
		t.Fatal("Send should fail after retries are exhausted")
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3 (initial + 2 retries)", calls.Load())
	}
}

func TestEndpointNetworkErrorIsRetryable(t *testing.T) {
	// A server that closes immediately leaves nothing listening
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := NewEndpointNotifier(url, WithRetries(1), WithRetryDelay(time.Millisecond))
	if err := n.Send(context.Background(), "case@agency.test", testSummary()); err == nil {
		t.Fatal("Send should fail when the endpoint is unreachable")
	}
}

func TestEndpointHonorsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewEndpointNotifier(srv.URL, WithRetryDelay(time.Minute))
	if err := n.Send(ctx, "case@agency.test", testSummary()); err == nil {
		t.Fatal("Send should fail under a canceled context")
	}
}
