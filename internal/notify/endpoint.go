package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/caseworks/intake/internal/logger"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = time.Second
)

// EndpointNotifier posts the summary as JSON to a configured HTTP
// endpoint. Network errors and 5xx responses are retried with
// exponential backoff, 4xx responses fail immediately.
type EndpointNotifier struct {
	url        string
	client     *http.Client
	retries    uint64
	retryDelay time.Duration
}

// EndpointOption adjusts an EndpointNotifier.
type EndpointOption func(*EndpointNotifier)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) EndpointOption {
	return func(n *EndpointNotifier) {
		n.client.Timeout = d
	}
}

// WithRetries overrides the number of retry attempts after the first.
func WithRetries(retries int) EndpointOption {
	return func(n *EndpointNotifier) {
		if retries < 0 {
			retries = 0
		}
		n.retries = uint64(retries)
	}
}

// WithRetryDelay overrides the initial backoff interval.
func WithRetryDelay(d time.Duration) EndpointOption {
	return func(n *EndpointNotifier) {
		n.retryDelay = d
	}
}

// NewEndpointNotifier returns a notifier targeting url.
func NewEndpointNotifier(url string, opts ...EndpointOption) *EndpointNotifier {
	n := &EndpointNotifier{
		url:        url,
		client:     &http.Client{Timeout: defaultTimeout},
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type submission struct {
	Recipient string   `json:"recipient"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Summary   *Summary `json:"summary"`
}

// Send posts the summary. The returned error is the last attempt's
// failure when all retries are exhausted.
func (n *EndpointNotifier) Send(ctx context.Context, recipient string, summary *Summary) error {
	payload, err := json.Marshal(submission{
		Recipient: recipient,
		Subject:   summary.SubjectLine(),
		Body:      summary.Text(),
		Summary:   summary,
	})
	if err != nil {
		return fmt.Errorf("marshaling submission: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.retryDelay

	attempt := 0
	op := func() error {
		attempt++
		if err := n.post(ctx, payload); err != nil {
			logger.Warn("Submission attempt %d failed: %v", attempt, err)
			return err
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, n.retries), ctx))
}

func (n *EndpointNotifier) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		// Network failure, retryable
		return fmt.Errorf("posting submission: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("endpoint returned %d", resp.StatusCode)
	default:
		// Client errors will not succeed on retry
		return backoff.Permanent(fmt.Errorf("endpoint returned %d", resp.StatusCode))
	}
}
