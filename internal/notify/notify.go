package notify

import "context"

// Notifier delivers a submitted application summary to the configured
// recipient.
type Notifier interface {
	Send(ctx context.Context, recipient string, summary *Summary) error
}
