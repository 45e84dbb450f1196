package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/caseworks/intake/internal/logger"
)

// sesAPI is the slice of the SES client the notifier uses.
type sesAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier delivers the summary email through Amazon SES.
type SESNotifier struct {
	client sesAPI
	sender string
}

// NewSESNotifier builds a notifier from the default AWS credential
// chain. sender must be an SES-verified address.
func NewSESNotifier(ctx context.Context, region, sender string) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &SESNotifier{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

// Send emails the plain-text summary to the recipient.
func (n *SESNotifier) Send(ctx context.Context, recipient string, summary *Summary) error {
	input := &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(summary.SubjectLine()),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(summary.Text()),
				},
			},
		},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	logger.Info("Summary email sent, message ID %s", aws.ToString(out.MessageId))
	return nil
}
