package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/caseworks/intake/internal/i18n"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSend(t *testing.T) {
	fake := &fakeSES{}
	n := &SESNotifier{client: fake, sender: "noreply@agency.test"}

	summary := BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
	if err := n.Send(context.Background(), "case@agency.test", summary); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if fake.input == nil {
		t.Fatal("SendEmail was not called")
	}
	if got := aws.ToString(fake.input.Source); got != "noreply@agency.test" {
		t.Errorf("source = %q", got)
	}
	if got := fake.input.Destination.ToAddresses; len(got) != 1 || got[0] != "case@agency.test" {
		t.Errorf("destination = %v", got)
	}
	if got := aws.ToString(fake.input.Message.Subject.Data); got != "New Social Support Application (APP-12345678)" {
		t.Errorf("subject = %q", got)
	}
	body := aws.ToString(fake.input.Message.Body.Text.Data)
	if !strings.Contains(body, "Alex") {
		t.Error("body missing applicant name")
	}
}

func TestSESSendError(t *testing.T) {
	fake := &fakeSES{err: errors.New("throttled")}
	n := &SESNotifier{client: fake, sender: "noreply@agency.test"}

	summary := BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
	if err := n.Send(context.Background(), "case@agency.test", summary); err == nil {
		t.Fatal("Send should surface the SES error")
	}
}
