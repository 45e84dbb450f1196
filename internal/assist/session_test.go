package assist

import (
	"errors"
	"testing"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

func newSession() *Session {
	return NewSession(i18n.For("en"))
}

func TestOpenSeedsPromptFromFieldValue(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "I am between jobs.")

	if s.State() != StateComposing {
		t.Errorf("state = %v, want Composing", s.State())
	}
	if s.Prompt() != "I am between jobs." {
		t.Errorf("prompt = %q", s.Prompt())
	}
}

func TestOpenSeedsDefaultPromptWhenFieldBlank(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldReasonForApplying, "   ")

	want := i18n.For("en").T("prompt.reasonForApplying")
	if s.Prompt() != want {
		t.Errorf("prompt = %q, want default %q", s.Prompt(), want)
	}
}

func TestBeginRequestRequiresOpenSession(t *testing.T) {
	s := newSession()
	if _, _, err := s.BeginRequest(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("err = %v, want ErrNotOpen", err)
	}
}

func TestBeginRequestRejectsBlankPrompt(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")
	s.SetPrompt("   ")

	if _, _, err := s.BeginRequest(); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("err = %v, want ErrEmptyPrompt", err)
	}
}

func TestDuplicateRequestSuppressed(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	if _, _, err := s.BeginRequest(); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, _, err := s.BeginRequest(); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("err = %v, want ErrRequestInFlight", err)
	}
}

func TestCompleteRequestSuccess(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	token, prompt, err := s.BeginRequest()
	if err != nil {
		t.Fatalf("BeginRequest failed: %v", err)
	}
	if prompt != "seed" {
		t.Errorf("prompt = %q", prompt)
	}

	if !s.CompleteRequest(token, "Generated text.", nil) {
		t.Fatal("CompleteRequest dropped a live response")
	}
	if s.State() != StateReady {
		t.Errorf("state = %v, want Ready", s.State())
	}
	if s.Suggestion() != "Generated text." {
		t.Errorf("suggestion = %q", s.Suggestion())
	}
}

func TestCompleteRequestFailureReturnsToComposing(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	token, _, _ := s.BeginRequest()
	if !s.CompleteRequest(token, "", errors.New("model unavailable")) {
		t.Fatal("CompleteRequest dropped a live response")
	}
	if s.State() != StateComposing {
		t.Errorf("state = %v, want Composing after failure", s.State())
	}
	if s.Error() != "model unavailable" {
		t.Errorf("error = %q", s.Error())
	}
	// Prompt survives so it can be retried
	if s.Prompt() != "seed" {
		t.Errorf("prompt = %q, want seed", s.Prompt())
	}
}

func TestStaleResponseDropped(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	stale, _, _ := s.BeginRequest()
	s.CompleteRequest(stale, "", errors.New("timeout"))

	// A retry issues a new token
	fresh, _, err := s.BeginRequest()
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}

	if s.CompleteRequest(stale, "late answer", nil) {
		t.Error("stale response should be dropped")
	}
	if !s.CompleteRequest(fresh, "fresh answer", nil) {
		t.Error("fresh response should land")
	}
	if s.Suggestion() != "fresh answer" {
		t.Errorf("suggestion = %q", s.Suggestion())
	}
}

func TestResponseAfterDiscardDropped(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	token, _, _ := s.BeginRequest()
	s.Discard()

	if s.CompleteRequest(token, "late answer", nil) {
		t.Error("response after discard should be dropped")
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want Idle", s.State())
	}
}

func TestAcceptReturnsFieldAndText(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldEmploymentCircumstances, "seed")

	token, _, _ := s.BeginRequest()
	s.CompleteRequest(token, "Generated text.", nil)

	// Edit before accept
	s.SetSuggestion("Edited text.")

	field, text, err := s.Accept()
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if field != schema.FieldEmploymentCircumstances {
		t.Errorf("field = %q", field)
	}
	if text != "Edited text." {
		t.Errorf("text = %q", text)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want Idle after accept", s.State())
	}
}

func TestAcceptWithoutSuggestion(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	if _, _, err := s.Accept(); !errors.Is(err, ErrNoSuggestion) {
		t.Errorf("err = %v, want ErrNoSuggestion", err)
	}
}

func TestSetSuggestionIgnoredOutsideReady(t *testing.T) {
	s := newSession()
	s.Open(schema.FieldFinancialSituation, "seed")

	s.SetSuggestion("should not stick")
	if s.Suggestion() != "" {
		t.Error("suggestion edits should only apply in Ready state")
	}
}

func TestCanGenerate(t *testing.T) {
	s := newSession()
	if s.CanGenerate() {
		t.Error("idle session cannot generate")
	}

	s.Open(schema.FieldFinancialSituation, "seed")
	if !s.CanGenerate() {
		t.Error("composing session with a prompt can generate")
	}

	s.BeginRequest()
	if s.CanGenerate() {
		t.Error("requesting session cannot generate again")
	}
}
