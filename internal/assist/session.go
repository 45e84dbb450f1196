package assist

import (
	"errors"
	"strings"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

// State is the dialog's lifecycle phase.
type State int

const (
	// StateIdle means no dialog is open.
	StateIdle State = iota
	// StateComposing means the prompt is editable and no request is
	// in flight.
	StateComposing
	// StateRequesting means a generation request is outstanding.
	StateRequesting
	// StateReady means a suggestion is available to accept or edit.
	StateReady
)

var (
	ErrNotOpen         = errors.New("assist: no active session")
	ErrEmptyPrompt     = errors.New("assist: prompt is empty")
	ErrRequestInFlight = errors.New("assist: request already in flight")
	ErrNoSuggestion    = errors.New("assist: no suggestion to accept")
)

// Session tracks one help-me-write dialog for a narrative field. The
// caller runs the actual generation (usually as a background command)
// between BeginRequest and CompleteRequest; the token ties responses
// to the request that produced them so a stale response never lands.
type Session struct {
	loc *i18n.Locale

	state      State
	field      schema.Field
	prompt     string
	suggestion string
	errMsg     string
	token      int
}

// NewSession returns an idle session.
func NewSession(loc *i18n.Locale) *Session {
	return &Session{loc: loc}
}

// SetLocale swaps the locale used for default prompts.
func (s *Session) SetLocale(loc *i18n.Locale) { s.loc = loc }

func (s *Session) State() State          { return s.state }
func (s *Session) Field() schema.Field   { return s.field }
func (s *Session) Prompt() string        { return s.prompt }
func (s *Session) Suggestion() string    { return s.suggestion }
func (s *Session) Error() string         { return s.errMsg }

// Open starts a dialog for field. The prompt buffer is seeded with the
// field's current text, or with the field's default prompt when the
// field is blank.
func (s *Session) Open(field schema.Field, current string) {
	s.state = StateComposing
	s.field = field
	s.suggestion = ""
	s.errMsg = ""
	if strings.TrimSpace(current) != "" {
		s.prompt = current
	} else {
		s.prompt = s.loc.T("prompt." + string(field))
	}
}

// SetPrompt replaces the prompt buffer.
func (s *Session) SetPrompt(p string) {
	if s.state == StateIdle || s.state == StateRequesting {
		return
	}
	s.prompt = p
}

// SetSuggestion replaces the suggestion text, used when the applicant
// edits a generated suggestion before accepting it.
func (s *Session) SetSuggestion(text string) {
	if s.state != StateReady {
		return
	}
	s.suggestion = text
}

// CanGenerate reports whether a generation request may start now.
func (s *Session) CanGenerate() bool {
	return (s.state == StateComposing || s.state == StateReady) &&
		strings.TrimSpace(s.prompt) != ""
}

// BeginRequest transitions to Requesting and returns the token and
// prompt for the request. Duplicate requests while one is outstanding
// are rejected.
func (s *Session) BeginRequest() (int, string, error) {
	switch {
	case s.state == StateIdle:
		return 0, "", ErrNotOpen
	case s.state == StateRequesting:
		return 0, "", ErrRequestInFlight
	case strings.TrimSpace(s.prompt) == "":
		return 0, "", ErrEmptyPrompt
	}

	s.token++
	s.state = StateRequesting
	s.errMsg = ""
	return s.token, s.prompt, nil
}

// CompleteRequest lands a generation result. Responses carrying a
// stale token, or arriving after the dialog closed, are dropped.
func (s *Session) CompleteRequest(token int, text string, err error) bool {
	if s.state != StateRequesting || token != s.token {
		return false
	}

	if err != nil {
		s.state = StateComposing
		s.errMsg = err.Error()
		return true
	}

	s.state = StateReady
	s.suggestion = text
	s.errMsg = ""
	return true
}

// CanAccept reports whether a non-blank suggestion is available.
func (s *Session) CanAccept() bool {
	return s.state == StateReady && strings.TrimSpace(s.suggestion) != ""
}

// Accept closes the dialog and returns the field and suggestion to
// write into the form.
func (s *Session) Accept() (schema.Field, string, error) {
	if !s.CanAccept() {
		return "", "", ErrNoSuggestion
	}
	field, text := s.field, s.suggestion
	s.reset()
	return field, text, nil
}

// Discard closes the dialog without touching the form.
func (s *Session) Discard() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.field = ""
	s.prompt = ""
	s.suggestion = ""
	s.errMsg = ""
}
