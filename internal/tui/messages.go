package tui

import (
	"github.com/caseworks/intake/internal/notify"
	"github.com/caseworks/intake/internal/schema"
)

// SubmitResultMsg carries the outcome of the notification send.
type SubmitResultMsg struct {
	Summary *notify.Summary
	Err     error
}

// SuggestionResultMsg carries a generation result back to the assist
// dialog. Token ties it to the request that produced it.
type SuggestionResultMsg struct {
	Token int
	Text  string
	Err   error
}

// FieldEditedMsg carries content back from an external editor session.
type FieldEditedMsg struct {
	Field   schema.Field
	Content string
}

// SummaryExportedMsg reports where the submitted summary was written.
type SummaryExportedMsg struct {
	Path string
	Err  error
}

// TabExitForwardMsg signals that focus ran off the end of the step's
// inputs and should move to the buttons.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg signals that focus ran off the start of the
// step's inputs and should move to the buttons from the end.
type TabExitBackwardMsg struct{}
