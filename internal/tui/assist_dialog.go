package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/caseworks/intake/internal/assist"
	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/tui/theme"
)

const assistTimeout = 30 * time.Second

// assistDialog is the modal for the help-me-write flow. The session
// owns the protocol state; this component renders it and converts
// keys into session operations.
type assistDialog struct {
	session *assist.Session
	gen     assist.Generator
	loc     *i18n.Locale

	// Supplies the applicant's answers for request grounding
	values func() schema.Values

	promptArea     textarea.Model
	suggestionArea textarea.Model
	editing        bool // True when the suggestion area is editable
	emptyResult    bool // Last failure was an empty completion
	width          int
}

func newAssistDialog(session *assist.Session, gen assist.Generator, loc *i18n.Locale) *assistDialog {
	pa := textarea.New()
	pa.CharLimit = 2000
	pa.SetHeight(3)
	pa.SetWidth(60)

	sa := textarea.New()
	sa.CharLimit = 4000
	sa.SetHeight(8)
	sa.SetWidth(60)

	return &assistDialog{
		session:        session,
		gen:            gen,
		loc:            loc,
		promptArea:     pa,
		suggestionArea: sa,
	}
}

// Opened syncs the widget state after Session.Open.
func (d *assistDialog) Opened() tea.Cmd {
	d.promptArea.SetValue(d.session.Prompt())
	d.suggestionArea.SetValue("")
	d.editing = false
	return d.promptArea.Focus()
}

// Update handles dialog input. Returns a command and whether the
// dialog swallowed the message.
func (d *assistDialog) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			d.session.Discard()
			return nil, true
		case "enter":
			if !d.editing {
				return d.generate(), true
			}
		case "ctrl+e":
			if d.session.State() == assist.StateReady {
				d.editing = true
				d.promptArea.Blur()
				return d.suggestionArea.Focus(), true
			}
		case "ctrl+y":
			return nil, false // Accept is handled by the app model
		}

		if d.session.State() == assist.StateRequesting {
			// Typing is ignored while a request is outstanding
			return nil, true
		}

		var cmd tea.Cmd
		if d.editing {
			d.suggestionArea, cmd = d.suggestionArea.Update(msg)
			d.session.SetSuggestion(d.suggestionArea.Value())
		} else {
			d.promptArea, cmd = d.promptArea.Update(msg)
			d.session.SetPrompt(d.promptArea.Value())
		}
		return cmd, true

	case SuggestionResultMsg:
		if d.session.CompleteRequest(msg.Token, msg.Text, msg.Err) {
			d.emptyResult = errors.Is(msg.Err, assist.ErrNoContent)
			if msg.Err == nil {
				d.suggestionArea.SetValue(msg.Text)
				d.editing = false
			}
		}
		return nil, true
	}

	return nil, false
}

// generate kicks off a generation request as a background command.
func (d *assistDialog) generate() tea.Cmd {
	token, prompt, err := d.session.BeginRequest()
	if err != nil {
		return nil
	}

	request := prompt
	if d.values != nil {
		request = assist.GroundedPrompt(d.loc, d.session.Field(), prompt, d.values())
	}

	gen := d.gen
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
		defer cancel()

		text, err := gen.Generate(ctx, request)
		return SuggestionResultMsg{Token: token, Text: text, Err: err}
	}
}

func (d *assistDialog) View() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Italic(true)

	title := titleStyle.Render(d.loc.T("assist.title"))

	var suggestion string
	if d.session.State() == assist.StateRequesting {
		suggestion = hintStyle.Render(d.loc.T("assist.generating"))
	} else {
		suggestion = d.suggestionArea.View()
	}

	parts := []string{
		title,
		labelStyle.Render(d.loc.T("assist.suggestion")),
		suggestion,
		"",
		labelStyle.Render(d.loc.T("assist.prompt")),
		d.promptArea.View(),
	}

	failKey := "assist.failed"
	if d.emptyResult {
		failKey = "assist.empty"
	}
	if errMsg := d.session.Error(); errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true)
		parts = append(parts, "", errStyle.Render("✗ "+d.loc.T(failKey)))
	}

	hints := []string{
		"enter " + d.loc.T("assist.generate"),
	}
	if d.session.CanAccept() {
		hints = append(hints,
			"ctrl+y "+d.loc.T("assist.accept"),
			"ctrl+e "+d.loc.T("assist.edit"),
		)
	}
	hints = append(hints, "esc "+d.loc.T("assist.discard"))
	parts = append(parts, "", hintStyle.Render(strings.Join(hints, " • ")))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	modalStyle := lipgloss.NewStyle().
		Width(d.modalWidth()).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderFocus))

	return modalStyle.Render(content)
}

func (d *assistDialog) modalWidth() int {
	if d.width > 0 && d.width < 70 {
		return d.width
	}
	return 70
}

func (d *assistDialog) SetSize(width, height int) {
	d.width = width
	areaWidth := d.modalWidth() - 6
	if areaWidth < 20 {
		areaWidth = 20
	}
	d.promptArea.SetWidth(areaWidth)
	d.suggestionArea.SetWidth(areaWidth)
}
