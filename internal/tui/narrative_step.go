package tui

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/editor"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/tui/theme"
	"github.com/caseworks/intake/internal/wizard"
)

// narrativeArea is one free-text question with its textarea.
type narrativeArea struct {
	field schema.Field
	area  textarea.Model
}

// narrativeStep renders the three free-text questions and hosts the
// entry points for the assist dialog and external editing.
type narrativeStep struct {
	ctrl       *wizard.Controller
	loc        *i18n.Locale
	areas      []*narrativeArea
	focus      int // Index of focused area, -1 = none
	width      int
	height     int
	assistHint bool
}

func newNarrativeStep(ctrl *wizard.Controller, loc *i18n.Locale) *narrativeStep {
	s := &narrativeStep{
		ctrl:  ctrl,
		loc:   loc,
		focus: -1,
	}

	for _, f := range schema.NarrativeFields() {
		ta := textarea.New()
		ta.CharLimit = 2000
		ta.SetHeight(4)
		ta.SetWidth(60)
		ta.SetValue(ctrl.Engine().Value(f))
		s.areas = append(s.areas, &narrativeArea{field: f, area: ta})
	}
	return s
}

func (s *narrativeStep) Init() tea.Cmd {
	return textarea.Blink
}

func (s *narrativeStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			return s.focusDelta(1)
		case "shift+tab":
			return s.focusDelta(-1)
		case "ctrl+e":
			return s.openEditor()
		}

	case FieldEditedMsg:
		for _, a := range s.areas {
			if a.field == msg.Field {
				a.area.SetValue(strings.TrimRight(msg.Content, "\n"))
				s.ctrl.SetValue(a.field, a.area.Value())
			}
		}
		return nil
	}

	if s.focus < 0 || s.focus >= len(s.areas) {
		return nil
	}

	a := s.areas[s.focus]
	var cmd tea.Cmd
	a.area, cmd = a.area.Update(msg)

	if _, ok := msg.(tea.KeyPressMsg); ok {
		if a.area.Value() != s.ctrl.Engine().Value(a.field) {
			s.ctrl.SetValue(a.field, a.area.Value())
		}
	}
	return cmd
}

func (s *narrativeStep) focusDelta(delta int) tea.Cmd {
	next := s.focus + delta
	if next >= len(s.areas) {
		s.Blur()
		return func() tea.Msg { return TabExitForwardMsg{} }
	}
	if next < 0 {
		s.Blur()
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}

	if s.focus >= 0 && s.focus < len(s.areas) {
		s.areas[s.focus].area.Blur()
	}
	s.focus = next
	return s.areas[s.focus].area.Focus()
}

// FocusedField returns the field under focus, or "" when none.
func (s *narrativeStep) FocusedField() schema.Field {
	if s.focus < 0 || s.focus >= len(s.areas) {
		return ""
	}
	return s.areas[s.focus].field
}

// SetFieldValue writes an accepted suggestion into the area and the
// form.
func (s *narrativeStep) SetFieldValue(f schema.Field, value string) {
	for _, a := range s.areas {
		if a.field == f {
			a.area.SetValue(value)
		}
	}
	s.ctrl.SetValue(f, value)
}

// openEditor hands the focused field to $EDITOR via a temp file.
func (s *narrativeStep) openEditor() tea.Cmd {
	if s.focus < 0 || s.focus >= len(s.areas) {
		return nil
	}
	a := s.areas[s.focus]

	tmpfile, err := os.CreateTemp("", "intake_*.txt")
	if err != nil {
		return nil // Silently fail - editor not available
	}
	if _, err := tmpfile.WriteString(a.area.Value()); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	cmd, err := editor.Command("intake", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	field := a.field
	path := tmpfile.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		return FieldEditedMsg{Field: field, Content: string(content)}
	})
}

func (s *narrativeStep) View() string {
	t := theme.Current()
	engine := s.ctrl.Engine()

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Italic(true)

	parts := make([]string, 0, len(s.areas)*3)
	for i, a := range s.areas {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts,
			renderFieldLabel(s.loc, a.field, a.area.Focused()),
			a.area.View(),
		)
		if e := renderFieldError(engine.FieldError(a.field)); e != "" {
			parts = append(parts, e)
		}
	}

	var hints []string
	if s.assistHint {
		hints = append(hints, "ctrl+g "+s.loc.T("assist.helpMeWrite"))
	}
	if os.Getenv("EDITOR") != "" {
		hints = append(hints, "ctrl+e "+s.loc.T("assist.editExternal"))
	}
	if len(hints) > 0 {
		parts = append(parts, "", hintStyle.Render(strings.Join(hints, " • ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *narrativeStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	areaWidth := width - 4
	if areaWidth < 20 {
		areaWidth = 20
	}
	for _, a := range s.areas {
		a.area.SetWidth(areaWidth)
	}
}

func (s *narrativeStep) Focus() tea.Cmd {
	return s.focusTo(0)
}

func (s *narrativeStep) FocusLast() tea.Cmd {
	return s.focusTo(len(s.areas) - 1)
}

func (s *narrativeStep) focusTo(i int) tea.Cmd {
	if i < 0 || i >= len(s.areas) {
		return nil
	}
	s.Blur()
	s.focus = i
	return s.areas[i].area.Focus()
}

func (s *narrativeStep) Blur() {
	for _, a := range s.areas {
		a.area.Blur()
	}
	s.focus = -1
}
