package tui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/wizard"
)

// formStep renders the widgets for one wizard step and keeps them in
// sync with the form engine. Steps 1 and 2 are both instances of this
// component; the narrative step has its own because of the assist
// dialog.
type formStep struct {
	ctrl    *wizard.Controller
	loc     *i18n.Locale
	step    int
	widgets []fieldWidget
	focus   int // Index of focused widget, -1 = none
	width   int
	height  int
}

// newFormStep builds the widget list for a step from the schema.
func newFormStep(ctrl *wizard.Controller, loc *i18n.Locale, step int) *formStep {
	s := &formStep{
		ctrl:  ctrl,
		loc:   loc,
		step:  step,
		focus: -1,
	}

	for _, f := range schema.StepFields(step) {
		var w fieldWidget
		if len(schema.Options(f)) > 0 {
			w = newSelectField(f)
		} else {
			w = newTextField(f, placeholderFor(f), charLimitFor(f))
		}
		w.SetValue(ctrl.Engine().Value(f))
		s.widgets = append(s.widgets, w)
	}
	s.refreshDisabled()
	return s
}

// refreshDisabled applies the schema's cross-field exemptions: an
// exempt field is not editable until the controlling answer changes.
func (s *formStep) refreshDisabled() {
	values := s.ctrl.Engine().Values()
	for _, w := range s.widgets {
		w.SetDisabled(schema.Exempt(w.Field(), values))
	}
}

// placeholderFor gives format hints for free-form fields.
func placeholderFor(f schema.Field) string {
	switch f {
	case schema.FieldNationalID:
		return "15 digits"
	case schema.FieldDateOfBirth:
		return "YYYY-MM-DD"
	case schema.FieldCountry:
		return "ISO code, e.g. US"
	case schema.FieldPhone:
		return "10-15 digits"
	case schema.FieldEmail:
		return "name@example.com"
	case schema.FieldDependents:
		return "0"
	case schema.FieldMonthlyIncome:
		return "0.00"
	default:
		return ""
	}
}

func charLimitFor(f schema.Field) int {
	switch f {
	case schema.FieldNationalID:
		return 15
	case schema.FieldEmail:
		return 254
	case schema.FieldPhone:
		return 15
	default:
		return 200
	}
}

func (s *formStep) Init() tea.Cmd {
	return textinput.Blink
}

// Update routes keys between widget navigation and the focused widget.
func (s *formStep) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "tab", "down", "enter":
			return s.focusDelta(1)
		case "shift+tab", "up":
			return s.focusDelta(-1)
		}
	}

	if s.focus < 0 || s.focus >= len(s.widgets) {
		return nil
	}

	w := s.widgets[s.focus]
	cmd := w.Update(msg)

	// Push the edit through the controller so persistence and error
	// clearing stay consistent.
	if _, ok := msg.(tea.KeyPressMsg); ok {
		if w.Value() != s.ctrl.Engine().Value(w.Field()) {
			s.ctrl.SetValue(w.Field(), w.Value())
			s.refreshDisabled()
		}
	}
	return cmd
}

// focusDelta moves widget focus, skipping disabled widgets and handing
// off to the button bar at either end.
func (s *formStep) focusDelta(delta int) tea.Cmd {
	next := s.focus + delta
	for next >= 0 && next < len(s.widgets) && s.widgets[next].Disabled() {
		next += delta
	}
	if next >= len(s.widgets) {
		s.Blur()
		return func() tea.Msg { return TabExitForwardMsg{} }
	}
	if next < 0 {
		s.Blur()
		return func() tea.Msg { return TabExitBackwardMsg{} }
	}

	if s.focus >= 0 && s.focus < len(s.widgets) {
		s.widgets[s.focus].Blur()
	}
	s.focus = next
	return s.widgets[s.focus].Focus()
}

func (s *formStep) View() string {
	engine := s.ctrl.Engine()

	parts := make([]string, 0, len(s.widgets)*2)
	for i, w := range s.widgets {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, w.View(s.loc, engine.FieldError(w.Field())))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *formStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	for _, w := range s.widgets {
		w.SetWidth(width - 4)
	}
}

// Focus focuses the first widget.
func (s *formStep) Focus() tea.Cmd {
	return s.focusTo(0)
}

// FocusLast focuses the last widget.
func (s *formStep) FocusLast() tea.Cmd {
	return s.focusTo(len(s.widgets) - 1)
}

func (s *formStep) focusTo(i int) tea.Cmd {
	step := 1
	if i == len(s.widgets)-1 {
		step = -1
	}
	for i >= 0 && i < len(s.widgets) && s.widgets[i].Disabled() {
		i += step
	}
	if i < 0 || i >= len(s.widgets) {
		return nil
	}
	s.Blur()
	s.focus = i
	return s.widgets[i].Focus()
}

// Blur removes focus from all widgets.
func (s *formStep) Blur() {
	for _, w := range s.widgets {
		w.Blur()
	}
	s.focus = -1
}
