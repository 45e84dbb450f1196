package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/tui/theme"
)

// fieldWidget is a single labeled input within a step.
type fieldWidget interface {
	Field() schema.Field
	Value() string
	SetValue(string)
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	View(loc *i18n.Locale, errMsg string) string
	SetWidth(width int)
	SetDisabled(bool)
	Disabled() bool
}

// renderFieldLabel renders the translated label line for a field.
func renderFieldLabel(loc *i18n.Locale, f schema.Field, focused bool) string {
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	if focused {
		style = style.Foreground(lipgloss.Color(t.Primary)).Bold(true)
	}
	return style.Render(loc.T("field." + string(f)))
}

// renderFieldError renders the inline validation error, or "".
func renderFieldError(errMsg string) string {
	if errMsg == "" {
		return ""
	}
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Error)).
		Render("✗ " + errMsg)
}

// textField wraps a single-line text input.
type textField struct {
	field    schema.Field
	input    textinput.Model
	disabled bool
}

func newTextField(f schema.Field, placeholder string, charLimit int) *textField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return &textField{field: f, input: ti}
}

func (w *textField) Field() schema.Field { return w.field }
func (w *textField) Value() string       { return strings.TrimSpace(w.input.Value()) }
func (w *textField) SetValue(v string)   { w.input.SetValue(v) }
func (w *textField) Blur()               { w.input.Blur() }
func (w *textField) SetWidth(width int)  { w.input.SetWidth(width) }
func (w *textField) Disabled() bool      { return w.disabled }

func (w *textField) Focus() tea.Cmd {
	if w.disabled {
		return nil
	}
	return w.input.Focus()
}

// SetDisabled greys the input out and makes it unfocusable. The stored
// value is kept, a disabled field is exempt from validation anyway.
func (w *textField) SetDisabled(disabled bool) {
	w.disabled = disabled
	if disabled {
		w.input.Blur()
	}
}

func (w *textField) Update(msg tea.Msg) tea.Cmd {
	if w.disabled {
		return nil
	}
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return cmd
}

func (w *textField) View(loc *i18n.Locale, errMsg string) string {
	if w.disabled {
		t := theme.Current()
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
		value := w.input.Value()
		if value == "" {
			value = w.input.Placeholder
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			dim.Render(loc.T("field."+string(w.field))),
			dim.Render(value),
		)
	}

	parts := []string{
		renderFieldLabel(loc, w.field, w.input.Focused()),
		w.input.View(),
	}
	if e := renderFieldError(errMsg); e != "" {
		parts = append(parts, e)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// selectField cycles through a fixed option list with left/right.
type selectField struct {
	field    schema.Field
	options  []string
	index    int // -1 = nothing chosen yet
	focused  bool
	disabled bool
}

func newSelectField(f schema.Field) *selectField {
	return &selectField{
		field:   f,
		options: schema.Options(f),
		index:   -1,
	}
}

func (w *selectField) Field() schema.Field { return w.field }

func (w *selectField) Value() string {
	if w.index < 0 || w.index >= len(w.options) {
		return ""
	}
	return w.options[w.index]
}

func (w *selectField) SetValue(v string) {
	for i, opt := range w.options {
		if opt == v {
			w.index = i
			return
		}
	}
	w.index = -1
}

func (w *selectField) Blur()              { w.focused = false }
func (w *selectField) SetWidth(width int) {}
func (w *selectField) Disabled() bool     { return w.disabled }

func (w *selectField) Focus() tea.Cmd {
	if w.disabled {
		return nil
	}
	w.focused = true
	return nil
}

func (w *selectField) SetDisabled(disabled bool) {
	w.disabled = disabled
	if disabled {
		w.focused = false
	}
}

func (w *selectField) Update(msg tea.Msg) tea.Cmd {
	if !w.focused || w.disabled {
		return nil
	}
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "left", "h":
		if w.index > 0 {
			w.index--
		} else if w.index < 0 && len(w.options) > 0 {
			w.index = 0
		}
	case "right", "l", " ":
		if w.index < len(w.options)-1 {
			w.index++
		}
	}
	return nil
}

func (w *selectField) View(loc *i18n.Locale, errMsg string) string {
	t := theme.Current()

	if w.disabled {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
		return lipgloss.JoinVertical(lipgloss.Left,
			dim.Render(loc.T("field."+string(w.field))),
			dim.Render(w.Value()),
		)
	}

	var b strings.Builder
	for i, opt := range w.options {
		if i > 0 {
			b.WriteString("  ")
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
		if i == w.index {
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(t.BgBase)).
				Background(lipgloss.Color(t.Primary)).
				Padding(0, 1)
		} else if w.focused {
			style = style.Foreground(lipgloss.Color(t.FgBase))
		}
		b.WriteString(style.Render(opt))
	}

	parts := []string{
		renderFieldLabel(loc, w.field, w.focused),
		b.String(),
	}
	if e := renderFieldError(errMsg); e != "" {
		parts = append(parts, e)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
