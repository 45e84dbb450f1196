package tui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/caseworks/intake/internal/tui/theme"
)

// ButtonID identifies a navigation button.
type ButtonID int

const (
	ButtonNone ButtonID = iota
	ButtonBack
	ButtonNext
	ButtonSubmit
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking.
type ButtonBar struct {
	buttons []Button
	focused int // Index of focused button, -1 = none
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetEnabled flips a button between normal and disabled.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID == id {
			if enabled {
				b.buttons[i].State = ButtonNormal
			} else {
				b.buttons[i].State = ButtonDisabled
			}
		}
	}
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	for i := range b.buttons {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusNext moves focus to the next enabled button. Returns false when
// focus has run off the end.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// FocusPrev moves focus to the previous enabled button. Returns false
// when focus has run off the start.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// Blur removes button focus.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// FocusedButton returns the ID of the focused button, or ButtonNone.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return ButtonNone
	}
	return b.buttons[b.focused].ID
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.BorderFocus)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for i, btn := range b.buttons {
		var rendered string
		switch {
		case btn.State == ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		case i == b.focused:
			rendered = focusedStyle.Render(btn.Label)
		default:
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}
