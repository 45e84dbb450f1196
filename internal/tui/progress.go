package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/tui/theme"
)

// renderProgress renders the step indicator line. Completed and
// current steps are highlighted; steps ahead are dimmed.
func renderProgress(loc *i18n.Locale, current int, width int) string {
	t := theme.Current()

	doneStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Success))
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Primary)).
		Bold(true).
		Padding(0, 1)
	pendingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))

	var parts []string
	for step := 1; step <= schema.StepCount; step++ {
		label := fmt.Sprintf("%d %s", step, loc.T(fmt.Sprintf("step.%d", step)))
		switch {
		case step < current:
			parts = append(parts, doneStyle.Render("✓ "+label))
		case step == current:
			parts = append(parts, activeStyle.Render(label))
		default:
			parts = append(parts, pendingStyle.Render(label))
		}
		if step < schema.StepCount {
			parts = append(parts, sepStyle.Render("─"))
		}
	}

	line := strings.Join(parts, " ")
	return lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, line)
}
