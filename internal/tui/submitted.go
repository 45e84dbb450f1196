package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/gosimple/slug"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/notify"
	"github.com/caseworks/intake/internal/tui/theme"
)

// submittedView is the read-only summary shown after a successful
// submission.
type submittedView struct {
	summary  *notify.Summary
	loc      *i18n.Locale
	viewport viewport.Model
	exported string // Path of the exported copy, if any
	width    int
	height   int
}

func newSubmittedView(summary *notify.Summary, loc *i18n.Locale) *submittedView {
	vp := viewport.New(
		viewport.WithWidth(70),
		viewport.WithHeight(20),
	)

	v := &submittedView{
		summary:  summary,
		loc:      loc,
		viewport: vp,
		width:    70,
	}
	v.refresh()
	return v
}

func (v *submittedView) refresh() {
	width := v.width - 4
	if width < 30 {
		width = 30
	}
	v.viewport.SetContent(renderMarkdown(v.summary.Markdown(), width))
}

func (v *submittedView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+s" {
			return v.export()
		}

	case SummaryExportedMsg:
		if msg.Err == nil {
			v.exported = msg.Path
		}
		return nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// export writes a plain-text copy of the summary next to the data
// directory, named after the reference.
func (v *submittedView) export() tea.Cmd {
	summary := v.summary
	return func() tea.Msg {
		name := slug.Make(summary.Reference)
		if name == "" {
			name = "application"
		}
		path := filepath.Join(".", name+".txt")
		if err := os.WriteFile(path, []byte(summary.Text()), 0644); err != nil {
			return SummaryExportedMsg{Err: err}
		}
		return SummaryExportedMsg{Path: path}
	}
}

func (v *submittedView) View() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Success)).
		MarginBottom(1)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase))
	refStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary))
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Italic(true)

	parts := []string{
		titleStyle.Render("✓ " + v.loc.T("submit.thankYou")),
		subtitleStyle.Render(v.loc.T("submit.received")),
		fmt.Sprintf("%s: %s",
			subtitleStyle.Render(v.loc.T("submit.reference")),
			refStyle.Render(v.summary.Reference)),
		"",
		v.viewport.View(),
		"",
	}

	hints := []string{v.loc.T("nav.scroll"), v.loc.T("nav.export"), v.loc.T("nav.quit")}
	if v.exported != "" {
		hints = append(hints, v.loc.T("nav.exportedTo")+" "+v.exported)
	}
	parts = append(parts, hintStyle.Render(strings.Join(hints, " • ")))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *submittedView) SetSize(width, height int) {
	v.width = width
	v.height = height

	vpWidth := width - 4
	if vpWidth < 30 {
		vpWidth = 30
	}
	vpHeight := height - 8
	if vpHeight < 8 {
		vpHeight = 8
	}
	v.viewport.SetWidth(vpWidth)
	v.viewport.SetHeight(vpHeight)
	v.refresh()
}
