package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/caseworks/intake/internal/assist"
	"github.com/caseworks/intake/internal/config"
	"github.com/caseworks/intake/internal/form"
	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/logger"
	"github.com/caseworks/intake/internal/notify"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/store"
	"github.com/caseworks/intake/internal/tui/theme"
	"github.com/caseworks/intake/internal/wizard"
)

// Modal layout constants
const (
	modalWidth        = 76                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 70
)

// App is the main Bubbletea model for the intake wizard.
type App struct {
	ctrl     *wizard.Controller
	cfg      *config.Config
	loc      *i18n.Locale
	notifier notify.Notifier

	// Step components
	step1 *formStep
	step2 *formStep
	step3 *narrativeStep

	// Assist dialog (nil when no generator is configured)
	dialog     *assistDialog
	dialogOpen bool

	// Post-submission view
	submitted *submittedView

	// Button bar with focus tracking
	buttonBar     *ButtonBar
	buttonFocused bool

	submitErr string // Generic submission-failed notice
	width     int
	height    int
	quitting  bool
}

// NewApp wires the wizard together. gen may be nil, which disables
// the help-me-write entry points.
func NewApp(cfg *config.Config, ctrl *wizard.Controller, notifier notify.Notifier, gen assist.Generator) *App {
	loc := i18n.For(cfg.Locale)

	a := &App{
		ctrl:     ctrl,
		cfg:      cfg,
		loc:      loc,
		notifier: notifier,
	}
	if gen != nil {
		a.dialog = newAssistDialog(assist.NewSession(loc), gen, loc)
		a.dialog.values = func() schema.Values { return ctrl.Engine().Values() }
	}
	return a
}

// Run builds the full dependency graph from config and runs the TUI.
func Run(ctx context.Context, cfg *config.Config) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	loc := i18n.For(cfg.Locale)
	ctrl := wizard.NewController(form.NewEngine(loc), st, loc)
	ctrl.Restore()
	defer ctrl.Close()

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		return err
	}

	var gen assist.Generator
	if cfg.AssistAPIKey != "" {
		gen, err = assist.NewGeminiGenerator(ctx, cfg.AssistAPIKey, cfg.AssistModel)
		if err != nil {
			logger.Warn("Assist disabled: %v", err)
			gen = nil
		}
	}

	a := NewApp(cfg, ctrl, notifier, gen)
	if _, err := tea.NewProgram(a).Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}

// openStore picks the persistence backend from config.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store == config.StoreNATS {
		return store.NewNATSStore(ctx, cfg.DataDir)
	}
	return store.NewFileStore(cfg.DataDir), nil
}

// buildNotifier picks the submission transport from config.
func buildNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, error) {
	if cfg.EmailTransport == config.EmailSES {
		return notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.SenderEmail)
	}
	return notify.NewEndpointNotifier(cfg.EmailEndpoint,
		notify.WithTimeout(cfg.RequestTimeout),
		notify.WithRetries(cfg.RequestRetries),
	), nil
}

// Init initializes the step for the restored position.
func (a *App) Init() tea.Cmd {
	return a.initCurrentStep()
}

// Update handles messages for the wizard.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The assist dialog swallows input while open
	if a.dialogOpen && a.dialog != nil {
		if handled, model, cmd := a.updateDialog(msg); handled {
			return model, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if model, cmd, handled := a.handleKey(msg); handled {
			return model, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case TabExitForwardMsg:
		a.buttonFocused = true
		a.blurStepContent()
		a.ensureButtonBar()
		a.buttonBar.FocusFirst()
		return a, nil

	case TabExitBackwardMsg:
		a.buttonFocused = true
		a.blurStepContent()
		a.ensureButtonBar()
		a.buttonBar.FocusLast()
		return a, nil

	case SubmitResultMsg:
		if err := a.ctrl.FinishSubmit(msg.Summary, msg.Err); err != nil {
			a.submitErr = a.loc.T("submit.failed")
			return a, nil
		}
		a.submitErr = ""
		a.submitted = newSubmittedView(msg.Summary, a.loc)
		a.updateSizes()
		return a, nil
	}

	return a.updateCurrentStep(msg)
}

// updateDialog routes a message through the assist dialog. Returns
// handled=false when the dialog did not consume it.
func (a *App) updateDialog(msg tea.Msg) (bool, tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c":
			a.quitting = true
			return true, a, tea.Quit
		case "ctrl+y":
			// Accept lands the suggestion in the form before closing
			if field, text, err := a.dialog.session.Accept(); err == nil {
				a.step3.SetFieldValue(field, text)
				a.dialogOpen = false
			}
			return true, a, nil
		}
	}

	cmd, handled := a.dialog.Update(msg)
	if handled {
		if a.dialog.session.State() == assist.StateIdle {
			a.dialogOpen = false
		}
		return true, a, cmd
	}
	return false, a, nil
}

// handleKey processes global keybindings.
func (a *App) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	if a.ctrl.Phase() == wizard.PhaseSubmitted {
		switch key {
		case "q", "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit, true
		}
		return a, nil, false
	}

	switch key {
	case "ctrl+c":
		a.quitting = true
		return a, tea.Quit, true

	case "ctrl+g":
		if a.ctrl.Step() == schema.StepCount && a.dialog != nil && !a.dialogOpen {
			field := a.step3.FocusedField()
			if field == "" {
				field = schema.NarrativeFields()[0]
			}
			a.dialog.session.Open(field, a.ctrl.Engine().Value(field))
			a.dialogOpen = true
			return a, a.dialog.Opened(), true
		}
	}

	// Button-focused keyboard input
	if a.buttonFocused && a.buttonBar != nil {
		switch key {
		case "tab", "right":
			if !a.buttonBar.FocusNext() {
				a.buttonFocused = false
				a.buttonBar.Blur()
				return a, a.focusStepContentFirst(), true
			}
			return a, nil, true
		case "shift+tab", "left":
			if !a.buttonBar.FocusPrev() {
				a.buttonFocused = false
				a.buttonBar.Blur()
				return a, a.focusStepContentLast(), true
			}
			return a, nil, true
		case "enter", " ":
			model, cmd := a.activateButton(a.buttonBar.FocusedButton())
			return model, cmd, true
		case "1", "2", "3":
			target := int(key[0] - '0')
			if err := a.ctrl.GoToStep(target); err == nil {
				a.buttonFocused = false
				a.buttonBar = nil
				return a, a.initCurrentStep(), true
			}
			return a, nil, true
		}
	}

	return a, nil, false
}

// activateButton handles button activation.
func (a *App) activateButton(id ButtonID) (tea.Model, tea.Cmd) {
	switch id {
	case ButtonBack:
		if err := a.ctrl.Previous(); err == nil {
			a.buttonFocused = false
			a.buttonBar = nil
			return a, a.initCurrentStep()
		}
	case ButtonNext:
		if err := a.ctrl.Next(); err == nil {
			a.buttonFocused = false
			a.buttonBar = nil
			return a, a.initCurrentStep()
		}
		// Validation errors render inline; keep focus on the buttons
		return a, nil
	case ButtonSubmit:
		return a, a.submit()
	}
	return a, nil
}

// submit runs the notification send as a background command.
func (a *App) submit() tea.Cmd {
	summary, err := a.ctrl.BeginSubmit()
	if err != nil {
		return nil
	}
	a.submitErr = ""

	notifier := a.notifier
	recipient := a.cfg.RecipientEmail
	timeout := a.cfg.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := notifier.Send(ctx, recipient, summary)
		return SubmitResultMsg{Summary: summary, Err: err}
	}
}

// initCurrentStep constructs the component for the active step.
func (a *App) initCurrentStep() tea.Cmd {
	var cmd tea.Cmd
	switch a.ctrl.Step() {
	case 1:
		a.step1 = newFormStep(a.ctrl, a.loc, 1)
		cmd = tea.Batch(a.step1.Init(), a.step1.Focus())
	case 2:
		a.step2 = newFormStep(a.ctrl, a.loc, 2)
		cmd = tea.Batch(a.step2.Init(), a.step2.Focus())
	case 3:
		a.step3 = newNarrativeStep(a.ctrl, a.loc)
		a.step3.assistHint = a.dialog != nil
		cmd = tea.Batch(a.step3.Init(), a.step3.Focus())
	}
	a.updateSizes()
	return cmd
}

// updateCurrentStep forwards a message to the active component.
func (a *App) updateCurrentStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if a.ctrl.Phase() == wizard.PhaseSubmitted {
		if a.submitted != nil {
			cmd = a.submitted.Update(msg)
		}
		return a, cmd
	}

	switch a.ctrl.Step() {
	case 1:
		if a.step1 != nil {
			cmd = a.step1.Update(msg)
		}
	case 2:
		if a.step2 != nil {
			cmd = a.step2.Update(msg)
		}
	case 3:
		if a.step3 != nil {
			cmd = a.step3.Update(msg)
		}
	}
	return a, cmd
}

// getModalContentSize returns the internal content dimensions.
func (a *App) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = a.height - 4
	if height < 20 {
		height = 20
	}
	if height > 44 {
		height = 44
	}
	height -= 10
	if height < 10 {
		height = 10
	}
	return width, height
}

func (a *App) updateSizes() {
	contentWidth, contentHeight := a.getModalContentSize()

	if a.step1 != nil {
		a.step1.SetSize(contentWidth, contentHeight)
	}
	if a.step2 != nil {
		a.step2.SetSize(contentWidth, contentHeight)
	}
	if a.step3 != nil {
		a.step3.SetSize(contentWidth, contentHeight)
	}
	if a.dialog != nil {
		a.dialog.SetSize(contentWidth, contentHeight)
	}
	if a.submitted != nil {
		a.submitted.SetSize(contentWidth, contentHeight)
	}
	if a.buttonBar != nil {
		a.buttonBar.SetWidth(contentWidth)
	}
}

// ensureButtonBar builds the bar for the active step.
func (a *App) ensureButtonBar() {
	if a.buttonBar != nil {
		return
	}

	var buttons []Button
	step := a.ctrl.Step()

	if step > 1 {
		buttons = append(buttons, Button{ID: ButtonBack, Label: a.loc.T("nav.back")})
	}
	if step < schema.StepCount {
		buttons = append(buttons, Button{ID: ButtonNext, Label: a.loc.T("nav.next")})
	} else {
		buttons = append(buttons, Button{ID: ButtonSubmit, Label: a.loc.T("nav.submit")})
	}

	bar := NewButtonBar(buttons)
	bar.SetWidth(modalContentWidth)
	a.buttonBar = bar
}

func (a *App) focusStepContentFirst() tea.Cmd {
	switch a.ctrl.Step() {
	case 1:
		if a.step1 != nil {
			return a.step1.Focus()
		}
	case 2:
		if a.step2 != nil {
			return a.step2.Focus()
		}
	case 3:
		if a.step3 != nil {
			return a.step3.Focus()
		}
	}
	return nil
}

func (a *App) focusStepContentLast() tea.Cmd {
	switch a.ctrl.Step() {
	case 1:
		if a.step1 != nil {
			return a.step1.FocusLast()
		}
	case 2:
		if a.step2 != nil {
			return a.step2.FocusLast()
		}
	case 3:
		if a.step3 != nil {
			return a.step3.FocusLast()
		}
	}
	return nil
}

func (a *App) blurStepContent() {
	if a.step1 != nil {
		a.step1.Blur()
	}
	if a.step2 != nil {
		a.step2.Blur()
	}
	if a.step3 != nil {
		a.step3.Blur()
	}
}

// View renders the wizard.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.width == 0 || a.height == 0 {
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := a.renderContent()

	centered := lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(a.width, a.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: a.width, Y: a.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

func (a *App) renderContent() string {
	t := theme.Current()

	if a.dialogOpen && a.dialog != nil {
		return a.dialog.View()
	}

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(1, modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	if a.ctrl.Phase() == wizard.PhaseSubmitted && a.submitted != nil {
		return modalStyle.Render(a.submitted.View())
	}

	step := a.ctrl.Step()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)
	title := titleStyle.Render(a.loc.T(fmt.Sprintf("step.%d", step)))

	progress := renderProgress(a.loc, step, modalContentWidth)

	var stepContent string
	switch step {
	case 1:
		if a.step1 != nil {
			stepContent = a.step1.View()
		}
	case 2:
		if a.step2 != nil {
			stepContent = a.step2.View()
		}
	case 3:
		if a.step3 != nil {
			stepContent = a.step3.View()
		}
	}

	a.ensureButtonBar()
	buttonBarContent := a.buttonBar.Render()

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	hint := hintStyle.Render(a.loc.T("nav.hint"))

	parts := []string{
		progress,
		"",
		title,
		stepContent,
		"",
		buttonBarContent,
	}

	if a.ctrl.Phase() == wizard.PhaseSubmitting {
		busyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Italic(true)
		parts = append(parts, "", busyStyle.Render(a.loc.T("submit.sending")))
	} else if a.submitErr != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true)
		parts = append(parts, "", errStyle.Render("✗ "+a.submitErr))
	}

	parts = append(parts, "", hint)

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return modalStyle.Render(content)
}
