package wizard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caseworks/intake/internal/form"
	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/logger"
	"github.com/caseworks/intake/internal/notify"
	"github.com/caseworks/intake/internal/schema"
	"github.com/caseworks/intake/internal/store"
)

// Phase is the wizard's lifecycle state.
type Phase int

const (
	PhaseStep1 Phase = iota + 1
	PhaseStep2
	PhaseStep3
	PhaseSubmitting
	PhaseSubmitted
)

// DefaultGraceDelay is how long the persisted record survives after a
// successful submission, so the summary view can still be backed by
// live state before storage is wiped.
const DefaultGraceDelay = 5 * time.Second

var (
	ErrStepInvalid     = errors.New("wizard: current step has validation errors")
	ErrForwardJump     = errors.New("wizard: cannot skip ahead more than one step")
	ErrBadStep         = errors.New("wizard: no such step")
	ErrNotOnFinalStep  = errors.New("wizard: submit is only allowed from the final step")
	ErrSubmitInFlight  = errors.New("wizard: a submission is already in flight")
	ErrAlreadyComplete = errors.New("wizard: application already submitted")
)

// Controller drives step transitions and the terminal submit. The
// submission itself runs between BeginSubmit and FinishSubmit so the
// UI can keep rendering while the send is outstanding.
type Controller struct {
	mu sync.Mutex

	engine *form.Engine
	store  store.Store
	loc    *i18n.Locale

	step       int
	submitting bool
	snapshot   *notify.Summary

	graceDelay time.Duration
	clearTimer *time.Timer
}

// Option adjusts a Controller.
type Option func(*Controller)

// WithGraceDelay overrides the post-submission clear delay.
func WithGraceDelay(d time.Duration) Option {
	return func(c *Controller) { c.graceDelay = d }
}

// NewController wires the form engine to persistence.
func NewController(engine *form.Engine, st store.Store, loc *i18n.Locale, opts ...Option) *Controller {
	c := &Controller{
		engine:     engine,
		store:      st,
		loc:        loc,
		step:       1,
		graceDelay: DefaultGraceDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLocale swaps the locale used for summaries.
func (c *Controller) SetLocale(loc *i18n.Locale) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = loc
	c.engine.SetLocale(loc)
}

// Restore rehydrates the form and step pointer from the store. A
// corrupt or missing record leaves the session at defaults.
func (c *Controller) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.store.Load()
	if err != nil {
		logger.Warn("Failed to load saved application: %v", err)
		return
	}
	c.engine.Restore(rec.Values)
	if rec.Step >= 1 && rec.Step <= schema.StepCount {
		c.step = rec.Step
	}
}

// Step returns the active step number.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseLocked()
}

func (c *Controller) phaseLocked() Phase {
	switch {
	case c.submitting:
		return PhaseSubmitting
	case c.snapshot != nil:
		return PhaseSubmitted
	default:
		return Phase(c.step)
	}
}

// Snapshot returns the read-only summary captured on submission, or
// nil before then.
func (c *Controller) Snapshot() *notify.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Engine exposes the form engine for field edit handlers.
func (c *Controller) Engine() *form.Engine {
	return c.engine
}

// SetValue writes a field through the engine and persists the record.
// Persistence failures are advisory and never block editing.
func (c *Controller) SetValue(field schema.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.SetValue(field, value)
	c.persistLocked()
}

// Next advances from step 1 or 2 after an explicit re-validation of
// the current step.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if phase := c.phaseLocked(); phase == PhaseSubmitting || phase == PhaseSubmitted {
		return ErrAlreadyComplete
	}
	if c.step >= schema.StepCount {
		return ErrNotOnFinalStep
	}
	if !c.validateStepLocked(c.step) {
		return ErrStepInvalid
	}

	c.step++
	c.persistLocked()
	return nil
}

// Previous steps back unconditionally from step 2 or 3.
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if phase := c.phaseLocked(); phase == PhaseSubmitting || phase == PhaseSubmitted {
		return ErrAlreadyComplete
	}
	if c.step <= 1 {
		return ErrBadStep
	}

	c.step--
	c.persistLocked()
	return nil
}

// GoToStep jumps directly to a step. Backward jumps and re-visiting
// the current step are unconditional; moving one step ahead carries
// the same validation gate as Next, and skipping further ahead is
// never allowed.
func (c *Controller) GoToStep(target int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if phase := c.phaseLocked(); phase == PhaseSubmitting || phase == PhaseSubmitted {
		return ErrAlreadyComplete
	}
	if target < 1 || target > schema.StepCount {
		return ErrBadStep
	}
	if target > c.step+1 {
		return ErrForwardJump
	}
	if target == c.step+1 && !c.validateStepLocked(c.step) {
		return ErrStepInvalid
	}

	c.step = target
	c.persistLocked()
	return nil
}

// BeginSubmit re-validates the final step and, on success, captures
// the summary to send and enters Submitting. The caller performs the
// send and reports back through FinishSubmit.
func (c *Controller) BeginSubmit() (*notify.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return nil, ErrSubmitInFlight
	}
	if c.snapshot != nil {
		return nil, ErrAlreadyComplete
	}
	if c.step != schema.StepCount {
		return nil, ErrNotOnFinalStep
	}
	if !c.validateStepLocked(c.step) {
		return nil, ErrStepInvalid
	}

	summary := notify.BuildSummary(c.engine.Values(), c.loc, newReference())
	c.submitting = true
	return summary, nil
}

// FinishSubmit lands the result of the send. On success the session
// becomes read-only, the step pointer resets for the next session,
// and the persisted record is cleared after the grace delay. On
// failure the session stays on the final step for a retry.
func (c *Controller) FinishSubmit(summary *notify.Summary, sendErr error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.submitting {
		return ErrAlreadyComplete
	}
	c.submitting = false

	if sendErr != nil {
		logger.Warn("Submission failed: %v", sendErr)
		return fmt.Errorf("submitting application: %w", sendErr)
	}

	c.snapshot = summary
	c.step = 1

	delay := c.graceDelay
	c.clearTimer = time.AfterFunc(delay, func() {
		if err := c.store.Clear(); err != nil {
			logger.Warn("Failed to clear stored application: %v", err)
		}
	})
	logger.Info("Application %s submitted, store clears in %s", summary.Reference, delay)
	return nil
}

// Close stops the pending grace-delay clear, firing it immediately if
// a submission already landed.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clearTimer != nil && c.clearTimer.Stop() {
		if err := c.store.Clear(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) validateStepLocked(step int) bool {
	errs := c.engine.ValidateFields(schema.StepFields(step))
	return len(errs) == 0 && c.engine.IsStepValid(step)
}

func (c *Controller) persistLocked() {
	rec := &store.Record{Values: c.engine.Values(), Step: c.step}
	if err := c.store.Save(rec); err != nil {
		logger.Warn("Failed to persist application: %v", err)
	}
}

// newReference mints a short display reference for a submission.
func newReference() string {
	id := uuid.NewString()
	return "APP-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
