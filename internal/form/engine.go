// Package form owns the in-progress application record: field values, the
// validation error map, and the derived step-validity predicate.
package form

import (
	"strconv"
	"strings"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

// Engine is the single owner of the application record for a session. All
// mutations go through SetValue; validation failures are recorded as data in
// the error map and never raised as errors.
type Engine struct {
	loc    *i18n.Locale
	values schema.Values
	errors map[schema.Field]string
}

// NewEngine creates an engine with an empty record.
func NewEngine(loc *i18n.Locale) *Engine {
	return &Engine{
		loc:    loc,
		values: make(schema.Values),
		errors: make(map[schema.Field]string),
	}
}

// SetLocale swaps the locale used for validation messages. Already-recorded
// messages keep their original language until the field is revalidated.
func (e *Engine) SetLocale(loc *i18n.Locale) {
	e.loc = loc
}

// Value returns the current value of a field ("" when unset).
func (e *Engine) Value(f schema.Field) string {
	return e.values[f]
}

// SetValue stores a field value. It clears any recorded error for that
// field but does not revalidate; required-ness and format checks run when
// the caller explicitly validates (on blur, Next, or Submit).
func (e *Engine) SetValue(f schema.Field, value string) {
	if strings.TrimSpace(value) == "" {
		delete(e.values, f)
	} else {
		e.values[f] = value
	}
	delete(e.errors, f)
}

// Values returns a snapshot copy of all current field values.
func (e *Engine) Values() schema.Values {
	out := make(schema.Values, len(e.values))
	for f, v := range e.values {
		out[f] = v
	}
	return out
}

// Restore replaces the record with previously persisted values. The error
// map is cleared; restored values are revalidated lazily like typed ones.
func (e *Engine) Restore(values schema.Values) {
	e.values = make(schema.Values, len(values))
	for f, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		e.values[f] = v
	}
	e.errors = make(map[schema.Field]string)
}

// ValidateFields runs the schema rule for each given field, records
// failures in the error map (and clears passes), and returns the per-field
// results for the given set. Calling it twice with unchanged values yields
// an identical result.
func (e *Engine) ValidateFields(fields []schema.Field) map[schema.Field]string {
	out := make(map[schema.Field]string)
	for _, f := range fields {
		msg := schema.Validate(f, e.values, e.loc)
		if msg == "" {
			delete(e.errors, f)
		} else {
			e.errors[f] = msg
			out[f] = msg
		}
	}
	return out
}

// FieldError returns the recorded validation message for a field, or "".
func (e *Engine) FieldError(f schema.Field) string {
	return e.errors[f]
}

// Errors returns a snapshot copy of the error map.
func (e *Engine) Errors() map[schema.Field]string {
	out := make(map[schema.Field]string, len(e.errors))
	for f, msg := range e.errors {
		out[f] = msg
	}
	return out
}

// IsStepValid reports whether every field in the step's field set is
// present (honoring required-ness exemptions; "0" counts as present) and
// free of recorded validation errors. The result is recomputed from current
// state on every call, never cached.
func (e *Engine) IsStepValid(step int) bool {
	for _, f := range schema.StepFields(step) {
		if _, failed := e.errors[f]; failed {
			return false
		}
		if strings.TrimSpace(e.values[f]) == "" && schema.Required(f, e.values) {
			return false
		}
	}
	return true
}

// Empty reports whether the record is entirely at defaults. Used to avoid
// persisting meaningless empty state.
func (e *Engine) Empty() bool {
	for _, v := range e.values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Reset clears all values to defaults and empties the error map.
func (e *Engine) Reset() {
	e.values = make(schema.Values)
	e.errors = make(map[schema.Field]string)
}

// Int parses a numeric field. ok is false when the field is unset or not an
// integer; a stored "0" parses as (0, true).
func (e *Engine) Int(f schema.Field) (int, bool) {
	v := strings.TrimSpace(e.values[f])
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float parses a numeric field. ok is false when unset or unparsable.
func (e *Engine) Float(f schema.Field) (float64, bool) {
	v := strings.TrimSpace(e.values[f])
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
