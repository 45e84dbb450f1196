// Package schema declares the wizard's field identifiers, the per-step field
// sets, enum domains, and the declarative validation rule table. It is pure
// data and predicates: no I/O, no state.
package schema

// Field identifies a single form field.
type Field string

// Step 1: identity
const (
	FieldName        Field = "name"
	FieldNationalID  Field = "nationalId"
	FieldDateOfBirth Field = "dateOfBirth"
	FieldGender      Field = "gender"
	FieldAddress     Field = "address"
	FieldCity        Field = "city"
	FieldState       Field = "state"
	FieldCountry     Field = "country"
	FieldPhone       Field = "phone"
	FieldEmail       Field = "email"
)

// Step 2: financial
const (
	FieldMaritalStatus    Field = "maritalStatus"
	FieldDependents       Field = "dependents"
	FieldEmploymentStatus Field = "employmentStatus"
	FieldMonthlyIncome    Field = "monthlyIncome"
	FieldHousingStatus    Field = "housingStatus"
)

// Step 3: narrative
const (
	FieldFinancialSituation      Field = "financialSituation"
	FieldEmploymentCircumstances Field = "employmentCircumstances"
	FieldReasonForApplying       Field = "reasonForApplying"
)

// StepCount is the number of wizard steps.
const StepCount = 3

// Values is a snapshot of field values. Numeric fields hold canonical
// decimal strings, so "0" is present-and-zero while absence (or "") is
// unset. Cross-field predicates receive the full map.
type Values map[Field]string

var stepFields = map[int][]Field{
	1: {
		FieldName, FieldNationalID, FieldDateOfBirth, FieldGender,
		FieldAddress, FieldCity, FieldState, FieldCountry,
		FieldPhone, FieldEmail,
	},
	2: {
		FieldMaritalStatus, FieldDependents, FieldEmploymentStatus,
		FieldMonthlyIncome, FieldHousingStatus,
	},
	3: {
		FieldFinancialSituation, FieldEmploymentCircumstances,
		FieldReasonForApplying,
	},
}

// StepFields returns the ordered field set for a step. Unknown step numbers
// yield an empty set so navigation stays fail-safe.
func StepFields(step int) []Field {
	fields, ok := stepFields[step]
	if !ok {
		return nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// AllFields returns every field in step order.
func AllFields() []Field {
	var out []Field
	for step := 1; step <= StepCount; step++ {
		out = append(out, stepFields[step]...)
	}
	return out
}

// StepOf returns the step a field belongs to, or 0 for unknown fields.
func StepOf(f Field) int {
	for step, fields := range stepFields {
		for _, sf := range fields {
			if sf == f {
				return step
			}
		}
	}
	return 0
}

// NarrativeFields returns the free-text fields eligible for the writing
// assistant.
func NarrativeFields() []Field {
	return StepFields(3)
}

// Enum domains. Values are canonical tokens; display labels come from i18n.
var (
	Genders            = []string{"male", "female"}
	MaritalStatuses    = []string{"single", "married", "divorced", "widowed"}
	EmploymentStatuses = []string{"employed", "self-employed", "unemployed", "retired"}
	HousingStatuses    = []string{"owned", "rented", "shared", "homeless"}
)

// EmploymentUnemployed is the employment status that exempts monthlyIncome
// from required validation.
const EmploymentUnemployed = "unemployed"

// Options returns the enum domain for a field, or nil for non-enum fields.
func Options(f Field) []string {
	switch f {
	case FieldGender:
		return Genders
	case FieldMaritalStatus:
		return MaritalStatuses
	case FieldEmploymentStatus:
		return EmploymentStatuses
	case FieldHousingStatus:
		return HousingStatuses
	default:
		return nil
	}
}

// Required reports whether a field must be present given the current
// values. Almost all fields are unconditionally required; monthlyIncome is
// exempt while employmentStatus is "unemployed" (the input is treated as
// disabled in that state).
func Required(f Field, values Values) bool {
	rule, ok := rules[f]
	if !ok {
		return false
	}
	if rule.exempt != nil && rule.exempt(values) {
		return false
	}
	return true
}
