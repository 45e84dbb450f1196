package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caseworks/intake/internal/i18n"
)

// rule pairs a field validator with an optional required-ness exemption
// predicate over the full record. Keeping the predicate in the table (rather
// than hard-coding conditions in callers) is what lets one field's
// required-ness depend on another's value without the table losing its
// declarative shape.
type rule struct {
	validate func(value string, values Values, loc *i18n.Locale) string
	exempt   func(values Values) bool
}

var (
	digitsRe = regexp.MustCompile(`^\d+$`)
	emailRe  = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

const (
	nationalIDLength = 15
	phoneMinDigits   = 10
	phoneMaxDigits   = 15
	emailMaxLength   = 254
	emailLocalMax    = 64
)

// Validate runs the declared rule for a field against the given values.
// Returns "" on pass, otherwise a localized message. A validation failure is
// data, never an error: callers record it in an error map.
func Validate(f Field, values Values, loc *i18n.Locale) string {
	r, ok := rules[f]
	if !ok {
		return ""
	}
	value := strings.TrimSpace(values[f])
	if value == "" {
		if r.exempt != nil && r.exempt(values) {
			return ""
		}
		return loc.T("validation.required")
	}
	if r.validate == nil {
		return ""
	}
	return r.validate(value, values, loc)
}

// Exempt reports whether a field's required-ness is currently waived by
// its cross-field predicate. An exempt field is also a disabled input.
func Exempt(f Field, values Values) bool {
	r, ok := rules[f]
	if !ok || r.exempt == nil {
		return false
	}
	return r.exempt(values)
}

// ValidateAll runs Validate for every given field and returns the non-empty
// results keyed by field.
func ValidateAll(fields []Field, values Values, loc *i18n.Locale) map[Field]string {
	out := make(map[Field]string)
	for _, f := range fields {
		if msg := Validate(f, values, loc); msg != "" {
			out[f] = msg
		}
	}
	return out
}

func validateNationalID(value string, _ Values, loc *i18n.Locale) string {
	if !digitsRe.MatchString(value) {
		return loc.T("validation.nationalIdDigits")
	}
	if len(value) != nationalIDLength {
		return loc.T("validation.nationalIdLength")
	}
	return ""
}

func validateDateOfBirth(value string, _ Values, loc *i18n.Locale) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return loc.T("validation.invalidDate")
	}
	if t.After(time.Now()) {
		return loc.T("validation.dateInFuture")
	}
	return ""
}

func validatePhone(value string, _ Values, loc *i18n.Locale) string {
	if !digitsRe.MatchString(value) {
		return loc.T("validation.phoneDigits")
	}
	if len(value) < phoneMinDigits {
		return loc.T("validation.phoneTooShort")
	}
	if len(value) > phoneMaxDigits {
		return loc.T("validation.phoneTooLong")
	}
	return ""
}

func validateEmail(value string, _ Values, loc *i18n.Locale) string {
	if len(value) > emailMaxLength {
		return loc.T("validation.emailTooLong")
	}
	if !emailRe.MatchString(value) {
		return loc.T("validation.invalidEmail")
	}
	local := strings.SplitN(value, "@", 2)[0]
	if len(local) > emailLocalMax {
		return loc.T("validation.emailTooLong")
	}
	return ""
}

func validateCountry(value string, _ Values, loc *i18n.Locale) string {
	if !IsCountryCode(value) {
		return loc.T("validation.invalidCountry")
	}
	return ""
}

func enumValidator(f Field) func(string, Values, *i18n.Locale) string {
	return func(value string, _ Values, loc *i18n.Locale) string {
		for _, opt := range Options(f) {
			if value == opt {
				return ""
			}
		}
		return loc.T("validation.invalidOption")
	}
}

func validateNonNegativeInt(value string, _ Values, loc *i18n.Locale) string {
	n, err := strconv.Atoi(value)
	if err != nil {
		return loc.T("validation.notANumber")
	}
	if n < 0 {
		return loc.T("validation.negative")
	}
	return ""
}

func validateNonNegativeNumber(value string, _ Values, loc *i18n.Locale) string {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return loc.T("validation.notANumber")
	}
	if n < 0 {
		return loc.T("validation.negative")
	}
	return ""
}

// incomeExempt is the cross-field predicate: monthlyIncome is not required
// while the applicant is unemployed.
func incomeExempt(values Values) bool {
	return strings.TrimSpace(values[FieldEmploymentStatus]) == EmploymentUnemployed
}

var rules = map[Field]rule{
	FieldName:        {},
	FieldNationalID:  {validate: validateNationalID},
	FieldDateOfBirth: {validate: validateDateOfBirth},
	FieldGender:      {validate: enumValidator(FieldGender)},
	FieldAddress:     {},
	FieldCity:        {},
	FieldState:       {},
	FieldCountry:     {validate: validateCountry},
	FieldPhone:       {validate: validatePhone},
	FieldEmail:       {validate: validateEmail},

	FieldMaritalStatus:    {validate: enumValidator(FieldMaritalStatus)},
	FieldDependents:       {validate: validateNonNegativeInt},
	FieldEmploymentStatus: {validate: enumValidator(FieldEmploymentStatus)},
	FieldMonthlyIncome:    {validate: validateNonNegativeNumber, exempt: incomeExempt},
	FieldHousingStatus:    {validate: enumValidator(FieldHousingStatus)},

	FieldFinancialSituation:      {},
	FieldEmploymentCircumstances: {},
	FieldReasonForApplying:       {},
}
