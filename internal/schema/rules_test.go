package schema

import (
	"strings"
	"testing"

	"github.com/caseworks/intake/internal/i18n"
)

var en = i18n.For("en")

func TestStepFields(t *testing.T) {
	tests := []struct {
		step  int
		count int
		first Field
	}{
		{1, 10, FieldName},
		{2, 5, FieldMaritalStatus},
		{3, 3, FieldFinancialSituation},
		{0, 0, ""},
		{4, 0, ""},
		{-1, 0, ""},
	}

	for _, tt := range tests {
		fields := StepFields(tt.step)
		if len(fields) != tt.count {
			t.Errorf("StepFields(%d) = %d fields, want %d", tt.step, len(fields), tt.count)
		}
		if tt.count > 0 && fields[0] != tt.first {
			t.Errorf("StepFields(%d)[0] = %s, want %s", tt.step, fields[0], tt.first)
		}
	}
}

func TestStepOf(t *testing.T) {
	if got := StepOf(FieldMonthlyIncome); got != 2 {
		t.Errorf("StepOf(monthlyIncome) = %d, want 2", got)
	}
	if got := StepOf(Field("bogus")); got != 0 {
		t.Errorf("StepOf(bogus) = %d, want 0", got)
	}
}

func TestValidateNationalID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"fifteen digits", "123456789012345", true},
		{"too short", "12345678901234", false},
		{"too long", "1234567890123456", false},
		{"letters", "12345678901234a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(FieldNationalID, Values{FieldNationalID: tt.value}, en)
			if tt.valid && msg != "" {
				t.Errorf("expected pass, got %q", msg)
			}
			if !tt.valid && msg == "" {
				t.Error("expected validation message, got pass")
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "a@b.com", true},
		{"subdomain", "user@mail.example.org", true},
		{"missing at", "nope.example.org", false},
		{"missing domain", "user@", false},
		{"too long", strings.Repeat("a", 250) + "@b.com", false},
		{"local part too long", strings.Repeat("a", 65) + "@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(FieldEmail, Values{FieldEmail: tt.value}, en)
			if tt.valid && msg != "" {
				t.Errorf("expected pass, got %q", msg)
			}
			if !tt.valid && msg == "" {
				t.Error("expected validation message, got pass")
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"ten digits", "1234567890", true},
		{"fifteen digits", "123456789012345", true},
		{"nine digits", "123456789", false},
		{"sixteen digits", "1234567890123456", false},
		{"with dashes", "123-456-7890", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(FieldPhone, Values{FieldPhone: tt.value}, en)
			if tt.valid != (msg == "") {
				t.Errorf("phone %q: valid=%v, msg=%q", tt.value, tt.valid, msg)
			}
		})
	}
}

func TestValidateDateOfBirth(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"iso date", "1990-01-01", true},
		{"wrong format", "01/01/1990", false},
		{"nonsense", "not-a-date", false},
		{"future", "2999-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(FieldDateOfBirth, Values{FieldDateOfBirth: tt.value}, en)
			if tt.valid != (msg == "") {
				t.Errorf("dateOfBirth %q: valid=%v, msg=%q", tt.value, tt.valid, msg)
			}
		})
	}
}

func TestValidateCountry(t *testing.T) {
	if msg := Validate(FieldCountry, Values{FieldCountry: "US"}, en); msg != "" {
		t.Errorf("US should be valid, got %q", msg)
	}
	if msg := Validate(FieldCountry, Values{FieldCountry: "us"}, en); msg != "" {
		t.Errorf("lowercase us should be valid, got %q", msg)
	}
	if msg := Validate(FieldCountry, Values{FieldCountry: "XX"}, en); msg == "" {
		t.Error("XX should be invalid")
	}
}

func TestValidateEnums(t *testing.T) {
	if msg := Validate(FieldGender, Values{FieldGender: "male"}, en); msg != "" {
		t.Errorf("gender male should be valid, got %q", msg)
	}
	if msg := Validate(FieldGender, Values{FieldGender: "other"}, en); msg == "" {
		t.Error("gender other should be invalid")
	}
	if msg := Validate(FieldHousingStatus, Values{FieldHousingStatus: "rented"}, en); msg != "" {
		t.Errorf("housing rented should be valid, got %q", msg)
	}
}

func TestValidateNumericZeroIsValid(t *testing.T) {
	if msg := Validate(FieldDependents, Values{FieldDependents: "0"}, en); msg != "" {
		t.Errorf("dependents 0 should be valid, got %q", msg)
	}
	if msg := Validate(FieldMonthlyIncome, Values{
		FieldMonthlyIncome:    "0",
		FieldEmploymentStatus: "employed",
	}, en); msg != "" {
		t.Errorf("monthlyIncome 0 should be valid, got %q", msg)
	}
	if msg := Validate(FieldDependents, Values{FieldDependents: "-1"}, en); msg == "" {
		t.Error("dependents -1 should be invalid")
	}
}

func TestMonthlyIncomeConditionalRequiredness(t *testing.T) {
	// Unemployed: empty income passes
	msg := Validate(FieldMonthlyIncome, Values{
		FieldEmploymentStatus: EmploymentUnemployed,
	}, en)
	if msg != "" {
		t.Errorf("unemployed with empty income should pass, got %q", msg)
	}

	// Employed: empty income fails required
	msg = Validate(FieldMonthlyIncome, Values{
		FieldEmploymentStatus: "employed",
	}, en)
	if msg == "" {
		t.Error("employed with empty income should fail required validation")
	}

	// Required mirrors the same predicate
	if Required(FieldMonthlyIncome, Values{FieldEmploymentStatus: EmploymentUnemployed}) {
		t.Error("monthlyIncome should not be required while unemployed")
	}
	if !Required(FieldMonthlyIncome, Values{FieldEmploymentStatus: "employed"}) {
		t.Error("monthlyIncome should be required while employed")
	}
}

func TestValidateUnknownFieldPasses(t *testing.T) {
	if msg := Validate(Field("bogus"), Values{}, en); msg != "" {
		t.Errorf("unknown field should pass, got %q", msg)
	}
}

func TestValidateAll(t *testing.T) {
	values := Values{
		FieldName:       "Alex",
		FieldNationalID: "123",
	}
	errs := ValidateAll(StepFields(1), values, en)

	if _, ok := errs[FieldName]; ok {
		t.Error("name should not have an error")
	}
	if _, ok := errs[FieldNationalID]; !ok {
		t.Error("nationalId should have an error")
	}
	if _, ok := errs[FieldEmail]; !ok {
		t.Error("empty email should have a required error")
	}
}

func TestValidateFreeFormSingleCharacter(t *testing.T) {
	// Free-form identity strings only need to be non-empty
	for _, f := range []Field{FieldName, FieldAddress, FieldCity, FieldState} {
		if msg := Validate(f, Values{f: "X"}, en); msg != "" {
			t.Errorf("%s = %q should be valid, got %q", f, "X", msg)
		}
		if msg := Validate(f, Values{}, en); msg == "" {
			t.Errorf("unset %s should be required", f)
		}
	}
}
