package i18n

import "testing"

func TestForUnknownFallsBackToEnglish(t *testing.T) {
	l := For("fr")
	if l.Code != "en" {
		t.Errorf("expected en fallback, got %q", l.Code)
	}
}

func TestArabicIsRTL(t *testing.T) {
	if !For("ar").RTL {
		t.Error("expected ar locale to be RTL")
	}
	if For("en").RTL {
		t.Error("expected en locale to be LTR")
	}
}

func TestTranslationFallback(t *testing.T) {
	ar := For("ar")

	// Translated key
	if got := ar.T("field.name"); got == "Name" || got == "field.name" {
		t.Errorf("expected Arabic translation for field.name, got %q", got)
	}

	// Missing key falls back to the key itself
	if got := ar.T("no.such.key"); got != "no.such.key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestAllFieldLabelsTranslated(t *testing.T) {
	keys := []string{
		"field.name", "field.nationalId", "field.dateOfBirth", "field.gender",
		"field.address", "field.city", "field.state", "field.country",
		"field.phone", "field.email", "field.maritalStatus", "field.dependents",
		"field.employmentStatus", "field.monthlyIncome", "field.housingStatus",
		"field.financialSituation", "field.employmentCircumstances",
		"field.reasonForApplying",
	}
	for _, code := range Supported() {
		l := For(code)
		for _, key := range keys {
			if l.T(key) == key {
				t.Errorf("locale %s missing translation for %s", code, key)
			}
		}
	}
}
