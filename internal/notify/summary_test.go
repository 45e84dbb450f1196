package notify

import (
	"strings"
	"testing"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

func sampleValues() schema.Values {
	return schema.Values{
		schema.FieldName:                    "Alex",
		schema.FieldNationalID:              "123456789012345",
		schema.FieldDateOfBirth:             "1990-01-01",
		schema.FieldGender:                  "male",
		schema.FieldAddress:                 "1 Main St",
		schema.FieldCity:                    "Springfield",
		schema.FieldState:                   "IL",
		schema.FieldCountry:                 "US",
		schema.FieldPhone:                   "1234567890",
		schema.FieldEmail:                   "a@b.com",
		schema.FieldMaritalStatus:           "single",
		schema.FieldDependents:              "0",
		schema.FieldEmploymentStatus:        "employed",
		schema.FieldMonthlyIncome:           "2500",
		schema.FieldHousingStatus:           "rented",
		schema.FieldFinancialSituation:      "Stable but tight.",
		schema.FieldEmploymentCircumstances: "Full time retail.",
		schema.FieldReasonForApplying:       "Medical bills.",
	}
}

func TestBuildSummarySections(t *testing.T) {
	loc := i18n.For("en")
	s := BuildSummary(sampleValues(), loc, "APP-12345678")

	if s.Reference != "APP-12345678" {
		t.Errorf("reference = %q", s.Reference)
	}
	if len(s.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(s.Sections))
	}

	wantTitles := []string{
		loc.T("section.identity"),
		loc.T("section.financial"),
		loc.T("section.narrative"),
	}
	for i, want := range wantTitles {
		if s.Sections[i].Title != want {
			t.Errorf("section %d title = %q, want %q", i, s.Sections[i].Title, want)
		}
	}

	if got := len(s.Sections[0].Items); got != 7 {
		t.Errorf("identity section has %d items, want 7", got)
	}
	if got := len(s.Sections[1].Items); got != 5 {
		t.Errorf("financial section has %d items, want 5", got)
	}
	if got := len(s.Sections[2].Items); got != 3 {
		t.Errorf("narrative section has %d items, want 3", got)
	}
}

func TestBuildSummaryJoinsAddress(t *testing.T) {
	s := BuildSummary(sampleValues(), i18n.For("en"), "APP-00000000")

	var addr string
	for _, it := range s.Sections[0].Items {
		if it.Label == i18n.For("en").T("field.address") {
			addr = it.Value
		}
	}
	if addr != "1 Main St, Springfield, IL, US" {
		t.Errorf("address = %q", addr)
	}
}

func TestBuildSummaryArabicLocale(t *testing.T) {
	loc := i18n.For("ar")
	s := BuildSummary(sampleValues(), loc, "APP-00000000")

	if !s.RTL {
		t.Error("Arabic summary should be marked RTL")
	}
	if s.Locale != "ar" {
		t.Errorf("locale = %q, want ar", s.Locale)
	}
	if s.Sections[0].Title == "section.identity" {
		t.Error("Arabic section title fell through to the raw key")
	}
}

func TestSummaryText(t *testing.T) {
	s := BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
	text := s.Text()

	if !strings.HasPrefix(text, "APP-12345678") {
		t.Errorf("text should start with the reference, got %q", text[:20])
	}
	for _, want := range []string{"Alex", "2500", "Medical bills."} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	s := BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
	md := s.Markdown()

	if !strings.Contains(md, "# APP-12345678") {
		t.Error("markdown missing reference heading")
	}
	if !strings.Contains(md, "## "+i18n.For("en").T("section.financial")) {
		t.Error("markdown missing financial section heading")
	}
}

func TestBuildSummarySubject(t *testing.T) {
	s := BuildSummary(sampleValues(), i18n.For("en"), "APP-12345678")
	if s.Subject != "New Social Support Application (APP-12345678)" {
		t.Errorf("subject = %q", s.Subject)
	}
	if s.SubjectLine() != s.Subject {
		t.Errorf("SubjectLine() = %q", s.SubjectLine())
	}

	bare := &Summary{Reference: "APP-00000000"}
	if bare.SubjectLine() != "APP-00000000" {
		t.Errorf("fallback subject = %q", bare.SubjectLine())
	}
}
