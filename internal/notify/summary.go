package notify

import (
	"fmt"
	"strings"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

// Item is a single labeled value in a summary section.
type Item struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups related items under a translated heading.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Summary is the localized, ordered rendering of a completed
// application, used both for the outgoing email and the post-submit
// screen.
type Summary struct {
	Reference string    `json:"reference"`
	Subject   string    `json:"subject"`
	Locale    string    `json:"locale"`
	RTL       bool      `json:"rtl"`
	Sections  []Section `json:"sections"`
}

// SubjectLine returns the localized subject, falling back to the bare
// reference for summaries built without one.
func (s *Summary) SubjectLine() string {
	if s.Subject != "" {
		return s.Subject
	}
	return s.Reference
}

// BuildSummary assembles the three-section summary from the submitted
// values. Section and field labels come from the active locale, values
// are carried verbatim.
func BuildSummary(values schema.Values, loc *i18n.Locale, reference string) *Summary {
	address := strings.Join([]string{
		values[schema.FieldAddress],
		values[schema.FieldCity],
		values[schema.FieldState],
		values[schema.FieldCountry],
	}, ", ")

	item := func(f schema.Field) Item {
		return Item{Label: loc.T("field." + string(f)), Value: values[f]}
	}

	return &Summary{
		Reference: reference,
		Subject:   fmt.Sprintf("%s (%s)", loc.T("submit.subject"), reference),
		Locale:    loc.Code,
		RTL:       loc.RTL,
		Sections: []Section{
			{
				Title: loc.T("section.identity"),
				Items: []Item{
					item(schema.FieldName),
					item(schema.FieldNationalID),
					item(schema.FieldDateOfBirth),
					item(schema.FieldGender),
					{Label: loc.T("field.address"), Value: address},
					item(schema.FieldPhone),
					item(schema.FieldEmail),
				},
			},
			{
				Title: loc.T("section.financial"),
				Items: []Item{
					item(schema.FieldMaritalStatus),
					item(schema.FieldDependents),
					item(schema.FieldEmploymentStatus),
					item(schema.FieldMonthlyIncome),
					item(schema.FieldHousingStatus),
				},
			},
			{
				Title: loc.T("section.narrative"),
				Items: []Item{
					item(schema.FieldFinancialSituation),
					item(schema.FieldEmploymentCircumstances),
					item(schema.FieldReasonForApplying),
				},
			},
		},
	}
}

// Text renders the summary as plain text for the email body.
func (s *Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", s.Reference)
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "%s\n", sec.Title)
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", len(sec.Title)))
		for _, it := range sec.Items {
			fmt.Fprintf(&b, "%s: %s\n", it.Label, it.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Markdown renders the summary for terminal display.
func (s *Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Reference)
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Title)
		for _, it := range sec.Items {
			fmt.Fprintf(&b, "- **%s**: %s\n", it.Label, it.Value)
		}
		b.WriteString("\n")
	}
	return b.String()
}
