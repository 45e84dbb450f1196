package assist

import (
	"fmt"
	"strings"

	"github.com/caseworks/intake/internal/i18n"
	"github.com/caseworks/intake/internal/schema"
)

// GroundedPrompt builds the full generation request text: the user's
// prompt plus the applicant's identity and financial answers so the
// model can write in their situation, and a language instruction for
// the active locale. Narrative fields are excluded, the user's own
// words must not leak between questions.
func GroundedPrompt(loc *i18n.Locale, field schema.Field, prompt string, values schema.Values) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are helping an applicant write the %q section of a social support application.\n",
		loc.T("field."+string(field)))
	b.WriteString("Write a short, honest, first-person draft the applicant can submit as-is.\n")
	if loc.Code == "ar" {
		b.WriteString("Respond in Arabic.\n")
	}

	var context []string
	for step := 1; step <= 2; step++ {
		for _, f := range schema.StepFields(step) {
			if v, ok := values[f]; ok && v != "" {
				context = append(context, fmt.Sprintf("%s: %s", loc.T("field."+string(f)), v))
			}
		}
	}
	if len(context) > 0 {
		b.WriteString("\nApplicant details:\n")
		for _, line := range context {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRequest: ")
	b.WriteString(prompt)
	return b.String()
}
