// Package i18n provides locale lookup tables for field labels, section
// titles, validation messages, and assistant prompt templates. Locales are
// injected as values rather than read from ambient globals so the wizard
// controller and formatters stay testable.
package i18n

// Locale is an immutable bundle of translated strings.
type Locale struct {
	Code string
	RTL  bool

	strings map[string]string
}

// For returns the locale for the given code, falling back to English for
// unknown codes.
func For(code string) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales["en"]
}

// Supported returns the list of supported locale codes.
func Supported() []string {
	return []string{"en", "ar"}
}

// T translates a key. Missing keys fall back to English, then to the key
// itself so an untranslated string is visible rather than blank.
func (l *Locale) T(key string) string {
	if s, ok := l.strings[key]; ok {
		return s
	}
	if l.Code != "en" {
		if s, ok := locales["en"].strings[key]; ok {
			return s
		}
	}
	return key
}

var locales = map[string]*Locale{
	"en": {
		Code: "en",
		strings: map[string]string{
			// Step titles
			"step.1": "Personal Information",
			"step.2": "Family & Financial Information",
			"step.3": "Situation Description",

			// Section titles for the submission summary
			"section.identity":  "Personal Information",
			"section.financial": "Family & Financial Information",
			"section.narrative": "Application Details",

			// Field labels
			"field.name":                    "Name",
			"field.nationalId":              "National ID",
			"field.dateOfBirth":             "Date of Birth",
			"field.gender":                  "Gender",
			"field.address":                 "Address",
			"field.city":                    "City",
			"field.state":                   "State",
			"field.country":                 "Country",
			"field.phone":                   "Phone",
			"field.email":                   "Email",
			"field.maritalStatus":           "Marital Status",
			"field.dependents":              "Dependents",
			"field.employmentStatus":        "Employment Status",
			"field.monthlyIncome":           "Monthly Income",
			"field.housingStatus":           "Housing Status",
			"field.financialSituation":      "Current Financial Situation",
			"field.employmentCircumstances": "Employment Circumstances",
			"field.reasonForApplying":       "Reason for Applying",

			// Validation messages
			"validation.required":         "This field is required",
			"validation.invalidEmail":     "Invalid email address",
			"validation.emailTooLong":     "Email address too long",
			"validation.nationalIdLength": "National ID must be exactly 15 digits",
			"validation.nationalIdDigits": "National ID must contain only digits",
			"validation.phoneDigits":      "Phone must contain only digits",
			"validation.phoneTooShort":    "Phone number too short",
			"validation.phoneTooLong":     "Phone number too long",
			"validation.invalidDate":      "Invalid date (use YYYY-MM-DD)",
			"validation.dateInFuture":     "Date cannot be in the future",
			"validation.invalidCountry":   "Invalid country code",
			"validation.invalidOption":    "Invalid option",
			"validation.notANumber":       "Must be a number",
			"validation.negative":         "Cannot be negative",

			// Assistant prompt templates (seeded when the field is empty)
			"prompt.financialSituation":      "Describe my current financial situation for a social support application. I am facing financial hardship and need assistance.",
			"prompt.employmentCircumstances": "Describe my employment circumstances for a social support application, including my current work status and recent changes.",
			"prompt.reasonForApplying":       "Explain my reason for applying for social support in a clear and respectful way.",

			// Submission
			"submit.subject":   "New Social Support Application",
			"submit.failed":    "Submission failed. Please try again.",
			"submit.sending":   "Submitting...",
			"submit.thankYou":  "Thank You!",
			"submit.received":  "Your application has been received and will be reviewed.",
			"submit.reference": "Reference Number",

			// Navigation
			"nav.back":       "← Back",
			"nav.next":       "Next →",
			"nav.submit":     "Submit",
			"nav.hint":       "tab to navigate • ctrl+c to quit",
			"nav.scroll":     "↑↓ scroll",
			"nav.export":     "ctrl+s export",
			"nav.quit":       "q quit",
			"nav.exportedTo": "saved to",

			// Assistant dialog
			"assist.title":      "AI Writing Assistance",
			"assist.suggestion": "Suggestion",
			"assist.prompt":     "Your Prompt",
			"assist.generating": "Generating...",
			"assist.failed":     "Failed to generate a suggestion. Please try again.",
			"assist.empty":      "The assistant returned no content. Please try again.",

			"assist.helpMeWrite":  "help me write",
			"assist.editExternal": "edit in $EDITOR",
			"assist.generate":     "Generate",
			"assist.edit":         "Edit",
			"assist.accept":       "Accept",
			"assist.discard":      "Discard",
		},
	},
	"ar": {
		Code: "ar",
		RTL:  true,
		strings: map[string]string{
			"step.1": "المعلومات الشخصية",
			"step.2": "المعلومات العائلية والمالية",
			"step.3": "وصف الحالة",

			"section.identity":  "المعلومات الشخصية",
			"section.financial": "المعلومات العائلية والمالية",
			"section.narrative": "تفاصيل الطلب",

			"field.name":                    "الاسم",
			"field.nationalId":              "رقم الهوية",
			"field.dateOfBirth":             "تاريخ الميلاد",
			"field.gender":                  "الجنس",
			"field.address":                 "العنوان",
			"field.city":                    "المدينة",
			"field.state":                   "المنطقة",
			"field.country":                 "الدولة",
			"field.phone":                   "الهاتف",
			"field.email":                   "البريد الإلكتروني",
			"field.maritalStatus":           "الحالة الاجتماعية",
			"field.dependents":              "عدد المعالين",
			"field.employmentStatus":        "الحالة الوظيفية",
			"field.monthlyIncome":           "الدخل الشهري",
			"field.housingStatus":           "حالة السكن",
			"field.financialSituation":      "الوضع المالي الحالي",
			"field.employmentCircumstances": "ظروف العمل",
			"field.reasonForApplying":       "سبب التقديم",

			"validation.required":         "هذا الحقل مطلوب",
			"validation.invalidEmail":     "بريد إلكتروني غير صالح",
			"validation.emailTooLong":     "البريد الإلكتروني طويل جداً",
			"validation.nationalIdLength": "رقم الهوية يجب أن يكون 15 رقماً",
			"validation.nationalIdDigits": "رقم الهوية يجب أن يحتوي على أرقام فقط",
			"validation.phoneDigits":      "الهاتف يجب أن يحتوي على أرقام فقط",
			"validation.phoneTooShort":    "رقم الهاتف قصير جداً",
			"validation.phoneTooLong":     "رقم الهاتف طويل جداً",
			"validation.invalidDate":      "تاريخ غير صالح",
			"validation.dateInFuture":     "لا يمكن أن يكون التاريخ في المستقبل",
			"validation.invalidCountry":   "رمز دولة غير صالح",
			"validation.invalidOption":    "خيار غير صالح",
			"validation.notANumber":       "يجب أن يكون رقماً",
			"validation.negative":         "لا يمكن أن يكون سالباً",

			"prompt.financialSituation":      "صف وضعي المالي الحالي لطلب دعم اجتماعي.",
			"prompt.employmentCircumstances": "صف ظروف عملي الحالية لطلب دعم اجتماعي.",
			"prompt.reasonForApplying":       "اشرح سبب تقديمي لطلب الدعم الاجتماعي.",

			"submit.subject":   "طلب دعم اجتماعي جديد",
			"submit.failed":    "فشل الإرسال. حاول مرة أخرى.",
			"submit.sending":   "جارٍ الإرسال...",
			"submit.thankYou":  "شكراً لك!",
			"submit.received":  "تم استلام طلبك وستتم مراجعته.",
			"submit.reference": "الرقم المرجعي",

			"nav.back":       "← رجوع",
			"nav.next":       "التالي ←",
			"nav.submit":     "إرسال",
			"nav.hint":       "tab للتنقل • ctrl+c للخروج",
			"nav.scroll":     "↑↓ تمرير",
			"nav.export":     "ctrl+s تصدير",
			"nav.quit":       "q خروج",
			"nav.exportedTo": "حُفظ في",

			"assist.title":      "المساعدة في الكتابة",
			"assist.suggestion": "الاقتراح",
			"assist.prompt":     "طلبك",
			"assist.generating": "جارٍ الإنشاء...",
			"assist.failed":     "فشل إنشاء الاقتراح. حاول مرة أخرى.",
			"assist.empty":      "لم يُرجع المساعد أي محتوى. حاول مرة أخرى.",

			"assist.helpMeWrite":  "ساعدني في الكتابة",
			"assist.editExternal": "حرر في المحرر الخارجي",
			"assist.generate":     "إنشاء",
			"assist.edit":         "تحرير",
			"assist.accept":       "قبول",
			"assist.discard":      "تجاهل",
		},
	},
}
