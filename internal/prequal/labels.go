package prequal

import (
	"golang.org/x/text/language"

	"homebuyer-prequal/internal/models"
)

var supportedLocales = []language.Tag{
	language.English, // first entry is the fallback
	language.Spanish,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var creditTierLabels = map[language.Tag]map[models.CreditCategory]string{
	language.English: {
		models.CreditExcellent: "Excellent (720+)",
		models.CreditGood:      "Good (680-719)",
		models.CreditFair:      "Fair (620-679)",
		models.CreditPoor:      "Poor (below 620)",
		models.CreditUnknown:   "Not sure",
	},
	language.Spanish: {
		models.CreditExcellent: "Excelente (720+)",
		models.CreditGood:      "Buena (680-719)",
		models.CreditFair:      "Regular (620-679)",
		models.CreditPoor:      "Baja (menos de 620)",
		models.CreditUnknown:   "No estoy seguro",
	},
}

// MatchLocale resolves a BCP 47 locale or Accept-Language value to one of the
// supported languages. Anything unrecognised resolves to English.
func MatchLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return supportedLocales[index]
}

// CreditTierLabel returns the display label of a credit category. An
// unanswered category is labelled like "unknown".
func CreditTierLabel(c models.CreditCategory, locale string) string {
	labels := creditTierLabels[MatchLocale(locale)]
	if label, ok := labels[c]; ok {
		return label
	}
	return labels[models.CreditUnknown]
}
