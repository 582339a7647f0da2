package states

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPopulation renders a population with en-US thousands separators, e.g. 1234567 -> "1,234,567"
func FormatPopulation(population int) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%d", population)
}
