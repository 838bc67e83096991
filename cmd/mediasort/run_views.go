package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatOutcomeLabel turns a stored outcome such as "moved" or a reason like
// "name collision" into a display label.
func formatOutcomeLabel(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(value)
}
