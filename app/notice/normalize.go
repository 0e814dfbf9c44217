package notice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize maps a category label to its URL token: the label is
// lowercased and every run of whitespace becomes a single hyphen.
//
//	Normalize("Minas Gerais") == "minas-gerais"
//	Normalize("  a   b ")     == "a-b"
func Normalize(label string) string {
	// Casers keep state, so each call gets its own.
	lowered := cases.Lower(language.Und).String(label)
	return strings.Join(strings.Fields(lowered), "-")
}
