package asmfmt

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold applies the case mapping to s. Folding is idempotent.
func (c Case) Fold(s string) string {
	if s == "" {
		return s
	}
	// A Caser keeps state between calls, so each fold gets a fresh one.
	switch c {
	case CaseLower:
		return cases.Lower(language.Und).String(s)
	case CaseUpper:
		return cases.Upper(language.Und).String(s)
	default:
		return s
	}
}
