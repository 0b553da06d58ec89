// Package fieldmap reconciles AI-extracted field names with the canonical
// field identifiers of a fillable form document. A Mapper runs override,
// exact, fuzzy and semantic passes in strict priority order over shrinking
// candidate pools, interprets free-text checkbox answers, and reports
// coverage. Mappers are immutable after construction; concurrent
// GenerateMapping calls are safe because every call works on its own pools.
package fieldmap

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Structural affixes that carry no meaning: form-builder prefixes and
// widget-type suffixes seen across fillable document templates.
var (
	structuralPrefixes = []string{"form_", "field_", "txt_", "chk_", "opt_", "input_"}
	structuralSuffixes = []string{"_field", "_input", "_box", "_text", "_value"}
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a raw field name for comparison: lowercase, trim,
// strip accents, then peel known structural prefixes and suffixes. Pure and
// total; unrecognized names pass through aside from case and whitespace.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	for _, p := range structuralPrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
		}
	}
	for _, suf := range structuralSuffixes {
		if strings.HasSuffix(s, suf) {
			s = s[:len(s)-len(suf)]
		}
	}
	return strings.TrimSpace(s)
}
