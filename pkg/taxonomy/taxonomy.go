// Package taxonomy holds the domain vocabulary the field mapper matches
// against: synonym variants per concept, category and role keyword groups,
// and the checkbox vocabulary. Tables are plain YAML documents so the
// financial-form terminology can be audited and extended without touching
// matching code. A Taxonomy is immutable after construction and safe to
// share across concurrent mapping calls.
package taxonomy

import (
	"regexp"
	"sort"
	"strings"
)

// Taxonomy is one loaded set of vocabulary tables.
type Taxonomy struct {
	synonyms    map[string][]string // concept key -> lowercased variants
	conceptKeys []string            // sorted, for deterministic iteration
	categories  map[string][]string // category key -> keywords
	catKeys     []string
	roles       map[string][]string // role key -> variants
	roleVars    []roleVariant       // all role variants, longest first
	checkboxes  []CheckboxConcept   // in configured order
}

type roleVariant struct {
	role    string
	variant string
}

// CheckboxConcept is a named group of mutually exclusive checkbox states
// resolved from a single free-text answer (e.g. loan purpose).
type CheckboxConcept struct {
	Name    string
	Aliases []string
	States  []CheckboxState
}

// CheckboxState maps a set of trigger phrases to one canonical checkbox
// field. States are tested in configured order; the first hit wins.
type CheckboxState struct {
	Name    string
	Field   string // target checkbox field, defaults to Name
	Phrases []string
	Capture *Capture
}

// Capture is an optional secondary extraction run on the raw value after a
// state hit (e.g. the "5/1" ratio of an adjustable-rate answer).
type Capture struct {
	Field string
	re    *regexp.Regexp
}

// Extract runs the capture pattern against a value. Returns the captured
// group, or "" when the pattern does not apply.
func (c *Capture) Extract(value string) string {
	m := c.re.FindStringSubmatch(value)
	if m == nil {
		return ""
	}
	// Prefer the first capturing group when the pattern defines one.
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}

// ConceptKeys returns all synonym concept keys in sorted order.
func (t *Taxonomy) ConceptKeys() []string {
	return t.conceptKeys
}

// Phrases returns the lexical phrases of a concept: its key followed by its
// variants. Nil for unknown concepts.
func (t *Taxonomy) Phrases(concept string) []string {
	vars, ok := t.synonyms[concept]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vars)+1)
	out = append(out, concept)
	out = append(out, vars...)
	return out
}

// Concepts returns the concept keys a normalized field name belongs to:
// those whose key or any variant is contained in the name, or contains it.
// Sorted by key for determinism.
func (t *Taxonomy) Concepts(name string) []string {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	var out []string
	for _, key := range t.conceptKeys {
		if phraseOverlaps(key, name) {
			out = append(out, key)
			continue
		}
		for _, v := range t.synonyms[key] {
			if phraseOverlaps(v, name) {
				out = append(out, key)
				break
			}
		}
	}
	return out
}

// Categories returns the category keys whose keywords appear in the
// normalized name, sorted. Role groups count as categories here so that a
// shared role contributes the same scoring bonus as a shared category.
func (t *Taxonomy) Categories(name string) []string {
	name = strings.ToLower(name)
	if name == "" {
		return nil
	}
	var out []string
	for _, key := range t.catKeys {
		for _, kw := range t.categories[key] {
			if strings.Contains(name, kw) {
				out = append(out, key)
				break
			}
		}
	}
	if role := t.Role(name); role != "" {
		out = append(out, role)
	}
	sort.Strings(out)
	return out
}

// Role resolves the applicant role of a normalized name. Variants are
// tested longest first so "co-borrower" is never mistaken for "borrower".
// Returns "" when no role variant appears.
func (t *Taxonomy) Role(name string) string {
	name = strings.ToLower(name)
	for _, rv := range t.roleVars {
		if strings.Contains(name, rv.variant) {
			return rv.role
		}
	}
	return ""
}

// CheckboxConceptFor resolves the checkbox concept an extracted field name
// refers to, by normalized equality against the concept name and aliases,
// then by containment.
func (t *Taxonomy) CheckboxConceptFor(name string) (*CheckboxConcept, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range t.checkboxes {
		c := &t.checkboxes[i]
		if name == c.Name {
			return c, true
		}
		for _, a := range c.Aliases {
			if name == a {
				return c, true
			}
		}
	}
	for i := range t.checkboxes {
		c := &t.checkboxes[i]
		if strings.Contains(name, c.Name) {
			return c, true
		}
		for _, a := range c.Aliases {
			if strings.Contains(name, a) {
				return c, true
			}
		}
	}
	return nil, false
}

// CheckboxConcepts returns the checkbox vocabulary in configured order.
func (t *Taxonomy) CheckboxConcepts() []CheckboxConcept {
	return t.checkboxes
}

// ConceptCount reports the number of synonym concepts.
func (t *Taxonomy) ConceptCount() int { return len(t.synonyms) }

// CategoryCount reports the number of category groups (roles excluded).
func (t *Taxonomy) CategoryCount() int { return len(t.categories) }

// phraseOverlaps reports whether phrase and name contain one another in
// either direction. Single-character phrases are ignored; they match almost
// anything and only produce noise.
func phraseOverlaps(phrase, name string) bool {
	if len(phrase) < 2 {
		return false
	}
	return strings.Contains(name, phrase) || strings.Contains(phrase, name)
}
