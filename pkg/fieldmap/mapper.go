package fieldmap

import (
	"math"
	"strings"

	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

// Options carries the empirically tuned scoring constants. Zero values fall
// back to the defaults, so Options{} is usable as-is.
type Options struct {
	// MinScore is the acceptance threshold for fuzzy and semantic matches.
	MinScore float64
	// CategoryBonus is added when source and candidate share a category or
	// applicant role.
	CategoryBonus float64
	// ConceptWeight scales the phrase-overlap base of a semantic score.
	ConceptWeight float64
}

const (
	DefaultMinScore      = 0.6
	DefaultCategoryBonus = 0.2
	DefaultConceptWeight = 0.8
)

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.CategoryBonus == 0 {
		o.CategoryBonus = DefaultCategoryBonus
	}
	if o.ConceptWeight == 0 {
		o.ConceptWeight = DefaultConceptWeight
	}
	return o
}

// Bare widget-naming tokens that flag a canonical field as checkbox-like
// even when no vocabulary state phrase appears in it.
var checkboxTokens = []string{"check", "chk", "checkbox", "cb_", "_cb"}

// Mapper indexes one document's canonical field set against a taxonomy.
// It is immutable after construction; every GenerateMapping call works on
// its own pool copies, so a single Mapper serves concurrent calls.
type Mapper struct {
	tax       *taxonomy.Taxonomy
	opts      Options
	canonical []candidate
}

// New builds a Mapper for a document's canonical fields, pre-classifying
// checkbox-likely fields by their normalized names.
func New(canonicalFields []string, tax *taxonomy.Taxonomy, opts Options) *Mapper {
	m := &Mapper{
		tax:       tax,
		opts:      opts.withDefaults(),
		canonical: make([]candidate, 0, len(canonicalFields)),
	}
	phrases := checkboxPhrases(tax)
	for _, name := range canonicalFields {
		c := candidate{Name: name, Norm: Normalize(name), Kind: KindText}
		if containsAny(c.Norm, checkboxTokens) || containsAny(c.Norm, phrases) {
			c.Kind = KindCheckbox
		}
		m.canonical = append(m.canonical, c)
	}
	return m
}

// checkboxPhrases gathers every state name and target field from the
// vocabulary, for kind inference.
func checkboxPhrases(tax *taxonomy.Taxonomy) []string {
	var out []string
	for _, concept := range tax.CheckboxConcepts() {
		for _, state := range concept.States {
			out = append(out, state.Name)
			if state.Field != state.Name {
				out = append(out, state.Field)
			}
		}
	}
	return out
}

// Kind reports the inferred widget kind of a canonical field, and whether
// the field belongs to this document at all.
func (m *Mapper) Kind(canonicalField string) (FieldKind, bool) {
	for _, c := range m.canonical {
		if c.Name == canonicalField {
			return c.Kind, true
		}
	}
	return "", false
}

// CanonicalCount reports the size of the document's field catalog.
func (m *Mapper) CanonicalCount() int { return len(m.canonical) }

// GenerateMapping reconciles extracted fields with the canonical set.
// Overrides are seeded verbatim and never contested; then the exact, fuzzy
// and semantic passes each consume from what the previous pass left; then
// checkbox-concept answers are interpreted independently. Same inputs
// always reproduce the same output.
func (m *Mapper) GenerateMapping(fields []ExtractedField, overrides map[string]string) *Result {
	res := &Result{
		Fields:  make(map[string]string),
		Matches: make(map[string]Match),
	}

	consumed := make(map[string]bool) // canonical names claimed so far

	// Overrides first: their targets leave the pool before any matcher runs
	// and their sources are invisible to the automatic passes.
	remaining := make([]ExtractedField, 0, len(fields))
	for _, f := range fields {
		if target, ok := overrides[f.Name]; ok {
			res.Fields[f.Name] = target
			res.Matches[f.Name] = Match{Source: f.Name, Target: target, Score: 1.0, Type: MatchOverride}
			consumed[target] = true
			continue
		}
		remaining = append(remaining, f)
	}
	for source, target := range overrides {
		if _, done := res.Fields[source]; !done {
			res.Fields[source] = target
			res.Matches[source] = Match{Source: source, Target: target, Score: 1.0, Type: MatchOverride}
			consumed[target] = true
		}
	}

	pool := make([]candidate, 0, len(m.canonical))
	for _, c := range m.canonical {
		if !consumed[c.Name] {
			pool = append(pool, c)
		}
	}

	var matches []Match
	matches, remaining, pool = matchExact(remaining, pool)
	res.absorb(matches, consumed)

	matches, remaining, pool = matchFuzzy(remaining, pool, m.opts.MinScore)
	res.absorb(matches, consumed)

	matches, _, _ = matchSemantic(m.tax, remaining, pool, m.opts)
	res.absorb(matches, consumed)

	m.interpretValues(fields, res, consumed)

	res.Report = m.coverage(consumed)
	return res
}

// interpretValues runs the checkbox interpreter over every extracted field
// whose name resolves to a known checkbox concept and which carries a value.
func (m *Mapper) interpretValues(fields []ExtractedField, res *Result, consumed map[string]bool) {
	for _, f := range fields {
		value := f.ValueString()
		if value == "" {
			continue
		}
		concept, ok := m.tax.CheckboxConceptFor(Normalize(f.Name))
		if !ok {
			continue
		}
		a, ok := interpretCheckbox(concept, value)
		if !ok {
			continue
		}

		field := m.resolveCheckboxField(a)
		if res.Checkboxes == nil {
			res.Checkboxes = make(map[string]bool)
		}
		if _, taken := res.Checkboxes[field]; !taken {
			res.Checkboxes[field] = true
			consumed[field] = true
		}
		for k, v := range a.Details {
			if res.Details == nil {
				res.Details = make(map[string]string)
			}
			if _, taken := res.Details[k]; !taken {
				res.Details[k] = v
			}
		}
	}
}

// resolveCheckboxField keys an assignment by the document's matching
// pre-classified checkbox field when one exists, falling back to the
// state's configured field name.
func (m *Mapper) resolveCheckboxField(a checkboxAssignment) string {
	for _, c := range m.canonical {
		if c.Kind != KindCheckbox {
			continue
		}
		if strings.Contains(c.Norm, a.Field) || strings.Contains(c.Norm, a.State) {
			return c.Name
		}
	}
	return a.Field
}

func (r *Result) absorb(matches []Match, consumed map[string]bool) {
	for _, mt := range matches {
		r.Fields[mt.Source] = mt.Target
		r.Matches[mt.Source] = mt
		consumed[mt.Target] = true
	}
}

// coverage counts distinct canonical fields consumed by any pass. Empty
// canonical sets report 0/0 with 0%, not an error.
func (m *Mapper) coverage(consumed map[string]bool) Coverage {
	cov := Coverage{
		TotalCanonical:    len(m.canonical),
		UnmappedCanonical: []string{},
	}
	for _, c := range m.canonical {
		if consumed[c.Name] {
			cov.TotalMapped++
		} else {
			cov.UnmappedCanonical = append(cov.UnmappedCanonical, c.Name)
		}
	}
	if cov.TotalCanonical > 0 {
		cov.CoveragePct = round2(100 * float64(cov.TotalMapped) / float64(cov.TotalCanonical))
	}
	return cov
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
