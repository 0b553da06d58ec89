package fieldmap

import "fmt"

// MatchType identifies the pass that produced a field assignment.
type MatchType string

const (
	MatchOverride MatchType = "override"
	MatchExact    MatchType = "exact"
	MatchFuzzy    MatchType = "fuzzy"
	MatchSemantic MatchType = "semantic"
)

// FieldKind is the inferred widget kind of a canonical field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindCheckbox FieldKind = "checkbox"
)

// ExtractedField is one candidate field produced by the upstream
// AI-extraction collaborator. Name is arbitrary and non-canonical; Value and
// Confidence are optional. Confidence is carried for callers but does not
// influence matching.
type ExtractedField struct {
	Name       string  `json:"name"`
	Value      any     `json:"value,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ValueString renders the extracted value for text processing. Nil values
// render empty.
func (f ExtractedField) ValueString() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Match records how one source field was assigned to a canonical target.
type Match struct {
	Source string    `json:"source"`
	Target string    `json:"target"`
	Score  float64   `json:"score"`
	Type   MatchType `json:"match_type"`
}

// Coverage summarizes how much of the canonical field set was consumed.
type Coverage struct {
	TotalCanonical    int      `json:"total_canonical"`
	TotalMapped       int      `json:"total_mapped"`
	CoveragePct       float64  `json:"coverage_pct"`
	UnmappedCanonical []string `json:"unmapped_canonical"`
}

// Result is a complete generated mapping.
type Result struct {
	// Fields maps an extracted source name to the canonical field it fills.
	Fields map[string]string `json:"fields"`
	// Checkboxes maps a canonical checkbox field to its inferred state.
	// Absent siblings mean unknown, not false.
	Checkboxes map[string]bool `json:"checkboxes,omitempty"`
	// Details holds secondary extractions from checkbox answers, e.g. the
	// ratio of an adjustable-rate loan or a leasehold expiration date.
	Details map[string]string `json:"details,omitempty"`
	// Matches records score and pass per source field.
	Matches map[string]Match `json:"matches,omitempty"`
	Report  Coverage         `json:"report"`
}

// Flatten renders the result in the wire shape downstream collaborators
// consume: plain source->target pairs plus "checkbox:<field>" booleans. The
// namespace keeps checkbox assignments from colliding with plain fields.
func (r *Result) Flatten() map[string]any {
	out := make(map[string]any, len(r.Fields)+len(r.Checkboxes))
	for src, target := range r.Fields {
		out[src] = target
	}
	for field, checked := range r.Checkboxes {
		out["checkbox:"+field] = checked
	}
	return out
}
