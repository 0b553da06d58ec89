package fieldmap

import (
	"strings"

	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

// checkboxAssignment is one resolved checkbox state: the target field to
// tick plus any secondary extraction pulled out of the raw answer.
type checkboxAssignment struct {
	State   string
	Field   string
	Details map[string]string
}

// interpretCheckbox resolves a free-text answer against a checkbox
// concept's states in configured priority order: the first state with any
// trigger phrase contained in the value wins. Sibling states stay absent
// (unknown, not false). No recognized phrase means no assignment, never an
// error.
func interpretCheckbox(concept *taxonomy.CheckboxConcept, value string) (checkboxAssignment, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return checkboxAssignment{}, false
	}
	for _, state := range concept.States {
		for _, phrase := range state.Phrases {
			if !strings.Contains(v, phrase) {
				continue
			}
			a := checkboxAssignment{State: state.Name, Field: state.Field}
			if state.Capture != nil {
				if got := state.Capture.Extract(v); got != "" {
					a.Details = map[string]string{state.Capture.Field: got}
				}
			}
			return a, true
		}
	}
	return checkboxAssignment{}, false
}

// Negative indicators are tested before affirmative ones so "not applicable"
// and "does not" never read as a yes. Order within each list is immaterial.
var (
	negativeIndicators = []string{
		"no", "false", "off", "n/a", "none", "unchecked", "not selected",
		"not applicable", "not confirmed", "inactive", "disagree", "denied",
		"is not", "are not", "has not", "does not", "was not", "were not",
	}
	affirmativeIndicators = []string{
		"yes", "true", "on", "checked", "selected", "agree", "confirmed",
		"completed", "active",
	}
)

// CoerceBool interprets a free-text yes/no answer for a plain declaration
// checkbox. The second return is false when the value carries no readable
// indicator; callers should then leave the box untouched rather than assert
// a state.
func CoerceBool(value string) (checked, ok bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false, false
	}
	switch v {
	case "y", "n", "0", "1":
		return v == "y" || v == "1", true
	}
	for _, neg := range negativeIndicators {
		if strings.Contains(v, neg) {
			return false, true
		}
	}
	for _, aff := range affirmativeIndicators {
		if strings.Contains(v, aff) {
			return true, true
		}
	}
	return false, false
}
