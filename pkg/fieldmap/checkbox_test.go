package fieldmap

import (
	"testing"

	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

func conceptFor(t *testing.T, tax *taxonomy.Taxonomy, name string) *taxonomy.CheckboxConcept {
	t.Helper()
	c, ok := tax.CheckboxConceptFor(name)
	if !ok {
		t.Fatalf("no checkbox concept for %q", name)
	}
	return c
}

func TestInterpretCheckbox(t *testing.T) {
	tax := testTaxonomy(t)

	tests := []struct {
		concept   string
		value     string
		wantState string
		wantField string
	}{
		{"mortgage_type", "VA loan", "va", "va"},
		{"mortgage_type", "Conventional", "conventional", "conventional"},
		{"mortgage_type", "USDA/Rural Housing", "usda", "usda rural"},
		{"amortization_type", "Fixed", "fixed rate", "fixed rate"},
		{"amortization_type", "5/1 ARM", "arm", "arm"},
		{"loan_purpose", "Purchase", "purchase", "purchase"},
		{"loan_purpose", "refi with cash out", "refinance", "refinance"},
		{"loan_purpose", "construction to permanent", "construction-permanent", "construction-permanent"},
		{"loan_purpose", "new construction", "construction", "construction"},
		{"property_usage", "Primary residence", "primary residence", "primary residence"},
		{"property_usage", "rental property", "investment", "investment"},
		{"estate_type", "Fee Simple", "fee simple", "fee simple"},
	}
	for _, tt := range tests {
		concept := conceptFor(t, tax, tt.concept)
		a, ok := interpretCheckbox(concept, tt.value)
		if !ok {
			t.Errorf("%s: %q not resolved", tt.concept, tt.value)
			continue
		}
		if a.State != tt.wantState || a.Field != tt.wantField {
			t.Errorf("%s: %q resolved to state %q field %q, want %q/%q",
				tt.concept, tt.value, a.State, a.Field, tt.wantState, tt.wantField)
		}
	}
}

func TestInterpretCheckboxNoHit(t *testing.T) {
	tax := testTaxonomy(t)
	concept := conceptFor(t, tax, "mortgage_type")

	for _, value := range []string{"", "   ", "hello", "maybe later"} {
		if a, ok := interpretCheckbox(concept, value); ok {
			t.Errorf("value %q unexpectedly resolved to %+v", value, a)
		}
	}
}

func TestInterpretCheckboxCaptures(t *testing.T) {
	tax := testTaxonomy(t)

	amort := conceptFor(t, tax, "amortization_type")
	a, ok := interpretCheckbox(amort, "5/1 ARM adjustable")
	if !ok || a.State != "arm" {
		t.Fatalf("arm answer not resolved: %+v ok=%v", a, ok)
	}
	if got := a.Details["arm type"]; got != "5/1" {
		t.Errorf("arm type detail = %q, want 5/1", got)
	}

	estate := conceptFor(t, tax, "estate_type")
	a, ok = interpretCheckbox(estate, "Leasehold, expires 2042")
	if !ok || a.State != "leasehold" {
		t.Fatalf("leasehold answer not resolved: %+v ok=%v", a, ok)
	}
	if got := a.Details["leasehold expiration"]; got != "2042" {
		t.Errorf("leasehold expiration detail = %q, want 2042", got)
	}

	// No date in the answer: the state still resolves, without details.
	a, ok = interpretCheckbox(estate, "leasehold")
	if !ok || a.State != "leasehold" {
		t.Fatalf("bare leasehold not resolved: %+v ok=%v", a, ok)
	}
	if len(a.Details) != 0 {
		t.Errorf("unexpected details %+v for bare leasehold", a.Details)
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		value   string
		checked bool
		ok      bool
	}{
		{"Yes", true, true},
		{"no", false, true},
		{"Y", true, true},
		{"n", false, true},
		{"1", true, true},
		{"0", false, true},
		{"TRUE", true, true},
		{"checked", true, true},
		{"unchecked", false, true},
		{"Not applicable", false, true},
		{"has not filed", false, true},
		{"Confirmed", true, true},
		{"I agree", true, true},
		{"", false, false},
		{"maybe", false, false},
		{"purple", false, false},
	}
	for _, tt := range tests {
		checked, ok := CoerceBool(tt.value)
		if checked != tt.checked || ok != tt.ok {
			t.Errorf("CoerceBool(%q) = (%v, %v), want (%v, %v)",
				tt.value, checked, ok, tt.checked, tt.ok)
		}
	}
}
