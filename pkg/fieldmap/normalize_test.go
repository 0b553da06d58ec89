package fieldmap

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Loan Amount", "loan amount"},
		{"  Borrower SSN  ", "borrower ssn"},
		{"form_first_name", "first_name"},
		{"txt_borrower_ssn", "borrower_ssn"},
		{"chk_purchase_box", "purchase"},
		{"opt_estate_type_value", "estate_type"},
		{"input_city_field", "city"},
		{"Élodie", "elodie"},
		{"naïve_input", "naive"},
		{"favorite color", "favorite color"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, name := range []string{"form_first_name", "Borrower SSN", "chk_purchase_box"} {
		once := Normalize(name)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", name, twice, once)
		}
	}
}
