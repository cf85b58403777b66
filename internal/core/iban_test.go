package core

import "testing"

func TestValidIBAN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "valid NL", input: "NL91ABNA0417164300", want: true},
		{name: "valid DE", input: "DE89370400440532013000", want: true},
		{name: "valid BE", input: "BE68539007547034", want: true},
		{name: "valid with spaces", input: "NL91 ABNA 0417 1643 00", want: true},
		{name: "valid lowercase", input: "nl91abna0417164300", want: true},
		{name: "wrong check digits", input: "NL92ABNA0417164300", want: false},
		{name: "checksum failure", input: "NL00BANK0123456789", want: false},
		{name: "too short", input: "NL91", want: false},
		{name: "not iban shaped", input: "12345678", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIBAN(tt.input); got != tt.want {
				t.Errorf("ValidIBAN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIBAN(t *testing.T) {
	if got := NormalizeIBAN(" nl91 abna 0417 1643 00 "); got != "NL91ABNA0417164300" {
		t.Errorf("NormalizeIBAN() = %q", got)
	}
}

func TestLooksLikeIBAN(t *testing.T) {
	if !LooksLikeIBAN("NL00BANK0123456789") {
		t.Error("IBAN-shaped account number not recognized")
	}
	if LooksLikeIBAN("rekening 123") {
		t.Error("free-form account number reported as IBAN-shaped")
	}
}
