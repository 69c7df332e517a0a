package barcode

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "3017620422003", "3017620422003"},
		{"surrounding space", "  3017620422003\n", "3017620422003"},
		{"fullwidth digits", "３０１７", "3017"},
		{"zero width joiner", "30‍17", "3017"},
		{"bom prefix", "\ufeff0000000000000", "0000000000000"},
		{"whitespace only", " \t ", ""},
		{"invalid utf8 dropped", "30\xff17", "3017"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.in); got != c.want {
				t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("3017620422003"); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}
	// no format rules beyond non-empty
	if err := Validate("not-a-number"); err != nil {
		t.Fatalf("Validate(non numeric) = %v", err)
	}
	for _, in := range []string{"", "   ", "\t\n", "‍"} {
		err := Validate(in)
		if err == nil {
			t.Fatalf("Validate(%q) = nil, want validation error", in)
		}
		if got := err.Error(); got != "Please enter a barcode number" {
			t.Fatalf("Validate(%q) message = %q", in, got)
		}
	}
}
