package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "User@Example.COM", want: "user@example.com"},
		{name: "trims", input: "  hello  ", want: "hello"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace_only", input: "   ", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseInputString(tc.input); got != tc.want {
				t.Fatalf("ParseInputString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTrimInputString(t *testing.T) {
	if got := TrimInputString("  My Universe  "); got != "My Universe" {
		t.Fatalf("TrimInputString kept whitespace or changed casing: %q", got)
	}
}

func TestTrimInputStringPtr(t *testing.T) {
	if got := TrimInputStringPtr(nil); got != nil {
		t.Fatal("TrimInputStringPtr(nil) != nil")
	}
	input := "  keep Case  "
	got := TrimInputStringPtr(&input)
	if got == nil || *got != "keep Case" {
		t.Fatalf("TrimInputStringPtr = %v", got)
	}
}
