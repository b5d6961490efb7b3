package security

import "testing"

func TestGenerateOTPRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if !IsValidOTPFormat(code) {
			t.Fatalf("generated code %q failed its own format check", code)
		}
		if code[0] == '0' {
			t.Fatalf("codes start at 100000, got %q", code)
		}
	}
}

func TestIsValidOTPFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"123456":  true,
		"000000":  true,
		"12a45":   false,
		"12345":   false,
		"1234567": false,
		" 123456": false,
		"":        false,
	}
	for input, want := range cases {
		if got := IsValidOTPFormat(input); got != want {
			t.Fatalf("IsValidOTPFormat(%q) = %v, want %v", input, got, want)
		}
	}
}
