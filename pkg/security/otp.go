package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// GenerateOTP produces a 6-digit numeric passcode in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// IsValidOTPFormat reports whether the input is exactly six digits. This is
// the local check applied before any store lookup.
func IsValidOTPFormat(code string) bool {
	return otpPattern.MatchString(code)
}
