package validation

import (
	platformstrings "onboarding/pkg/platform/strings"
)

// OTPLength is the number of digits of a verification code.
const OTPLength = 6

// OTP reports whether every code box has been filled with a digit.
func OTP(code string) Result {
	ok := len(code) == OTPLength && platformstrings.AllDigits(code)
	return Result{Valid: ok, Fields: map[string]bool{"code": ok}}
}
