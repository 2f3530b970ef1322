package validation

import (
	"strings"
	"unicode/utf8"

	"onboarding/internal/onboarding/models"
	platformstrings "onboarding/pkg/platform/strings"
)

const (
	UsernameMinLen    = 6
	UsernameMaxLen    = 12
	UsernameMinDigits = 2
	PasswordMinLen    = 8
	PasswordMaxLen    = 10
)

// Live rule names reported by UsernameChecks and PasswordChecks.
const (
	RuleLength      = "length"
	RuleDigits      = "digits"
	RuleDigit       = "digit"
	RuleLetter      = "letter"
	RuleNotIDNumber = "not_id_number"
)

// RegistrationPolicy holds the optional credential rules.
type RegistrationPolicy struct {
	// ForbidIDNumberUsername rejects a username equal to the applicant's
	// national ID number.
	ForbidIDNumberUsername bool
}

// UsernameChecks reports each username rule. The not_id_number rule is only
// present when the policy enables it.
func UsernameChecks(username string, policy RegistrationPolicy, idNumber string) map[string]bool {
	n := utf8.RuneCountInString(username)
	checks := map[string]bool{
		RuleLength: n >= UsernameMinLen && n <= UsernameMaxLen,
		RuleDigits: platformstrings.CountDigits(username) >= UsernameMinDigits,
	}
	if policy.ForbidIDNumberUsername {
		id := strings.TrimSpace(idNumber)
		checks[RuleNotIDNumber] = id == "" || username != id
	}
	return checks
}

// PasswordChecks reports each password rule.
func PasswordChecks(password string) map[string]bool {
	n := utf8.RuneCountInString(password)
	return map[string]bool{
		RuleLength: n >= PasswordMinLen && n <= PasswordMaxLen,
		RuleDigit:  platformstrings.CountDigits(password) > 0,
		RuleLetter: platformstrings.ContainsLetter(password),
	}
}

// ConfirmationMatches reports whether the confirmation is non-empty and
// equal to the password.
func ConfirmationMatches(password, confirmation string) bool {
	return confirmation != "" && confirmation == password
}

// Registration validates the user-registration form.
func Registration(form models.RegistrationForm, policy RegistrationPolicy, idNumber string) Result {
	fields := map[string]bool{
		"username":     allTrue(UsernameChecks(form.Username, policy, idNumber)),
		"password":     allTrue(PasswordChecks(form.Password)),
		"confirmation": ConfirmationMatches(form.Password, form.Confirmation),
	}
	return Result{Valid: allTrue(fields), Fields: fields}
}

func allTrue(checks map[string]bool) bool {
	for _, ok := range checks {
		if !ok {
			return false
		}
	}
	return true
}
