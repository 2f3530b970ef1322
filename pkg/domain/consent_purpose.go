package domain

import dErrors "onboarding/pkg/domain-errors"

// ConsentPurpose identifies what an applicant agreed to during onboarding.
// Invariant: the value must be one of the supported consent purposes.
//
// Usage: construct via ParseConsentPurpose at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ConsentPurpose string

// Supported consent purposes.
const (
	// ConsentPurposePrivacyPolicy is the checkbox on the base data form.
	ConsentPurposePrivacyPolicy ConsentPurpose = "privacy_policy"
	// ConsentPurposeDataTreatment is the personal-data authorization on the financial step.
	ConsentPurposeDataTreatment ConsentPurpose = "data_treatment"
	// ConsentPurposeTermsConditions is the terms checkbox on the financial step.
	ConsentPurposeTermsConditions ConsentPurpose = "terms_conditions"
	// ConsentPurposeAccountContract is the contractual terms screen, accepted after reading to the end.
	ConsentPurposeAccountContract ConsentPurpose = "account_contract"
)

var validConsentPurposes = map[ConsentPurpose]bool{
	ConsentPurposePrivacyPolicy:   true,
	ConsentPurposeDataTreatment:   true,
	ConsentPurposeTermsConditions: true,
	ConsentPurposeAccountContract: true,
}

// ParseConsentPurpose constructs a ConsentPurpose from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseConsentPurpose(s string) (ConsentPurpose, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "purpose cannot be empty")
	}
	p := ConsentPurpose(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid purpose")
	}
	return p, nil
}

// IsValid checks if the consent purpose is one of the supported enum values.
func (p ConsentPurpose) IsValid() bool {
	return validConsentPurposes[p]
}

func (p ConsentPurpose) String() string {
	return string(p)
}
