package models

import (
	dErrors "onboarding/pkg/domain-errors"
)

// Screen is one step of the wizard and a state of the flow controller.
type Screen string

const (
	ScreenLanding             Screen = "landing"
	ScreenProductInfo         Screen = "product-info"
	ScreenDataForm            Screen = "data-form"
	ScreenOTPValidation       Screen = "otp-validation"
	ScreenPEPValidation       Screen = "pep-validation"
	ScreenOnboardingProcess   Screen = "onboarding-process"
	ScreenDocumentCapture     Screen = "document-capture"
	ScreenBiometricValidation Screen = "biometric-validation"
	ScreenTermsConditions     Screen = "terms-conditions"
	ScreenAccountSuccess      Screen = "account-success"
	ScreenUserRegistration    Screen = "user-registration"
)

func (s Screen) String() string {
	return string(s)
}

// Variant selects which screens the flow runs through.
type Variant string

const (
	// VariantBase ends at account-success and skips PEP, document capture
	// and credential registration.
	VariantBase Variant = "base"
	// VariantExtended runs every screen and collects financial data.
	VariantExtended Variant = "extended"
)

func (v Variant) IsValid() bool {
	return v == VariantBase || v == VariantExtended
}

func (v Variant) String() string {
	return string(v)
}

// ParseVariant parses a variant name. Empty input yields VariantBase.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return VariantBase, nil
	}
	v := Variant(s)
	if !v.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown flow variant: "+s)
	}
	return v, nil
}

var variantScreens = map[Variant][]Screen{
	VariantBase: {
		ScreenLanding,
		ScreenProductInfo,
		ScreenDataForm,
		ScreenOTPValidation,
		ScreenOnboardingProcess,
		ScreenBiometricValidation,
		ScreenTermsConditions,
		ScreenAccountSuccess,
	},
	VariantExtended: {
		ScreenLanding,
		ScreenProductInfo,
		ScreenDataForm,
		ScreenOTPValidation,
		ScreenPEPValidation,
		ScreenOnboardingProcess,
		ScreenDocumentCapture,
		ScreenBiometricValidation,
		ScreenTermsConditions,
		ScreenAccountSuccess,
		ScreenUserRegistration,
	},
}

// Screens lists the screens of v in forward order.
func (v Variant) Screens() []Screen {
	return append([]Screen(nil), variantScreens[v]...)
}

// Includes reports whether screen is part of v.
func (v Variant) Includes(screen Screen) bool {
	for _, s := range variantScreens[v] {
		if s == screen {
			return true
		}
	}
	return false
}

// TerminalScreen is the screen on which a session of v completes.
func (v Variant) TerminalScreen() Screen {
	if v == VariantExtended {
		return ScreenUserRegistration
	}
	return ScreenAccountSuccess
}
