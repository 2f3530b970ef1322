package validation

import (
	"strings"

	"onboarding/internal/onboarding/models"
)

type baseBasicInfoRules struct {
	FullName     string `json:"fullName"     validate:"required"`
	IDNumber     string `json:"idNumber"     validate:"required"`
	DocumentType string `json:"documentType" validate:"required,oneof=cc ce ti pp rc"`
	Email        string `json:"email"        validate:"required"`
	Phone        string `json:"phone"        validate:"required"`
	AcceptTerms  bool   `json:"acceptTerms"  validate:"required"`
}

type personalStepRules struct {
	DocumentType string `json:"documentType" validate:"required,oneof=cc ce ti pp rc"`
	IDNumber     string `json:"idNumber"     validate:"required"`
	FirstName    string `json:"firstName"    validate:"required"`
	LastName     string `json:"lastName"     validate:"required"`
	Email        string `json:"email"        validate:"required"`
	Phone        string `json:"phone"        validate:"required"`
}

type occupationStepRules struct {
	Occupation string `json:"occupation" validate:"required,oneof=asalariado independiente diplomatico jubilado estudiante hogar rentista"`
	Company    string `json:"company"    validate:"required_if=Occupation asalariado"`
	Position   string `json:"position"   validate:"required_if=Occupation asalariado"`
	StartDate  string `json:"startDate"  validate:"required_if=Occupation asalariado"`
}

type financialStepRules struct {
	IncomeBracket       string `json:"incomeBracket"       validate:"required,oneof=0-5 5-10 10-15 15-20 20+"`
	ExpenseBracket      string `json:"expenseBracket"      validate:"required,oneof=0-5 5-10 10-15 15-20 20+"`
	TotalAssets         string `json:"totalAssets"         validate:"required"`
	TotalLiabilities    string `json:"totalLiabilities"    validate:"required"`
	AcceptDataTreatment bool   `json:"acceptDataTreatment" validate:"required"`
	AcceptTerms         bool   `json:"acceptTerms"         validate:"required"`
}

type pepRules struct {
	Answer string `json:"answer" validate:"required,oneof=yes no"`
}

// BasicInfo validates the single-page data form of the base variant.
func BasicInfo(b models.BasicInfo) Result {
	return check(baseBasicInfoRules{
		FullName:     strings.TrimSpace(b.FullName),
		IDNumber:     strings.TrimSpace(b.IDNumber),
		DocumentType: strings.TrimSpace(string(b.DocumentType)),
		Email:        strings.TrimSpace(b.Email),
		Phone:        strings.TrimSpace(b.Phone),
		AcceptTerms:  b.AcceptTerms,
	})
}

// PersonalStep validates step 1 of the extended data form.
func PersonalStep(b models.BasicInfo) Result {
	return check(personalStepRules{
		DocumentType: strings.TrimSpace(string(b.DocumentType)),
		IDNumber:     strings.TrimSpace(b.IDNumber),
		FirstName:    strings.TrimSpace(b.FirstName),
		LastName:     strings.TrimSpace(b.LastName),
		Email:        strings.TrimSpace(b.Email),
		Phone:        strings.TrimSpace(b.Phone),
	})
}

// OccupationStep validates step 2 of the extended data form. Employer
// fields are only required for salaried applicants.
func OccupationStep(f models.FinancialInfo) Result {
	return check(occupationStepRules{
		Occupation: strings.TrimSpace(string(f.Occupation)),
		Company:    strings.TrimSpace(f.Company),
		Position:   strings.TrimSpace(f.Position),
		StartDate:  strings.TrimSpace(f.StartDate),
	})
}

// FinancialStep validates step 3 of the extended data form. Amounts count
// as filled in only when they contain digits.
func FinancialStep(f models.FinancialInfo) Result {
	return check(financialStepRules{
		IncomeBracket:       strings.TrimSpace(string(f.IncomeBracket)),
		ExpenseBracket:      strings.TrimSpace(string(f.ExpenseBracket)),
		TotalAssets:         FormatAmount(f.TotalAssets),
		TotalLiabilities:    FormatAmount(f.TotalLiabilities),
		AcceptDataTreatment: f.AcceptDataTreatment,
		AcceptTerms:         f.AcceptTerms,
	})
}

// FormStep validates one step (1-based) of the extended data form. Steps
// outside 1..FormSteps are never valid.
func FormStep(step int, form models.ApplicationForm) Result {
	switch step {
	case 1:
		return PersonalStep(form.Basic)
	case 2:
		return OccupationStep(form.Financial)
	case 3:
		return FinancialStep(form.Financial)
	default:
		return Result{Valid: false, Fields: map[string]bool{}}
	}
}

// FormSteps is the number of steps of the extended data form.
const FormSteps = 3

// Application validates the full data-form payload for variant.
func Application(variant models.Variant, form models.ApplicationForm) Result {
	if variant != models.VariantExtended {
		return BasicInfo(form.Basic)
	}
	return merge(
		PersonalStep(form.Basic),
		OccupationStep(form.Financial),
		FinancialStep(form.Financial),
	)
}

// PEP validates the PEP radio selection.
func PEP(answer string) Result {
	return check(pepRules{Answer: answer})
}
