package testutil

import (
	"onboarding/internal/onboarding/models"
)

const (
	IDNumber = "1020304050"
	Username = "abc123"
	Password = "abc12345"
)

// BaseApplication is a complete single-page data form.
func BaseApplication() models.ApplicationForm {
	return models.ApplicationForm{Basic: models.BasicInfo{
		FullName:     "Ana María Pérez",
		IDNumber:     IDNumber,
		DocumentType: models.DocumentCitizenID,
		Email:        "ana.perez@example.com",
		Phone:        "3001234567",
		AcceptTerms:  true,
	}}
}

// ExtendedApplication is a complete three-step data form for a salaried
// applicant.
func ExtendedApplication() models.ApplicationForm {
	return models.ApplicationForm{
		Basic: models.BasicInfo{
			FirstName:    "Ana María",
			LastName:     "Pérez",
			IDNumber:     IDNumber,
			DocumentType: models.DocumentCitizenID,
			Email:        "ana.perez@example.com",
			Phone:        "3001234567",
			IsResident:   true,
		},
		Financial: models.FinancialInfo{
			Occupation:          models.OccupationSalaried,
			Company:             "Acme S.A.S.",
			Position:            "Analista",
			StartDate:           "2020-01-15",
			IncomeBracket:       models.Bracket5To10,
			ExpenseBracket:      models.Bracket0To5,
			TotalAssets:         "150,000,000",
			TotalLiabilities:    "20,000,000",
			AcceptDataTreatment: true,
			AcceptTerms:         true,
		},
	}
}

func ValidRegistration() models.RegistrationForm {
	return models.RegistrationForm{Username: Username, Password: Password, Confirmation: Password}
}

// ScrolledToEnd is a terms viewport scrolled to the bottom.
func ScrolledToEnd() models.ScrollPosition {
	return models.ScrollPosition{ScrollTop: 1600, ScrollHeight: 2000, ClientHeight: 400}
}

// ScrolledToTop is a terms viewport at the top.
func ScrolledToTop() models.ScrollPosition {
	return models.ScrollPosition{ScrollTop: 0, ScrollHeight: 2000, ClientHeight: 400}
}
