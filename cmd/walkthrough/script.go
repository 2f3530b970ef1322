package main

import (
	"onboarding/internal/onboarding/models"
)

// endOfTerms is a terms viewport scrolled to the bottom.
var endOfTerms = models.ScrollPosition{ScrollTop: 1600, ScrollHeight: 2000, ClientHeight: 400}

func baseScript() []models.Event {
	return []models.Event{
		models.OpenAccount{},
		models.SelectProduct{},
		models.SubmitForm{Form: models.ApplicationForm{Basic: models.BasicInfo{
			FullName:     "Ana María Pérez",
			IDNumber:     "1020304050",
			DocumentType: models.DocumentCitizenID,
			Email:        "ana.perez@example.com",
			Phone:        "3001234567",
			AcceptTerms:  true,
		}}},
		models.VerifyOTP{Code: "123456"},
		models.StartScan{},
		models.ScrollTerms{Position: endOfTerms},
		models.AcceptTerms{},
		models.ContinueFromSuccess{},
	}
}

func extendedScript() []models.Event {
	form := models.ApplicationForm{
		Basic: models.BasicInfo{
			FirstName:    "Ana María",
			LastName:     "Pérez",
			IDNumber:     "1020304050",
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
			TotalAssets:         "150000000",
			TotalLiabilities:    "20000000",
			AcceptDataTreatment: true,
			AcceptTerms:         true,
		},
	}
	return []models.Event{
		models.OpenAccount{},
		models.SelectProduct{},
		models.NextFormStep{Form: form},
		models.NextFormStep{Form: form},
		models.SubmitForm{Form: form},
		models.VerifyOTP{Code: "123456"},
		models.DeclarePEP{Answer: "no"},
		models.TakePhoto{},
		models.ConfirmPhoto{},
		models.StartScan{},
		models.ScrollTerms{Position: endOfTerms},
		models.AcceptTerms{},
		models.ContinueFromSuccess{Benefit: "cashback"},
		models.CompleteRegistration{Form: models.RegistrationForm{
			Username:     "abc123",
			Password:     "abc12345",
			Confirmation: "abc12345",
		}},
	}
}

// scriptFor returns the host events in order. The driver lets time pass
// until the controller accepts each one.
func scriptFor(variant models.Variant) []models.Event {
	if variant == models.VariantExtended {
		return extendedScript()
	}
	return baseScript()
}
