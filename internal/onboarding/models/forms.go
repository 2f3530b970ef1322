package models

import (
	"strings"

	dErrors "onboarding/pkg/domain-errors"
	platformstrings "onboarding/pkg/platform/strings"
)

// DocumentType is the kind of identity document the applicant presents.
type DocumentType string

const (
	DocumentCitizenID     DocumentType = "cc"
	DocumentForeignID     DocumentType = "ce"
	DocumentMinorID       DocumentType = "ti"
	DocumentPassport      DocumentType = "pp"
	DocumentCivilRegistry DocumentType = "rc"
)

var documentLabels = map[DocumentType]string{
	DocumentCitizenID:     "Cédula de Ciudadanía",
	DocumentForeignID:     "Cédula de Extranjería",
	DocumentMinorID:       "Tarjeta de Identidad",
	DocumentPassport:      "Pasaporte",
	DocumentCivilRegistry: "Registro Civil",
}

// DocumentTypes lists the accepted document types in display order.
func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentCitizenID,
		DocumentForeignID,
		DocumentMinorID,
		DocumentPassport,
		DocumentCivilRegistry,
	}
}

func (d DocumentType) IsValid() bool {
	_, ok := documentLabels[d]
	return ok
}

// Label is the human-readable name shown on the capture screen. Unknown
// types fall back to the generic "Documento".
func (d DocumentType) Label() string {
	if label, ok := documentLabels[d]; ok {
		return label
	}
	return "Documento"
}

// Occupation is the applicant's employment situation.
type Occupation string

const (
	OccupationSalaried   Occupation = "asalariado"
	OccupationSelfEmploy Occupation = "independiente"
	OccupationDiplomat   Occupation = "diplomatico"
	OccupationRetired    Occupation = "jubilado"
	OccupationStudent    Occupation = "estudiante"
	OccupationHomemaker  Occupation = "hogar"
	OccupationRentier    Occupation = "rentista"
)

// RequiresEmployer reports whether employer fields must be provided.
func (o Occupation) RequiresEmployer() bool {
	return o == OccupationSalaried
}

// Bracket is a monthly income or expense range, in millions.
type Bracket string

const (
	Bracket0To5   Bracket = "0-5"
	Bracket5To10  Bracket = "5-10"
	Bracket10To15 Bracket = "10-15"
	Bracket15To20 Bracket = "15-20"
	Bracket20Plus Bracket = "20+"
)

// BasicInfo is the identity block of the application. The base variant
// collects FullName; the extended variant collects FirstName and LastName.
type BasicInfo struct {
	FullName     string
	FirstName    string
	LastName     string
	IDNumber     string
	DocumentType DocumentType
	Email        string
	Phone        string
	IsResident   bool
	AcceptTerms  bool
}

// DisplayName is the applicant's name as entered on either form variant.
func (b BasicInfo) DisplayName() string {
	if name := strings.TrimSpace(b.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(b.FirstName) + " " + strings.TrimSpace(b.LastName))
}

// FinancialInfo is collected by the extended variant only. Amounts are kept
// as the formatted strings the applicant typed.
type FinancialInfo struct {
	Occupation          Occupation
	Company             string
	Position            string
	StartDate           string
	IncomeBracket       Bracket
	ExpenseBracket      Bracket
	TotalAssets         string
	TotalLiabilities    string
	AcceptDataTreatment bool
	AcceptTerms         bool
}

// ApplicationForm is the data-form payload.
type ApplicationForm struct {
	Basic     BasicInfo
	Financial FinancialInfo
}

// RegistrationForm is the user-registration payload.
type RegistrationForm struct {
	Username     string
	Password     string
	Confirmation string
}

// Credentials are the online-banking credentials chosen at the end of the
// extended flow.
type Credentials struct {
	Username string
	Password string
}

// PEPStatus is the tri-state Politically Exposed Person declaration.
type PEPStatus int

const (
	PEPUnknown PEPStatus = iota
	PEPYes
	PEPNo
)

func (p PEPStatus) String() string {
	switch p {
	case PEPYes:
		return "yes"
	case PEPNo:
		return "no"
	default:
		return "unknown"
	}
}

// IsDeclared reports whether the applicant has answered the PEP question.
func (p PEPStatus) IsDeclared() bool {
	return p == PEPYes || p == PEPNo
}

// ParsePEPAnswer maps the radio value to a declared status.
func ParsePEPAnswer(answer string) (PEPStatus, error) {
	switch answer {
	case "yes":
		return PEPYes, nil
	case "no":
		return PEPNo, nil
	default:
		return PEPUnknown, dErrors.New(dErrors.CodeInvalidInput, "pep answer must be yes or no")
	}
}

// FormatPhone renders the last ten digits of phone as "(xxx) xxx-xxxx".
// Inputs with fewer than ten digits are returned unchanged.
func FormatPhone(phone string) string {
	digits := platformstrings.DigitsOnly(phone)
	if len(digits) < 10 {
		return phone
	}
	d := digits[len(digits)-10:]
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}
