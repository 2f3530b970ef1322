package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"ten digits", "3001234567", "(300) 123-4567"},
		{"keeps last ten digits", "+57 300 123 4567", "(300) 123-4567"},
		{"too short is unchanged", "12345", "12345"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.phone))
		})
	}
}

func TestDocumentType(t *testing.T) {
	for _, d := range DocumentTypes() {
		assert.True(t, d.IsValid(), string(d))
		assert.NotEqual(t, "Documento", d.Label(), string(d))
	}
	assert.False(t, DocumentType("nit").IsValid())
	assert.Equal(t, "Documento", DocumentType("nit").Label())
	assert.Equal(t, "Pasaporte", DocumentPassport.Label())
}

func TestParsePEPAnswer(t *testing.T) {
	yes, err := ParsePEPAnswer("yes")
	require.NoError(t, err)
	assert.Equal(t, PEPYes, yes)

	no, err := ParsePEPAnswer("no")
	require.NoError(t, err)
	assert.Equal(t, PEPNo, no)

	_, err = ParsePEPAnswer("")
	assert.Error(t, err)
	_, err = ParsePEPAnswer("YES")
	assert.Error(t, err)
}

func TestBasicInfo_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana Pérez", BasicInfo{FullName: "  Ana Pérez "}.DisplayName())
	assert.Equal(t, "Ana Pérez", BasicInfo{FirstName: "Ana", LastName: "Pérez"}.DisplayName())
	assert.Equal(t, "Ana", BasicInfo{FirstName: "Ana"}.DisplayName())
}

func TestVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantBase, v)

	_, err = ParseVariant("premium")
	assert.Error(t, err)

	assert.False(t, VariantBase.Includes(ScreenPEPValidation))
	assert.False(t, VariantBase.Includes(ScreenDocumentCapture))
	assert.False(t, VariantBase.Includes(ScreenUserRegistration))
	assert.True(t, VariantExtended.Includes(ScreenUserRegistration))
	assert.Len(t, VariantBase.Screens(), 8)
	assert.Len(t, VariantExtended.Screens(), 11)
	assert.Equal(t, ScreenAccountSuccess, VariantBase.TerminalScreen())
	assert.Equal(t, ScreenUserRegistration, VariantExtended.TerminalScreen())
}

func TestIsAuto(t *testing.T) {
	assert.True(t, IsAuto(ProgressCompleted{}))
	assert.True(t, IsAuto(CaptureConfirmed{}))
	assert.True(t, IsAuto(ScanCompleted{}))
	assert.False(t, IsAuto(AcceptTerms{}))
	assert.False(t, IsAuto(SubmitForm{}))
}
