package validation

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"onboarding/internal/onboarding/models"
	dErrors "onboarding/pkg/domain-errors"
	platformstrings "onboarding/pkg/platform/strings"
)

// FormatAmount strips every non-digit and groups the rest in thousands,
// e.g. "1500000" and "1.500.000" both become "1,500,000". Leading zeros are
// dropped. Input without digits formats to "".
func FormatAmount(input string) string {
	digits := platformstrings.DigitsOnly(input)
	if digits == "" {
		return ""
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return ""
	}
	return humanize.BigComma(n)
}

// FormatDecimal groups a whole amount in thousands, keeping the sign.
func FormatDecimal(d decimal.Decimal) string {
	return humanize.BigComma(d.Round(0).BigInt())
}

// NormalizeAmounts formats the financial amounts of form as the host shows
// them. Blank amounts stay blank.
func NormalizeAmounts(form models.ApplicationForm) models.ApplicationForm {
	if !platformstrings.IsBlank(form.Financial.TotalAssets) {
		form.Financial.TotalAssets = FormatAmount(form.Financial.TotalAssets)
	}
	if !platformstrings.IsBlank(form.Financial.TotalLiabilities) {
		form.Financial.TotalLiabilities = FormatAmount(form.Financial.TotalLiabilities)
	}
	return form
}

// ParseAmount reads an amount produced by FormatAmount.
func ParseAmount(formatted string) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(formatted), ",", "")
	if raw == "" {
		return decimal.Zero, dErrors.New(dErrors.CodeInvalidInput, "amount is empty")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeInvalidInput, "amount is not numeric")
	}
	return d, nil
}

// NetWorth is total assets minus total liabilities.
func NetWorth(f models.FinancialInfo) (decimal.Decimal, error) {
	assets, err := ParseAmount(f.TotalAssets)
	if err != nil {
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeValidation, "total assets")
	}
	liabilities, err := ParseAmount(f.TotalLiabilities)
	if err != nil {
		return decimal.Zero, dErrors.Wrap(err, dErrors.CodeValidation, "total liabilities")
	}
	return assets.Sub(liabilities), nil
}
