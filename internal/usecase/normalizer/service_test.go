package normalizer

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlens/stockreport/internal/domain"
)

// asOf is 100 days after the purchase date used by validRow, so the
// annualized extrapolation has round numbers.
var asOf = time.Date(2023, 6, 3, 15, 30, 0, 0, time.UTC)

func validRow() map[string]string {
	return map[string]string{
		FieldSymbol:        "AAPL",
		FieldShares:        "10",
		FieldPurchasePrice: "100",
		FieldCurrentValue:  "110",
		FieldPurchaseDate:  "02/23/2023",
	}
}

func TestNormalize_DerivedMetrics(t *testing.T) {
	service := NewService(asOf)

	holding, err := service.Normalize(validRow())
	require.NoError(t, err)

	// Setup above: diff = 10, shares = 10, 100 elapsed days.
	// EarningsLoss = 10 * 10 = 100.00
	// PercentageYieldLoss = 10/100 * 100 = 10.00
	// AnnualizedReturnPct = 0.1 / 100 * 365 * 100 = 36.50
	assert.True(t, holding.EarningsLoss.Equal(decimal.NewFromInt(100)),
		"EarningsLoss = %s", holding.EarningsLoss)
	assert.True(t, holding.PercentageYieldLoss.Equal(decimal.NewFromInt(10)),
		"PercentageYieldLoss = %s", holding.PercentageYieldLoss)
	assert.True(t, holding.AnnualizedReturnPct.Equal(decimal.NewFromFloat(36.5)),
		"AnnualizedReturnPct = %s", holding.AnnualizedReturnPct)

	assert.Equal(t, "AAPL", holding.Symbol)
	assert.Equal(t, 10, holding.Shares)
	assert.Equal(t, time.Date(2023, 2, 23, 0, 0, 0, 0, time.UTC), holding.PurchaseDate)
	assert.NotEqual(t, holding.PurchaseID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestNormalize_LossRoundsToTwoDecimals(t *testing.T) {
	service := NewService(asOf)

	row := validRow()
	row[FieldShares] = "3"
	row[FieldPurchasePrice] = "45.67"
	row[FieldCurrentValue] = "41.23"

	holding, err := service.Normalize(row)
	require.NoError(t, err)

	// (41.23 - 45.67) * 3 = -13.32
	assert.True(t, holding.EarningsLoss.Equal(decimal.NewFromFloat(-13.32)),
		"EarningsLoss = %s", holding.EarningsLoss)
	// (41.23 - 45.67) / 45.67 * 100 = -9.7219... -> -9.72
	assert.True(t, holding.PercentageYieldLoss.Equal(decimal.NewFromFloat(-9.72)),
		"PercentageYieldLoss = %s", holding.PercentageYieldLoss)
}

func TestNormalize_Deterministic(t *testing.T) {
	service := NewService(asOf)

	first, err := service.Normalize(validRow())
	require.NoError(t, err)
	second, err := service.Normalize(validRow())
	require.NoError(t, err)

	// Same inputs and same evaluation date yield the same derived values;
	// only the opaque purchase ID differs between runs.
	assert.True(t, first.EarningsLoss.Equal(second.EarningsLoss))
	assert.True(t, first.PercentageYieldLoss.Equal(second.PercentageYieldLoss))
	assert.True(t, first.AnnualizedReturnPct.Equal(second.AnnualizedReturnPct))
	assert.NotEqual(t, first.PurchaseID, second.PurchaseID)
}

func TestNormalize_ZeroPurchasePrice(t *testing.T) {
	service := NewService(asOf)

	row := validRow()
	row[FieldPurchasePrice] = "0"

	_, err := service.Normalize(row)

	var divErr *domain.DivisionByZeroError
	require.True(t, errors.As(err, &divErr), "want DivisionByZeroError, got %v", err)
	assert.Contains(t, divErr.Error(), "purchase price")
}

func TestNormalize_PurchasedOnEvaluationDate(t *testing.T) {
	service := NewService(asOf)

	row := validRow()
	row[FieldPurchaseDate] = "06/03/2023"

	_, err := service.Normalize(row)

	var divErr *domain.DivisionByZeroError
	require.True(t, errors.As(err, &divErr), "want DivisionByZeroError, got %v", err)
	assert.Contains(t, divErr.Error(), "zero elapsed days")
}

func TestNormalize_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		value     string
		wantField string
	}{
		{"Missing symbol", FieldSymbol, "", FieldSymbol},
		{"Non-numeric share count", FieldShares, "ten", FieldShares},
		{"Zero share count", FieldShares, "0", FieldShares},
		{"Non-numeric purchase price", FieldPurchasePrice, "12,50", FieldPurchasePrice},
		{"Negative purchase price", FieldPurchasePrice, "-5", FieldPurchasePrice},
		{"Non-numeric current value", FieldCurrentValue, "n/a", FieldCurrentValue},
		{"Unparseable purchase date", FieldPurchaseDate, "2023-02-23", FieldPurchaseDate},
		{"Future purchase date", FieldPurchaseDate, "01/01/2030", FieldPurchaseDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(asOf)
			row := validRow()
			row[tt.field] = tt.value

			_, err := service.Normalize(row)

			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Equal(t, tt.value, validationErr.Value)
		})
	}
}
