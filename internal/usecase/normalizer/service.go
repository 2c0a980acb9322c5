package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wealthlens/stockreport/internal/domain"
)

// Field names required in the holding source header row.
const (
	FieldSymbol        = "SYMBOL"
	FieldShares        = "NO_SHARES"
	FieldPurchasePrice = "PURCHASE_PRICE"
	FieldCurrentValue  = "CURRENT_VALUE"
	FieldPurchaseDate  = "PURCHASE_DATE"
)

var hundred = decimal.NewFromInt(100)

// Service turns raw holding rows into typed holdings with derived
// profitability metrics. The evaluation date is fixed at construction so that
// the annualized-return snapshot is the same for every holding of a run and
// deterministic under test.
type Service struct {
	asOf time.Time
}

// NewService creates a new Service evaluating holdings as of the given date.
// The time of day is discarded; elapsed holding time is counted in whole days.
func NewService(asOf time.Time) *Service {
	y, m, d := asOf.Date()
	return &Service{asOf: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Normalize parses one raw holding row and computes its derived metrics.
//
// Logic:
//  1. Parse the five required fields; any missing or malformed field fails
//     with a ValidationError naming the field and the raw value
//  2. EarningsLoss = (current - purchase) * shares, rounded to 2 decimals
//  3. PercentageYieldLoss = (current - purchase) / purchase * 100, rounded;
//     a zero purchase price fails with DivisionByZeroError
//  4. AnnualizedReturnPct extrapolates the simple percentage change over the
//     elapsed whole days to 365 days (daily-rate extrapolation, not CAGR); a
//     purchase on the evaluation date has zero elapsed days and fails with
//     DivisionByZeroError
func (s *Service) Normalize(raw map[string]string) (*domain.Holding, error) {
	symbol := strings.TrimSpace(raw[FieldSymbol])
	if symbol == "" {
		return nil, &domain.ValidationError{Field: FieldSymbol, Value: raw[FieldSymbol]}
	}

	shares, err := strconv.Atoi(strings.TrimSpace(raw[FieldShares]))
	if err != nil || shares <= 0 {
		return nil, &domain.ValidationError{Field: FieldShares, Value: raw[FieldShares]}
	}

	purchasePrice, err := decimal.NewFromString(strings.TrimSpace(raw[FieldPurchasePrice]))
	if err != nil || purchasePrice.IsNegative() {
		return nil, &domain.ValidationError{Field: FieldPurchasePrice, Value: raw[FieldPurchasePrice]}
	}

	currentPrice, err := decimal.NewFromString(strings.TrimSpace(raw[FieldCurrentValue]))
	if err != nil || !currentPrice.IsPositive() {
		return nil, &domain.ValidationError{Field: FieldCurrentValue, Value: raw[FieldCurrentValue]}
	}

	purchaseDate, err := time.Parse(domain.PurchaseDateFormat, strings.TrimSpace(raw[FieldPurchaseDate]))
	if err != nil || purchaseDate.After(s.asOf) {
		return nil, &domain.ValidationError{Field: FieldPurchaseDate, Value: raw[FieldPurchaseDate]}
	}

	// A zero purchase price is invalid input, not infinite yield.
	if purchasePrice.IsZero() {
		return nil, &domain.DivisionByZeroError{Reason: "purchase price is zero"}
	}

	elapsedDays := int64(s.asOf.Sub(purchaseDate).Hours() / 24)
	if elapsedDays == 0 {
		return nil, &domain.DivisionByZeroError{Reason: "holding purchased on the evaluation date, zero elapsed days"}
	}

	holding := &domain.Holding{
		Symbol:        symbol,
		Shares:        shares,
		PurchasePrice: purchasePrice,
		CurrentPrice:  currentPrice,
		PurchaseDate:  purchaseDate,
		PurchaseID:    uuid.New(),
	}

	sharesDec := decimal.NewFromInt(int64(shares))
	diff := currentPrice.Sub(purchasePrice)

	holding.EarningsLoss = diff.Mul(sharesDec).Round(2)
	holding.PercentageYieldLoss = diff.Div(purchasePrice).Mul(hundred).Round(2)

	// Simple daily rate scaled to a 365-day year, kept non-compounded for
	// output compatibility with the historical reports.
	holding.AnnualizedReturnPct = diff.Div(purchasePrice).
		Div(decimal.NewFromInt(elapsedDays)).
		Mul(decimal.NewFromInt(365)).
		Mul(hundred).
		Round(2)

	if err := holding.Validate(); err != nil {
		return nil, err
	}

	return holding, nil
}
