package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseDateFormat is the layout of purchase dates in the holding source
// and in the stocks relation.
const PurchaseDateFormat = "01/02/2006"

// Holding represents one owned position in a single ticker symbol.
//
// The three derived metrics are computed exactly once by the normalizer when
// the holding is created and are immutable afterwards. EarningsLoss and
// PercentageYieldLoss are pure functions of the inputs; AnnualizedReturnPct
// is a snapshot relative to the evaluation date and changes when the same
// holding is normalized on a different day.
type Holding struct {
	Symbol        string
	Shares        int
	PurchasePrice decimal.Decimal // currency units per share at acquisition
	CurrentPrice  decimal.Decimal // currency units per share as supplied by the source, not live
	PurchaseDate  time.Time
	PurchaseID    uuid.UUID // opaque, unique within a run only

	EarningsLoss        decimal.Decimal // currency, positive = gain
	PercentageYieldLoss decimal.Decimal // percent
	AnnualizedReturnPct decimal.Decimal // percent, snapshot at the evaluation date
}

// Validate ensures the holding adheres to domain rules.
// Returns an error if validation fails.
func (h *Holding) Validate() error {
	if h.Symbol == "" {
		return errors.New("holding symbol cannot be empty")
	}
	if h.Shares <= 0 {
		return errors.New("holding share count must be positive")
	}
	if !h.PurchasePrice.IsPositive() {
		return errors.New("holding purchase price must be positive")
	}
	if !h.CurrentPrice.IsPositive() {
		return errors.New("holding current price must be positive")
	}
	return nil
}

// Investor represents the holder identity and its ordered collection of
// holdings. The investor owns the collection exclusively; holdings do not
// reference back to the investor.
type Investor struct {
	InvestorID  string
	Name        string
	PhoneNumber string
	Holdings    []Holding
	Bonds       []Holding // reserved for bond ownership, not populated by the current feature set
}

// StoredHolding is a holding row as read back from the stocks relation,
// tagged with the investor that owns it. PercentageYieldLoss is not persisted
// and is zero on read-back.
type StoredHolding struct {
	InvestorID string
	Holding
}
