package sqlite

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wealthlens/stockreport/internal/domain"
)

// holdingRepository implements domain.HoldingRepository on the stocks
// relation. Every column is TEXT, matching the store contract; values are
// formatted on write and parsed back on read.
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository.
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// SaveAll appends every holding to the stocks relation in order.
// PercentageYieldLoss is intentionally not persisted: it is carried on the
// in-memory holding only, mirroring the report layout this store feeds.
func (r *holdingRepository) SaveAll(ctx context.Context, investorID string, holdings []domain.Holding) error {
	query := `
		INSERT INTO stocks (SYMBOL, NO_SHARES, PURCHASE_PRICE, CURRENT_VALUE, PURCHASE_DATE, EARNINGS_LOSS, YEARLY_EARNING_LOSS, PURCHASE_ID, INVESTOR_ID)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, h := range holdings {
		_, err := r.db.ExecContext(ctx, query,
			h.Symbol,
			strconv.Itoa(h.Shares),
			h.PurchasePrice.String(),
			h.CurrentPrice.String(),
			h.PurchaseDate.Format(domain.PurchaseDateFormat),
			h.EarningsLoss.StringFixed(2),
			h.AnnualizedReturnPct.StringFixed(2),
			h.PurchaseID.String(),
			investorID,
		)
		if err != nil {
			return &domain.StoreError{Op: "insert stocks", Err: err}
		}
	}
	return nil
}

// LoadAll reads back all persisted holdings in insertion order.
func (r *holdingRepository) LoadAll(ctx context.Context) ([]domain.StoredHolding, error) {
	query := `
		SELECT SYMBOL, NO_SHARES, PURCHASE_PRICE, CURRENT_VALUE, PURCHASE_DATE, EARNINGS_LOSS, YEARLY_EARNING_LOSS, PURCHASE_ID, INVESTOR_ID
		FROM stocks
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StoreError{Op: "select stocks", Err: err}
	}
	defer rows.Close()

	var holdings []domain.StoredHolding
	for rows.Next() {
		var stored domain.StoredHolding
		var shares, purchase, current, date, earnings, yearly, purchaseID string
		if err := rows.Scan(
			&stored.Symbol,
			&shares,
			&purchase,
			&current,
			&date,
			&earnings,
			&yearly,
			&purchaseID,
			&stored.InvestorID,
		); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}

		if stored.Shares, err = strconv.Atoi(shares); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.PurchasePrice, err = decimal.NewFromString(purchase); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.CurrentPrice, err = decimal.NewFromString(current); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.PurchaseDate, err = time.Parse(domain.PurchaseDateFormat, date); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.EarningsLoss, err = decimal.NewFromString(earnings); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.AnnualizedReturnPct, err = decimal.NewFromString(yearly); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}
		if stored.PurchaseID, err = uuid.Parse(purchaseID); err != nil {
			return nil, &domain.StoreError{Op: "scan stocks", Err: err}
		}

		holdings = append(holdings, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "select stocks", Err: err}
	}
	return holdings, nil
}
