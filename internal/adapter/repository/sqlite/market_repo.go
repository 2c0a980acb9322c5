package sqlite

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/wealthlens/stockreport/internal/domain"
)

// marketRepository implements domain.MarketRepository on the AllStocks
// relation.
type marketRepository struct {
	db *DB
}

// NewMarketRepository creates a new market history repository.
func NewMarketRepository(db *DB) domain.MarketRepository {
	return &marketRepository{db: db}
}

// SaveAll appends every market price record to the AllStocks relation in
// order. The no-trade sentinel is stored as NULL in the Close column; close
// parsing beyond the sentinel stays a join-time concern, so any other close
// text passes through untouched.
func (r *marketRepository) SaveAll(ctx context.Context, records []domain.MarketPriceRecord) error {
	query := `
		INSERT INTO AllStocks (Symbol, Date, Open, High, Low, Close, Volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, rec := range records {
		var closeValue any
		if rec.Close != domain.NoTradeSentinel {
			closeValue = rec.Close
		}

		_, err := r.db.ExecContext(ctx, query,
			rec.Symbol,
			rec.Date,
			rec.Open.String(),
			rec.High.String(),
			rec.Low.String(),
			closeValue,
			rec.Volume,
		)
		if err != nil {
			return &domain.StoreError{Op: "insert AllStocks", Err: err}
		}
	}
	return nil
}

// LoadAll reads back all persisted market price records in insertion order.
// A NULL close is reconstructed as the no-trade sentinel so the joiner sees
// the same collection the feed delivered.
func (r *marketRepository) LoadAll(ctx context.Context) ([]domain.MarketPriceRecord, error) {
	query := `
		SELECT Symbol, Date, Open, High, Low, Close, Volume
		FROM AllStocks
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StoreError{Op: "select AllStocks", Err: err}
	}
	defer rows.Close()

	var records []domain.MarketPriceRecord
	for rows.Next() {
		var rec domain.MarketPriceRecord
		var open, high, low float64
		var closePrice sql.NullString

		if err := rows.Scan(&rec.Symbol, &rec.Date, &open, &high, &low, &closePrice, &rec.Volume); err != nil {
			return nil, &domain.StoreError{Op: "scan AllStocks", Err: err}
		}

		rec.Open = decimal.NewFromFloat(open)
		rec.High = decimal.NewFromFloat(high)
		rec.Low = decimal.NewFromFloat(low)
		if closePrice.Valid {
			rec.Close = closePrice.String
		} else {
			rec.Close = domain.NoTradeSentinel
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "select AllStocks", Err: err}
	}
	return records, nil
}
