package joiner

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wealthlens/stockreport/internal/domain"
)

// Join merges an investor's holdings with the daily market price history into
// the time-ordered valuation sequence consumed by the report charts.
//
// Logic:
//  1. Canonicalize ticker aliases across the whole market collection, exactly
//     once and before the join
//  2. Inner-join on exact symbol equality; a market record for an unowned
//     symbol, or a holding with no market history, is dropped silently (the
//     report only covers owned symbols)
//  3. The feed's no-trade sentinel maps to an absent close; any other
//     unparseable close fails with FormatError
//  4. Dates must parse under the feed's exact layout; a failure aborts the
//     join with FormatError since it signals upstream schema drift
//  5. StockDayValue = close * shares where close is present, absent otherwise
//  6. Sort by date ascending with the original input index as explicit
//     tie-break, so equal dates keep their input order on every run
func Join(holdings []domain.Holding, records []domain.MarketPriceRecord) ([]domain.JoinedValuationRecord, error) {
	sharesBySymbol := make(map[string]int, len(holdings))
	for _, h := range holdings {
		sharesBySymbol[h.Symbol] = h.Shares
	}

	canonical := make([]domain.MarketPriceRecord, len(records))
	copy(canonical, records)
	for i := range canonical {
		canonical[i].Symbol = domain.CanonicalSymbol(canonical[i].Symbol)
	}

	type indexedRecord struct {
		row   domain.JoinedValuationRecord
		input int
	}

	joined := make([]indexedRecord, 0, len(canonical))
	for _, rec := range canonical {
		shares, owned := sharesBySymbol[rec.Symbol]
		if !owned {
			continue
		}

		day, err := time.Parse(domain.MarketDateFormat, rec.Date)
		if err != nil {
			return nil, &domain.FormatError{Field: "Date", Value: rec.Date}
		}

		var closePrice decimal.NullDecimal
		if rec.Close != domain.NoTradeSentinel {
			value, err := decimal.NewFromString(rec.Close)
			if err != nil {
				return nil, &domain.FormatError{Field: "Close", Value: rec.Close}
			}
			closePrice = decimal.NullDecimal{Decimal: value, Valid: true}
		}

		row := domain.JoinedValuationRecord{
			Date:   day,
			Symbol: rec.Symbol,
			Close:  closePrice,
			Shares: shares,
		}
		if closePrice.Valid {
			row.StockDayValue = decimal.NullDecimal{
				Decimal: closePrice.Decimal.Mul(decimal.NewFromInt(int64(shares))),
				Valid:   true,
			}
		}
		joined = append(joined, indexedRecord{row: row, input: len(joined)})
	}

	// The input index is an explicit secondary sort key rather than a reliance
	// on sort stability, so the ordering contract holds under any sort
	// primitive.
	sort.Slice(joined, func(i, j int) bool {
		if !joined[i].row.Date.Equal(joined[j].row.Date) {
			return joined[i].row.Date.Before(joined[j].row.Date)
		}
		return joined[i].input < joined[j].input
	})

	result := make([]domain.JoinedValuationRecord, len(joined))
	for i, rec := range joined {
		result[i] = rec.row
	}
	return result, nil
}
