package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoTradeSentinel is the market feed's placeholder for a day with no close
// price. It must map to an absent value downstream, never to zero and never
// to a parse error.
const NoTradeSentinel = "-"

// MarketDateFormat is the exact layout of the market feed's Date field. A
// date that fails to parse under this layout is a FormatError, not a row to
// drop silently.
const MarketDateFormat = "02-Jan-06"

// MarketPriceRecord is one day's OHLC and volume observation for one symbol,
// as delivered by the market history feed. Date stays in the feed's DD-Mon-YY
// text form until the join parses it, and Close stays text because the feed
// uses the no-trade sentinel in place of a number.
type MarketPriceRecord struct {
	Symbol string
	Date   string
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  string
	Volume int64
}

// JoinedValuationRecord combines ownership size with one day's market price
// for an owned symbol. It is recomputed on every run and never persisted.
//
// Close and StockDayValue are invalid (absent) when the feed carried the
// no-trade sentinel; absence is distinct from zero and consumers must not
// coerce it.
type JoinedValuationRecord struct {
	Date          time.Time
	Symbol        string
	Close         decimal.NullDecimal
	Shares        int
	StockDayValue decimal.NullDecimal
}

// tickerAliases maps deprecated or secondary listing codes to the primary
// code used on holdings.
var tickerAliases = map[string]string{
	"GOOG": "GOOGL",
}

// CanonicalSymbol maps a deprecated or secondary listing code to its primary
// exchange code. Symbols with no alias pass through unchanged.
func CanonicalSymbol(symbol string) string {
	if canonical, ok := tickerAliases[symbol]; ok {
		return canonical
	}
	return symbol
}
