package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlens/stockreport/internal/domain"
)

func present(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

func joinedRows() []domain.JoinedValuationRecord {
	day1 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2023, 6, 2, 0, 0, 0, 0, time.UTC)
	return []domain.JoinedValuationRecord{
		{Date: day1, Symbol: "AAPL", Close: present(180.09), Shares: 100, StockDayValue: present(18009)},
		{Date: day1, Symbol: "MSFT", Close: present(332.58), Shares: 50, StockDayValue: present(16629)},
		{Date: day2, Symbol: "AAPL", Shares: 100}, // no trade, value absent
		{Date: day2, Symbol: "MSFT", Close: present(335.40), Shares: 50, StockDayValue: present(16770)},
	}
}

func readChart(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRenderer_ValueOverTime(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir)

	err := renderer.ValueOverTime(joinedRows())
	require.NoError(t, err)

	html := readChart(t, dir, LineChartFile)
	assert.Contains(t, html, "Stock Value Over Time")
	assert.Contains(t, html, "AAPL")
	assert.Contains(t, html, "MSFT")
	assert.Contains(t, html, "2023-06-01")
	// The absent AAPL value on day two renders as a gap, not as zero.
	assert.Contains(t, html, "null")
}

func TestRenderer_ValueHistogram(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir)

	err := renderer.ValueHistogram(joinedRows())
	require.NoError(t, err)

	html := readChart(t, dir, HistogramFile)
	assert.Contains(t, html, "Distribution of Stock Values")
	assert.Contains(t, html, "AAPL")
	assert.Contains(t, html, "2023-06-02")
}

func TestRenderer_Candlestick_SkipsSentinelRows(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir)

	records := []domain.MarketPriceRecord{
		{Symbol: "AAPL", Date: "01-Jun-23", Open: decimal.NewFromFloat(177.7),
			High: decimal.NewFromFloat(180.12), Low: decimal.NewFromFloat(176.93),
			Close: "180.09", Volume: 68901800},
		{Symbol: "AAPL", Date: "02-Jun-23", Open: decimal.NewFromFloat(181.03),
			High: decimal.NewFromFloat(181.78), Low: decimal.NewFromFloat(179.26),
			Close: domain.NoTradeSentinel, Volume: 0},
	}

	err := renderer.Candlestick(records)
	require.NoError(t, err)

	html := readChart(t, dir, CandlestickFile)
	assert.Contains(t, html, "Candlestick Chart")
	assert.Contains(t, html, "2023-06-01")
	// The sentinel day has no candle.
	assert.NotContains(t, html, "2023-06-02")
}

func TestSeriesBySymbol_FirstAppearanceOrder(t *testing.T) {
	groups := seriesBySymbol(joinedRows())

	require.Len(t, groups, 2)
	assert.Equal(t, "AAPL", groups[0].symbol)
	assert.Equal(t, "MSFT", groups[1].symbol)
	assert.Len(t, groups[0].rows, 2)
	assert.Len(t, groups[1].rows, 2)
}

func TestRenderer_UnwritableDir(t *testing.T) {
	renderer := NewRenderer(filepath.Join(t.TempDir(), "missing", "nested"))

	err := renderer.ValueOverTime(joinedRows())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create chart file")
}
