package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/wealthlens/stockreport/internal/domain"
)

// Output file names, one per visualization.
const (
	LineChartFile   = "stock_value_line.html"
	HistogramFile   = "stock_value_histogram.html"
	CandlestickFile = "candlestick_chart.html"
)

const axisDateFormat = "2006-01-02"

// Renderer writes the portfolio charts as static HTML files. Presentation
// only: it consumes the joined valuation sequence and the raw market history
// and imposes nothing back on the pipeline. Rows with an absent close are
// skipped, never charted as zero.
type Renderer struct {
	outDir string
}

// NewRenderer creates a Renderer writing into outDir.
func NewRenderer(outDir string) *Renderer {
	return &Renderer{outDir: outDir}
}

// ValueOverTime renders one line trace per symbol of stock day value by date.
func (r *Renderer) ValueOverTime(rows []domain.JoinedValuationRecord) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeChalk}),
		charts.WithTitleOpts(opts.Title{Title: "Stock Value Over Time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Stock Value"}),
	)

	dates := axisDates(rows)
	line.SetXAxis(dates)

	for _, group := range seriesBySymbol(rows) {
		valueByDate := make(map[string]float64, len(group.rows))
		for _, row := range group.rows {
			if row.StockDayValue.Valid {
				valueByDate[row.Date.Format(axisDateFormat)] = row.StockDayValue.Decimal.InexactFloat64()
			}
		}

		data := make([]opts.LineData, 0, len(dates))
		for _, date := range dates {
			if value, ok := valueByDate[date]; ok {
				data = append(data, opts.LineData{Value: value})
			} else {
				// nil renders as a gap, keeping absent days visibly absent
				data = append(data, opts.LineData{Value: nil})
			}
		}
		line.AddSeries(group.symbol, data)
	}

	return r.render(line, LineChartFile)
}

// ValueHistogram renders the distribution of stock day values by date as
// stacked bars, one stack segment per symbol.
func (r *Renderer) ValueHistogram(rows []domain.JoinedValuationRecord) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Distribution of Stock Values"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Stock Value"}),
	)

	dates := axisDates(rows)
	bar.SetXAxis(dates)

	for _, group := range seriesBySymbol(rows) {
		valueByDate := make(map[string]float64, len(group.rows))
		for _, row := range group.rows {
			if row.StockDayValue.Valid {
				valueByDate[row.Date.Format(axisDateFormat)] = row.StockDayValue.Decimal.InexactFloat64()
			}
		}

		data := make([]opts.BarData, 0, len(dates))
		for _, date := range dates {
			if value, ok := valueByDate[date]; ok {
				data = append(data, opts.BarData{Value: value})
			} else {
				data = append(data, opts.BarData{Value: nil})
			}
		}
		bar.AddSeries(group.symbol, data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	return r.render(bar, HistogramFile)
}

// Candlestick renders the raw OHLC observations for every record whose close
// is present. Records that fail to parse as chartable values are skipped:
// schema enforcement is the joiner's job, not the renderer's.
func (r *Renderer) Candlestick(records []domain.MarketPriceRecord) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Candlestick Chart"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price"}),
	)

	dates := make([]string, 0, len(records))
	data := make([]opts.KlineData, 0, len(records))
	for _, rec := range records {
		if rec.Close == domain.NoTradeSentinel {
			continue
		}
		day, err := time.Parse(domain.MarketDateFormat, rec.Date)
		if err != nil {
			continue
		}
		closeValue, err := parseFloat(rec.Close)
		if err != nil {
			continue
		}

		dates = append(dates, day.Format(axisDateFormat))
		// echarts kline order: open, close, low, high
		data = append(data, opts.KlineData{Value: [4]float64{
			rec.Open.InexactFloat64(),
			closeValue,
			rec.Low.InexactFloat64(),
			rec.High.InexactFloat64(),
		}})
	}

	kline.SetXAxis(dates).AddSeries("OHLC", data)

	return r.render(kline, CandlestickFile)
}

type symbolGroup struct {
	symbol string
	rows   []domain.JoinedValuationRecord
}

// seriesBySymbol groups the joined rows per symbol in first-appearance order,
// so traces render in the same order on every run with identical input.
func seriesBySymbol(rows []domain.JoinedValuationRecord) []symbolGroup {
	index := make(map[string]int)
	groups := make([]symbolGroup, 0)
	for _, row := range rows {
		i, ok := index[row.Symbol]
		if !ok {
			i = len(groups)
			index[row.Symbol] = i
			groups = append(groups, symbolGroup{symbol: row.Symbol})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

// axisDates returns the unique dates of the (already date-sorted) rows.
func axisDates(rows []domain.JoinedValuationRecord) []string {
	dates := make([]string, 0)
	seen := make(map[string]bool)
	for _, row := range rows {
		date := row.Date.Format(axisDateFormat)
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	return dates
}

type renderable interface {
	Render(w io.Writer) error
}

func (r *Renderer) render(chart renderable, name string) error {
	path := filepath.Join(r.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", name, err)
	}
	return nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
