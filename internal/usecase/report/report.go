package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/wealthlens/stockreport/internal/domain"
)

// AssetClass selects which column subset of the ownership table is rendered.
type AssetClass string

const (
	AssetClassStock AssetClass = "Stock"
	AssetClassBond  AssetClass = "Bond"
)

var stockColumns = []string{"INVESTOR_ID", "SYMBOL", "NO_SHARES", "EARNINGS_LOSS", "YEARLY_EARNING_LOSS"}

// bondColumns extends the stock set with the bond-only fields. The column set
// is defined so the projection is ready once bond ingestion lands.
var bondColumns = append(append([]string{}, stockColumns...), "COUPON", "YIELD")

// Columns returns the fixed column subset rendered for the asset class.
func (c AssetClass) Columns() []string {
	if c == AssetClassBond {
		return bondColumns
	}
	return stockColumns
}

// Print renders the per-holding rows already read back from the store as a
// columnar ownership table for the investor. Pure projection: no computation
// and no I/O beyond writing the table.
func Print(w io.Writer, investor *domain.Investor, rows []domain.StoredHolding, class AssetClass) error {
	switch class {
	case AssetClassStock:
	case AssetClassBond:
		// TODO: render bond rows once bond files are ingested.
		return errors.New("bond reporting not yet implemented")
	default:
		return fmt.Errorf("unknown asset class %q", class)
	}

	fmt.Fprintf(w, "%s ownership for %s\n", class, investor.Name)
	fmt.Fprintf(w, "Investor Contact: %s\n", investor.PhoneNumber)
	fmt.Fprintln(w, strings.Repeat("-", 80))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(class.Columns(), "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			row.InvestorID,
			row.Symbol,
			row.Shares,
			row.EarningsLoss.StringFixed(2),
			row.AnnualizedReturnPct.StringFixed(2),
		)
	}
	return tw.Flush()
}
