package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/wealthlens/stockreport/internal/adapter/chart"
	"github.com/wealthlens/stockreport/internal/adapter/ingest"
	"github.com/wealthlens/stockreport/internal/adapter/repository/sqlite"
	"github.com/wealthlens/stockreport/internal/domain"
	"github.com/wealthlens/stockreport/internal/usecase/joiner"
	"github.com/wealthlens/stockreport/internal/usecase/normalizer"
	"github.com/wealthlens/stockreport/internal/usecase/portfolio"
	"github.com/wealthlens/stockreport/internal/usecase/report"
)

const (
	holdingsFileName = "Lesson6_Data_Stocks.csv"
	marketFileName   = "AllStocks.json"

	investorName  = "Bob Smith"
	investorPhone = "720-000-0000"
)

func main() {
	// Paths come from the environment with working-directory defaults; the
	// store location is an explicit parameter of every step below so the
	// reset stays auditable.
	dataDir := envOr("DATA_DIR", ".")
	dbPath := envOr("DB_PATH", "Investor.db")
	chartDir := envOr("CHART_DIR", ".")

	// 1. Ingest and normalize the holdings. Any invalid row aborts the run;
	// there is no partial-holding skip-and-continue.
	rawRows, err := ingest.ReadHoldings(filepath.Join(dataDir, holdingsFileName))
	if err != nil {
		log.Fatalf("Failed to read holding source: %v", err)
	}

	normalize := normalizer.NewService(time.Now())
	holdings := make([]domain.Holding, 0, len(rawRows))
	for _, raw := range rawRows {
		holding, err := normalize.Normalize(raw)
		if err != nil {
			log.Fatalf("Failed to normalize holding row: %v", err)
		}
		holdings = append(holdings, *holding)
	}

	records, err := ingest.ReadMarketHistory(filepath.Join(dataDir, marketFileName))
	if err != nil {
		log.Fatalf("Failed to read market history source: %v", err)
	}

	// 2. One investor per run; the numeric suffix only disambiguates runs.
	investorID := fmt.Sprintf("ID_%d", 500+rand.Intn(501))
	investor := portfolio.Build(investorID, investorName, investorPhone, holdings)

	// 3. Reset and populate the store. Store failures are reported and the
	// run continues with the in-memory data; the store may be left partial
	// and should be rebuilt by a clean rerun.
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	if err := db.Reset(); err != nil {
		log.Fatalf("Failed to reset store: %v", err)
	}

	ctx := context.Background()
	holdingRepo := sqlite.NewHoldingRepository(db)
	marketRepo := sqlite.NewMarketRepository(db)

	if err := holdingRepo.SaveAll(ctx, investor.InvestorID, investor.Holdings); err != nil {
		log.Printf("Store error while writing stocks: %v", err)
	}
	if err := marketRepo.SaveAll(ctx, records); err != nil {
		log.Printf("Store error while writing AllStocks: %v", err)
	}

	// 4. Read back and print the ownership table.
	storedHoldings, err := holdingRepo.LoadAll(ctx)
	if err != nil {
		log.Printf("Store error while reading stocks, skipping ownership table: %v", err)
	} else if err := report.Print(os.Stdout, investor, storedHoldings, report.AssetClassStock); err != nil {
		log.Fatalf("Failed to print ownership table: %v", err)
	}

	storedRecords, err := marketRepo.LoadAll(ctx)
	if err != nil {
		log.Printf("Store error while reading AllStocks, using the in-memory feed: %v", err)
		storedRecords = records
	}

	// 5. Join and render the charts.
	joined, err := joiner.Join(investor.Holdings, storedRecords)
	if err != nil {
		log.Fatalf("Failed to join market history: %v", err)
	}

	renderer := chart.NewRenderer(chartDir)
	if err := renderer.ValueOverTime(joined); err != nil {
		log.Fatalf("Failed to render value chart: %v", err)
	}
	if err := renderer.ValueHistogram(joined); err != nil {
		log.Fatalf("Failed to render histogram chart: %v", err)
	}
	if err := renderer.Candlestick(storedRecords); err != nil {
		log.Fatalf("Failed to render candlestick chart: %v", err)
	}

	log.Printf("Report complete: %d holdings, %d market records, %d joined rows",
		len(investor.Holdings), len(storedRecords), len(joined))
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
