package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wealthlens/stockreport/internal/domain"
)

// marketRecordDTO mirrors one object of the market history feed. The feed is
// loosely typed: prices may arrive as JSON numbers or as quoted numbers, and
// Close may be the no-trade sentinel, so every field lands as raw text first.
type marketRecordDTO struct {
	Symbol string          `json:"Symbol"`
	Date   string          `json:"Date"`
	Open   json.RawMessage `json:"Open"`
	High   json.RawMessage `json:"High"`
	Low    json.RawMessage `json:"Low"`
	Close  json.RawMessage `json:"Close"`
	Volume json.RawMessage `json:"Volume"`
}

// ReadMarketHistory reads the market history feed: a JSON array with one
// object per (symbol, day). Close keeps its raw text, sentinel included; the
// joiner decides later what it means.
func ReadMarketHistory(path string) ([]domain.MarketPriceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market history source: %w", err)
	}

	var dtos []marketRecordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, &domain.ValidationError{Field: "market history", Value: err.Error()}
	}

	records := make([]domain.MarketPriceRecord, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Symbol == "" {
			return nil, &domain.ValidationError{Field: "Symbol", Value: ""}
		}
		if dto.Date == "" {
			return nil, &domain.ValidationError{Field: "Date", Value: ""}
		}

		open, err := rawDecimal(dto.Open)
		if err != nil {
			return nil, &domain.ValidationError{Field: "Open", Value: rawText(dto.Open)}
		}
		high, err := rawDecimal(dto.High)
		if err != nil {
			return nil, &domain.ValidationError{Field: "High", Value: rawText(dto.High)}
		}
		low, err := rawDecimal(dto.Low)
		if err != nil {
			return nil, &domain.ValidationError{Field: "Low", Value: rawText(dto.Low)}
		}
		volume, err := strconv.ParseInt(rawText(dto.Volume), 10, 64)
		if err != nil {
			return nil, &domain.ValidationError{Field: "Volume", Value: rawText(dto.Volume)}
		}

		records = append(records, domain.MarketPriceRecord{
			Symbol: dto.Symbol,
			Date:   dto.Date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  rawText(dto.Close),
			Volume: volume,
		})
	}
	return records, nil
}

// rawText strips the quotes off a raw JSON scalar.
func rawText(m json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(m)), `"`)
}

func rawDecimal(m json.RawMessage) (decimal.Decimal, error) {
	return decimal.NewFromString(rawText(m))
}
