package domain

import "context"

// HoldingRepository defines the interface for the stocks relation.
// The relation is append-only: holdings are written once per run and never
// updated or deleted; the whole store is reset at the start of each run.
type HoldingRepository interface {
	// SaveAll appends every holding to the stocks relation, tagged with the
	// owning investor's ID.
	SaveAll(ctx context.Context, investorID string, holdings []Holding) error

	// LoadAll reads back all persisted holdings in insertion order.
	LoadAll(ctx context.Context) ([]StoredHolding, error)
}

// MarketRepository defines the interface for the AllStocks relation.
type MarketRepository interface {
	// SaveAll appends every market price record to the AllStocks relation.
	SaveAll(ctx context.Context, records []MarketPriceRecord) error

	// LoadAll reads back all persisted market price records in insertion
	// order.
	LoadAll(ctx context.Context) ([]MarketPriceRecord, error)
}
