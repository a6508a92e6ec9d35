package repository

import (
	"context"
	"time"
)

// EventFilter is the normalized predicate shared by assignment queries and
// balance aggregation. A nil/empty field means unconstrained for that
// dimension, never "zero matches".
type EventFilter struct {
	Start *time.Time // inclusive lower bound on event date
	End   *time.Time // inclusive upper bound on event date
	// BaseID restricts events to those touching the base (source or
	// destination for transfers).
	BaseID string
	// EquipmentType matches Asset.Type; if nothing matches by type the
	// store falls back to Asset.Name, which is what the shipped dashboard
	// select actually sends.
	EquipmentType string
}

// MovementTotals are plain counts/sums over the filtered, windowed event
// sets. Transfer-in/out are relative to the filtered base; without a base
// filter both equal the total transferred quantity.
type MovementTotals struct {
	PurchaseCount    int64
	TransferCount    int64
	ExpenditureCount int64
	PurchaseQty      int64
	TransferInQty    int64
	TransferOutQty   int64
	ExpenditureQty   int64
}

// BaseBalanceRow carries the per-base ledger sums the aggregator turns
// into opening/closing balances.
type BaseBalanceRow struct {
	BaseID   string
	BaseName string
	// Opening is the sum of signed deltas strictly before the window start.
	Opening int64
	// WindowDelta is the sum of signed deltas within [start, end].
	WindowDelta int64
}

// SnapshotCounts are current-state counters (not windowed).
type SnapshotCounts struct {
	TotalAssets        int64
	TotalBases         int64
	TotalAssetQuantity int64
}

// AnalyticsRepository defines the read-only queries behind the dashboard.
// Balances are derived by replaying the append-only event tables, never
// from the materialized stock rows, so a single query can never observe a
// transfer's decrement without its paired increment.
type AnalyticsRepository interface {
	Totals(ctx context.Context, f EventFilter) (MovementTotals, error)
	// BaseBalances returns one row per base touched by at least one
	// matching event, ordered by base name for reproducible output.
	BaseBalances(ctx context.Context, f EventFilter) ([]BaseBalanceRow, error)
	Snapshot(ctx context.Context, f EventFilter) (SnapshotCounts, error)
	RecentTransfers(ctx context.Context, f EventFilter, limit int) ([]*TransferWithRefs, error)
	RecentExpenditures(ctx context.Context, f EventFilter, limit int) ([]*ExpenditureWithRefs, error)
}
