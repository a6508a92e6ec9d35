package entity

import "time"

// MovementKind tags the variants of the movement ledger.
type MovementKind string

const (
	KindPurchase    MovementKind = "PURCHASE"
	KindTransfer    MovementKind = "TRANSFER"
	KindExpenditure MovementKind = "EXPENDITURE"
)

// Movement is the tagged-variant view over the append-only ledger.
// Each event is immutable once committed; corrections are new
// compensating events, never edits.
type Movement interface {
	MovementKind() MovementKind
	MovementAsset() string
	MovementDate() time.Time
	// BaseDeltas returns the signed quantity applied to each base by this
	// event. Purchases yield one positive delta, expenditures one negative
	// delta, transfers a paired minus/plus for source and destination.
	BaseDeltas() []BaseDelta
}

// BaseDelta is a signed quantity change at one base.
type BaseDelta struct {
	BaseID   string
	Quantity int64
}

var (
	_ Movement = (*Purchase)(nil)
	_ Movement = (*Transfer)(nil)
	_ Movement = (*Expenditure)(nil)
)
