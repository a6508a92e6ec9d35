package entity

import "time"

// AssetStatus is the lifecycle of an individually assignable asset unit.
// Bulk stock is tracked by quantity only; status gates assignability.
type AssetStatus string

const (
	StatusAvailable AssetStatus = "Available"
	StatusAssigned  AssetStatus = "Assigned"
	StatusExpended  AssetStatus = "Expended"
)

// Valid reports whether s is one of the closed set of statuses.
func (s AssetStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusExpended:
		return true
	}
	return false
}

// Asset is a named, typed equipment category. Identity spans bases:
// per-base quantities live in Stock rows keyed (AssetID, BaseID).
// BaseID is the home base the asset was first registered at.
type Asset struct {
	ID        string
	Name      string
	Type      string
	BaseID    string
	Status    AssetStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stock is the current quantity of an asset at a base. Mutated only by
// ledger transactions; quantity never goes negative.
type Stock struct {
	AssetID   string
	BaseID    string
	Quantity  int64
	UpdatedAt time.Time
}
