package entity

import "time"

// ExpendType classifies an irreversible removal of quantity.
type ExpendType string

const (
	ExpendUsed ExpendType = "Used"
	// ExpendTransfered keeps the original API's spelling.
	ExpendTransfered ExpendType = "Transfered"
	ExpendExpired    ExpendType = "Expired"
)

// Valid reports whether t is one of the closed set of expend types.
func (t ExpendType) Valid() bool {
	switch t {
	case ExpendUsed, ExpendTransfered, ExpendExpired:
		return true
	}
	return false
}

// Expenditure records quantity consumed, lost or expired at a base.
// Always decrements; never increments.
type Expenditure struct {
	ID           string
	AssetID      string
	BaseID       string
	Quantity     int64
	ExpendType   ExpendType
	ExpendReason string
	Date         time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

func (e *Expenditure) MovementKind() MovementKind { return KindExpenditure }
func (e *Expenditure) MovementAsset() string      { return e.AssetID }
func (e *Expenditure) MovementDate() time.Time    { return e.Date }

func (e *Expenditure) BaseDeltas() []BaseDelta {
	return []BaseDelta{{BaseID: e.BaseID, Quantity: -e.Quantity}}
}
