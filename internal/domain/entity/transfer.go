package entity

import "time"

// Transfer records quantity moved between two bases. One event row; the
// aggregator derives the paired minus/plus from it, so a reader can never
// observe the unit in neither or both bases.
type Transfer struct {
	ID         string
	AssetID    string
	FromBaseID string
	ToBaseID   string
	Quantity   int64
	Date       time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

func (t *Transfer) MovementKind() MovementKind { return KindTransfer }
func (t *Transfer) MovementAsset() string      { return t.AssetID }
func (t *Transfer) MovementDate() time.Time    { return t.Date }

func (t *Transfer) BaseDeltas() []BaseDelta {
	return []BaseDelta{
		{BaseID: t.FromBaseID, Quantity: -t.Quantity},
		{BaseID: t.ToBaseID, Quantity: t.Quantity},
	}
}
