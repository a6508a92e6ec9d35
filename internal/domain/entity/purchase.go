package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records quantity bought into a base. Creates or increments the
// asset's stock at the target base.
type Purchase struct {
	ID          string
	AssetID     string
	BaseID      string
	Quantity    int64
	CostPerUnit decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

func (p *Purchase) MovementKind() MovementKind { return KindPurchase }
func (p *Purchase) MovementAsset() string      { return p.AssetID }
func (p *Purchase) MovementDate() time.Time    { return p.Date }

func (p *Purchase) BaseDeltas() []BaseDelta {
	return []BaseDelta{{BaseID: p.BaseID, Quantity: p.Quantity}}
}
