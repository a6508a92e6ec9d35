package dto

import "time"

// CreateBaseRequest body for POST /api/bases.
type CreateBaseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// BaseResponse a base row.
type BaseResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateAssetRequest body for POST /api/assets. Quantity seeds the stock
// at the home base through a zero-cost opening purchase, so the registry
// is still only ever mutated by ledger transactions.
type CreateAssetRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Type     string `json:"type" validate:"required,min=1,max=60"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
	BaseID   string `json:"baseId" validate:"required"`
}

// UpdateAssetRequest body for PUT /api/assets/:id. Quantities are owned by
// the movement ledger and cannot be edited here.
type UpdateAssetRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Type string `json:"type" validate:"required,min=1,max=60"`
}

// AssetResponse an asset row with its quantity summed across bases.
type AssetResponse struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
	Status   string `json:"status"`
	BaseID   string `json:"baseId"`
}
