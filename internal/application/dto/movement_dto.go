package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body for POST /api/purchases. Either AssetID or
// (Name, Type) resolves the asset; IsNewAsset mirrors the form toggle but
// resolution is lookup-or-create either way.
type CreatePurchaseRequest struct {
	BaseID      string          `json:"baseId" validate:"required"`
	AssetID     string          `json:"assetId"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	IsNewAsset  bool            `json:"isNewAsset"`
	Quantity    int64           `json:"quantity" validate:"required,gt=0"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Date        time.Time       `json:"date"`
}

// PurchaseResponse a purchase event with populated references.
type PurchaseResponse struct {
	ID          string          `json:"_id"`
	AssetID     AssetRef        `json:"assetId"`
	BaseID      BaseRef         `json:"baseId"`
	Quantity    int64           `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	Date        time.Time       `json:"date"`
}

// CreateTransferRequest body for POST /api/transfers.
type CreateTransferRequest struct {
	AssetID    string `json:"assetId" validate:"required"`
	FromBaseID string `json:"fromBaseId" validate:"required"`
	ToBaseID   string `json:"toBaseId" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
}

// TransferResponse a transfer event with populated references.
type TransferResponse struct {
	ID         string    `json:"_id"`
	AssetID    AssetRef  `json:"assetId"`
	FromBaseID BaseRef   `json:"fromBaseId"`
	ToBaseID   BaseRef   `json:"toBaseId"`
	Quantity   int64     `json:"quantity"`
	Date       time.Time `json:"date"`
}

// CreateExpenditureRequest body for POST /api/expenditures.
type CreateExpenditureRequest struct {
	AssetID      string `json:"assetId" validate:"required"`
	BaseID       string `json:"baseId" validate:"required"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	ExpendType   string `json:"expendType" validate:"required"`
	ExpendReason string `json:"expendReason" validate:"required,min=1"`
}

// ExpenditureResponse an expenditure event with populated references.
type ExpenditureResponse struct {
	ID           string    `json:"_id"`
	AssetID      AssetRef  `json:"assetId"`
	BaseID       BaseRef   `json:"baseId"`
	Quantity     int64     `json:"quantity"`
	ExpendType   string    `json:"expendType"`
	ExpendReason string    `json:"expendReason"`
	Date         time.Time `json:"date"`
}
