package dto

// BaseBalance opening/closing balance for one base within the filter
// window.
type BaseBalance struct {
	BaseID         string `json:"baseId"`
	BaseName       string `json:"baseName"`
	OpeningBalance int64  `json:"openingBalance"`
	ClosingBalance int64  `json:"closingBalance"`
}

// DashboardMetrics response for GET /api/dashboard. Counters are over the
// filtered, windowed event sets; netMovement = purchases + transferIn −
// transferOut (expenditures reported separately).
type DashboardMetrics struct {
	TotalAssets        int64                 `json:"totalAssets"`
	TotalBases         int64                 `json:"totalBases"`
	TotalAssetQuantity int64                 `json:"totalAssetQuantity"`
	TotalPurchases     int64                 `json:"totalPurchases"`
	TotalTransfers     int64                 `json:"totalTransfers"`
	TotalExpenditures  int64                 `json:"totalExpenditures"`
	TotalTransferIn    int64                 `json:"totalTransferIn"`
	TotalTransferOut   int64                 `json:"totalTransferOut"`
	NetMovement        int64                 `json:"netMovement"`
	BaseBalances       []BaseBalance         `json:"baseBalances"`
	RecentTransfers    []TransferResponse    `json:"recentTransfers"`
	RecentExpenditures []ExpenditureResponse `json:"recentExpenditures"`
}
