// Package analytics contains the read-side balance aggregation behind the
// dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

const dashboardRecentEvents = 5 // rows in each "recent" widget

// DashboardUseCase computes opening/closing balances, net movement and
// summary counters for a filter window.
//
// Data source: AnalyticsRepository (read-only queries over the append-only
// event tables). Never mutates state; given the same committed event set
// and the same filter the result is reproducible byte for byte.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetMetrics builds the DashboardMetrics for the normalized filter.
//
// Five independent read queries run in parallel:
//  1. Totals       → windowed counts and quantity sums
//  2. BaseBalances → per-base opening + window delta
//  3. Snapshot     → current-state counters
//  4. RecentTransfers / 5. RecentExpenditures → latest 5 each
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, f repository.EventFilter) (*dto.DashboardMetrics, error) {
	type totalsResult struct {
		totals repository.MovementTotals
		err    error
	}
	type balancesResult struct {
		rows []repository.BaseBalanceRow
		err  error
	}
	type snapshotResult struct {
		counts repository.SnapshotCounts
		err    error
	}
	type transfersResult struct {
		rows []*repository.TransferWithRefs
		err  error
	}
	type expendituresResult struct {
		rows []*repository.ExpenditureWithRefs
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	balancesCh := make(chan balancesResult, 1)
	snapshotCh := make(chan snapshotResult, 1)
	transfersCh := make(chan transfersResult, 1)
	expendituresCh := make(chan expendituresResult, 1)

	go func() {
		t, err := uc.analyticsRepo.Totals(ctx, f)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.BaseBalances(ctx, f)
		balancesCh <- balancesResult{rows, err}
	}()
	go func() {
		c, err := uc.analyticsRepo.Snapshot(ctx, f)
		snapshotCh <- snapshotResult{c, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RecentTransfers(ctx, f, dashboardRecentEvents)
		transfersCh <- transfersResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.RecentExpenditures(ctx, f, dashboardRecentEvents)
		expendituresCh <- expendituresResult{rows, err}
	}()

	totals := <-totalsCh
	balances := <-balancesCh
	snapshot := <-snapshotCh
	transfers := <-transfersCh
	expenditures := <-expendituresCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: movement totals: %w", totals.err)
	}
	if balances.err != nil {
		return nil, fmt.Errorf("dashboard: base balances: %w", balances.err)
	}
	if snapshot.err != nil {
		return nil, fmt.Errorf("dashboard: snapshot counts: %w", snapshot.err)
	}
	if transfers.err != nil {
		return nil, fmt.Errorf("dashboard: recent transfers: %w", transfers.err)
	}
	if expenditures.err != nil {
		return nil, fmt.Errorf("dashboard: recent expenditures: %w", expenditures.err)
	}

	baseBalances := make([]dto.BaseBalance, 0, len(balances.rows))
	for _, row := range balances.rows {
		baseBalances = append(baseBalances, dto.BaseBalance{
			BaseID:         row.BaseID,
			BaseName:       row.BaseName,
			OpeningBalance: row.Opening,
			ClosingBalance: row.Opening + row.WindowDelta,
		})
	}

	t := totals.totals
	return &dto.DashboardMetrics{
		TotalAssets:        snapshot.counts.TotalAssets,
		TotalBases:         snapshot.counts.TotalBases,
		TotalAssetQuantity: snapshot.counts.TotalAssetQuantity,
		TotalPurchases:     t.PurchaseCount,
		TotalTransfers:     t.TransferCount,
		TotalExpenditures:  t.ExpenditureCount,
		TotalTransferIn:    t.TransferInQty,
		TotalTransferOut:   t.TransferOutQty,
		NetMovement:        t.PurchaseQty + t.TransferInQty - t.TransferOutQty,
		BaseBalances:       baseBalances,
		RecentTransfers:    TransferResponses(transfers.rows),
		RecentExpenditures: ExpenditureResponses(expenditures.rows),
	}, nil
}

// TransferResponses maps joined transfer rows to the populated-reference
// shape the front end renders.
func TransferResponses(rows []*repository.TransferWithRefs) []dto.TransferResponse {
	out := make([]dto.TransferResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TransferResponse{
			ID:         r.ID,
			AssetID:    dto.AssetRef{ID: r.AssetID, Name: r.AssetName, Type: r.AssetType},
			FromBaseID: dto.BaseRef{ID: r.FromBaseID, Name: r.FromBaseName},
			ToBaseID:   dto.BaseRef{ID: r.ToBaseID, Name: r.ToBaseName},
			Quantity:   r.Quantity,
			Date:       r.Date,
		})
	}
	return out
}

// ExpenditureResponses maps joined expenditure rows to response DTOs.
func ExpenditureResponses(rows []*repository.ExpenditureWithRefs) []dto.ExpenditureResponse {
	out := make([]dto.ExpenditureResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ExpenditureResponse{
			ID:           r.ID,
			AssetID:      dto.AssetRef{ID: r.AssetID, Name: r.AssetName, Type: r.AssetType},
			BaseID:       dto.BaseRef{ID: r.BaseID, Name: r.BaseName},
			Quantity:     r.Quantity,
			ExpendType:   string(r.ExpendType),
			ExpendReason: r.ExpendReason,
			Date:         r.Date,
		})
	}
	return out
}
