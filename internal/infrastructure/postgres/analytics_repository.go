package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only queries behind the dashboard. Balances are
// replayed from the append-only event tables inside single statements, so
// a transfer's decrement is never visible without its paired increment.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// Totals sums counts and quantities over the filtered, windowed event
// sets. Transfer-in/out are relative to the filtered base; without a base
// filter both equal the total transferred quantity.
func (r *AnalyticsRepo) Totals(ctx context.Context, f repository.EventFilter) (repository.MovementTotals, error) {
	var t repository.MovementTotals

	const purchasesQuery = `
		SELECT COUNT(*), COALESCE(SUM(p.quantity), 0)
		FROM purchases p
		JOIN assets a ON a.id = p.asset_id
		WHERE ($1::timestamptz IS NULL OR p.date >= $1)
		  AND ($2::timestamptz IS NULL OR p.date <= $2)
		  AND ($3::text = '' OR p.base_id = $3)
		  AND ($4::text = '' OR a.type = $4 OR a.name = $4)`
	err := r.q.QueryRow(ctx, purchasesQuery, f.Start, f.End, f.BaseID, f.EquipmentType).
		Scan(&t.PurchaseCount, &t.PurchaseQty)
	if err != nil {
		return t, fmt.Errorf("sum purchases: %w", err)
	}

	const transfersQuery = `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN $3::text = '' OR tr.to_base_id   = $3 THEN tr.quantity ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN $3::text = '' OR tr.from_base_id = $3 THEN tr.quantity ELSE 0 END), 0)
		FROM transfers tr
		JOIN assets a ON a.id = tr.asset_id
		WHERE ($1::timestamptz IS NULL OR tr.date >= $1)
		  AND ($2::timestamptz IS NULL OR tr.date <= $2)
		  AND ($3::text = '' OR tr.from_base_id = $3 OR tr.to_base_id = $3)
		  AND ($4::text = '' OR a.type = $4 OR a.name = $4)`
	err = r.q.QueryRow(ctx, transfersQuery, f.Start, f.End, f.BaseID, f.EquipmentType).
		Scan(&t.TransferCount, &t.TransferInQty, &t.TransferOutQty)
	if err != nil {
		return t, fmt.Errorf("sum transfers: %w", err)
	}

	const expendituresQuery = `
		SELECT COUNT(*), COALESCE(SUM(e.quantity), 0)
		FROM expenditures e
		JOIN assets a ON a.id = e.asset_id
		WHERE ($1::timestamptz IS NULL OR e.date >= $1)
		  AND ($2::timestamptz IS NULL OR e.date <= $2)
		  AND ($3::text = '' OR e.base_id = $3)
		  AND ($4::text = '' OR a.type = $4 OR a.name = $4)`
	err = r.q.QueryRow(ctx, expendituresQuery, f.Start, f.End, f.BaseID, f.EquipmentType).
		Scan(&t.ExpenditureCount, &t.ExpenditureQty)
	if err != nil {
		return t, fmt.Errorf("sum expenditures: %w", err)
	}

	return t, nil
}

// BaseBalances replays the signed deltas of all three event tables per
// base: opening is the sum strictly before the window start, window delta
// the sum inside the window. One row per base touched by a matching
// event, ordered by base name.
func (r *AnalyticsRepo) BaseBalances(ctx context.Context, f repository.EventFilter) ([]repository.BaseBalanceRow, error) {
	const query = `
		WITH deltas AS (
			SELECT p.base_id AS base_id, p.asset_id AS asset_id, p.date AS date, p.quantity AS delta
			FROM purchases p
			UNION ALL
			SELECT t.from_base_id, t.asset_id, t.date, -t.quantity FROM transfers t
			UNION ALL
			SELECT t.to_base_id, t.asset_id, t.date, t.quantity FROM transfers t
			UNION ALL
			SELECT e.base_id, e.asset_id, e.date, -e.quantity FROM expenditures e
		)
		SELECT d.base_id, b.name,
		       COALESCE(SUM(CASE WHEN $1::timestamptz IS NOT NULL AND d.date < $1 THEN d.delta ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN ($1::timestamptz IS NULL OR d.date >= $1)
		                          AND ($2::timestamptz IS NULL OR d.date <= $2) THEN d.delta ELSE 0 END), 0)
		FROM deltas d
		JOIN bases b ON b.id = d.base_id
		JOIN assets a ON a.id = d.asset_id
		WHERE ($3::text = '' OR d.base_id = $3)
		  AND ($4::text = '' OR a.type = $4 OR a.name = $4)
		GROUP BY d.base_id, b.name
		ORDER BY b.name`

	rows, err := r.q.Query(ctx, query, f.Start, f.End, f.BaseID, f.EquipmentType)
	if err != nil {
		return nil, fmt.Errorf("base balances: %w", err)
	}
	defer rows.Close()
	var list []repository.BaseBalanceRow
	for rows.Next() {
		var row repository.BaseBalanceRow
		if err := rows.Scan(&row.BaseID, &row.BaseName, &row.Opening, &row.WindowDelta); err != nil {
			return nil, fmt.Errorf("scan base balance: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Snapshot returns current-state counters; only the non-date filter
// dimensions apply since these are not windowed.
func (r *AnalyticsRepo) Snapshot(ctx context.Context, f repository.EventFilter) (repository.SnapshotCounts, error) {
	var s repository.SnapshotCounts

	const assetsQuery = `
		SELECT COUNT(*) FROM assets a
		WHERE ($1::text = '' OR a.type = $1 OR a.name = $1)`
	if err := r.q.QueryRow(ctx, assetsQuery, f.EquipmentType).Scan(&s.TotalAssets); err != nil {
		return s, fmt.Errorf("count assets: %w", err)
	}

	const basesQuery = `
		SELECT COUNT(*) FROM bases
		WHERE ($1::text = '' OR id = $1)`
	if err := r.q.QueryRow(ctx, basesQuery, f.BaseID).Scan(&s.TotalBases); err != nil {
		return s, fmt.Errorf("count bases: %w", err)
	}

	const quantityQuery = `
		SELECT COALESCE(SUM(st.quantity), 0)
		FROM stocks st
		JOIN assets a ON a.id = st.asset_id
		WHERE ($1::text = '' OR st.base_id = $1)
		  AND ($2::text = '' OR a.type = $2 OR a.name = $2)`
	if err := r.q.QueryRow(ctx, quantityQuery, f.BaseID, f.EquipmentType).Scan(&s.TotalAssetQuantity); err != nil {
		return s, fmt.Errorf("sum stock quantity: %w", err)
	}

	return s, nil
}

// RecentTransfers returns the newest matching transfers with names.
func (r *AnalyticsRepo) RecentTransfers(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.TransferWithRefs, error) {
	return NewTransferRepository(r.q).List(ctx, f, limit)
}

// RecentExpenditures returns the newest matching expenditures with names.
func (r *AnalyticsRepo) RecentExpenditures(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.ExpenditureWithRefs, error) {
	return NewExpenditureRepository(r.q).List(ctx, f, limit)
}
