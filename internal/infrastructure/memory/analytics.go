package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo in-memory AnalyticsRepository. Balances are replayed from
// the event slices via BaseDeltas, mirroring the SQL store's UNION ALL
// replay.
type AnalyticsRepo struct {
	session
}

func (r *AnalyticsRepo) Totals(ctx context.Context, f repository.EventFilter) (repository.MovementTotals, error) {
	var t repository.MovementTotals
	err := r.with(ctx, func(d *data) error {
		for _, p := range d.purchases {
			if !inWindow(p.Date, f) || !matchEquipment(d, p.AssetID, f) {
				continue
			}
			if f.BaseID != "" && p.BaseID != f.BaseID {
				continue
			}
			t.PurchaseCount++
			t.PurchaseQty += p.Quantity
		}
		for _, tr := range d.transfers {
			if !inWindow(tr.Date, f) || !matchEquipment(d, tr.AssetID, f) {
				continue
			}
			if f.BaseID != "" && tr.FromBaseID != f.BaseID && tr.ToBaseID != f.BaseID {
				continue
			}
			t.TransferCount++
			if f.BaseID == "" || tr.ToBaseID == f.BaseID {
				t.TransferInQty += tr.Quantity
			}
			if f.BaseID == "" || tr.FromBaseID == f.BaseID {
				t.TransferOutQty += tr.Quantity
			}
		}
		for _, e := range d.expenditures {
			if !inWindow(e.Date, f) || !matchEquipment(d, e.AssetID, f) {
				continue
			}
			if f.BaseID != "" && e.BaseID != f.BaseID {
				continue
			}
			t.ExpenditureCount++
			t.ExpenditureQty += e.Quantity
		}
		return nil
	})
	return t, err
}

func (r *AnalyticsRepo) BaseBalances(ctx context.Context, f repository.EventFilter) ([]repository.BaseBalanceRow, error) {
	type sums struct {
		opening int64
		window  int64
	}
	perBase := make(map[string]*sums)
	var list []repository.BaseBalanceRow

	err := r.with(ctx, func(d *data) error {
		movements := make([]entity.Movement, 0, len(d.purchases)+len(d.transfers)+len(d.expenditures))
		for i := range d.purchases {
			movements = append(movements, &d.purchases[i])
		}
		for i := range d.transfers {
			movements = append(movements, &d.transfers[i])
		}
		for i := range d.expenditures {
			movements = append(movements, &d.expenditures[i])
		}

		for _, m := range movements {
			if !matchEquipment(d, m.MovementAsset(), f) {
				continue
			}
			for _, delta := range m.BaseDeltas() {
				if f.BaseID != "" && delta.BaseID != f.BaseID {
					continue
				}
				s, ok := perBase[delta.BaseID]
				if !ok {
					s = &sums{}
					perBase[delta.BaseID] = s
				}
				date := m.MovementDate()
				if f.Start != nil && date.Before(*f.Start) {
					s.opening += delta.Quantity
					continue
				}
				if inWindow(date, f) {
					s.window += delta.Quantity
				}
			}
		}

		for baseID, s := range perBase {
			list = append(list, repository.BaseBalanceRow{
				BaseID:      baseID,
				BaseName:    d.bases[baseID].Name,
				Opening:     s.opening,
				WindowDelta: s.window,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].BaseName < list[j].BaseName })
	return list, nil
}

func (r *AnalyticsRepo) Snapshot(ctx context.Context, f repository.EventFilter) (repository.SnapshotCounts, error) {
	var s repository.SnapshotCounts
	err := r.with(ctx, func(d *data) error {
		for id := range d.assets {
			if matchEquipment(d, id, f) {
				s.TotalAssets++
			}
		}
		for id := range d.bases {
			if f.BaseID == "" || id == f.BaseID {
				s.TotalBases++
			}
		}
		for k, st := range d.stocks {
			if f.BaseID != "" && k.BaseID != f.BaseID {
				continue
			}
			if !matchEquipment(d, k.AssetID, f) {
				continue
			}
			s.TotalAssetQuantity += st.Quantity
		}
		return nil
	})
	return s, err
}

func (r *AnalyticsRepo) RecentTransfers(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.TransferWithRefs, error) {
	return (&TransferRepo{r.session}).List(ctx, f, limit)
}

func (r *AnalyticsRepo) RecentExpenditures(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.ExpenditureWithRefs, error) {
	return (&ExpenditureRepo{r.session}).List(ctx, f, limit)
}
