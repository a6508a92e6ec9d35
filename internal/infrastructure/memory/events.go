package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)
var _ repository.TransferRepository = (*TransferRepo)(nil)
var _ repository.ExpenditureRepository = (*ExpenditureRepo)(nil)

func inWindow(date time.Time, f repository.EventFilter) bool {
	if f.Start != nil && date.Before(*f.Start) {
		return false
	}
	if f.End != nil && date.After(*f.End) {
		return false
	}
	return true
}

func matchEquipment(d *data, assetID string, f repository.EventFilter) bool {
	if f.EquipmentType == "" {
		return true
	}
	a, ok := d.assets[assetID]
	if !ok {
		return false
	}
	return a.Type == f.EquipmentType || a.Name == f.EquipmentType
}

// newestFirst sorts by event date descending with creation time as the
// tiebreaker, matching the SQL store's ordering.
func newestFirst(dateI, dateJ, createdI, createdJ time.Time) bool {
	if !dateI.Equal(dateJ) {
		return dateI.After(dateJ)
	}
	return createdI.After(createdJ)
}

// PurchaseRepo in-memory PurchaseRepository.
type PurchaseRepo struct {
	session
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return r.with(ctx, func(d *data) error {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		d.purchases = append(d.purchases, *p)
		return nil
	})
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.PurchaseWithRefs, error) {
	var out []*repository.PurchaseWithRefs
	err := r.with(ctx, func(d *data) error {
		for _, p := range d.purchases {
			if !inWindow(p.Date, f) {
				continue
			}
			if f.BaseID != "" && p.BaseID != f.BaseID {
				continue
			}
			if !matchEquipment(d, p.AssetID, f) {
				continue
			}
			a := d.assets[p.AssetID]
			b := d.bases[p.BaseID]
			out = append(out, &repository.PurchaseWithRefs{
				Purchase:  p,
				AssetName: a.Name,
				AssetType: a.Type,
				BaseName:  b.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].CreatedAt, out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TransferRepo in-memory TransferRepository.
type TransferRepo struct {
	session
}

func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	return r.with(ctx, func(d *data) error {
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		d.transfers = append(d.transfers, *t)
		return nil
	})
}

func (r *TransferRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.TransferWithRefs, error) {
	var out []*repository.TransferWithRefs
	err := r.with(ctx, func(d *data) error {
		for _, t := range d.transfers {
			if !inWindow(t.Date, f) {
				continue
			}
			if f.BaseID != "" && t.FromBaseID != f.BaseID && t.ToBaseID != f.BaseID {
				continue
			}
			if !matchEquipment(d, t.AssetID, f) {
				continue
			}
			a := d.assets[t.AssetID]
			fb := d.bases[t.FromBaseID]
			tb := d.bases[t.ToBaseID]
			out = append(out, &repository.TransferWithRefs{
				Transfer:     t,
				AssetName:    a.Name,
				AssetType:    a.Type,
				FromBaseName: fb.Name,
				ToBaseName:   tb.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].CreatedAt, out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ExpenditureRepo in-memory ExpenditureRepository.
type ExpenditureRepo struct {
	session
}

func (r *ExpenditureRepo) Create(ctx context.Context, e *entity.Expenditure) error {
	return r.with(ctx, func(d *data) error {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		d.expenditures = append(d.expenditures, *e)
		return nil
	})
}

func (r *ExpenditureRepo) List(ctx context.Context, f repository.EventFilter, limit int) ([]*repository.ExpenditureWithRefs, error) {
	var out []*repository.ExpenditureWithRefs
	err := r.with(ctx, func(d *data) error {
		for _, e := range d.expenditures {
			if !inWindow(e.Date, f) {
				continue
			}
			if f.BaseID != "" && e.BaseID != f.BaseID {
				continue
			}
			if !matchEquipment(d, e.AssetID, f) {
				continue
			}
			a := d.assets[e.AssetID]
			b := d.bases[e.BaseID]
			out = append(out, &repository.ExpenditureWithRefs{
				Expenditure: e,
				AssetName:   a.Name,
				AssetType:   a.Type,
				BaseName:    b.Name,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].Date, out[j].Date, out[i].CreatedAt, out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
