package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/armory-api/internal/domain"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

var _ repository.BaseRepository = (*BaseRepo)(nil)
var _ repository.AssetRepository = (*AssetRepo)(nil)
var _ repository.StockRepository = (*StockRepo)(nil)

// BaseRepo in-memory BaseRepository.
type BaseRepo struct {
	session
}

func (r *BaseRepo) Create(ctx context.Context, base *entity.Base) error {
	return r.with(ctx, func(d *data) error {
		for _, b := range d.bases {
			if b.Name == base.Name {
				return fmt.Errorf("%w: base name already exists", domain.ErrValidation)
			}
		}
		d.bases[base.ID] = *base
		return nil
	})
}

func (r *BaseRepo) GetByID(ctx context.Context, id string) (*entity.Base, error) {
	var out *entity.Base
	err := r.with(ctx, func(d *data) error {
		if b, ok := d.bases[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BaseRepo) List(ctx context.Context) ([]*entity.Base, error) {
	var out []*entity.Base
	err := r.with(ctx, func(d *data) error {
		for _, b := range d.bases {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *BaseRepo) Rename(ctx context.Context, id, name string) error {
	return r.with(ctx, func(d *data) error {
		b, ok := d.bases[id]
		if !ok {
			return fmt.Errorf("%w: base %s", domain.ErrNotFound, id)
		}
		for otherID, other := range d.bases {
			if otherID != id && other.Name == name {
				return fmt.Errorf("%w: base name already exists", domain.ErrValidation)
			}
		}
		b.Name = name
		d.bases[id] = b
		return nil
	})
}

// Delete removes a base. A base referenced by ledger events is immutable
// except for rename, mirroring the SQL store's foreign keys.
func (r *BaseRepo) Delete(ctx context.Context, id string) error {
	return r.with(ctx, func(d *data) error {
		if _, ok := d.bases[id]; !ok {
			return fmt.Errorf("%w: base %s", domain.ErrNotFound, id)
		}
		if baseReferenced(d, id) {
			return fmt.Errorf("%w: base is referenced by ledger events", domain.ErrValidation)
		}
		delete(d.bases, id)
		return nil
	})
}

func baseReferenced(d *data, id string) bool {
	for _, p := range d.purchases {
		if p.BaseID == id {
			return true
		}
	}
	for _, t := range d.transfers {
		if t.FromBaseID == id || t.ToBaseID == id {
			return true
		}
	}
	for _, e := range d.expenditures {
		if e.BaseID == id {
			return true
		}
	}
	return false
}

// AssetRepo in-memory AssetRepository.
type AssetRepo struct {
	session
}

func (r *AssetRepo) Create(ctx context.Context, asset *entity.Asset) error {
	return r.with(ctx, func(d *data) error {
		for _, a := range d.assets {
			if a.Name == asset.Name && a.Type == asset.Type {
				return fmt.Errorf("%w: asset name/type already exists", domain.ErrValidation)
			}
		}
		d.assets[asset.ID] = *asset
		return nil
	})
}

func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.with(ctx, func(d *data) error {
		if a, ok := d.assets[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AssetRepo) GetByNameType(ctx context.Context, name, assetType string) (*entity.Asset, error) {
	var out *entity.Asset
	err := r.with(ctx, func(d *data) error {
		for _, a := range d.assets {
			if a.Name == name && a.Type == assetType {
				a := a
				out = &a
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *AssetRepo) List(ctx context.Context) ([]*entity.Asset, error) {
	var out []*entity.Asset
	err := r.with(ctx, func(d *data) error {
		for _, a := range d.assets {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Type < out[j].Type
	})
	return out, err
}

func (r *AssetRepo) Update(ctx context.Context, asset *entity.Asset) error {
	return r.with(ctx, func(d *data) error {
		cur, ok := d.assets[asset.ID]
		if !ok {
			return fmt.Errorf("%w: asset %s", domain.ErrNotFound, asset.ID)
		}
		for otherID, other := range d.assets {
			if otherID != asset.ID && other.Name == asset.Name && other.Type == asset.Type {
				return fmt.Errorf("%w: asset name/type already exists", domain.ErrValidation)
			}
		}
		cur.Name = asset.Name
		cur.Type = asset.Type
		cur.UpdatedAt = asset.UpdatedAt
		d.assets[asset.ID] = cur
		return nil
	})
}

// Delete removes an asset identity unless ledger events or assignments
// still reference it, mirroring the SQL store's foreign keys.
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	return r.with(ctx, func(d *data) error {
		if _, ok := d.assets[id]; !ok {
			return fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
		}
		if assetReferenced(d, id) {
			return fmt.Errorf("%w: asset is referenced by ledger events", domain.ErrValidation)
		}
		delete(d.assets, id)
		return nil
	})
}

func assetReferenced(d *data, id string) bool {
	for _, p := range d.purchases {
		if p.AssetID == id {
			return true
		}
	}
	for _, t := range d.transfers {
		if t.AssetID == id {
			return true
		}
	}
	for _, e := range d.expenditures {
		if e.AssetID == id {
			return true
		}
	}
	for _, a := range d.assignments {
		if a.AssetID == id {
			return true
		}
	}
	return false
}

// GetForUpdate is equivalent to GetByID here: the store lock already
// serializes the whole transaction.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *AssetRepo) SetStatusIf(ctx context.Context, id string, expected, next entity.AssetStatus) (bool, error) {
	changed := false
	err := r.with(ctx, func(d *data) error {
		a, ok := d.assets[id]
		if !ok || a.Status != expected {
			return nil
		}
		a.Status = next
		d.assets[id] = a
		changed = true
		return nil
	})
	return changed, err
}

// StockRepo in-memory StockRepository.
type StockRepo struct {
	session
}

func (r *StockRepo) Get(ctx context.Context, assetID, baseID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.with(ctx, func(d *data) error {
		if s, ok := d.stocks[stockKey{assetID, baseID}]; ok {
			out = &s
			return nil
		}
		out = &entity.Stock{AssetID: assetID, BaseID: baseID, Quantity: 0}
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(ctx context.Context, assetID, baseID string) (*entity.Stock, error) {
	return r.Get(ctx, assetID, baseID)
}

func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	return r.with(ctx, func(d *data) error {
		if stock.Quantity < 0 {
			return fmt.Errorf("%w: negative stock", domain.ErrInsufficientQuantity)
		}
		d.stocks[stockKey{stock.AssetID, stock.BaseID}] = *stock
		return nil
	})
}

func (r *StockRepo) QuantitiesByAsset(ctx context.Context) (map[string]int64, error) {
	totals := make(map[string]int64)
	err := r.with(ctx, func(d *data) error {
		for k, s := range d.stocks {
			totals[k.AssetID] += s.Quantity
		}
		return nil
	})
	return totals, err
}
