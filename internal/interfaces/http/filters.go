package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/queryfilter"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// listLimit caps list endpoints. The dashboard uses its own smaller cap
// for recents.
const listLimit = 50

// eventFilterFromQuery normalizes the shared dashboard/list filter query
// params (date, time, base, equipmentType).
func eventFilterFromQuery(c *fiber.Ctx) (repository.EventFilter, error) {
	return queryfilter.Evaluate(queryfilter.Params{
		Date:          c.Query("date"),
		Time:          c.Query("time"),
		Base:          c.Query("base"),
		EquipmentType: c.Query("equipmentType"),
	})
}

// assetRef resolves a populated asset reference for create responses.
func assetRef(ctx context.Context, assets repository.AssetRepository, id string) dto.AssetRef {
	ref := dto.AssetRef{ID: id}
	if a, err := assets.GetByID(ctx, id); err == nil && a != nil {
		ref.Name, ref.Type = a.Name, a.Type
	}
	return ref
}

// baseRef resolves a populated base reference for create responses.
func baseRef(ctx context.Context, bases repository.BaseRepository, id string) dto.BaseRef {
	ref := dto.BaseRef{ID: id}
	if b, err := bases.GetByID(ctx, id); err == nil && b != nil {
		ref.Name = b.Name
	}
	return ref
}
