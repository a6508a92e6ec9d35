package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// PurchaseHandler records and lists purchase events.
type PurchaseHandler struct {
	ledger    *ledger.UseCase
	purchases repository.PurchaseRepository
	assets    repository.AssetRepository
	bases     repository.BaseRepository
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(lg *ledger.UseCase, purchases repository.PurchaseRepository, assets repository.AssetRepository, bases repository.BaseRepository) *PurchaseHandler {
	return &PurchaseHandler{ledger: lg, purchases: purchases, assets: assets, bases: bases}
}

// Create godoc
// @Summary      Record a purchase into a base
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "purchase"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	p, err := h.ledger.RecordPurchase(c.Context(), ledger.PurchaseInput{
		BaseID:      in.BaseID,
		AssetID:     in.AssetID,
		Name:        in.Name,
		Type:        in.Type,
		Quantity:    in.Quantity,
		CostPerUnit: in.CostPerUnit,
		TotalCost:   in.TotalCost,
		Date:        in.Date,
		CreatedBy:   GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	out := dto.PurchaseResponse{
		ID:          p.ID,
		AssetID:     assetRef(c.Context(), h.assets, p.AssetID),
		BaseID:      baseRef(c.Context(), h.bases, p.BaseID),
		Quantity:    p.Quantity,
		CostPerUnit: p.CostPerUnit,
		TotalCost:   p.TotalCost,
		Date:        p.Date,
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List purchases, newest first
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        date           query  string  false  "event day (YYYY-MM-DD) or RFC3339 instant"
// @Param        time           query  string  false  "upper bound clock (HH:MM) within date"
// @Param        base           query  string  false  "base id"
// @Param        equipmentType  query  string  false  "asset type or name"
// @Success      200  {array}   dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	f, err := eventFilterFromQuery(c)
	if err != nil {
		return errorJSON(c, err)
	}
	rows, err := h.purchases.List(c.Context(), f, listLimit)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PurchaseResponse{
			ID:          r.ID,
			AssetID:     dto.AssetRef{ID: r.AssetID, Name: r.AssetName, Type: r.AssetType},
			BaseID:      dto.BaseRef{ID: r.BaseID, Name: r.BaseName},
			Quantity:    r.Quantity,
			CostPerUnit: r.CostPerUnit,
			TotalCost:   r.TotalCost,
			Date:        r.Date,
		})
	}
	return c.JSON(out)
}
