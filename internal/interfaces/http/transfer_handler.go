package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/analytics"
	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// TransferHandler records and lists transfer events.
type TransferHandler struct {
	ledger    *ledger.UseCase
	transfers repository.TransferRepository
	assets    repository.AssetRepository
	bases     repository.BaseRepository
}

// NewTransferHandler builds the handler.
func NewTransferHandler(lg *ledger.UseCase, transfers repository.TransferRepository, assets repository.AssetRepository, bases repository.BaseRepository) *TransferHandler {
	return &TransferHandler{ledger: lg, transfers: transfers, assets: assets, bases: bases}
}

// Create godoc
// @Summary      Transfer quantity between two bases
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "transfer"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	t, err := h.ledger.RecordTransfer(c.Context(), ledger.TransferInput{
		AssetID:    in.AssetID,
		FromBaseID: in.FromBaseID,
		ToBaseID:   in.ToBaseID,
		Quantity:   in.Quantity,
		CreatedBy:  GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	out := dto.TransferResponse{
		ID:         t.ID,
		AssetID:    assetRef(c.Context(), h.assets, t.AssetID),
		FromBaseID: baseRef(c.Context(), h.bases, t.FromBaseID),
		ToBaseID:   baseRef(c.Context(), h.bases, t.ToBaseID),
		Quantity:   t.Quantity,
		Date:       t.Date,
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List transfers, newest first
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        date           query  string  false  "event day (YYYY-MM-DD) or RFC3339 instant"
// @Param        time           query  string  false  "upper bound clock (HH:MM) within date"
// @Param        base           query  string  false  "base id (matches either side)"
// @Param        equipmentType  query  string  false  "asset type or name"
// @Success      200  {array}   dto.TransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	f, err := eventFilterFromQuery(c)
	if err != nil {
		return errorJSON(c, err)
	}
	rows, err := h.transfers.List(c.Context(), f, listLimit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(analytics.TransferResponses(rows))
}
