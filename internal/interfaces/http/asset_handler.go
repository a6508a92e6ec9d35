package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/usecase"
)

// AssetHandler handles asset registry CRUD. Quantities are read-only
// here; they change only through movement endpoints.
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler builds the handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary      Create an asset, optionally seeding stock at its home base
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "asset"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in, GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List assets with quantities summed across bases
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AssetResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		out = []*dto.AssetResponse{}
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Rename or retype an asset
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "asset id"
// @Param        body  body  dto.UpdateAssetRequest  true  "changes"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete an asset
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "asset id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
