package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/assignment"
	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// AssignmentHandler handles asset assignments and their single state
// transition.
type AssignmentHandler struct {
	uc     *assignment.UseCase
	assets repository.AssetRepository
}

// NewAssignmentHandler builds the handler.
func NewAssignmentHandler(uc *assignment.UseCase, assets repository.AssetRepository) *AssignmentHandler {
	return &AssignmentHandler{uc: uc, assets: assets}
}

// Create godoc
// @Summary      Assign an available asset to a person
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRequest  true  "assignment"
// @Success      201   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	a, err := h.uc.Assign(c.Context(), in.AssetID, in.AssignedTo)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.response(c, a))
}

// List godoc
// @Summary      List assignments, oldest first
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Assigned or Expended"
// @Success      200  {array}   dto.AssignmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	rows, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.AssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AssignmentResponse{
			ID:         r.ID,
			AssetID:    dto.AssetRef{ID: r.AssetID, Name: r.AssetName, Type: r.AssetType},
			AssignedTo: r.AssignedTo,
			Status:     string(r.Status),
			AssignedAt: r.AssignedAt,
			ExpendedAt: r.ExpendedAt,
		})
	}
	return c.JSON(out)
}

// MarkExpended godoc
// @Summary      Mark an assignment as expended
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "assignment id"
// @Success      200  {object}  dto.AssignmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id}/expended [put]
func (h *AssignmentHandler) MarkExpended(c *fiber.Ctx) error {
	a, err := h.uc.MarkExpended(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(h.response(c, a))
}

func (h *AssignmentHandler) response(c *fiber.Ctx, a *entity.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:         a.ID,
		AssetID:    assetRef(c.Context(), h.assets, a.AssetID),
		AssignedTo: a.AssignedTo,
		Status:     string(a.Status),
		AssignedAt: a.AssignedAt,
		ExpendedAt: a.ExpendedAt,
	}
}
