package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/usecase"
)

// BaseHandler handles base CRUD.
type BaseHandler struct {
	uc *usecase.BaseUseCase
}

// NewBaseHandler builds the handler.
func NewBaseHandler(uc *usecase.BaseUseCase) *BaseHandler {
	return &BaseHandler{uc: uc}
}

// Create godoc
// @Summary      Create a base
// @Tags         bases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBaseRequest  true  "base"
// @Success      201   {object}  dto.BaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bases [post]
func (h *BaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBaseRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in.Name)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List bases
// @Tags         bases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BaseResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/bases [get]
func (h *BaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		out = []*dto.BaseResponse{}
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a base
// @Tags         bases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "base id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bases/{id} [delete]
func (h *BaseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
