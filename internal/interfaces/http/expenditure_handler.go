package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armory-api/internal/application/analytics"
	"github.com/jhoicas/armory-api/internal/application/dto"
	"github.com/jhoicas/armory-api/internal/application/ledger"
	"github.com/jhoicas/armory-api/internal/domain/entity"
	"github.com/jhoicas/armory-api/internal/domain/repository"
)

// ExpenditureHandler records and lists expenditure events.
type ExpenditureHandler struct {
	ledger       *ledger.UseCase
	expenditures repository.ExpenditureRepository
	assets       repository.AssetRepository
	bases        repository.BaseRepository
}

// NewExpenditureHandler builds the handler.
func NewExpenditureHandler(lg *ledger.UseCase, expenditures repository.ExpenditureRepository, assets repository.AssetRepository, bases repository.BaseRepository) *ExpenditureHandler {
	return &ExpenditureHandler{ledger: lg, expenditures: expenditures, assets: assets, bases: bases}
}

// Create godoc
// @Summary      Record an expenditure at a base
// @Tags         expenditures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenditureRequest  true  "expenditure"
// @Success      201   {object}  dto.ExpenditureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/expenditures [post]
func (h *ExpenditureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenditureRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	e, err := h.ledger.RecordExpenditure(c.Context(), ledger.ExpenditureInput{
		AssetID:      in.AssetID,
		BaseID:       in.BaseID,
		Quantity:     in.Quantity,
		ExpendType:   entity.ExpendType(in.ExpendType),
		ExpendReason: in.ExpendReason,
		CreatedBy:    GetUserID(c),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	out := dto.ExpenditureResponse{
		ID:           e.ID,
		AssetID:      assetRef(c.Context(), h.assets, e.AssetID),
		BaseID:       baseRef(c.Context(), h.bases, e.BaseID),
		Quantity:     e.Quantity,
		ExpendType:   string(e.ExpendType),
		ExpendReason: e.ExpendReason,
		Date:         e.Date,
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List expenditures, newest first
// @Tags         expenditures
// @Security     Bearer
// @Produce      json
// @Param        date           query  string  false  "event day (YYYY-MM-DD) or RFC3339 instant"
// @Param        time           query  string  false  "upper bound clock (HH:MM) within date"
// @Param        base           query  string  false  "base id"
// @Param        equipmentType  query  string  false  "asset type or name"
// @Success      200  {array}   dto.ExpenditureResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenditures [get]
func (h *ExpenditureHandler) List(c *fiber.Ctx) error {
	f, err := eventFilterFromQuery(c)
	if err != nil {
		return errorJSON(c, err)
	}
	rows, err := h.expenditures.List(c.Context(), f, listLimit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(analytics.ExpenditureResponses(rows))
}
