package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/inventory"
)

// MovementHandler libro de movimientos de stock y entradas de mercadería.
type MovementHandler struct {
	ledger  *inventory.LedgerUseCase
	inbound *inventory.RegisterInboundUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *inventory.LedgerUseCase, inbound *inventory.RegisterInboundUseCase) *MovementHandler {
	return &MovementHandler{ledger: ledger, inbound: inbound}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.List(c.UserContext(), c.Query("product_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterInbound godoc
// @Summary      Registrar entrada de mercadería
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InboundRequest  true  "Producto, cantidad y nota"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/inbound [post]
func (h *MovementHandler) RegisterInbound(c *fiber.Ctx) error {
	var in dto.InboundRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.inbound.RegisterInbound(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
