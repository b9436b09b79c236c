package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/dto"
	"github.com/VictorBenitezR/sistema-de-gestion/internal/application/sales"
)

// SaleHandler registro y consulta de ventas.
type SaleHandler struct {
	register *sales.RegisterSaleUseCase
	query    *sales.QueryUseCase
	receipt  *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(register *sales.RegisterSaleUseCase, query *sales.QueryUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{register: register, query: query, receipt: receipt}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Crea la venta con sus líneas, descuenta stock y registra los movimientos en una sola transacción.
// @Description  El vendedor es el usuario del token. Si se envía Idempotency-Key, los reintentos devuelven la misma respuesta.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                   false  "Clave de idempotencia"
// @Param        body             body    dto.RegisterSaleRequest  true   "Cliente y líneas"
// @Success      201  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK o IDEMPOTENCY_IN_PROGRESS"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]sales.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, sales.LineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	sale, err := h.register.RegisterSale(c.UserContext(), in.ClientID, GetUserID(c), lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sales.ToSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas (más recientes primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.query.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.query.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sales.ToSaleResponse(sale))
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipt.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
