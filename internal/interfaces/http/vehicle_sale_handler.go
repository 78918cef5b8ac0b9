package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoventas-api/internal/application/dto"
	"github.com/jhoicas/autoventas-api/internal/application/sales"
	"github.com/jhoicas/autoventas-api/pkg/logger"
)

// VehicleSaleHandler maneja el libro de ventas de vehículos.
type VehicleSaleHandler struct {
	uc  *sales.SaleUseCase
	log *logger.Logger
}

// NewVehicleSaleHandler construye el handler de ventas.
func NewVehicleSaleHandler(uc *sales.SaleUseCase, log *logger.Logger) *VehicleSaleHandler {
	return &VehicleSaleHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar ventas
// @Description  admin ve todas (filtro opcional por vendedor); employee solo las propias.
// @Tags         vehiclesales
// @Produce      json
// @Security     TokenAuth
// @Param        seller  query  string  false  "ID del vendedor (solo admin)"
// @Success      200     {array}   dto.SaleResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/vehiclesales [get]
func (h *VehicleSaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c), c.Query("seller"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Compras del cliente autenticado
// @Tags         vehiclesales
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/customer [get]
func (h *VehicleSaleHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListForCustomer godoc
// @Summary      Ventas de un cliente
// @Description  Compuesto con la visibilidad del actor; un customer solo puede pedir las suyas.
// @Tags         vehiclesales
// @Produce      json
// @Security     TokenAuth
// @Param        userId  path  string  true  "ID del cliente"
// @Success      200     {array}   dto.SaleResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/{userId} [get]
func (h *VehicleSaleHandler) ListForCustomer(c *fiber.Ctx) error {
	out, err := h.uc.ListForCustomer(c.UserContext(), GetActor(c), c.Params("userId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Tags         vehiclesales
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body  dto.CreateSaleRequest  true  "vehículo, cliente y pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/create [post]
func (h *VehicleSaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	actor := GetActor(c)
	out, err := h.uc.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("actor_id", actor.ID).Str("sale_id", out.ID).Msg("venta registrada")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar venta
// @Description  Solo cambian los campos enviados; los objetos anidados se fusionan campo a campo.
// @Tags         vehiclesales
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/{id} [put]
func (h *VehicleSaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar venta
// @Tags         vehiclesales
// @Produce      json
// @Security     TokenAuth
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/{id} [delete]
func (h *VehicleSaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: "Sale deleted successfully"})
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Description  Visible para admin, el vendedor y el cliente de la venta.
// @Tags         vehiclesales
// @Produce      application/pdf
// @Security     TokenAuth
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehiclesales/{id}/receipt [get]
func (h *VehicleSaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Receipt(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="venta-`+id+`.pdf"`)
	return c.Send(pdf)
}
