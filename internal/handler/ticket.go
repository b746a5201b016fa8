package handler

import (
	"net/http"

	"posbuddy/internal/apierror"
	"posbuddy/internal/dto"
	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler exposes the open ticket of the authenticated cashier.
type TicketHandler struct{ svc service.VentaService }

func NewTicketHandler(svc service.VentaService) *TicketHandler { return &TicketHandler{svc: svc} }

// Obtener godoc
// @Summary      Ticket en curso
// @Tags         ticket
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TicketResponse
// @Router       /v1/ticket [get]
func (h *TicketHandler) Obtener(c *gin.Context) {
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerTicket(c.Request.Context(), usuarioID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarLinea godoc
// @Summary      Agregar producto al ticket
// @Description  Agrega por producto_id o codigo_barras. Si el producto ya está en el ticket suma la cantidad conservando el precio unitario.
// @Tags         ticket
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AgregarLineaRequest true "Producto y cantidad"
// @Success      200  {object} dto.TicketResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError "stock_insuficiente"
// @Failure      422  {object} apierror.APIError
// @Router       /v1/ticket/lineas [post]
func (h *TicketHandler) AgregarLinea(c *gin.Context) {
	var req dto.AgregarLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	cantidad := 1
	if req.Cantidad != nil {
		cantidad = *req.Cantidad
	}

	var (
		resp *dto.TicketResponse
		err  error
	)
	switch {
	case req.ProductoID != nil:
		productoID, perr := uuid.Parse(*req.ProductoID)
		if perr != nil || productoID == uuid.Nil {
			c.JSON(http.StatusBadRequest, apierror.New("producto_id invalido"))
			return
		}
		resp, err = h.svc.AgregarProducto(c.Request.Context(), usuarioID, productoID, cantidad)
	case req.CodigoBarras != nil:
		resp, err = h.svc.AgregarPorCodigo(c.Request.Context(), usuarioID, *req.CodigoBarras, cantidad)
	default:
		c.JSON(http.StatusUnprocessableEntity, apierror.NewWithCode(apierror.CodeValidacion, "Indique producto_id o codigo_barras"))
		return
	}
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCantidad godoc
// @Summary      Cambiar la cantidad de una línea
// @Tags         ticket
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                        true "ID de línea"
// @Param        body body dto.ActualizarCantidadRequest true "Nueva cantidad"
// @Success      200  {object} dto.TicketResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/ticket/lineas/{id} [put]
func (h *TicketHandler) ActualizarCantidad(c *gin.Context) {
	lineaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarCantidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.ActualizarCantidad(c.Request.Context(), usuarioID, lineaID, req.Cantidad)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarLinea DELETE /v1/ticket/lineas/:id
func (h *TicketHandler) QuitarLinea(c *gin.Context) {
	lineaID, ok := paramID(c, "id")
	if !ok {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.QuitarLinea(c.Request.Context(), usuarioID, lineaID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Limpiar DELETE /v1/ticket
func (h *TicketHandler) Limpiar(c *gin.Context) {
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	if err := h.svc.Limpiar(c.Request.Context(), usuarioID); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AsignarCliente PUT /v1/ticket/cliente
func (h *TicketHandler) AsignarCliente(c *gin.Context) {
	var req dto.AsignarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	clienteID, _ := uuid.Parse(req.ClienteID)
	resp, err := h.svc.AsignarCliente(c.Request.Context(), usuarioID, clienteID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuitarCliente DELETE /v1/ticket/cliente
func (h *TicketHandler) QuitarCliente(c *gin.Context) {
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.QuitarCliente(c.Request.Context(), usuarioID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cobrar godoc
// @Summary      Cobrar el ticket
// @Description  Registra la venta en una sola transacción. Crédito sin cliente responde 409 cliente_requerido. Si el registro falla responde 502 y el ticket se conserva para reintentar.
// @Tags         ticket
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CobrarRequest true "Método y pago recibido"
// @Success      201  {object} dto.VentaResponse
// @Failure      409  {object} apierror.APIError "stock_insuficiente | cliente_requerido | limite_credito_excedido"
// @Failure      422  {object} apierror.APIError
// @Failure      502  {object} apierror.APIError "escritura_remota"
// @Router       /v1/ticket/cobrar [post]
func (h *TicketHandler) Cobrar(c *gin.Context) {
	var req dto.CobrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cobrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Pendientes ───────────────────────────────────────────────────────────────

// GuardarPendiente POST /v1/ticket/pendientes
func (h *TicketHandler) GuardarPendiente(c *gin.Context) {
	var req dto.GuardarPendienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.GuardarPendiente(c.Request.Context(), usuarioID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPendientes GET /v1/ticket/pendientes
func (h *TicketHandler) ListarPendientes(c *gin.Context) {
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPendientes(c.Request.Context(), usuarioID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecuperarPendiente POST /v1/ticket/pendientes/:id/recuperar
func (h *TicketHandler) RecuperarPendiente(c *gin.Context) {
	pendienteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.RecuperarPendiente(c.Request.Context(), usuarioID, pendienteID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
