package handler

import (
	"net/http"

	"posbuddy/internal/dto"
	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func (h *ClientesHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) Listar(c *gin.Context) {
	var filter dto.ClienteFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary  Búsqueda rápida de clientes por nombre o teléfono (máx. 20)
// @Tags     clientes
// @Produce  json
// @Security BearerAuth
// @Param    q   query string true "Texto"
// @Success  200 {array} dto.ClienteResponse
// @Router   /v1/clientes/buscar [get]
func (h *ClientesHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar answers 409 while the customer still has a balance.
func (h *ClientesHandler) Desactivar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegistrarAbono godoc
// @Summary  Registrar abono a la cuenta de crédito
// @Tags     clientes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                    true "UUID del cliente"
// @Param    body body dto.RegistrarAbonoRequest true "Abono"
// @Success  201  {object} dto.AbonoResponse
// @Failure  404  {object} apierror.APIError
// @Router   /v1/clientes/{id}/abonos [post]
func (h *ClientesHandler) RegistrarAbono(c *gin.Context) {
	clienteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarAbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.RegistrarAbono(c.Request.Context(), usuarioID, clienteID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientesHandler) ListarAbonos(c *gin.Context) {
	clienteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarAbonos(c.Request.Context(), clienteID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
