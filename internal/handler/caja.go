package handler

import (
	"net/http"
	"strconv"

	"posbuddy/internal/dto"
	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Corte godoc
// @Summary Corte de caja del día
// @Description Esperado = monto inicial + ventas en efectivo + abonos. Diferencia = monto real - esperado.
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CorteCajaRequest true "Montos declarados"
// @Success 201 {object} dto.CorteCajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caja/cortes [post]
func (h *CajaHandler) Corte(c *gin.Context) {
	var req dto.CorteCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuarioID, ok := usuarioActual(c)
	if !ok {
		return
	}
	resp, err := h.svc.Corte(c.Request.Context(), usuarioID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarCortes godoc
// @Summary Últimos cortes de caja
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Máximo de registros (default 30)"
// @Success 200 {array} dto.CorteCajaResponse
// @Router /v1/caja/cortes [get]
func (h *CajaHandler) ListarCortes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.ListarCortes(c.Request.Context(), limit)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
