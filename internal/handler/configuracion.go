package handler

import (
	"net/http"

	"posbuddy/internal/dto"
	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

func (h *ConfiguracionHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualizar datos del negocio
// @Description La tasa de impuesto se guarda pero no se aplica a los totales del ticket.
// @Tags configuracion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ActualizarConfiguracionRequest true "Datos del negocio"
// @Success 200 {object} dto.ConfiguracionResponse
// @Router /v1/configuracion [put]
func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
