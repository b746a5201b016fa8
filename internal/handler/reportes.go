package handler

import (
	"net/http"

	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Diario godoc
// @Summary Reporte de ventas del día
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD (default: hoy)"
// @Success 200 {object} dto.ReporteDiarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/diario [get]
func (h *ReportesHandler) Diario(c *gin.Context) {
	resp, err := h.svc.ReporteDiario(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
