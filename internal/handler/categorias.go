package handler

import (
	"net/http"

	"posbuddy/internal/dto"
	"posbuddy/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Crear godoc
// @Summary  Crear categoría
// @Tags     categorias
// @Param    body body dto.CrearCategoriaRequest true "Categoría"
// @Success  201 {object} dto.CategoriaResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/categorias [post]
func (h *CategoriasHandler) Crear(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cat, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// Listar returns every category with its count of active products.
func (h *CategoriasHandler) Listar(c *gin.Context) {
	cats, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats, "total": len(cats)})
}
