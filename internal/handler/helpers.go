package handler

import (
	"errors"
	"net/http"
	"reflect"

	"posbuddy/internal/apierror"
	"posbuddy/internal/middleware"
	"posbuddy/internal/service"
	"posbuddy/internal/ticket"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	return validar(c, req)
}

// bindQuery is bindAndValidate for query string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	return validar(c, req)
}

func validar(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramID parses the named path parameter as a UUID.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// usuarioActual reads the cashier id from the JWT claims.
func usuarioActual(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.UsuarioID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// responderError writes the status and envelope for a service error. Errors
// without a mapping are attached to the context and answered with 500 by
// middleware.ErrorHandler.
func responderError(c *gin.Context, err error) {
	status, body := mapearError(err)
	if body == nil {
		_ = c.Error(err)
		return
	}
	c.JSON(status, body)
}

func mapearError(err error) (int, *apierror.APIError) {
	switch {
	case errors.Is(err, ticket.ErrStockInsuficiente):
		return http.StatusConflict, apierror.NewWithCode(apierror.CodeStockInsuficiente, err.Error())
	case errors.Is(err, ticket.ErrClienteRequerido):
		return http.StatusConflict, apierror.NewWithCode(apierror.CodeClienteRequerido, err.Error())
	case errors.Is(err, service.ErrLimiteCreditoExcedido):
		return http.StatusConflict, apierror.NewWithCode(apierror.CodeLimiteCredito, err.Error())
	case errors.Is(err, service.ErrEscrituraRemota):
		return http.StatusBadGateway, apierror.NewWithCode(apierror.CodeEscrituraRemota, service.ErrEscrituraRemota.Error())
	case errors.Is(err, service.ErrNoEncontrado), errors.Is(err, ticket.ErrLineaNoEncontrada):
		return http.StatusNotFound, apierror.NewWithCode(apierror.CodeNoEncontrado, err.Error())

	case errors.Is(err, ticket.ErrCantidadInvalida),
		errors.Is(err, ticket.ErrMetodoInvalido),
		errors.Is(err, ticket.ErrTicketVacio),
		errors.Is(err, ticket.ErrPagoInsuficiente),
		errors.Is(err, service.ErrProductoInactivo),
		errors.Is(err, service.ErrClienteInactivo),
		errors.Is(err, service.ErrCategoriaInexistente),
		errors.Is(err, service.ErrMontoInvalido):
		return http.StatusUnprocessableEntity, apierror.NewWithCode(apierror.CodeValidacion, err.Error())
	case errors.Is(err, service.ErrFechaInvalida):
		return http.StatusBadRequest, apierror.NewWithCode(apierror.CodeValidacion, err.Error())

	case errors.Is(err, service.ErrCodigoDuplicado),
		errors.Is(err, service.ErrCategoriaDuplicada),
		errors.Is(err, service.ErrUsuarioDuplicado),
		errors.Is(err, service.ErrClienteConSaldo),
		errors.Is(err, service.ErrTicketEnCurso):
		return http.StatusConflict, apierror.New(err.Error())

	case errors.Is(err, service.ErrCredencialesInvalidas), errors.Is(err, service.ErrTokenInvalido):
		return http.StatusUnauthorized, apierror.New(err.Error())
	}
	return http.StatusInternalServerError, nil
}
