package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"posbuddy/internal/apierror"
	"posbuddy/internal/dto"
	"posbuddy/internal/middleware"
	"posbuddy/internal/service"
	"posbuddy/internal/ticket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

var cajeroID = uuid.MustParse("0d6c3b1e-6f3e-4a5e-8d0b-7a1f2c3d4e5f")

// fakeVentas embeds the interface; calling a method that is not overridden
// panics and fails the test.
type fakeVentas struct {
	service.VentaService
	agregarCodigo func(codigo string, cantidad int) (*dto.TicketResponse, error)
	agregarID     func(id uuid.UUID, cantidad int) (*dto.TicketResponse, error)
	cobrar        func(req dto.CobrarRequest) (*dto.VentaResponse, error)
	usuario       uuid.UUID
}

func (f *fakeVentas) AgregarPorCodigo(_ context.Context, usuarioID uuid.UUID, codigo string, cantidad int) (*dto.TicketResponse, error) {
	f.usuario = usuarioID
	return f.agregarCodigo(codigo, cantidad)
}

func (f *fakeVentas) AgregarProducto(_ context.Context, usuarioID, productoID uuid.UUID, cantidad int) (*dto.TicketResponse, error) {
	f.usuario = usuarioID
	return f.agregarID(productoID, cantidad)
}

func (f *fakeVentas) Cobrar(_ context.Context, usuarioID uuid.UUID, req dto.CobrarRequest) (*dto.VentaResponse, error) {
	f.usuario = usuarioID
	return f.cobrar(req)
}

func ticketRouter(svc service.VentaService) *gin.Engine {
	h := NewTicketHandler(svc)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: cajeroID.String(), Rol: "cajero"})
		c.Next()
	})
	r.POST("/v1/ticket/lineas", h.AgregarLinea)
	r.POST("/v1/ticket/cobrar", h.Cobrar)
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierror.APIError {
	t.Helper()
	var e apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestAgregarLinea_PorCodigo(t *testing.T) {
	svc := &fakeVentas{
		agregarCodigo: func(codigo string, cantidad int) (*dto.TicketResponse, error) {
			assert.Equal(t, "750100", codigo)
			assert.Equal(t, 1, cantidad)
			return &dto.TicketResponse{Total: decimal.RequireFromString("18.50")}, nil
		},
	}
	w := post(ticketRouter(svc), "/v1/ticket/lineas", map[string]any{"codigo_barras": "750100"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cajeroID, svc.usuario)
	assert.Contains(t, w.Body.String(), `"total":"18.5"`)
}

func TestAgregarLinea_PorID(t *testing.T) {
	productoID := uuid.New()
	svc := &fakeVentas{
		agregarID: func(id uuid.UUID, cantidad int) (*dto.TicketResponse, error) {
			assert.Equal(t, productoID, id)
			assert.Equal(t, 12, cantidad)
			return &dto.TicketResponse{}, nil
		},
	}
	w := post(ticketRouter(svc), "/v1/ticket/lineas", map[string]any{"producto_id": productoID.String(), "cantidad": 12})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAgregarLinea_Validacion(t *testing.T) {
	r := ticketRouter(&fakeVentas{})

	w := post(r, "/v1/ticket/lineas", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = post(r, "/v1/ticket/lineas", map[string]any{"codigo_barras": "1", "cantidad": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = post(r, "/v1/ticket/lineas", map[string]any{"producto_id": "no-es-uuid"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAgregarLinea_ProductoIDVacio(t *testing.T) {
	// agregarID is nil: reaching the service would panic.
	r := ticketRouter(&fakeVentas{})

	for _, id := range []string{"", uuid.Nil.String()} {
		w := post(r, "/v1/ticket/lineas", map[string]any{"producto_id": id})
		assert.Contains(t, []int{http.StatusBadRequest, http.StatusUnprocessableEntity}, w.Code, "producto_id=%q", id)
	}
	w := post(r, "/v1/ticket/lineas", map[string]any{"producto_id": uuid.Nil.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAgregarLinea_StockInsuficiente(t *testing.T) {
	svc := &fakeVentas{
		agregarCodigo: func(string, int) (*dto.TicketResponse, error) {
			return nil, &ticket.StockInsuficienteError{Producto: "Leche", Disponible: 2, Solicitado: 3}
		},
	}
	w := post(ticketRouter(svc), "/v1/ticket/lineas", map[string]any{"codigo_barras": "1", "cantidad": 3})

	require.Equal(t, http.StatusConflict, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, apierror.CodeStockInsuficiente, e.Code)
	assert.Contains(t, e.Detail, "Leche")
}

func TestCobrar_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"credito sin cliente", ticket.ErrClienteRequerido, http.StatusConflict, apierror.CodeClienteRequerido},
		{"pago insuficiente", ticket.ErrPagoInsuficiente, http.StatusUnprocessableEntity, apierror.CodeValidacion},
		{"ticket vacio", ticket.ErrTicketVacio, http.StatusUnprocessableEntity, apierror.CodeValidacion},
		{"limite de credito", service.ErrLimiteCreditoExcedido, http.StatusConflict, apierror.CodeLimiteCredito},
		{"escritura remota", fmt.Errorf("%w: %w", service.ErrEscrituraRemota, errors.New("connection reset")), http.StatusBadGateway, apierror.CodeEscrituraRemota},
		{"cliente no encontrado", &service.NoEncontradoError{Recurso: "cliente"}, http.StatusNotFound, apierror.CodeNoEncontrado},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeVentas{cobrar: func(dto.CobrarRequest) (*dto.VentaResponse, error) { return nil, tc.err }}
			w := post(ticketRouter(svc), "/v1/ticket/cobrar", map[string]any{"metodo_pago": "credito"})

			require.Equal(t, tc.status, w.Code)
			e := decodeError(t, w)
			assert.Equal(t, tc.code, e.Code)
			assert.NotContains(t, e.Detail, "connection reset")
		})
	}
}

func TestCobrar_Exito(t *testing.T) {
	svc := &fakeVentas{
		cobrar: func(req dto.CobrarRequest) (*dto.VentaResponse, error) {
			assert.Equal(t, "efectivo", req.MetodoPago)
			assert.True(t, req.PagoRecibido.Equal(decimal.NewFromInt(100)))
			return &dto.VentaResponse{NumeroTicket: 7, Cambio: decimal.RequireFromString("13.50")}, nil
		},
	}
	w := post(ticketRouter(svc), "/v1/ticket/cobrar", map[string]any{"metodo_pago": "efectivo", "pago_recibido": "100"})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.VentaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.NumeroTicket)
	assert.True(t, resp.Cambio.Equal(decimal.RequireFromString("13.5")))
}

func TestCobrar_MetodoInvalido(t *testing.T) {
	w := post(ticketRouter(&fakeVentas{}), "/v1/ticket/cobrar", map[string]any{"metodo_pago": "cheque"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestErrorNoMapeado_Responde500(t *testing.T) {
	svc := &fakeVentas{cobrar: func(dto.CobrarRequest) (*dto.VentaResponse, error) {
		return nil, errors.New("pq: relation ventas does not exist")
	}}
	w := post(ticketRouter(svc), "/v1/ticket/cobrar", map[string]any{"metodo_pago": "tarjeta"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	caido := func(context.Context) error { return errors.New("dial tcp") }

	r := gin.New()
	r.GET("/ok", Health(map[string]Chequeo{"db": ok, "redis": ok}))
	r.GET("/mal", Health(map[string]Chequeo{"db": ok, "redis": caido}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"connected"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mal", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false,"db":"connected","redis":"error"}`, w.Body.String())
}
