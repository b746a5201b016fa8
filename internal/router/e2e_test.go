//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"posbuddy/internal/config"
	"posbuddy/internal/dto"
	"posbuddy/internal/infra"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
	"posbuddy/internal/router"
	"posbuddy/internal/service"
	"posbuddy/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func do(t *testing.T, srv *httptest.Server, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	db     *gorm.DB
	rdb    *redis.Client
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		tcPostgres.WithDatabase("posbuddy_test"),
		tcPostgres.WithUsername("posbuddy"),
		tcPostgres.WithPassword("posbuddy"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Env:                   "test",
		JWTSecret:             "test-secret-key",
		JWTExpirationHours:    8,
		JWTRefreshHours:       24,
		DatabaseURL:           pgURL,
		RedisURL:              rdURL,
		TicketTTLHours:        1,
		DescontarStockEnVenta: true,
		RateLimit:             "10000-M",
		LoginRateLimit:        "100-M",
		NombreNegocio:         "Tienda E2E",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	_, err = service.NewAuthService(repository.NewUsuarioRepository(db), cfg).CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "admin", Nombre: "Admin E2E", Password: "secreto123", Rol: model.RolAdmin,
	})
	require.NoError(t, err)

	engine, err := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	require.NoError(t, err)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	resp := do(t, srv, http.MethodPost, "/v1/auth/login", dto.LoginRequest{Username: "admin", Password: "secreto123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	decodeJSON(t, resp, &login)

	return &testEnv{server: srv, token: login.AccessToken, db: db, rdb: rdb}
}

func (e *testEnv) crearProducto(t *testing.T, req dto.CrearProductoRequest) dto.ProductoResponse {
	t.Helper()
	resp := do(t, e.server, http.MethodPost, "/v1/productos", req, e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductoResponse
	decodeJSON(t, resp, &p)
	return p
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	t.Run("cobro en efectivo", func(t *testing.T) {
		codigo := "7501000000015"
		p := env.crearProducto(t, dto.CrearProductoRequest{
			CodigoBarras: &codigo, Nombre: "Aceite 1L", PrecioVenta: dec("15.00"), Stock: 3,
		})

		resp := do(t, env.server, http.MethodPost, "/v1/ticket/lineas", map[string]any{"codigo_barras": codigo, "cantidad": 2}, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var tk dto.TicketResponse
		decodeJSON(t, resp, &tk)
		require.Len(t, tk.Lineas, 1)
		lineaID := tk.Lineas[0].ID

		resp = do(t, env.server, http.MethodPut, "/v1/ticket/lineas/"+lineaID, map[string]any{"cantidad": 3}, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decodeJSON(t, resp, &tk)
		assert.True(t, tk.Subtotal.Equal(dec("45")))

		resp = do(t, env.server, http.MethodPut, "/v1/ticket/lineas/"+lineaID, map[string]any{"cantidad": 4}, env.token)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, env.server, http.MethodPost, "/v1/ticket/cobrar", map[string]any{"metodo_pago": "efectivo", "pago_recibido": "50.00"}, env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var venta dto.VentaResponse
		decodeJSON(t, resp, &venta)
		assert.True(t, venta.Total.Equal(dec("45")))
		assert.True(t, venta.Cambio.Equal(dec("5")))
		assert.Equal(t, "completada", venta.Estado)

		resp = do(t, env.server, http.MethodGet, "/v1/ticket", nil, env.token)
		decodeJSON(t, resp, &tk)
		assert.Empty(t, tk.Lineas)

		var stock int
		require.NoError(t, env.db.Raw(`SELECT stock FROM productos WHERE id = ?`, p.ID).Scan(&stock).Error)
		assert.Equal(t, 0, stock)

		n, err := env.rdb.LLen(ctx, worker.QueueRecibo).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("credito sin cliente y con cliente", func(t *testing.T) {
		p := env.crearProducto(t, dto.CrearProductoRequest{Nombre: "Arroz 1kg", PrecioVenta: dec("22.50"), Stock: 10})

		resp := do(t, env.server, http.MethodPost, "/v1/ticket/lineas", map[string]any{"producto_id": p.ID, "cantidad": 2}, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, env.server, http.MethodPost, "/v1/ticket/cobrar", map[string]any{"metodo_pago": "credito"}, env.token)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		var apiErr struct{ Code string }
		decodeJSON(t, resp, &apiErr)
		assert.Equal(t, "cliente_requerido", apiErr.Code)

		resp = do(t, env.server, http.MethodPost, "/v1/clientes", dto.CrearClienteRequest{Nombre: "Doña Carmen", LimiteCredito: dec("500")}, env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var cli dto.ClienteResponse
		decodeJSON(t, resp, &cli)

		resp = do(t, env.server, http.MethodPut, "/v1/ticket/cliente", map[string]any{"cliente_id": cli.ID}, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = do(t, env.server, http.MethodPost, "/v1/ticket/cobrar", map[string]any{"metodo_pago": "credito"}, env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var venta dto.VentaResponse
		decodeJSON(t, resp, &venta)
		assert.True(t, venta.EsCredito)

		resp = do(t, env.server, http.MethodGet, "/v1/clientes/"+cli.ID, nil, env.token)
		decodeJSON(t, resp, &cli)
		assert.True(t, cli.SaldoActual.Equal(dec("45")))

		resp = do(t, env.server, http.MethodPost, "/v1/clientes/"+cli.ID+"/abonos", map[string]any{"monto": "20"}, env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var abono dto.AbonoResponse
		decodeJSON(t, resp, &abono)
		assert.True(t, abono.SaldoNuevo.Equal(dec("25")))
	})

	t.Run("reporte y corte", func(t *testing.T) {
		resp := do(t, env.server, http.MethodGet, "/v1/reportes/diario", nil, env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var rep dto.ReporteDiarioResponse
		decodeJSON(t, resp, &rep)
		assert.EqualValues(t, 2, rep.Transacciones)
		assert.True(t, rep.Efectivo.Equal(dec("45")))
		assert.True(t, rep.Credito.Equal(dec("45")))

		resp = do(t, env.server, http.MethodPost, "/v1/caja/cortes", map[string]any{"monto_inicial": "100", "monto_real": "160"}, env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var corte dto.CorteCajaResponse
		decodeJSON(t, resp, &corte)
		// 100 inicial + 45 efectivo + 20 abono
		assert.True(t, corte.MontoEsperado.Equal(dec("165")))
		assert.True(t, corte.Diferencia.Equal(dec("-5")))
	})

	t.Run("consulta de precio publica", func(t *testing.T) {
		resp := do(t, env.server, http.MethodGet, "/v1/precio/7501000000015", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var precio dto.ConsultaPreciosResponse
		decodeJSON(t, resp, &precio)
		assert.Equal(t, "Aceite 1L", precio.Nombre)
		assert.Equal(t, 0, precio.StockDisponible)
	})

	t.Run("sin token", func(t *testing.T) {
		resp := do(t, env.server, http.MethodGet, "/v1/ticket", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}
