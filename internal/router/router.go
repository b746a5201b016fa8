package router

import (
	"context"

	"posbuddy/internal/config"
	"posbuddy/internal/handler"
	"posbuddy/internal/middleware"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
	"posbuddy/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, recibos service.ReciboEncolador) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Reports run plain SQL through sqlx on the pool GORM already owns.
	reportesDB := sqlx.NewDb(sqlDB, "pgx")

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	movimientoRepo := repository.NewMovimientoInventarioRepository(db)
	pendienteRepo := repository.NewTicketPendienteRepository(db)
	corteRepo := repository.NewCorteCajaRepository(db)
	configuracionRepo := repository.NewConfiguracionRepository(db)
	reporteRepo := repository.NewReporteRepository(reportesDB)

	ticketStore := repository.NewRedisTicketStore(rdb, cfg.TicketTTL())
	precioCache := repository.NewRedisPrecioCache(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo, precioCache)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, movimientoRepo, precioCache)
	ventaSvc := service.NewVentaService(
		ventaRepo, productoRepo, clienteRepo, movimientoRepo, pendienteRepo,
		ticketStore, precioCache, recibos,
		service.VentaOpciones{
			DescontarStock:       cfg.DescontarStockEnVenta,
			ValidarLimiteCredito: cfg.ValidarLimiteCredito,
		},
	)
	reporteSvc := service.NewReporteService(reporteRepo)
	cajaSvc := service.NewCajaService(corteRepo, reporteRepo)
	configuracionSvc := service.NewConfiguracionService(configuracionRepo, cfg.NombreNegocio)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ticketH := handler.NewTicketHandler(ventaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	configuracionH := handler.NewConfiguracionHandler(configuracionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(map[string]handler.Chequeo{
		"db":    sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimit), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check, no auth required
	r.GET("/v1/precio/:barcode", productosH.ConsultarPrecio)

	// Protected routes
	todos := middleware.RequireRole(model.RolAdmin, model.RolCajero)
	admin := middleware.RequireRole(model.RolAdmin)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.APIRateLimiter(cfg.RateLimit))
	{
		tk := v1.Group("/ticket", todos)
		{
			tk.GET("", ticketH.Obtener)
			tk.DELETE("", ticketH.Limpiar)
			tk.POST("/lineas", ticketH.AgregarLinea)
			tk.PUT("/lineas/:id", ticketH.ActualizarCantidad)
			tk.DELETE("/lineas/:id", ticketH.QuitarLinea)
			tk.PUT("/cliente", ticketH.AsignarCliente)
			tk.DELETE("/cliente", ticketH.QuitarCliente)
			tk.POST("/cobrar", ticketH.Cobrar)
			tk.POST("/pendientes", ticketH.GuardarPendiente)
			tk.GET("/pendientes", ticketH.ListarPendientes)
			tk.POST("/pendientes/:id/recuperar", ticketH.RecuperarPendiente)
		}

		v1.GET("/ventas", todos, ventasH.ListarVentas)
		v1.GET("/ventas/:id", todos, ventasH.ObtenerVenta)

		// Catalog reads for every cashier; writes are admin only
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/buscar", todos, productosH.Buscar)
		v1.GET("/productos/codigo/:codigo", todos, productosH.BuscarPorCodigo)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
		}

		v1.GET("/categorias", todos, categoriasH.Listar)
		v1.POST("/categorias", admin, categoriasH.Crear)

		cli := v1.Group("/clientes", todos)
		{
			cli.POST("", clientesH.Crear)
			cli.GET("", clientesH.Listar)
			cli.GET("/buscar", clientesH.Buscar)
			cli.GET("/:id", clientesH.ObtenerPorID)
			cli.PUT("/:id", clientesH.Actualizar)
			cli.POST("/:id/abonos", clientesH.RegistrarAbono)
			cli.GET("/:id/abonos", clientesH.ListarAbonos)
		}
		v1.DELETE("/clientes/:id", admin, clientesH.Desactivar)

		inv := v1.Group("/inventario", todos)
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/alertas", inventarioH.ObtenerAlertas)
			inv.GET("/resumen", inventarioH.Resumen)
		}

		v1.GET("/reportes/diario", todos, reportesH.Diario)

		caja := v1.Group("/caja", todos)
		{
			caja.POST("/cortes", cajaH.Corte)
			caja.GET("/cortes", cajaH.ListarCortes)
		}

		v1.GET("/configuracion", todos, configuracionH.Obtener)
		v1.PUT("/configuracion", admin, configuracionH.Actualizar)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}
