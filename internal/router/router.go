package router

import (
	"github.com/Roezin7/SistemaGestion/internal/config"
	"github.com/Roezin7/SistemaGestion/internal/handler"
	"github.com/Roezin7/SistemaGestion/internal/middleware"
	"github.com/Roezin7/SistemaGestion/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every API route.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORS.Origins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.Origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	// uploaded documents are served as static files
	r.Static("/uploads", cfg.Uploads.Dir)

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	clienteHandler := handler.NewClienteHandler(db)
	documentoHandler := handler.NewDocumentoHandler(db, cfg.Uploads.Dir)

	// reads the public dashboard uses before login
	api.GET("/clientes", clienteHandler.ListClientes)
	api.GET("/clientes/:id/documentos", documentoHandler.List)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.GET("/me", handler.GetMe)

	protected.GET("/clientes/:id", clienteHandler.GetCliente)
	protected.POST("/clientes", clienteHandler.CreateCliente)
	protected.PUT("/clientes/:id", clienteHandler.UpdateCliente)
	protected.DELETE("/clientes/:id", clienteHandler.DeleteCliente)

	protected.POST("/clientes/:id/documentos", documentoHandler.Upload)
	protected.PUT("/documentos/:docId", documentoHandler.Rename)
	protected.DELETE("/documentos/:docId", documentoHandler.Delete)

	finanzaHandler := handler.NewFinanzaHandler(db, cfg.Finanzas.Socios)
	protected.POST("/finanzas", finanzaHandler.CreateMovimiento)
	protected.PUT("/finanzas/:id", finanzaHandler.UpdateMovimiento)
	protected.DELETE("/finanzas/:id", finanzaHandler.DeleteMovimiento)
	protected.GET("/finanzas/reportes", finanzaHandler.ListReportes)
	protected.GET("/finanzas/transacciones", finanzaHandler.UltimasTransacciones)
	protected.GET("/finanzas/abonos/:clientId", finanzaHandler.AbonosPorCliente)
	protected.GET("/finanzas/documentos/:clientId", finanzaHandler.DocumentosPorCliente)
	// retiros live on their own prefix: a static "retiros" segment next
	// to the ":id" wildcard in the finanzas method tree would not route
	protected.POST("/retiros", finanzaHandler.CreateRetiro)
	protected.GET("/retiros", finanzaHandler.ListRetiros)
	protected.DELETE("/retiros/:id", finanzaHandler.DeleteRetiro)
	protected.GET("/finanzas/reparto", finanzaHandler.GetReparto)

	kpiHandler := handler.NewKPIHandler(db)
	protected.GET("/kpis", kpiHandler.GetKPIs)
	protected.GET("/kpis/chart", kpiHandler.GetChart)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	historialHandler := handler.NewHistorialHandler(db)
	protected.GET("/historial", historialHandler.List)

	admin := protected.Group("")
	admin.Use(middleware.RequireRol(models.RolAdmin))

	usuarioHandler := handler.NewUsuarioHandler(db)
	admin.GET("/usuarios", usuarioHandler.ListUsuarios)
	admin.PUT("/usuarios/:id/rol", usuarioHandler.UpdateRol)
	admin.DELETE("/usuarios/:id", usuarioHandler.DeleteUsuario)
	admin.DELETE("/historial", historialHandler.Purge)

	return r
}
