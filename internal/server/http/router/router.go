package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/smartxerox/internal/config"
	"github.com/polkiloo/smartxerox/internal/server/http/handlers"
	"github.com/polkiloo/smartxerox/internal/server/http/middleware"
)

// multipart framing and form fields on top of the files themselves
const formOverhead = 1 << 20

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrintShopFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	bodyLimit := cfg.MaxUploadSize*handlers.MaxBatchFiles + formOverhead
	engine.MaxMultipartMemory = cfg.MaxUploadSize

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.LimitBody(bodyLimit))
	engine.Use(middleware.DecompressRequest(bodyLimit))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	opts := handlers.Options{
		DetailedErrors: !cfg.Production(),
		MaxUploadSize:  cfg.MaxUploadSize,
	}
	authHandler := handlers.NewAuthHandler(facade, opts)
	orderHandler := handlers.NewOrderHandler(facade, opts)
	adminHandler := handlers.NewAdminHandler(facade, opts)

	engine.GET("/", handlers.Health(facade, logger))

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.POST("/batch", orderHandler.CreateBatch)
	orders.GET("/:phone", orderHandler.ListByPhone)
	orders.DELETE("/:id", orderHandler.Delete)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", middleware.AuthRequired(facade), authHandler.Profile)

	admin := api.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade), middleware.AdminRequired())
	adminAuth.GET("/orders", adminHandler.Orders)
	adminAuth.GET("/orders/groups", adminHandler.Groups)
	adminAuth.PUT("/orders/bulk-status", adminHandler.BulkStatus)
	adminAuth.PUT("/orders/:id/status", adminHandler.UpdateStatus)
	adminAuth.GET("/stats", adminHandler.Stats)

	return engine
}
