package router

import (
	"github.com/gin-gonic/gin"

	"expodocs/internal/handler"
	"expodocs/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	extractH *handler.ExtractHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.OwnerContext())

	// Invoice generation and retrieval
	invoices := v1.Group("/invoices")
	invoices.POST("/generate", invoiceH.Generate)
	invoices.GET("", invoiceH.List)
	invoices.GET("/check", invoiceH.Check)
	invoices.GET("/:id", invoiceH.GetByID)

	// Source document extraction
	extract := v1.Group("/extract")
	extract.POST("/file", extractH.Upload)
	extract.POST("/text", extractH.Text)

	return r
}
