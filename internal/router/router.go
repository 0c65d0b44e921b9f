package router

import (
	"github.com/gin-gonic/gin"

	"opsuite/internal/domain"
	"opsuite/internal/handler"
	"opsuite/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifier *middleware.TokenVerifier,
	allowedOrigins []string,
	voucherH *handler.VoucherHandler,
	partyH *handler.PartyHandler,
	tenantH *handler.TenantHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))
	protected.Use(middleware.TenantGuard())

	// Voucher routes
	vouchers := protected.Group("/vouchers")
	vouchers.POST("/preview", voucherH.Preview)
	vouchers.POST("", voucherH.Create)
	vouchers.GET("", voucherH.List)
	vouchers.GET("/:id", voucherH.GetByID)
	vouchers.POST("/:id/cancel", voucherH.Cancel)

	// Reference links and line consumption
	references := protected.Group("/references")
	references.POST("", voucherH.AttachReference)
	references.DELETE("/:id", voucherH.ReleaseReference)
	protected.GET("/lines/:id/remaining", voucherH.RemainingQuantity)

	// Party master data
	parties := protected.Group("/parties")
	parties.POST("", partyH.Create)
	parties.GET("", partyH.List)
	parties.GET("/:id", partyH.GetByID)
	parties.PUT("/:id", partyH.Update)
	parties.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), partyH.Delete)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/tax-summary", reportH.TaxSummary)
	reports.GET("/voucher-register", reportH.VoucherRegister)
	reports.GET("/voucher-register/export", reportH.ExportRegister)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(verifier))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", tenantH.Create)
	admin.GET("/tenants", tenantH.List)
	admin.GET("/tenants/:id", tenantH.GetByID)
	admin.PUT("/tenants/:id", tenantH.Update)
	admin.DELETE("/tenants/:id", tenantH.Delete)

	return r
}
