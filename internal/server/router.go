package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-pos-service/config"
	actH "github.com/fekuna/omnipos-pos-service/internal/activity/handler"
	"github.com/fekuna/omnipos-pos-service/internal/api"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	catH "github.com/fekuna/omnipos-pos-service/internal/category/handler"
	invH "github.com/fekuna/omnipos-pos-service/internal/inventory/handler"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	prodH "github.com/fekuna/omnipos-pos-service/internal/product/handler"
	saleH "github.com/fekuna/omnipos-pos-service/internal/sale/handler"
	userH "github.com/fekuna/omnipos-pos-service/internal/user/handler"
	"github.com/fekuna/omnipos-pos-service/pkg/idempotency"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/fekuna/omnipos-pos-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, repos Repositories, uc UseCases, infra Infra, log logger.ZapLogger) *gin.Engine {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	api.RegisterValidators()

	guard := infra.Idempotency
	if guard == nil {
		if infra.Redis != nil {
			guard = idempotency.NewRedisStore(infra.Redis, "idempotency:sale")
		} else {
			guard = idempotency.NewMemoryStore()
		}
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", saleH.IdempotencyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	authMw := auth.NewMiddleware(cfg.JWT.SecretKey, repos.Users, log)
	staff := authMw.Authorize(model.RoleAdmin, model.RoleManager)
	admin := authMw.Authorize(model.RoleAdmin)
	track := func(a model.ActivityAction, m model.ActivityModule) gin.HandlerFunc {
		return actH.Track(uc.Activity, a, m)
	}

	products := prodH.NewProductHandler(uc.Products, log)
	categories := catH.NewCategoryHandler(uc.Categories, log)
	inventory := invH.NewInventoryHandler(uc.Inventory, log)
	sales := saleH.NewSaleHandler(uc.Sales, guard, log)
	activity := actH.NewActivityHandler(uc.Activity, log)
	users := userH.NewUserHandler(uc.Users, log)

	g := r.Group("/api")
	g.Use(middleware.RateLimiter(infra.Redis, cfg.RateLimit.RequestsPerMinute, log))
	g.Use(authMw.Authenticate())

	p := g.Group("/products")
	p.GET("", products.ListProducts)
	p.GET("/alerts/low-stock", products.ListLowStock)
	p.GET("/:id", products.GetProduct)
	p.POST("", staff, track(model.ActionCreateProduct, model.ModuleProducts), products.CreateProduct)
	p.PUT("/:id", staff, track(model.ActionUpdateProduct, model.ModuleProducts), products.UpdateProduct)
	p.DELETE("/:id", admin, track(model.ActionDeleteProduct, model.ModuleProducts), products.DeleteProduct)

	c := g.Group("/categories")
	c.GET("", categories.ListActive)
	c.GET("/all", staff, categories.ListAll)
	c.POST("", staff, track(model.ActionCreateCategory, model.ModuleProducts), categories.CreateCategory)
	c.PUT("/:id", staff, track(model.ActionUpdateCategory, model.ModuleProducts), categories.UpdateCategory)
	c.DELETE("/:id", admin, track(model.ActionDeleteCategory, model.ModuleProducts), categories.DeleteCategory)

	i := g.Group("/inventory")
	i.GET("/logs", inventory.ListLogs)
	i.GET("/movements/:productId", inventory.ListMovements)
	i.POST("/adjust", staff, track(model.ActionInventoryAdjustment, model.ModuleInventory), inventory.AdjustInventory)

	s := g.Group("/sales")
	s.GET("", sales.ListSales)
	s.GET("/:id", sales.GetSale)
	s.POST("", track(model.ActionCreateSale, model.ModuleSales), sales.CreateSale)
	s.PUT("/:id", staff, track(model.ActionUpdateSale, model.ModuleSales), sales.UpdateSale)
	s.POST("/:id/cancel", staff, track(model.ActionCancelSale, model.ModuleSales), sales.CancelSale)

	inv := g.Group("/invoices")
	inv.GET("", sales.ListInvoices)
	inv.GET("/number/:invoiceNumber", sales.GetInvoiceByNumber)
	inv.GET("/:id", sales.GetInvoice)

	u := g.Group("/users", admin)
	u.GET("", users.ListUsers)
	u.GET("/:id", users.GetUser)
	u.PUT("/:id", track(model.ActionUpdateUser, model.ModuleUsers), users.UpdateUser)
	u.PUT("/:id/deactivate", track(model.ActionUpdateUser, model.ModuleUsers), users.DeactivateUser)
	u.DELETE("/:id", track(model.ActionDeleteUser, model.ModuleUsers), users.DeleteUser)

	g.GET("/logs/activity", staff, activity.ListActivity)

	return r
}
