package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/internal/handler/api"
	"storefront/internal/handler/middleware"
	"storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	orderHandler *api.OrderHandler,
	discountHandler *api.DiscountHandler,
	productHandler *api.ProductHandler,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, orderHandler, discountHandler, productHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.Actor())
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	orderHandler *api.OrderHandler,
	discountHandler *api.DiscountHandler,
	productHandler *api.ProductHandler,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		products := apiGroup.Group("/products")
		{
			addRoutes(products, []route{
				{Method: http.MethodGet, Path: "", Handler: productHandler.ListProducts},
				{Method: http.MethodGet, Path: "/:id", Handler: productHandler.GetProduct},
			})

			adminProducts := products.Group("")
			adminProducts.Use(middleware.RequireAdmin())
			addRoutes(adminProducts, []route{
				{Method: http.MethodPatch, Path: "/:id/pricing", Handler: productHandler.UpdatePricing},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(middleware.RequireActor())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.PlaceOrder},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.ListOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.GetOrder},
			})

			adminOrders := orders.Group("")
			adminOrders.Use(middleware.RequireAdmin())
			addRoutes(adminOrders, []route{
				{Method: http.MethodPatch, Path: "/:id/status", Handler: orderHandler.UpdateStatus},
				{Method: http.MethodPatch, Path: "/:id/pay", Handler: orderHandler.MarkPaid},
				{Method: http.MethodPatch, Path: "/:id/deliver", Handler: orderHandler.MarkDelivered},
			})
		}

		discounts := apiGroup.Group("/discounts")
		discounts.Use(middleware.RequireAdmin())
		{
			addRoutes(discounts, []route{
				{Method: http.MethodPost, Path: "", Handler: discountHandler.CreateSchedule},
				{Method: http.MethodGet, Path: "", Handler: discountHandler.ListSchedules},
				{Method: http.MethodGet, Path: "/:id", Handler: discountHandler.GetSchedule},
				{Method: http.MethodDelete, Path: "/:id", Handler: discountHandler.CancelSchedule},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
