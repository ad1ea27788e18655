package router

import (
	"net/http"
	"time"

	"pos_order_backend/internal/cart"
	"pos_order_backend/internal/handlers"
	"pos_order_backend/internal/middleware"
	"pos_order_backend/internal/repositories"
	"pos_order_backend/internal/services"
	"pos_order_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options tune the engine built by New. Zero values fall back to sane defaults.
type Options struct {
	Location           *time.Location   // reporting/calendar location, default time.Local
	Now                func() time.Time // clock, default time.Now
	Menu               *cart.Menu       // default cart.DefaultMenu()
	CORSAllowedOrigins []string         // "*" or empty allows any origin
	PublicDir          string           // static front-end directory
}

// New builds a gin engine with middleware and every route registered.
func New(orderRepo repositories.OrderRepository, opts Options) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Setup(engine, orderRepo, opts)
	noRoute := []gin.HandlerFunc{middleware.NotFound()}
	if opts.PublicDir != "" {
		noRoute = append([]gin.HandlerFunc{middleware.StaticFiles(opts.PublicDir)}, noRoute...)
	}
	engine.NoRoute(noRoute...)
	return engine
}

// Setup initializes the services, handlers and API routes.
func Setup(engine *gin.Engine, orderRepo repositories.OrderRepository, opts Options) {
	menu := opts.Menu
	if menu == nil {
		menu = cart.DefaultMenu()
	}

	// Initialize Services
	orderService := services.NewOrderService(orderRepo, opts.Location, opts.Now)
	salesService := services.NewSalesService(orderRepo, opts.Location, opts.Now)
	checkoutService := services.NewCheckoutService(menu, orderService, opts.Now)

	// Initialize Handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	salesHandler := handlers.NewSalesHandler(salesService)
	menuHandler := handlers.NewMenuHandler(checkoutService)

	api := engine.Group("/api")
	SetupOrderRoutes(api, orderHandler)
	SetupSalesRoutes(api, salesHandler)
	SetupMenuRoutes(api, menuHandler)
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	return config
}
