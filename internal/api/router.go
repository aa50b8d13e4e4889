package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/marketloop/commerce-api/docs"
	"github.com/marketloop/commerce-api/internal/api/handler"
	"github.com/marketloop/commerce-api/internal/api/middleware"
	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/service"
	"github.com/marketloop/commerce-api/internal/infrastructure/config"
	mongodb "github.com/marketloop/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/marketloop/commerce-api/internal/infrastructure/db/redis"
	"github.com/marketloop/commerce-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	catalogCache := redisdb.NewProductCache(rdb)

	imageStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	productService := service.NewProductService(productRepo, userRepo, catalogCache, log)
	cartService := service.NewCartService(cartRepo, productRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService, imageStore)
	cartHandler := handler.NewCartHandler(cartService)

	authGuard := middleware.Auth(tokenService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	sellerOrAdmin := middleware.RBAC(domain.RoleAdmin, domain.RoleSeller)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authGuard)
	auth.GET("/users", authHandler.ListUsers, authGuard, adminOnly)
	auth.PUT("/users/:id/role", authHandler.UpdateRole, authGuard, adminOnly)
	auth.DELETE("/users/:id", authHandler.DeleteUser, authGuard, adminOnly)

	// --- Product routes (reads are public) ---
	product := api.Group("/product")
	product.GET("", productHandler.List)
	product.GET("/:id", productHandler.Get)
	product.POST("", productHandler.Create, authGuard, sellerOrAdmin)
	product.PUT("/:id", productHandler.Update, authGuard, sellerOrAdmin)
	product.DELETE("/:id", productHandler.Delete, authGuard, sellerOrAdmin)

	// --- Cart routes (always scoped to the caller) ---
	cart := api.Group("/cart", authGuard)
	cart.GET("", cartHandler.Get)
	cart.POST("/add", cartHandler.Add)
	cart.PUT("/update", cartHandler.UpdateQuantity)
	cart.DELETE("/remove/:productId", cartHandler.Remove)
	cart.DELETE("/clear", cartHandler.Clear)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
