package main

import (
	"log"
	"os"
	"strings"
	"time"

	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/handlers"
	"go-ferreteria-pos/internal/logger"
	"go-ferreteria-pos/internal/metrics"
	"go-ferreteria-pos/internal/middleware"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	if err := logger.Init(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	database.Connect()

	r := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Get().Info("🚀 Server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// Token issuance is the only open surface
	api.POST("/token", handlers.ObtainTokenPair)
	api.POST("/token/refresh", handlers.RefreshToken)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		// OPEN TO ANY AUTHENTICATED USER
		registerCRUD(authed.Group("/categorias"),
			handlers.GetCategories, handlers.GetCategory, handlers.CreateCategory,
			handlers.UpdateCategory, handlers.DeleteCategory)
		registerCRUD(authed.Group("/clientes"),
			handlers.GetClients, handlers.GetClient, handlers.CreateClient,
			handlers.UpdateClient, handlers.DeleteClient)

		productos := authed.Group("/productos")
		productos.GET("/scan/:barcode", handlers.ScanProduct)
		registerCRUD(productos,
			handlers.GetProducts, handlers.GetProduct, handlers.CreateProduct,
			handlers.UpdateProduct, handlers.DeleteProduct)

		// ADMIN ONLY
		admin := authed.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdministrator))
		{
			registerCRUD(admin.Group("/users"),
				handlers.GetUsers, handlers.GetUser, handlers.CreateUser,
				handlers.UpdateUser, handlers.DeleteUser)
			registerCRUD(admin.Group("/roles"),
				handlers.GetRoles, handlers.GetRole, handlers.CreateRole,
				handlers.UpdateRole, handlers.DeleteRole)
			registerCRUD(admin.Group("/proveedores"),
				handlers.GetSuppliers, handlers.GetSupplier, handlers.CreateSupplier,
				handlers.UpdateSupplier, handlers.DeleteSupplier)

			admin.GET("/reports", handlers.GetSalesReport)
		}

		// ADMIN AND CASHIER: the selling surface. Sales are immutable
		// once created, so there is no update route.
		selling := authed.Group("")
		selling.Use(middleware.RequireRole(models.RoleAdministrator, models.RoleCashier))
		{
			selling.GET("/ventas", handlers.GetSales)
			selling.POST("/ventas", handlers.CreateSale)
			selling.GET("/ventas/:id", handlers.GetSale)
			selling.DELETE("/ventas/:id", handlers.DeleteSale)

			selling.GET("/detalles-venta", handlers.GetSaleLines)
			selling.GET("/detalles-venta/:id", handlers.GetSaleLine)
		}
	}

	return r
}

// registerCRUD wires the standard collection/item routes. PUT and PATCH
// share the partial-update handler.
func registerCRUD(g *gin.RouterGroup, list, get, create, update, del gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.PATCH("/:id", update)
	g.DELETE("/:id", del)
}

func allowedOrigins() []string {
	if env := os.Getenv("ALLOW_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:5173"}
}
