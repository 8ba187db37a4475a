package main

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	config "github.com/ehson200611/Chocoberryy/configs"
	"github.com/ehson200611/Chocoberryy/internal/auth"
	"github.com/ehson200611/Chocoberryy/internal/db"
	"github.com/ehson200611/Chocoberryy/internal/handlers"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadServerConfig()

	db.Init()

	r := gin.Default()

	// ── middleware ──
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions(auth.SessionName, store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)

	api := r.Group("/api")
	{
		api.GET("/home", handlers.Home)
		api.GET("/products", handlers.ListProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.GET("/locations", handlers.ListLocations)
		api.POST("/contact", handlers.SubmitContact)

		api.GET("/cart", handlers.ViewCart)
		api.POST("/cart/items/:id", handlers.AddToCart)
		api.PUT("/cart/items/:id", handlers.UpdateCartItem)
		api.DELETE("/cart/items/:id", handlers.RemoveFromCart)
		api.DELETE("/cart", handlers.ClearCart)
	}

	// ── authenticated API ──
	authed := r.Group("/api")
	authed.Use(auth.RequireAuth())
	{
		authed.GET("/checkout", handlers.CheckoutForm)
		authed.POST("/checkout", handlers.Checkout)
		authed.GET("/orders", handlers.OrderHistory)
		authed.GET("/profile", handlers.GetProfile)
		authed.PUT("/profile", handlers.UpdateProfile)
	}

	// ── admin API ──
	admin := r.Group("/api/admin")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin())
	{
		admin.POST("/products", handlers.CreateProduct)
		admin.GET("/orders", handlers.ListOrders)
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
		admin.GET("/orders/export", handlers.ExportOrdersToExcel)
		admin.GET("/orders/feed", handlers.OrderFeed)
	}

	r.Run(":" + cfg.Port)
}
