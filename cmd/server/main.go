package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"dokon-pos/internal/ai"
	"dokon-pos/internal/auth"
	"dokon-pos/internal/catalog"
	"dokon-pos/internal/checkout"
	"dokon-pos/internal/config"
	"dokon-pos/internal/database"
	"dokon-pos/internal/debts"
	"dokon-pos/internal/handlers"
	"dokon-pos/internal/middleware"
	"dokon-pos/internal/notify"
	"dokon-pos/internal/reports"
	"dokon-pos/internal/returns"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shopName = "Sherbek do'kon"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config error:", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Database error:", err)
	}

	if err := os.MkdirAll(cfg.App.UploadDir, 0o755); err != nil {
		log.Fatal("Upload dir error:", err)
	}

	// Services
	tm := auth.NewTokenManager(cfg.Auth.JWTSecret)
	catalogSvc := catalog.NewService(db)
	checkoutSvc := checkout.NewService(db)
	returnsSvc := returns.NewService(db)
	reportsSvc := reports.NewService(db)
	debtsSvc := debts.NewService(db)
	telegram := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	var agent *ai.Agent
	if cfg.Gemini.APIKey != "" {
		agent = ai.NewAgent(cfg.Gemini.APIKey, catalogSvc, reportsSvc)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(db, tm)
	productHandler := handlers.NewProductHandler(catalogSvc, cfg.App.UploadDir, cfg.App.BaseURL)
	categoryHandler := handlers.NewCategoryHandler(catalogSvc)
	checkoutHandler := handlers.NewCheckoutHandler(catalogSvc, checkoutSvc, telegram)
	salesHandler := handlers.NewSalesHandler(reportsSvc)
	debtHandler := handlers.NewDebtHandler(debtsSvc)
	returnHandler := handlers.NewReturnHandler(returnsSvc)
	reportHandler := handlers.NewReportHandler(reportsSvc)
	exportHandler := handlers.NewExportHandler(reportsSvc, shopName)
	systemHandler := handlers.NewSystemHandler(db)
	aiHandler := handlers.NewAIHandler(agent)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authHandler.Login)
	r.Static("/uploads", cfg.App.UploadDir)

	// Only opens if the .env explicitly allows it
	if cfg.App.AllowRegistration {
		r.POST("/register", authHandler.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.Auth(tm))
	api.Use(middleware.CheckSubscription(db))
	{
		// CASHIER & ADMIN
		api.GET("/products", productHandler.List)
		api.GET("/products/scan/:barcode", productHandler.Scan)
		api.GET("/categories", categoryHandler.List)
		api.POST("/checkout", checkoutHandler.ProcessSale)
		api.POST("/checkout/totals", checkoutHandler.ComputeTotals)
		api.GET("/sales", salesHandler.List)
		api.GET("/sales/:id", salesHandler.Get)
		api.GET("/sales/:id/receipt", exportHandler.ReceiptHTML)
		api.GET("/sales/:id/receipt.pdf", exportHandler.ReceiptPDF)
		api.GET("/debts", debtHandler.List)
		api.POST("/debts/:id/pay", debtHandler.Settle)
		api.PUT("/debts/:id", debtHandler.Update)
		api.GET("/returns", returnHandler.List)
		api.POST("/returns", returnHandler.Process)
		api.GET("/system/status", systemHandler.Status)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/ask", aiHandler.Ask)

			admin.POST("/upload", productHandler.UploadImage)
			admin.POST("/products", productHandler.Add)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)
			admin.POST("/categories", categoryHandler.Add)
			admin.PUT("/categories/:name", categoryHandler.Rename)
			admin.DELETE("/categories/:name", categoryHandler.Delete)
			admin.GET("/reports", reportHandler.Summary)
			admin.GET("/reports/top-products", reportHandler.TopProducts)
			admin.GET("/reports/categories", reportHandler.RevenueByCategory)
			admin.GET("/reports/daily", reportHandler.DailySeries)
			admin.GET("/reports/valuation", reportHandler.StockValuation)
			admin.GET("/export/sales.xlsx", exportHandler.SalesExcel)
		}
	}

	log.Println("🚀 Server starting on " + cfg.App.BaseURL)
	if err := r.Run(fmt.Sprintf(":%d", cfg.App.Port)); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
