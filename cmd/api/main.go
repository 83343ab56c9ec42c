package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/alerts"
	"github.com/OmarModa/souq_khadamat_be/internal/config"
	"github.com/OmarModa/souq_khadamat_be/internal/db"
	"github.com/OmarModa/souq_khadamat_be/internal/handlers"
	"github.com/OmarModa/souq_khadamat_be/internal/middleware"
	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/notify"
	"github.com/OmarModa/souq_khadamat_be/internal/realtime"
	"github.com/OmarModa/souq_khadamat_be/internal/services/catalog"
	"github.com/OmarModa/souq_khadamat_be/internal/services/market"
	"github.com/OmarModa/souq_khadamat_be/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.ServiceRequest{},
		&models.Bid{},
		&models.Rating{},
		&models.Notification{},
		&models.WarrantyOption{},
		&models.ProviderService{},
		&models.ServicePurchase{},
	); err != nil {
		log.Fatal(err)
	}

	seedCategories(gdb)
	seedWarranties(gdb)
	seedAdmin(gdb)

	if err := os.MkdirAll("./uploads", 0o755); err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)

	hub := realtime.NewHub()
	go hub.Run()

	dispatcher := notify.NewDispatcher(gdb, rdb, hub)
	go dispatcher.Listen(context.Background())

	alerts.Init(cfg.RedisAddr, cfg.RedisPassword)
	defer alerts.Close()
	if err := alerts.ConfigureMailerFromEnv(); err != nil {
		log.Printf("Mailer not configured, emails will fail: %v", err)
	}

	marketSvc := market.NewService(gdb, dispatcher)
	catalogSvc := catalog.NewService(gdb, dispatcher)

	authH := &handlers.AuthHandler{DB: gdb, JWTSecret: cfg.JWTSecret, Expires: cfg.JWTExpiresMin}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	categoryH := handlers.NewCategoryHandler(gdb)
	requestH := handlers.NewRequestHandler(gdb, marketSvc, cfg.IDEncryptKey)
	bidH := handlers.NewBidHandler(gdb, marketSvc)
	ratingH := handlers.NewRatingHandler(gdb, marketSvc)
	notificationH := handlers.NewNotificationHandler(gdb, hub)
	adminH := handlers.NewAdminHandler(gdb)
	profileH := handlers.NewProfileHandler(gdb)
	serviceH := handlers.NewServiceHandler(gdb, catalogSvc)
	purchaseH := handlers.NewPurchaseHandler(gdb, catalogSvc)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept",
	}))

	app.Static("/uploads", "./uploads")

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", categoryH.List)
	api.Get("/public/requests/:token", requestH.PublicDetail)

	// everything below needs a valid session cookie
	auth := api.Group("", middleware.JWTFromCookie(cfg.JWTSecret), middleware.AttachJWTLocals())

	auth.Get("/profile/me", profileH.Me)
	auth.Patch("/profile", profileH.Update)
	auth.Put("/profile/portfolio", middleware.RequireRoles("provider"), profileH.UpdatePortfolio)
	auth.Post("/profile/verification-video", middleware.RequireRoles("provider"), profileH.UploadVerificationVideo)
	auth.Get("/providers", profileH.Providers)
	auth.Get("/providers/:id/rating", ratingH.ProviderSummary)

	auth.Post("/requests", middleware.RequireRoles("customer"), requestH.Create)
	auth.Get("/requests", requestH.List)
	auth.Get("/requests/:id", requestH.Detail)
	auth.Post("/requests/:id/complete", requestH.Complete)
	auth.Post("/requests/:id/before-image", middleware.RequireRoles("customer"), requestH.UploadBeforeImage)
	auth.Post("/requests/:id/after-image", requestH.UploadAfterImage)
	auth.Get("/requests/:id/share", requestH.ShareLink)
	auth.Get("/requests/:id/bids", bidH.ListByRequest)
	auth.Post("/requests/:id/rating", middleware.RequireRoles("customer"), ratingH.Create)

	auth.Post("/bids", middleware.RequireRoles("provider"), bidH.Place)
	auth.Get("/bids/mine", middleware.RequireRoles("provider"), bidH.MyBids)
	auth.Post("/bids/:id/accept", middleware.RequireRoles("customer"), bidH.Accept)

	auth.Get("/services", serviceH.List)
	auth.Get("/services/mine", middleware.RequireRoles("provider"), serviceH.Mine)
	auth.Post("/services", middleware.RequireRoles("provider"), serviceH.Create)
	auth.Patch("/services/:id/toggle", middleware.RequireRoles("provider"), serviceH.Toggle)
	auth.Delete("/services/:id", middleware.RequireRoles("provider"), serviceH.Delete)
	auth.Get("/warranties", serviceH.Warranties)

	auth.Post("/services/:id/purchase", middleware.RequireRoles("customer"), purchaseH.Create)
	auth.Get("/purchases", purchaseH.List)
	auth.Post("/purchases/:id/confirm", middleware.RequireRoles("provider"), purchaseH.Confirm)
	auth.Post("/purchases/:id/cancel", middleware.RequireRoles("provider"), purchaseH.Cancel)
	auth.Post("/purchases/:id/complete", middleware.RequireRoles("provider"), purchaseH.Complete)

	auth.Get("/notifications", notificationH.ListMine)
	auth.Patch("/notifications/:id/read", notificationH.MarkRead)

	admin := auth.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/commission", adminH.CommissionReport)
	admin.Get("/stats", adminH.Stats)
	admin.Get("/users", adminH.Users)
	admin.Patch("/users/:id/active", adminH.SetUserActive)

	// websocket push
	app.Use("/ws", middleware.JWTFromCookie(cfg.JWTSecret), middleware.AttachJWTLocals(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", notificationH.WebSocket())

	log.Printf("Listening on :%s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// seedCategories inserts the fixed service categories if the table is empty.
func seedCategories(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Cars", Icon: "car"},
		{Name: "Air Conditioning", Icon: "ac"},
		{Name: "Electricity", Icon: "zap"},
		{Name: "Cleaning", Icon: "spray"},
		{Name: "Legal Services", Icon: "scale"},
		{Name: "Appliance Repair", Icon: "wrench"},
		{Name: "Tutoring", Icon: "book"},
		{Name: "Gardening", Icon: "leaf"},
		{Name: "Design & Programming", Icon: "code"},
		{Name: "Furniture Moving", Icon: "truck"},
	}
	if err := gdb.Create(&categories).Error; err != nil {
		log.Printf("Category seed failed: %v", err)
	}
}

// seedWarranties inserts the warranty reference rows if the table is empty.
func seedWarranties(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.WarrantyOption{}).Count(&count)
	if count > 0 {
		return
	}

	days7, days30 := 7, 30
	warranties := []models.WarrantyOption{
		{Label: "No warranty", Type: models.WarrantyNone, IsActive: true},
		{Label: "7-day warranty", Type: models.WarrantyDays, Days: &days7, Description: "Free fix for defects within 7 days", IsActive: true},
		{Label: "30-day warranty", Type: models.WarrantyDays, Days: &days30, Description: "Free fix for defects within 30 days", IsActive: true},
		{Label: "Money back", Type: models.WarrantyMoneyBack, Description: "Full refund if not satisfied", IsActive: true},
		{Label: "Lifetime warranty", Type: models.WarrantyLifetime, Description: "Covered for as long as you own it", IsActive: true},
	}
	if err := gdb.Create(&warranties).Error; err != nil {
		log.Printf("Warranty seed failed: %v", err)
	}
}

// seedAdmin creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD when no
// admin exists yet.
func seedAdmin(gdb *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	gdb.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Admin seed failed: %v", err)
		return
	}

	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
		Region:   "Kuwait City",
	}
	if err := gdb.Create(&admin).Error; err != nil {
		log.Printf("Admin seed failed: %v", err)
	}
}
