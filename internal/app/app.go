package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrihub_backend/database"
	"agrihub_backend/internal/auth"
	"agrihub_backend/internal/config"
	"agrihub_backend/internal/email"
	"agrihub_backend/internal/handlers"
	"agrihub_backend/internal/logger"
	"agrihub_backend/internal/middleware"
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/routes"
	"agrihub_backend/internal/services"
	"agrihub_backend/internal/validator"
	"agrihub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB := openDatabase(cfg)

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	janitor := workers.NewTokenJanitor(repositories.NewRefreshTokenRepository(gormDB), time.Hour)
	janitor.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func openDatabase(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.Database.DSN)
	}

	// TranslateError turns driver-specific constraint violations into
	// gorm.ErrDuplicatedKey and friends, which the repositories map to
	// their sentinel errors.
	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	return gormDB
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Hour)

	serviceContainer := initializeServices(cfg, gormDB, tokenManager)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, tokenManager, cfg)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, tokenManager *auth.TokenManager) *services.ServiceContainer {
	emailService := initializeEmail(cfg)

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	listingRepo := repositories.NewListingRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, tokenManager, emailService)
	userService := services.NewUserService(userRepo, reviewRepo)
	listingService := services.NewListingService(listingRepo, userRepo)
	bookingService := services.NewBookingService(bookingRepo, listingRepo, userRepo, emailService)
	chatService := services.NewChatService(chatRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, bookingRepo, services.GatewayConfig{
		MerchantLogin: cfg.Payments.MerchantLogin,
		Password1:     cfg.Payments.Password1,
		Password2:     cfg.Payments.Password2,
		BaseURL:       cfg.Payments.BaseURL,
		Currency:      cfg.Payments.Currency,
	})
	reviewService := services.NewReviewService(reviewRepo, bookingRepo)

	return &services.ServiceContainer{
		AuthService:    authService,
		UserService:    userService,
		ListingService: listingService,
		BookingService: bookingService,
		ChatService:    chatService,
		PaymentService: paymentService,
		ReviewService:  reviewService,
		EmailService:   emailService,
	}
}

// initializeEmail returns the SMTP provider when configured and a noop
// provider otherwise, so services never hold a nil dependency.
func initializeEmail(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outbound mail is disabled")
		return &NoopEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		TemplatesDir: cfg.Email.TemplatesDir,
		BaseURL:      cfg.Email.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, container.UserService),
		ListingHandler: handlers.NewListingHandler(baseHandler, container.ListingService),
		BookingHandler: handlers.NewBookingHandler(baseHandler, container.BookingService),
		ChatHandler:    handlers.NewChatHandler(baseHandler, container.ChatService),
		PaymentHandler: handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		ReviewHandler:  handlers.NewReviewHandler(baseHandler, container.ReviewService),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account when the instance
// has none and credentials are supplied through configuration.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:         adminEmail,
		PasswordHash:  hashed,
		Name:          "Administrator",
		Role:          models.UserRoleAdmin,
		Status:        models.UserStatusActive,
		EmailVerified: true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
