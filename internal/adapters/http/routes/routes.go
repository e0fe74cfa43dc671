package routes

import (
	"time"

	"ufa-alliance/internal/adapters/http/handlers"
	"ufa-alliance/internal/adapters/http/middleware"
	"ufa-alliance/internal/adapters/persistence/repositories"
	"ufa-alliance/internal/config"
	"ufa-alliance/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application.
// remoteDB is nil when no remote database is configured; everything
// except membership records then lives purely in the local store.
func Setup(app *fiber.App, remoteDB, localDB *gorm.DB, health *config.RemoteHealth, cfg *config.Config) {
	// The primary handle backs users, tokens and content
	primary := localDB
	if remoteDB != nil {
		primary = remoteDB
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(primary)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(primary)
	eventRepo := repositories.NewEventRepository(primary)
	newsRepo := repositories.NewNewsRepository(primary)
	leaderRepo := repositories.NewLeaderRepository(primary)
	newsletterRepo := repositories.NewNewsletterRepository(primary)
	opportunityRepo := repositories.NewOpportunityRepository(primary)

	// Membership stores: remote plus the always-present local fallback
	var remoteStore repositories.MembershipStore
	if remoteDB != nil {
		remoteStore = repositories.NewRemoteMembershipStore(remoteDB)
	}
	localStore := repositories.NewLocalMembershipStore(localDB)

	// Initialize services
	emailService := services.NewEmailService()
	authService := services.NewAuthService(userRepo, refreshTokenRepo, emailService, cfg)
	membershipService := services.NewMembershipService(remoteStore, localStore, health.Available, emailService)
	contentService := services.NewContentService(eventRepo, newsRepo, leaderRepo, newsletterRepo, emailService)
	opportunityService := services.NewOpportunityService(opportunityRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(health)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	contentHandler := handlers.NewContentHandler(contentService)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	emailHandler := handlers.NewEmailHandler(emailService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authService)

	// Public routes
	setupPublicRoutes(apiV1, membershipHandler, contentHandler, opportunityHandler)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(authService))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, membershipHandler, contentHandler, opportunityHandler, emailHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authService *services.AuthService) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(authService), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(authService), handler.LogoutAll)
}

// setupPublicRoutes configures the unauthenticated site routes
func setupPublicRoutes(
	router fiber.Router,
	membershipHandler *handlers.MembershipHandler,
	contentHandler *handlers.ContentHandler,
	opportunityHandler *handlers.OpportunityHandler,
) {
	// Membership application
	router.Post("/memberships/apply", middleware.SubmitRateLimiter(), membershipHandler.Apply)

	// Events
	eventRoutes := router.Group("/events")
	eventRoutes.Get("/", middleware.CacheControl(5*time.Minute), contentHandler.ListEvents)
	eventRoutes.Get("/:id", middleware.CacheControl(5*time.Minute), contentHandler.GetEvent)
	eventRoutes.Post("/:id/register", middleware.SubmitRateLimiter(), contentHandler.RegisterForEvent)

	// News
	newsRoutes := router.Group("/news")
	newsRoutes.Get("/", middleware.CacheControl(5*time.Minute), contentHandler.ListNews)
	newsRoutes.Get("/:id", middleware.CacheControl(5*time.Minute), contentHandler.GetArticle)

	// Leaders
	router.Get("/leaders", middleware.CacheControl(1*time.Hour), contentHandler.ListLeaders)

	// Newsletter
	router.Post("/newsletter/subscribe", middleware.SubmitRateLimiter(), contentHandler.SubscribeNewsletter)

	// Opportunities directory
	oppRoutes := router.Group("/opportunities")
	oppRoutes.Get("/", opportunityHandler.Search)
	oppRoutes.Get("/:id", opportunityHandler.Get)
}

// setupAdminRoutes configures the admin routes (auth + admin role required)
func setupAdminRoutes(
	router fiber.Router,
	membershipHandler *handlers.MembershipHandler,
	contentHandler *handlers.ContentHandler,
	opportunityHandler *handlers.OpportunityHandler,
	emailHandler *handlers.EmailHandler,
) {
	// Membership review
	membershipRoutes := router.Group("/memberships")
	membershipRoutes.Get("/", membershipHandler.List)
	membershipRoutes.Get("/stream", middleware.NoCacheHeaders(), membershipHandler.Stream)
	membershipRoutes.Get("/:id", membershipHandler.Get)
	membershipRoutes.Put("/:id", membershipHandler.Update)
	membershipRoutes.Put("/:id/approve", membershipHandler.Approve)
	membershipRoutes.Put("/:id/reject", membershipHandler.Reject)
	membershipRoutes.Delete("/:id", membershipHandler.Delete)

	// Event management
	eventRoutes := router.Group("/events")
	eventRoutes.Get("/", contentHandler.ListAllEvents)
	eventRoutes.Post("/", contentHandler.CreateEvent)
	eventRoutes.Put("/:id", contentHandler.UpdateEvent)
	eventRoutes.Delete("/:id", contentHandler.DeleteEvent)
	eventRoutes.Get("/:id/registrations", contentHandler.ListEventRegistrations)

	// News management
	newsRoutes := router.Group("/news")
	newsRoutes.Post("/", contentHandler.CreateArticle)
	newsRoutes.Put("/:id", contentHandler.UpdateArticle)
	newsRoutes.Delete("/:id", contentHandler.DeleteArticle)

	// Leader management
	leaderRoutes := router.Group("/leaders")
	leaderRoutes.Post("/", contentHandler.CreateLeader)
	leaderRoutes.Put("/:id", contentHandler.UpdateLeader)
	leaderRoutes.Delete("/:id", contentHandler.DeleteLeader)

	// Opportunity management
	oppRoutes := router.Group("/opportunities")
	oppRoutes.Post("/", opportunityHandler.Create)
	oppRoutes.Put("/:id", opportunityHandler.Update)
	oppRoutes.Delete("/:id", opportunityHandler.Delete)

	// Email tool
	router.Post("/email/send", emailHandler.Send)
}
