package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campustix/campustix/config"
	"github.com/campustix/campustix/internal/handlers"
	"github.com/campustix/campustix/internal/middleware"
	"github.com/campustix/campustix/internal/models"
	"github.com/campustix/campustix/internal/repository"
	"github.com/campustix/campustix/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	users := repository.NewUserStore(db)
	events := repository.NewEventStore(db)
	orgs := repository.NewOrganizationStore(db)
	tickets := repository.NewTicketStore(db)

	tokenService := services.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := services.NewAuthService(users, tokenService)
	eventService := services.NewEventService(events, orgs, users)
	ticketService := services.NewTicketService(tickets, eventService, cfg.AccessSecret)

	authHandler := handlers.NewAuthHandler(authService, users)
	eventHandler := handlers.NewEventHandler(eventService)
	ticketHandler := handlers.NewTicketHandler(ticketService, eventService)

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", eventHandler.ListEvents)
			eventPublic.GET("/:id", eventHandler.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokenService))
	{
		protected.GET("/profile", authHandler.GetProfile)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.CreateEvent)
			eventProtected.PUT("/:id", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.UpdateEvent)
			eventProtected.DELETE("/:id", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), eventHandler.DeleteEvent)

			eventProtected.POST("/:id/claim", ticketHandler.ClaimTicket)
			eventProtected.POST("/validate-ticket", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), ticketHandler.ValidateTicket)
			eventProtected.GET("/:id/analytics", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), ticketHandler.GetAnalytics)
			eventProtected.GET("/:id/attendance/export", middleware.RequireRoles(models.RoleOrganizer, models.RoleAdmin), ticketHandler.ExportAttendance)
		}

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.GET("/:id/qr", ticketHandler.GenerateTicketQR)
			ticketProtected.POST("/:id/pay", ticketHandler.PayTicket)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.PATCH("/events/:id/status", eventHandler.UpdateEventStatus)
			admin.PATCH("/users/:id/status", authHandler.ReviewUserStatus)
			admin.POST("/organizations", eventHandler.CreateOrganization)
		}
	}
}
