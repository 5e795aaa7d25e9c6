package http

import (
	"github.com/gin-gonic/gin"

	"github.com/takeyours/takeyours-backend/internal/delivery/http/handler"
	"github.com/takeyours/takeyours-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	matchHandler      *handler.MatchHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	matchHandler *handler.MatchHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		matchHandler:      matchHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	api := router.Group("/api")
	{
		// Auth routes (public)
		api.POST("/send-otp", r.authHandler.SendOTP)
		api.POST("/verify-otp", r.authHandler.VerifyOTP)
		api.POST("/login", r.authHandler.Login)
		api.POST("/forgot-password", r.authHandler.ForgotPassword)
		api.POST("/verify-reset-otp", r.authHandler.VerifyResetOTP)
		api.POST("/reset-password", r.authHandler.ResetPassword)

		// Identity upload sits outside the /user group for client
		// compatibility.
		api.POST("/upload-identity", r.authMiddleware.RequireUser(), r.onboardingHandler.UploadIdentity)

		// Onboarding routes
		user := api.Group("/user")
		user.Use(r.authMiddleware.RequireUser())
		{
			user.GET("/progress", r.onboardingHandler.Progress)
			user.GET("/status", r.onboardingHandler.Status)
			user.GET("/profile-photo", r.onboardingHandler.ProfilePhoto)
			user.POST("/personal", r.onboardingHandler.SavePersonal)
			user.POST("/save-preferences", r.onboardingHandler.SavePreferences)
			user.POST("/reset-submission", r.onboardingHandler.ResetFull)
			user.POST("/reset-identity", r.onboardingHandler.ResetIdentity)
			user.POST("/reset-personal", r.onboardingHandler.ResetPersonal)
		}

		// Matching routes
		users := api.Group("/users")
		users.Use(r.authMiddleware.RequireUser())
		{
			users.GET("", r.matchHandler.Discovery)
			users.GET("/selected-you", r.matchHandler.Selected)
			users.GET("/accepted", r.matchHandler.Accepted)
			users.GET("/rejected", r.matchHandler.Rejected)
			users.GET("/:user_id", r.matchHandler.Profile)
			users.POST("/select", r.matchHandler.Select)
			users.POST("/accept", r.matchHandler.Accept)
			users.POST("/reject", r.matchHandler.Reject)
		}

		// Admin routes
		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", r.adminHandler.Login)

			protected := adminGroup.Group("")
			protected.Use(r.authMiddleware.RequireAdmin())
			{
				protected.GET("/users", r.adminHandler.ListUsers)
				protected.GET("/users/:id", r.adminHandler.GetUser)
				protected.POST("/users/:id/status", r.adminHandler.UpdateStatus)
			}
		}
	}

	return router
}
