package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oguzt/trainhub/internal/app/controllers"
	"github.com/oguzt/trainhub/internal/app/services"
	"github.com/oguzt/trainhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	nomineeController *controllers.NomineeController,
	feedbackController *controllers.FeedbackController,
	authService *services.AuthService,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/login", authController.Login)
	api.GET("/check-auth", authController.CheckAuth)
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Invitation links from emails; reached by nominees, no session
	api.GET("/nominee/:id/accept", nomineeController.AcceptInvitation)
	api.GET("/nominee/:id/reject", nomineeController.RejectInvitation)

	// Public feedback form
	api.GET("/feedback/:id/info", feedbackController.GetFeedbackInfo)
	api.POST("/feedback/:id", feedbackController.SubmitFeedback)

	// --- Authenticated management routes ---
	authenticated := api.Group("")
	authenticated.Use(middleware.RequireAuth(authService))
	{
		authenticated.POST("/logout", authController.Logout)

		events := authenticated.Group("/events")
		{
			events.GET("", eventController.ListEvents)
			events.POST("", eventController.CreateEvent)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)

			events.GET("/:id/nominees", nomineeController.ListNominees)
			events.POST("/:id/nominees", nomineeController.InviteNominees)
			events.POST("/:id/send-feedback", nomineeController.SendFeedbackRequests)
		}

		nominees := authenticated.Group("/nominees")
		{
			nominees.GET("/:id", nomineeController.GetNominee)
			nominees.PUT("/:id", nomineeController.UpdateNominee)
			nominees.DELETE("/:id", nomineeController.DeleteNominee)
		}

		authenticated.PUT("/nominee/:id/attend", nomineeController.MarkAttended)

		authenticated.GET("/event/:id/feedback", feedbackController.ListEventFeedback)
		authenticated.GET("/event/:id/feedback/download", feedbackController.ExportEventFeedback)
	}
}
