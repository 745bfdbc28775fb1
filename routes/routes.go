package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opencampus/events-backend/controllers"
	"github.com/opencampus/events-backend/middleware"
)

func SetupRoutes(router *gin.Engine) {
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/auth/signup", controllers.Signup)
	router.POST("/auth/login", controllers.Login)
	router.GET("/colleges", controllers.GetColleges)

	eventRoutes := router.Group("/events")
	eventRoutes.Use(middleware.AuthMiddleware())
	{
		eventRoutes.GET("/", controllers.GetEvents)
		eventRoutes.POST("/", middleware.AdminOnlyMiddleware(), controllers.CreateEvent)
		eventRoutes.GET("/:id", controllers.GetEvent)
		eventRoutes.PATCH("/:id", middleware.AdminOnlyMiddleware(), controllers.UpdateEvent)
		eventRoutes.DELETE("/:id", middleware.AdminOnlyMiddleware(), controllers.DeleteEvent)

		eventRoutes.POST("/:id/registrations", middleware.StudentOnlyMiddleware(), controllers.RegisterForEvent)
		eventRoutes.DELETE("/:id/registrations", middleware.StudentOnlyMiddleware(), controllers.UnregisterFromEvent)

		eventRoutes.POST("/:id/qr-token", middleware.AdminOnlyMiddleware(), controllers.IssueQRToken)
		eventRoutes.GET("/:id/qr-token", middleware.AdminOnlyMiddleware(), controllers.GetQRToken)
		eventRoutes.GET("/:id/qr-token/image", middleware.AdminOnlyMiddleware(), controllers.GetQRTokenImage)

		eventRoutes.POST("/:id/feedback", middleware.StudentOnlyMiddleware(), controllers.SubmitFeedback)
	}

	attendanceRoutes := router.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthMiddleware())
	{
		attendanceRoutes.POST("/checkin", middleware.StudentOnlyMiddleware(), controllers.CheckIn)
		attendanceRoutes.POST("/manual", middleware.AdminOnlyMiddleware(), controllers.ManualCheckIn)
	}

	reportRoutes := router.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		reportRoutes.GET("/events/popularity", controllers.GetEventPopularity)
		reportRoutes.GET("/events/summary", controllers.GetEventSummary)
		reportRoutes.GET("/students/participation", controllers.GetStudentParticipation)
	}

	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.GET("/me", controllers.GetProfile)
		userRoutes.PATCH("/me", controllers.UpdateProfile)
	}
}
