package routes

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wedding-backend/config"
	"wedding-backend/controllers"
	"wedding-backend/services"
	"wedding-backend/utils"
)

func SetupRouter(cfg *config.App) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	guestService := services.NewGuestService(config.DB)
	eventService := services.NewEventService(config.DB)
	sessionService := services.NewSessionService(config.DB, cfg)
	emailService := services.NewEmailService(config.DB, cfg)
	photoService, err := services.NewPhotoService(cfg)
	if err != nil {
		log.Printf("Failed to initialize photo storage: %v", err)
	}

	authController := &controllers.AuthController{Cfg: cfg}
	guestController := &controllers.GuestController{Guests: guestService}
	eventController := &controllers.EventController{Events: eventService, Emails: emailService}
	rsvpController := &controllers.RSVPController{
		Sessions: sessionService,
		Guests:   guestService,
		Events:   eventService,
	}
	photoController := &controllers.PhotoController{Photos: photoService}
	activityController := &controllers.ActivityController{Guests: guestService, Emails: emailService}
	templateController := &controllers.TemplateController{Emails: emailService}
	dashboardController := &controllers.DashboardController{Events: eventService}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware(cfg))
		auth.GET("/me", authController.Me)
	}

	// Public surface: guests identify by invite code, optionally logged in
	public := r.Group("/public")
	public.Use(utils.OptionalAuthMiddleware(cfg))
	{
		public.POST("/verify", rsvpController.VerifyCode)
		public.GET("/session", rsvpController.GetSession)
		public.POST("/link", rsvpController.LinkCode)
		public.POST("/rsvp", rsvpController.SubmitRSVP)
		public.POST("/events/:id/rsvp", rsvpController.EventRSVP)
		public.GET("/photos", photoController.GetPhotos)
		public.GET("/activities", activityController.GetActivities)
		public.POST("/activities/interest", activityController.MarkInterest)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware(cfg), utils.AdminRequired(cfg))
	{
		// Guest routes
		guests := api.Group("/guests")
		{
			guests.POST("", guestController.CreateGuest)
			guests.GET("", guestController.GetGuests)
			guests.GET("/:id", guestController.GetGuest)
			guests.PUT("/:id", guestController.UpdateGuest)
			guests.DELETE("/:id", guestController.DeleteGuest)
		}

		// Event routes
		events := api.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.GET("", eventController.GetEvents)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.GET("/:id/invites", eventController.GetEventInvites)
			events.POST("/:id/invites", eventController.InviteGuests)
			events.POST("/:id/send", eventController.SendEventInvites)
		}

		// Photo routes
		photos := api.Group("/photos")
		{
			photos.POST("", photoController.UploadPhoto)
			photos.DELETE("/:id", photoController.DeletePhoto)
		}

		// Activity routes
		activities := api.Group("/activities")
		{
			activities.POST("", activityController.CreateActivity)
			activities.PUT("/:id", activityController.UpdateActivity)
			activities.DELETE("/:id", activityController.DeleteActivity)
			activities.POST("/send", activityController.SendActivitiesEmail)
		}

		// Email template routes
		templates := api.Group("/templates")
		{
			templates.POST("", templateController.CreateTemplate)
			templates.GET("", templateController.GetTemplates)
			templates.PUT("/:id", templateController.UpdateTemplate)
		}
		api.POST("/send-invites", templateController.SendInvites)
		api.GET("/email-logs", templateController.GetEmailLogs)

		// Dashboard routes
		api.GET("/dashboard", dashboardController.GetDashboardOverview)
	}

	return r
}
