package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gracechurch/server/config"
	"github.com/gracechurch/server/internal/handlers"
	"github.com/gracechurch/server/internal/mailer"
	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/storage"
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

	supabaseCfg, err := config.LoadSupabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load storage config: %v", err)
	}
	store := storage.New(supabaseCfg.ProjectURL, supabaseCfg.ServiceKey, supabaseCfg.Bucket)

	mailCfg, err := config.LoadMailConfig()
	if err != nil {
		return fmt.Errorf("failed to load mail config: %v", err)
	}
	mail := mailer.New(mailCfg.ResendAPIKey, mailCfg.From)

	r := gin.Default()

	setupRoutes(r, db, store, mail)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, store *storage.Client, mail *mailer.Mailer) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.StorageMiddleware(store))
	r.Use(middleware.MailerMiddleware(mail))
	r.Use(middleware.AttachIdentity(os.Getenv("JWT_SECRET")))

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/signup", handlers.Signup)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", handlers.Me)
		}

		events := public.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:id", handlers.GetEvent)
		}

		sermons := public.Group("/sermons")
		{
			sermons.GET("", handlers.ListSermons)
			sermons.GET("/:id", handlers.GetSermon)
		}

		media := public.Group("/media")
		{
			media.GET("", handlers.ListMedia)
			media.GET("/:id", handlers.GetMedia)
		}

		public.POST("/contacts", handlers.CreateContact)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.RequireAuthenticated())
	{
		users := protected.Group("/users")
		{
			users.GET("/me", handlers.GetMyProfile)
			users.PUT("/me", handlers.UpdateMyProfile)
			users.DELETE("/me", handlers.DeleteMyAccount)
		}

		donations := protected.Group("/donations")
		{
			donations.POST("", handlers.CreateDonation)
			donations.GET("/history", handlers.DonationHistory)
			donations.GET("/summary", handlers.MyDonationSummary)
		}

		protected.POST("/media", handlers.UploadMedia)
		protected.DELETE("/media/:id", handlers.DeleteMedia)
	}

	admin := r.Group("/v1/admin")
	admin.Use(middleware.RequireAuthenticated(), middleware.RequireOwnerRole())
	{
		users := admin.Group("/users")
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PATCH("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}

		contacts := admin.Group("/contacts")
		{
			contacts.GET("", handlers.ListContacts)
			contacts.GET("/:id", handlers.GetContact)
			contacts.PATCH("/:id", handlers.UpdateContact)
			contacts.POST("/:id/respond", handlers.RespondContact)
			contacts.DELETE("/:id", handlers.DeleteContact)
		}

		donations := admin.Group("/donations")
		{
			donations.GET("", handlers.ListDonations)
			donations.GET("/summary", handlers.DonationSummary)
			donations.PATCH("/:id", handlers.UpdateDonation)
			donations.DELETE("/:id", handlers.DeleteDonation)
		}

		media := admin.Group("/media")
		{
			media.GET("", handlers.ListMedia)
			media.PATCH("/:id", handlers.UpdateMedia)
			media.DELETE("/:id", handlers.DeleteMedia)
		}

		events := admin.Group("/events")
		{
			events.POST("", handlers.CreateEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
		}

		sermons := admin.Group("/sermons")
		{
			sermons.POST("", handlers.CreateSermon)
			sermons.PUT("/:id", handlers.UpdateSermon)
			sermons.DELETE("/:id", handlers.DeleteSermon)
		}

		admin.GET("/activity", handlers.ListActivities)
		admin.GET("/dashboard/stats", handlers.DashboardStats)
	}
}
