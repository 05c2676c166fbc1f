package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/medibook-api/internal/config"
	"github.com/medibook/medibook-api/internal/handlers"
	"github.com/medibook/medibook-api/internal/middleware"
	"github.com/medibook/medibook-api/internal/services"
	"github.com/medibook/medibook-api/internal/store"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on environment variables")
	}
	cfg := config.Load()

	// --- Database connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	// --- Stores, services, handlers ---
	stores := store.NewStores(db)
	notifier := services.NewNotifier(cfg.TextbeltAPIKey, log)

	h := handlers.NewHandler(
		services.NewAuth(stores.Doctors, stores.Patients, cfg),
		services.NewAvailability(stores.Doctors),
		services.NewAppointments(stores.Doctors, stores.Patients, stores.Appointments, notifier, log),
		services.NewDirectory(stores.Doctors, stores.Patients, stores.Appointments),
		services.NewPrescriptions(stores.Appointments, stores.Prescriptions),
		log,
	)

	// --- Gin router ---
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware())
	{
		apiRoutes.GET("/auth/me", h.Me)

		// Doctor self-service
		doctorOnly := middleware.RequireRoles(services.RoleDoctor)
		apiRoutes.PUT("/doctors/me", doctorOnly, h.UpdateMyProfile)
		apiRoutes.POST("/doctors/me/availability", doctorOnly, h.AddAvailability)

		apiRoutes.GET("/doctors/:id/availability", h.ListAvailability)
		apiRoutes.POST("/doctors/:id/rating", middleware.RequireRoles(services.RolePatient), h.RateDoctor)

		// Appointments
		apiRoutes.POST("/appointments", middleware.RequireRoles(services.RolePatient), h.BookAppointment)
		apiRoutes.GET("/appointments", h.ListAppointments)
		apiRoutes.PATCH("/appointments/:id/cancel", h.CancelAppointment)
		apiRoutes.PATCH("/appointments/:id/complete", doctorOnly, h.CompleteAppointment)

		// Prescriptions
		apiRoutes.POST("/prescriptions", doctorOnly, h.CreatePrescription)
		apiRoutes.GET("/prescriptions", h.ListPrescriptions)
	}

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRoles(services.RoleAdmin))
	{
		adminRoutes.POST("/doctors", h.AddDoctor)
		adminRoutes.GET("/doctors", h.ListDoctors)
		adminRoutes.DELETE("/doctors/:id", h.RemoveDoctor)
		adminRoutes.GET("/patients", h.ListPatients)
	}

	log.Info().Str("port", cfg.APIPort).Msg("starting server")
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
