package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"brocante/internal/handlers"
	"brocante/internal/middleware"
	"brocante/internal/models"
	"brocante/internal/repositories"
	"brocante/internal/services"
	"brocante/pkg/imagehost"
	"brocante/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// A local .env is optional; deployments rely on the process environment.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=brocante port=5432 sslmode=disable")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	// TranslateError maps driver duplicate-key failures to gorm.ErrDuplicatedKey,
	// which the repositories convert to conflict errors.
	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Offer{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// The server runs without a broker; offer events are then skipped.
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, offer events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Image host ---
	uploader := imagehost.NewClient(imagehost.Config{
		CloudName: viper.GetString("CLOUDINARY_NAME"),
		APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
		APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
	})

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	offerRepo := repositories.NewGORMOfferRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo)
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	offerService := services.NewOfferService(offerRepo, uploader, events)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	offerHandler := handlers.NewOfferHandler(offerService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON("Hello brocante app")
	})

	authHandler.RegisterRoutes(app)
	offerHandler.RegisterRoutes(app, middleware.AuthRequired(authService))

	// Catch-all: any unmatched method/path. Clients match on this exact body.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusBadRequest).JSON("Route not found")
	})

	// --- Offer event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for offer events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received offer event (Tag: %d, Type: %s): %s", msg.DeliveryTag, msg.Type, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOfferEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
