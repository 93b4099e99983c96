package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/internal/api/handlers"
	"recipe-api/internal/api/presenters"
	"recipe-api/internal/api/routes"
	"recipe-api/internal/middleware"
	"recipe-api/internal/utils"
	"recipe-api/internal/utils/mailing"
	"recipe-api/internal/utils/storage"
	"recipe-api/pkg/auth"
	"recipe-api/pkg/category"
	"recipe-api/pkg/events"
	"recipe-api/pkg/ingredient"
	"recipe-api/pkg/instruction"
	"recipe-api/pkg/jwt"
	"recipe-api/pkg/password"
	"recipe-api/pkg/recipe"
	"recipe-api/pkg/user"
)

// NewApp wires every repository, service and handler on top of db. The
// returned closer flushes the event publisher.
func NewApp(db *gorm.DB, cfg utils.Config) (*fiber.App, io.Closer, error) {
	app := fiber.New(fiber.Config{
		AppName:      "recipe-api",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())

	// setting up logging and limiter
	logOutput, err := openLogOutput(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   cfg.DBTimeZone,
		Output:     logOutput,
	}))

	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Second,
			LimitReached: func(c *fiber.Ctx) error {
				return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageTooManyRequests, nil)
			},
		}))
	}

	// utils
	validator := utils.NewValidator()
	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	jwtService, err := jwt.NewJWTService(jwt.Config{
		Secret:              cfg.JWTSecret,
		Algorithm:           cfg.JWTAlgorithm,
		AccessTokenLifetime: cfg.AccessTokenLifetime(),
		Issuer:              cfg.JWTIssuer,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating token service: %w", err)
	}
	mailer, err := mailing.NewMailer(mailing.MailConfig{
		AppURL:       cfg.AppURL,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating mailer: %w", err)
	}
	var s3 storage.AwsS3
	if cfg.StorageEnabled() {
		s3, err = storage.NewAwsS3(context.Background(), storage.S3Config{
			Bucket:    cfg.AWSS3Bucket,
			Region:    cfg.AWSS3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.AWSEndpoint,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating object storage: %w", err)
		}
	}
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokerList(), cfg.KafkaTopic)

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	instructionRepository := instruction.NewInstructionRepository(db)

	// Service
	userService := user.NewUserService(user.Dependencies{
		Repository: userRepository,
		Hasher:     hasher,
		JWT:        jwtService,
		Mailer:     mailer,
		Storage:    s3,
		Publisher:  publisher,
		AppURL:     cfg.AppURL,
	})
	recipeService := recipe.NewRecipeService(recipeRepository, s3, publisher)
	categoryService := category.NewCategoryService(categoryRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	instructionService := instruction.NewInstructionService(instructionRepository)
	gate := auth.NewGate(jwtService, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	instructionHandler := handlers.NewInstructionHandler(instructionService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		RecipeHandler:      recipeHandler,
		CategoryHandler:    categoryHandler,
		IngredientHandler:  ingredientHandler,
		InstructionHandler: instructionHandler,
		Middleware:         middleware.NewMiddleware(gate),
	}
	routesConfig.Setup()
	return app, publisher, nil
}

// openLogOutput opens the access log, creating its directory. An empty path
// or "-" logs to stdout.
func openLogOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenters.ErrorResponse(c, fe.Code, fe.Message, nil)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageInternalError, err)
}
