package config

import (
	"os"
	"time"

	"marketplace-backend/internal/api/handlers"
	"marketplace-backend/internal/api/routes"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/utils"
	"marketplace-backend/internal/utils/storage"
	"marketplace-backend/pkg/category"
	"marketplace-backend/pkg/item"
	"marketplace-backend/pkg/jwt"
	"marketplace-backend/pkg/recommendation"
	"marketplace-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	categoryRepository := category.NewCategoryRepository(db)
	itemRepository := item.NewItemRepository(db)
	recommendationRepository := recommendation.NewRecommendationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	categoryService := category.NewCategoryService(categoryRepository)
	itemService := item.NewItemService(itemRepository, categoryRepository, userRepository, s3)
	recommendationService := recommendation.NewRecommendationService(recommendationRepository, itemRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	// routes
	routesConfig := routes.Config{
		App:                   app,
		UserHandler:           userHandler,
		CategoryHandler:       categoryHandler,
		ItemHandler:           itemHandler,
		RecommendationHandler: recommendationHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
