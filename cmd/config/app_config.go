package config

import (
	"HR-Platform-Backend/internal/api/handlers"
	"HR-Platform-Backend/internal/api/routes"
	"HR-Platform-Backend/internal/middleware"
	"HR-Platform-Backend/internal/utils"
	"HR-Platform-Backend/internal/utils/storage"
	"HR-Platform-Backend/pkg/achievement"
	"HR-Platform-Backend/pkg/benefit"
	"HR-Platform-Backend/pkg/coin"
	"HR-Platform-Backend/pkg/distribution"
	"HR-Platform-Backend/pkg/jwt"
	"HR-Platform-Backend/pkg/user"
	"os"
	"time"

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
	coinRepository := coin.NewCoinRepository(db)
	achievementRepository := achievement.NewAchievementRepository(db)
	benefitRepository := benefit.NewBenefitRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	coinService := coin.NewCoinService(coinRepository)
	achievementService := achievement.NewAchievementService(achievementRepository, coinService, s3)
	benefitService := benefit.NewBenefitService(benefitRepository, coinRepository, userService, s3)
	distributionService := distribution.NewDistributionService(coinService, achievementService, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	coinHandler := handlers.NewCoinHandler(coinService, achievementService, distributionService, validator)
	achievementHandler := handlers.NewAchievementHandler(achievementService, validator)
	benefitHandler := handlers.NewBenefitHandler(benefitService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		CoinHandler:        coinHandler,
		AchievementHandler: achievementHandler,
		BenefitHandler:     benefitHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
