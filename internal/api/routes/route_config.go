package routes

import (
	"HR-Platform-Backend/internal/api/handlers"
	"HR-Platform-Backend/internal/middleware"
	"HR-Platform-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	CoinHandler        handlers.CoinHandler
	AchievementHandler handlers.AchievementHandler
	BenefitHandler     handlers.BenefitHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Coins()
	c.Achievements()
	c.Benefits()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Coins() {
	coins := c.App.Group("/api/v1/coins", c.Middleware.AuthMiddleware(c.JWTService))
	{
		coins.Post("/earn", c.CoinHandler.EarnCoins)
		coins.Get("/balance", c.CoinHandler.GetBalance)
		coins.Get("/transactions", c.CoinHandler.GetTransactionHistory)
	}
}

func (c *Config) Achievements() {
	achievements := c.App.Group("/api/v1/achievements", c.Middleware.AuthMiddleware(c.JWTService))
	{
		achievements.Get("", c.AchievementHandler.GetAchievements)
		achievements.Get("/progress", c.AchievementHandler.GetProgress)
		achievements.Post("/check", c.AchievementHandler.CheckAchievements)
		achievements.Post("/:id/claim", c.AchievementHandler.ClaimAchievement)
	}
}

func (c *Config) Benefits() {
	benefits := c.App.Group("/api/v1/benefits", c.Middleware.AuthMiddleware(c.JWTService))
	{
		benefits.Get("", c.BenefitHandler.GetBenefits)
		benefits.Get("/me", c.BenefitHandler.MyBenefits)
		benefits.Post("/request", c.BenefitHandler.RequestBenefit)
		benefits.Post("/purchase", c.BenefitHandler.PurchaseBenefit)
		benefits.Post("/requests/:id/cancel", c.BenefitHandler.CancelBenefit)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group(
		"/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	admin.Post("/coins/distribute", c.CoinHandler.DistributeCoins)

	achievements := admin.Group("/achievements")
	{
		achievements.Get("", c.AchievementHandler.ListAchievements)
		achievements.Post("", c.AchievementHandler.CreateAchievement)
		achievements.Patch("/:id", c.AchievementHandler.UpdateAchievement)
		achievements.Delete("/:id", c.AchievementHandler.DeleteAchievement)
		achievements.Post("/:id/icon", c.AchievementHandler.UploadIcon)
	}

	benefits := admin.Group("/benefits")
	{
		benefits.Get("", c.BenefitHandler.ListBenefits)
		benefits.Post("", c.BenefitHandler.CreateBenefit)
		benefits.Patch("/:id", c.BenefitHandler.UpdateBenefit)
		benefits.Delete("/:id", c.BenefitHandler.DeleteBenefit)
		benefits.Post("/:id/image", c.BenefitHandler.UploadImage)
		benefits.Get("/requests", c.BenefitHandler.ListRequests)
		benefits.Post("/requests/:id/decide", c.BenefitHandler.DecideBenefit)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
