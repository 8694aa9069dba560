package routes

import (
	"marketplace-backend/internal/api/handlers"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                   *fiber.App
	UserHandler           handlers.UserHandler
	CategoryHandler       handlers.CategoryHandler
	ItemHandler           handlers.ItemHandler
	RecommendationHandler handlers.RecommendationHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Category()
	c.Item()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Get("/:id", c.UserHandler.GetPublicProfile)
	}
}

func (c *Config) Category() {
	category := c.App.Group("/api/v1/categories")
	{
		category.Get("", c.CategoryHandler.GetCategories)
		category.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CategoryHandler.CreateCategory)
	}
}

func (c *Config) Item() {
	items := c.App.Group("/api/v1/items", c.Middleware.AuthMiddleware(c.JWTService))

	// Static paths must be registered ahead of the :id routes.
	items.Get("/mine", c.ItemHandler.GetMyItems)
	items.Get("/favorites", c.ItemHandler.GetFavoriteItems)
	items.Get("/recommended", c.RecommendationHandler.GetRecommendations)

	items.Post("", c.ItemHandler.CreateItem)
	items.Get("", c.ItemHandler.SearchItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)

	items.Post("/:id/favorite", c.ItemHandler.ToggleFavorite)
	items.Post("/:id/view", c.RecommendationHandler.RecordView)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
