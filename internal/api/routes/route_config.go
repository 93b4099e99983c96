package routes

import (
	"github.com/gofiber/fiber/v2"

	"recipe-api/domain"
	"recipe-api/internal/api/handlers"
	"recipe-api/internal/api/presenters"
	"recipe-api/internal/middleware"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	RecipeHandler      handlers.RecipeHandler
	CategoryHandler    handlers.CategoryHandler
	IngredientHandler  handlers.IngredientHandler
	InstructionHandler handlers.InstructionHandler
	Middleware         middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Recipes()
	c.Categories()
	c.Ingredients()
	c.Instructions()
	c.App.Use(func(ctx *fiber.Ctx) error {
		return presenters.ErrorResponse(ctx, fiber.StatusNotFound, domain.MessageRouteNotFound, nil)
	})
}

func (c *Config) GuestRoute() {
	c.App.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": domain.MessageWelcome})
	})
	c.App.Get("/api/ping", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	c.App.Post("/token", c.UserHandler.Login)
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware()
	user := c.App.Group("/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Post("/password", auth, c.UserHandler.ChangePassword)
		user.Delete("/deletion", auth, c.UserHandler.DeleteAccount)
		user.Get("/", auth, c.UserHandler.GetUsers)
		user.Get("/:id", auth, c.UserHandler.GetUser)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware()
	recipes := c.App.Group("/recipes")
	{
		recipes.Get("/", c.RecipeHandler.GetRecipes)
		recipes.Post("/", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("/search", c.RecipeHandler.SearchRecipes)
		recipes.Get("/author", auth, c.RecipeHandler.GetRecipesByAuthor)
		recipes.Get("/category/:id", c.RecipeHandler.GetRecipesByCategory)
		recipes.Get("/ingredient/:id", c.RecipeHandler.GetRecipesByIngredient)
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
		recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
		recipes.Get("/:id/ingredients", c.RecipeHandler.GetRecipeIngredients)
		recipes.Get("/:id/instructions", c.RecipeHandler.GetRecipeInstructions)
		recipes.Post("/:id/image", auth, c.RecipeHandler.UploadRecipeImage)
	}
}

func (c *Config) Categories() {
	categories := c.App.Group("/categories")
	{
		categories.Get("/", c.CategoryHandler.GetCategories)
		categories.Post("/", c.Middleware.AuthMiddleware(), c.CategoryHandler.CreateCategory)
		categories.Get("/top", c.CategoryHandler.GetTopCategories)
		categories.Get("/:id", c.CategoryHandler.GetCategory)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/ingredients")
	{
		ingredients.Get("/", c.IngredientHandler.GetIngredients)
		ingredients.Post("/", c.Middleware.AuthMiddleware(), c.IngredientHandler.CreateIngredient)
		ingredients.Get("/top", c.IngredientHandler.GetTopIngredients)
		ingredients.Get("/top/:limit", c.IngredientHandler.GetTopIngredients)
		ingredients.Get("/search", c.IngredientHandler.SearchIngredients)
		ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	}
}

func (c *Config) Instructions() {
	instructions := c.App.Group("/instructions")
	{
		instructions.Get("/", c.InstructionHandler.GetInstructions)
		instructions.Get("/:id", c.InstructionHandler.GetInstruction)
	}
}
