package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// Dependencies are the collaborators the routes are built from. Images and
// WriteLimiter are optional: a nil Images leaves the upload route out and a
// nil WriteLimiter disables rate limiting.
type Dependencies struct {
	Recipes      service.IRecipeService
	RecipeTypes  service.IRecipeTypeService
	Users        service.IUserService
	Identity     service.IIdentityService
	Images       service.IRecipeImageService
	WriteLimiter middleware.Limiter
	Ping         Pinger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	RegisterValidators()

	router.GET("/", Liveness)
	if deps.Ping != nil {
		router.GET("/health", Health(deps.Ping))
	}

	recipeHandler := NewRecipeHandler(deps.Recipes)
	recipeTypeHandler := NewRecipeTypeHandler(deps.RecipeTypes)
	commentHandler := NewCommentHandler(deps.Recipes)

	limit := func(c *gin.Context) { c.Next() }
	if deps.WriteLimiter != nil {
		limit = middleware.RateLimit("recipe_writes", deps.WriteLimiter)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/recipes", recipeHandler.ListRecipes)
		v1.GET("/recipes/:id", recipeHandler.GetRecipe)

		v1.GET("/recipeTypes", recipeTypeHandler.ListRecipeTypes)
		v1.POST("/recipeTypes/create", recipeTypeHandler.CreateRecipeType)
		v1.PUT("/recipeTypes/update/:id", recipeTypeHandler.UpdateRecipeType)
		v1.DELETE("/recipeTypes/delete/:id", recipeTypeHandler.DeleteRecipeType)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Identity), middleware.ProvisionUser(deps.Users))
	{
		authed.POST("/recipes/create", limit, recipeHandler.CreateRecipe)
		authed.PUT("/recipes/update/:id", limit, recipeHandler.UpdateRecipe)
		authed.DELETE("/recipes/delete/:id", recipeHandler.DeleteRecipe)
		authed.GET("/user-recipes", recipeHandler.ListUserRecipes)

		authed.GET("/user-saved-recipes", recipeHandler.ListSavedRecipeIDs)
		authed.POST("/user-saved-recipes/:id", recipeHandler.ToggleSavedRecipe)

		authed.POST("/recipe-comments/create", commentHandler.CreateComment)
		authed.DELETE("/recipe-comments/delete/:id", commentHandler.DeleteComment)

		if deps.Images != nil {
			imageHandler := NewImageHandler(deps.Images)
			authed.POST("/recipes/image/:id", limit, imageHandler.UploadRecipeImage)
		}
	}
}
