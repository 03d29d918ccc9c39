package mocks

import "github.com/pageza/recipe-tracker/backend/internal/service"

var (
	_ service.IRecipeService   = (*MockRecipeService)(nil)
	_ service.IUserService     = (*MockUserService)(nil)
	_ service.IIdentityService = (*MockIdentityService)(nil)
)
