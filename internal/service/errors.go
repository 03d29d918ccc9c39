package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrRecipeNotFound is returned when a recipe id does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrRecipeTypeNotFound is returned when a recipe type id does not exist.
	ErrRecipeTypeNotFound = errors.New("recipe type not found")
	// ErrForbidden is returned when the requester does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRecipe is returned when recipe data fails the store's own checks.
	ErrInvalidRecipe = errors.New("invalid recipe")
	// ErrReferentialIntegrity is returned when a referenced row is missing.
	ErrReferentialIntegrity = errors.New("referenced record does not exist")
	// ErrRecipeTypeInUse is returned when deleting a type that recipes still reference.
	ErrRecipeTypeInUse = errors.New("recipe type is in use")
	// ErrInvalidToken is returned for any token that fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidImage is returned for uploads with an unsupported type or size.
	ErrInvalidImage = errors.New("invalid image")
)

// pgForeignKeyViolation is the SQLSTATE of a broken foreign key.
const pgForeignKeyViolation = "23503"

// isForeignKeyViolation reports whether err is a broken foreign key, either
// translated by gorm or still in its raw postgres form.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
