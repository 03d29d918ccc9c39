// Package seed loads the sample users, recipe types and recipes used for
// local development.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the content of a seed file.
type Fixtures struct {
	Users       []UserFixture       `yaml:"users"`
	RecipeTypes []RecipeTypeFixture `yaml:"recipe_types"`
	Recipes     []RecipeFixture     `yaml:"recipes"`
}

type UserFixture struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
}

type RecipeTypeFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type RecipeFixture struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Type        string           `yaml:"type"`
	Owner       string           `yaml:"owner"`
	Servings    int              `yaml:"servings"`
	PrepTime    int              `yaml:"prep_time"`
	CookTime    int              `yaml:"cook_time"`
	OvenTemp    *int             `yaml:"oven_temp"`
	Ingredients []string         `yaml:"ingredients"`
	Steps       []string         `yaml:"steps"`
	Comments    []CommentFixture `yaml:"comments"`
}

type CommentFixture struct {
	User string `yaml:"user"`
	Text string `yaml:"text"`
}

// Summary counts what a run inserted.
type Summary struct {
	Users       int
	RecipeTypes int
	Recipes     int
}

// Options controls a seeding run.
type Options struct {
	// Reset empties every table before inserting.
	Reset bool
}

// DefaultFixtures returns the embedded sample data.
func DefaultFixtures() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse decodes and checks a seed file.
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		users[u.ID] = true
	}
	types := make(map[string]bool, len(f.RecipeTypes))
	for _, t := range f.RecipeTypes {
		types[t.Name] = true
	}

	var errs []error
	for _, r := range f.Recipes {
		if !types[r.Type] {
			errs = append(errs, fmt.Errorf("recipe %q: unknown type %q", r.Name, r.Type))
		}
		if !users[r.Owner] {
			errs = append(errs, fmt.Errorf("recipe %q: unknown owner %q", r.Name, r.Owner))
		}
		if len(r.Ingredients) == 0 || len(r.Steps) == 0 {
			errs = append(errs, fmt.Errorf("recipe %q: needs ingredients and steps", r.Name))
		}
		for _, c := range r.Comments {
			if !users[c.User] {
				errs = append(errs, fmt.Errorf("recipe %q: comment by unknown user %q", r.Name, c.User))
			}
		}
	}
	return errors.Join(errs...)
}

// Run inserts f in one transaction. Rows that already exist (users by id,
// types by name, recipes by name and owner) are left alone, so running twice
// is harmless.
func Run(ctx context.Context, db *gorm.DB, f *Fixtures, opts Options) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Reset {
			if err := reset(tx); err != nil {
				return err
			}
		}

		for _, u := range f.Users {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.User{ID: u.ID, Username: u.Username})
			if res.Error != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.ID, res.Error)
			}
			sum.Users += int(res.RowsAffected)
		}

		recipeTypes := make(map[string]models.RecipeType, len(f.RecipeTypes))
		for _, t := range f.RecipeTypes {
			var rt models.RecipeType
			err := tx.Where("name = ?", t.Name).First(&rt).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				rt = models.RecipeType{Name: t.Name, Description: t.Description}
				if err := tx.Create(&rt).Error; err != nil {
					return fmt.Errorf("failed to seed recipe type %s: %w", t.Name, err)
				}
				sum.RecipeTypes++
			case err != nil:
				return fmt.Errorf("failed to look up recipe type %s: %w", t.Name, err)
			}
			recipeTypes[t.Name] = rt
		}

		for _, r := range f.Recipes {
			created, err := seedRecipe(tx, r, recipeTypes[r.Type])
			if err != nil {
				return err
			}
			if created {
				sum.Recipes++
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	slog.InfoContext(ctx, "seed complete", "users", sum.Users, "recipe_types", sum.RecipeTypes, "recipes", sum.Recipes)
	return sum, nil
}

func seedRecipe(tx *gorm.DB, r RecipeFixture, rt models.RecipeType) (bool, error) {
	var existing int64
	if err := tx.Model(&models.Recipe{}).Where("name = ? AND user_id = ?", r.Name, r.Owner).Count(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to check recipe %s: %w", r.Name, err)
	}
	if existing > 0 {
		return false, nil
	}

	recipe := models.Recipe{
		Name:         r.Name,
		Description:  r.Description,
		RecipeTypeID: rt.ID,
		Servings:     r.Servings,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		OvenTemp:     r.OvenTemp,
		UserID:       r.Owner,
	}
	if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
		return false, fmt.Errorf("failed to seed recipe %s: %w", r.Name, err)
	}

	ingredients := make([]models.RecipeIngredient, len(r.Ingredients))
	for i, d := range r.Ingredients {
		ingredients[i] = models.RecipeIngredient{RecipeID: recipe.ID, Description: d}
	}
	steps := make([]models.RecipeStep, len(r.Steps))
	for i, d := range r.Steps {
		steps[i] = models.RecipeStep{RecipeID: recipe.ID, Description: d}
	}
	if err := tx.Create(&ingredients).Error; err != nil {
		return false, fmt.Errorf("failed to seed ingredients of %s: %w", r.Name, err)
	}
	if err := tx.Create(&steps).Error; err != nil {
		return false, fmt.Errorf("failed to seed steps of %s: %w", r.Name, err)
	}

	for _, c := range r.Comments {
		comment := models.RecipeComment{RecipeID: recipe.ID, UserID: c.User, Text: c.Text}
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return false, fmt.Errorf("failed to seed comment on %s: %w", r.Name, err)
		}
	}
	return true, nil
}

// reset empties the tables children first.
func reset(tx *gorm.DB) error {
	for _, model := range []any{
		&models.UserSavedRecipe{},
		&models.RecipeComment{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
		&models.Recipe{},
		&models.RecipeType{},
		&models.User{},
	} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}
