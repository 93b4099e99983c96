package user

import (
	"context"
	"time"

	"gorm.io/gorm"

	"recipe-api/entities"
	"recipe-api/pkg/recipe"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		GetUsers(ctx context.Context) ([]*entities.User, error)
		UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
		UpdatePassword(ctx context.Context, id uint, digest string) error
		DeleteUser(ctx context.Context, id uint) ([]string, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByEmail matches the address exactly; emails are case-sensitive.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, digest string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Update("password", digest).Error
}

// DeleteUser removes the user together with every recipe they authored and
// the recipes' children, in one transaction. It returns the image URLs of the
// deleted recipes so the caller can clean up storage.
func (r *userRepository) DeleteUser(ctx context.Context, id uint) ([]string, error) {
	var images []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipes []*entities.Recipe
		if err := tx.Select("id", "image_url").Where("author_id = ?", id).Find(&recipes).Error; err != nil {
			return err
		}

		recipeIDs := make([]uint, 0, len(recipes))
		for _, rec := range recipes {
			recipeIDs = append(recipeIDs, rec.ID)
			if rec.ImageURL != nil && *rec.ImageURL != "" {
				images = append(images, *rec.ImageURL)
			}
		}
		if err := recipe.DeleteRecipes(tx, recipeIDs); err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&entities.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}
