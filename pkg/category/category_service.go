package category

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/entities"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "category").Logger()

type (
	CategoryService interface {
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		GetCategory(ctx context.Context, id uint) (domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		GetTopCategories(ctx context.Context, limit int) ([]domain.TopCategoryResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

// ToCategoryResponse maps the entity to its API shape.
func ToCategoryResponse(c *entities.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		CategoryID:  c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, ToCategoryResponse(c))
	}
	return res, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uint) (domain.CategoryResponse, error) {
	category, err := s.categoryRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}
	return ToCategoryResponse(category), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CategoryResponse{}, domain.ValidationError("name must not be blank")
	}

	_, err := s.categoryRepository.GetCategoryByName(ctx, name)
	if err == nil {
		return domain.CategoryResponse{}, domain.ErrCategoryNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CategoryResponse{}, err
	}

	category := &entities.Category{
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.CategoryResponse{}, domain.ErrCategoryNameTaken
		}
		return domain.CategoryResponse{}, err
	}

	logger.Info().Uint("category_id", category.ID).Msg("category created")
	return ToCategoryResponse(category), nil
}

func (s *categoryService) GetTopCategories(ctx context.Context, limit int) ([]domain.TopCategoryResponse, error) {
	rows, err := s.categoryRepository.GetTopCategories(ctx, domain.NormalizeTopLimit(limit))
	if err != nil {
		return nil, err
	}

	res := make([]domain.TopCategoryResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.TopCategoryResponse{
			CategoryResponse: ToCategoryResponse(&row.Category),
			RecipeCount:      row.RecipeCount,
		})
	}
	return res, nil
}
