package ingredient

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

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "ingredient").Logger()

type (
	IngredientService interface {
		GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id uint) (domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
		SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error)
		GetTopIngredients(ctx context.Context, limit int) ([]domain.TopIngredientResponse, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func ToIngredientResponse(i *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		IngredientID: i.ID,
		Name:         i.Name,
		ImageURL:     i.ImageURL,
	}
}

func toResponses(ingredients []*entities.Ingredient) []domain.IngredientResponse {
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, ToIngredientResponse(i))
	}
	return res
}

func (s *ingredientService) GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(ingredients), nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uint) (domain.IngredientResponse, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, domain.ValidationError("name must not be blank")
	}

	_, err := s.ingredientRepository.GetIngredientByName(ctx, name)
	if err == nil {
		return domain.IngredientResponse{}, domain.ErrIngredientNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{Name: name, ImageURL: req.ImageURL}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.IngredientResponse{}, domain.ErrIngredientNameTaken
		}
		return domain.IngredientResponse{}, err
	}

	logger.Info().Uint("ingredient_id", ingredient.ID).Msg("ingredient created")
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ValidationError("query must not be blank")
	}

	ingredients, err := s.ingredientRepository.SearchIngredients(ctx, query)
	if err != nil {
		return nil, err
	}
	return toResponses(ingredients), nil
}

func (s *ingredientService) GetTopIngredients(ctx context.Context, limit int) ([]domain.TopIngredientResponse, error) {
	rows, err := s.ingredientRepository.GetTopIngredients(ctx, domain.NormalizeTopLimit(limit))
	if err != nil {
		return nil, err
	}

	res := make([]domain.TopIngredientResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.TopIngredientResponse{
			IngredientResponse: ToIngredientResponse(&row.Ingredient),
			RecipeCount:        row.RecipeCount,
		})
	}
	return res, nil
}
