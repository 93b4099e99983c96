package recipe

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/entities"
	"recipe-api/internal/utils/storage"
	"recipe-api/pkg/category"
	"recipe-api/pkg/events"
	"recipe-api/pkg/ingredient"
	"recipe-api/pkg/instruction"
)

const imageFolder = "recipes"

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "recipe").Logger()

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID uint) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context) ([]domain.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error)
		GetRecipesByCategory(ctx context.Context, categoryID uint) ([]domain.Recipe, error)
		GetRecipesByIngredient(ctx context.Context, ingredientID uint) ([]domain.Recipe, error)
		GetRecipesByAuthor(ctx context.Context, authorID uint) ([]domain.Recipe, error)
		SearchRecipes(ctx context.Context, query string) ([]domain.Recipe, error)
		GetRecipeIngredients(ctx context.Context, recipeID uint) ([]domain.RecipeIngredientResponse, error)
		GetRecipeInstructions(ctx context.Context, recipeID uint) ([]domain.InstructionResponse, error)
		UploadRecipeImage(ctx context.Context, recipeID uint, callerID uint, image *multipart.FileHeader) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID uint, callerID uint) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
		publisher        events.Publisher
	}
)

// NewRecipeService wires the service. s3 may be nil, in which case image
// uploads fail with domain.ErrImageStorageUnavailable.
func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3, publisher events.Publisher) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
		publisher:        publisher,
	}
}

func toRecipeIngredientResponse(ri *entities.RecipeIngredient) domain.RecipeIngredientResponse {
	res := domain.RecipeIngredientResponse{
		RecipeID:     ri.RecipeID,
		IngredientID: ri.IngredientID,
		Amount:       ri.Amount,
		Unit:         ri.Unit,
	}
	if ri.Ingredient != nil {
		res.Ingredient = ingredient.ToIngredientResponse(ri.Ingredient)
	}
	return res
}

func toRecipe(r *entities.Recipe) domain.Recipe {
	categories := make([]domain.CategoryResponse, 0, len(r.Categories))
	for _, c := range r.Categories {
		categories = append(categories, category.ToCategoryResponse(c))
	}
	ingredients := make([]domain.RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ingredients = append(ingredients, toRecipeIngredientResponse(ri))
	}

	return domain.Recipe{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		PreparationTime: r.PreparationTime,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		ImageURL:        r.ImageURL,
		AuthorID:        r.AuthorID,
		CreatedAt:       r.CreatedAt,
		Categories:      categories,
		Ingredients:     ingredients,
	}
}

func toRecipes(recipes []*entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, toRecipe(r))
	}
	return res
}

func toRecipeDetail(r *entities.Recipe) domain.RecipeDetail {
	return domain.RecipeDetail{
		Recipe:       toRecipe(r),
		Instructions: instruction.ToInstructionResponses(r.Instructions),
	}
}

func roundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, authorID uint) (domain.RecipeDetail, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.RecipeDetail{}, domain.ValidationError("title must not be blank")
	}
	if !entities.IsValidDifficulty(req.Difficulty) {
		return domain.RecipeDetail{}, domain.ValidationError("difficulty must be one of FACIL, MEDIO, DIFICIL")
	}
	if req.Servings < 1 {
		return domain.RecipeDetail{}, domain.ValidationError("servings must be at least 1")
	}
	if req.PreparationTime < 0 {
		return domain.RecipeDetail{}, domain.ValidationError("preparation_time must not be negative")
	}

	seenCategories := make(map[uint]bool, len(req.CategoryIDs))
	for _, id := range req.CategoryIDs {
		if seenCategories[id] {
			return domain.RecipeDetail{}, domain.ValidationError("category %d is listed twice", id)
		}
		seenCategories[id] = true
	}

	seenIngredients := make(map[uint]bool, len(req.Ingredients))
	links := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		if seenIngredients[in.IngredientID] {
			return domain.RecipeDetail{}, domain.ValidationError("ingredient %d is listed twice", in.IngredientID)
		}
		seenIngredients[in.IngredientID] = true

		amount := roundAmount(in.Amount)
		if amount <= 0 {
			return domain.RecipeDetail{}, domain.ValidationError("amount of ingredient %d must be positive", in.IngredientID)
		}
		links = append(links, &entities.RecipeIngredient{
			IngredientID: in.IngredientID,
			Amount:       amount,
			Unit:         strings.TrimSpace(in.Unit),
		})
	}

	steps := make([]string, 0, len(req.Instructions))
	for i, text := range req.Instructions {
		text = strings.TrimSpace(text)
		if text == "" {
			return domain.RecipeDetail{}, domain.ValidationError("instruction %d must not be blank", i+1)
		}
		steps = append(steps, text)
	}

	recipe := &entities.Recipe{
		Title:           title,
		Description:     req.Description,
		PreparationTime: req.PreparationTime,
		Servings:        req.Servings,
		Difficulty:      req.Difficulty,
		ImageURL:        req.ImageURL,
		AuthorID:        authorID,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, req.CategoryIDs, links, steps); err != nil {
		return domain.RecipeDetail{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	logger.Info().
		Uint("recipe_id", created.ID).
		Uint("author_id", authorID).
		Int("categories", len(req.CategoryIDs)).
		Int("ingredients", len(links)).
		Int("instructions", len(steps)).
		Msg("recipe created")
	detail := toRecipeDetail(created)
	s.publish(ctx, events.RecipeCreated, created.ID, detail)
	return detail, nil
}

func (s *recipeService) GetRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipes(ctx)
	if err != nil {
		return nil, err
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) getRecipe(ctx context.Context, id uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id uint) (domain.RecipeDetail, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipesByCategory(ctx context.Context, categoryID uint) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) GetRecipesByIngredient(ctx context.Context, ingredientID uint) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) GetRecipesByAuthor(ctx context.Context, authorID uint) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, query string) ([]domain.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ValidationError("query must not be blank")
	}

	recipes, err := s.recipeRepository.SearchRecipes(ctx, query)
	if err != nil {
		return nil, err
	}
	return toRecipes(recipes), nil
}

func (s *recipeService) requireRecipe(ctx context.Context, id uint) error {
	exists, err := s.recipeRepository.RecipeExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (s *recipeService) GetRecipeIngredients(ctx context.Context, recipeID uint) ([]domain.RecipeIngredientResponse, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	links, err := s.recipeRepository.GetRecipeIngredients(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.RecipeIngredientResponse, 0, len(links))
	for _, ri := range links {
		res = append(res, toRecipeIngredientResponse(ri))
	}
	return res, nil
}

func (s *recipeService) GetRecipeInstructions(ctx context.Context, recipeID uint) ([]domain.InstructionResponse, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	instructions, err := s.recipeRepository.GetRecipeInstructions(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return instruction.ToInstructionResponses(instructions), nil
}

func (s *recipeService) authorize(recipe *entities.Recipe, callerID uint) error {
	if recipe.AuthorID != callerID {
		logger.Debug().Uint("recipe_id", recipe.ID).Uint("caller_id", callerID).Msg("caller is not the author")
		return domain.ErrUnauthorizedRecipeAccess
	}
	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID uint, callerID uint, image *multipart.FileHeader) (domain.RecipeDetail, error) {
	if image == nil || !storage.IsAllowed(image.Filename, storage.AllowImage...) {
		return domain.RecipeDetail{}, domain.ErrInvalidImageFormat
	}
	if s.s3 == nil {
		return domain.RecipeDetail{}, domain.ErrImageStorageUnavailable
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := s.authorize(recipe, callerID); err != nil {
		return domain.RecipeDetail{}, err
	}

	objectKey, err := s.s3.UploadFile(ctx, image, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrExtensionNotAllowed) {
			return domain.RecipeDetail{}, domain.ErrInvalidImageFormat
		}
		return domain.RecipeDetail{}, err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateImageURL(ctx, recipe.ID, imageURL); err != nil {
		s.deleteImage(ctx, imageURL)
		return domain.RecipeDetail{}, err
	}
	if recipe.ImageURL != nil {
		s.deleteImage(ctx, *recipe.ImageURL)
	}
	recipe.ImageURL = &imageURL

	logger.Info().Uint("recipe_id", recipe.ID).Str("object_key", objectKey).Msg("recipe image uploaded")
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID uint, callerID uint) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.authorize(recipe, callerID); err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}
	if recipe.ImageURL != nil {
		s.deleteImage(ctx, *recipe.ImageURL)
	}

	logger.Info().Uint("recipe_id", recipe.ID).Msg("recipe deleted")
	s.publish(ctx, events.RecipeDeleted, recipe.ID, nil)
	return nil
}

// deleteImage removes an object this service uploaded. Links pointing
// elsewhere are left alone and failures are only logged.
func (s *recipeService) deleteImage(ctx context.Context, link string) {
	if s.s3 == nil || link == "" {
		return
	}
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		logger.Warn().Err(err).Str("object_key", key).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) publish(ctx context.Context, event string, id uint, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event, id, payload); err != nil {
		logger.Warn().Err(err).Str("event", event).Uint("id", id).Msg("failed to publish event")
	}
}
