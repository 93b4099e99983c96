package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipe-api/domain"
	"recipe-api/internal/testutil"
	"recipe-api/internal/utils"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app, closer, err := NewApp(testutil.NewTestDB(t), utils.Config{
		JWTSecret:                "app-test-secret",
		JWTAlgorithm:             utils.DefaultJWTAlgorithm,
		JWTIssuer:                utils.DefaultJWTIssuer,
		AccessTokenExpireMinutes: utils.DefaultAccessTokenExpireMinute,
		BcryptCost:               bcrypt.MinCost,
		LogFile:                  "-",
		DBTimeZone:               "UTC",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env, resp.Header
}

func login(t *testing.T, app *fiber.App, email, pass string) domain.LoginResponse {
	t.Helper()
	status, env, _ := call(t, app, http.MethodPost, "/token", "", domain.LoginRequest{Email: email, Password: pass})
	require.Equal(t, http.StatusOK, status)
	var res domain.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return res
}

func TestApp_RegisterLoginMe(t *testing.T) {
	app := newTestApp(t)

	status, env, _ := call(t, app, http.MethodPost, "/users/register", "", domain.RegisterRequest{
		Email: "a@x.com", Name: "Ana", Password: "pw1",
	})
	require.Equal(t, http.StatusCreated, status)
	var registered domain.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &registered))

	res := login(t, app, "a@x.com", "pw1")
	assert.Equal(t, domain.TokenTypeBearer, res.TokenType)
	assert.Equal(t, registered.UserID, res.User.UserID)
	require.NotNil(t, res.User.LastLogin)

	status, env, _ = call(t, app, http.MethodGet, "/users/me", res.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	var me domain.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, registered.UserID, me.UserID)
	assert.Equal(t, "a@x.com", me.Email)
	assert.Equal(t, "Ana", me.Name)
}

func TestApp_ProtectedRoutesRejectMissingOrBadTokens(t *testing.T) {
	app := newTestApp(t)

	for name, token := range map[string]string{
		"no header": "",
		"garbage":   "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			status, env, header := call(t, app, http.MethodGet, "/users/me", token, nil)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.False(t, env.Status)
			assert.Equal(t, "Bearer", header.Get(fiber.HeaderWWWAuthenticate))
		})
	}
}

func TestApp_LoginFailuresAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	status, _, _ := call(t, app, http.MethodPost, "/users/register", "", domain.RegisterRequest{
		Email: "a@x.com", Name: "Ana", Password: "pw1",
	})
	require.Equal(t, http.StatusCreated, status)

	wrongPass, envPass, _ := call(t, app, http.MethodPost, "/token", "", domain.LoginRequest{Email: "a@x.com", Password: "nope"})
	unknown, envUnknown, _ := call(t, app, http.MethodPost, "/token", "", domain.LoginRequest{Email: "b@x.com", Password: "pw1"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass)
	assert.Equal(t, http.StatusUnauthorized, unknown)
	assert.Equal(t, envPass.Message, envUnknown.Message)
	assert.JSONEq(t, string(envPass.Error), string(envUnknown.Error))
}

func TestApp_DuplicateRegistrationIsRejected(t *testing.T) {
	app := newTestApp(t)
	req := domain.RegisterRequest{Email: "a@x.com", Name: "Ana", Password: "pw1"}

	status, _, _ := call(t, app, http.MethodPost, "/users/register", "", req)
	require.Equal(t, http.StatusCreated, status)

	status, env, _ := call(t, app, http.MethodPost, "/users/register", "", req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, domain.MessageFailedRegister, env.Message)
}

func TestApp_CreateRecipeAndTopLists(t *testing.T) {
	app := newTestApp(t)
	status, _, _ := call(t, app, http.MethodPost, "/users/register", "", domain.RegisterRequest{
		Email: "chef@x.com", Name: "Chef", Password: "pw1",
	})
	require.Equal(t, http.StatusCreated, status)
	token := login(t, app, "chef@x.com", "pw1").AccessToken

	status, env, _ := call(t, app, http.MethodPost, "/categories/", token, domain.CreateCategoryRequest{Name: "Dessert"})
	require.Equal(t, http.StatusCreated, status)
	var dessert domain.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &dessert))

	status, env, _ = call(t, app, http.MethodPost, "/ingredients/", token, domain.CreateIngredientRequest{Name: "Sugar"})
	require.Equal(t, http.StatusCreated, status)
	var sugar domain.IngredientResponse
	require.NoError(t, json.Unmarshal(env.Data, &sugar))

	status, env, _ = call(t, app, http.MethodPost, "/recipes/", token, domain.CreateRecipeRequest{
		Title:       "Pudding",
		Servings:    4,
		Difficulty:  "FACIL",
		CategoryIDs: []uint{dessert.CategoryID},
		Ingredients: []domain.RecipeIngredientRequest{
			{IngredientID: sugar.IngredientID, Amount: 1.5, Unit: "cup"},
		},
		Instructions: []string{"Mix", "Bake"},
	})
	require.Equal(t, http.StatusCreated, status, string(env.Error))
	var created domain.RecipeDetail
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Instructions, 2)
	assert.Equal(t, 1, created.Instructions[0].StepNumber)
	assert.Equal(t, "Bake", created.Instructions[1].InstructionText)

	status, env, _ = call(t, app, http.MethodGet, "/recipes/search?query=SUG", "", nil)
	require.Equal(t, http.StatusOK, status)
	var found []domain.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Pudding", found[0].Title)

	status, env, _ = call(t, app, http.MethodGet, "/categories/top?limit=1", "", nil)
	require.Equal(t, http.StatusOK, status)
	var top []domain.TopCategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "Dessert", top[0].Name)
	assert.EqualValues(t, 1, top[0].RecipeCount)

	status, env, _ = call(t, app, http.MethodGet, "/ingredients/top/5", "", nil)
	require.Equal(t, http.StatusOK, status)
	var topIngredients []domain.TopIngredientResponse
	require.NoError(t, json.Unmarshal(env.Data, &topIngredients))
	require.Len(t, topIngredients, 1)
	assert.Equal(t, "Sugar", topIngredients[0].Name)
}

func TestApp_CreateRecipeRequiresToken(t *testing.T) {
	app := newTestApp(t)

	status, _, _ := call(t, app, http.MethodPost, "/recipes/", "", domain.CreateRecipeRequest{Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestApp_LookupAsymmetry(t *testing.T) {
	app := newTestApp(t)

	status, _, _ := call(t, app, http.MethodGet, "/recipes/42", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env, _ := call(t, app, http.MethodGet, "/recipes/category/42", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestApp_BlankSearchIsRejected(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/recipes/search?query=%20%20", "/ingredients/search?query=%20", "/recipes/search"} {
		status, env, _ := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, status, path)
		assert.False(t, env.Status, path)
	}
}

func TestApp_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	status, env, _ := call(t, app, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, domain.MessageRouteNotFound, env.Message)
}
