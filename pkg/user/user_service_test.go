package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/entities"
	"recipe-api/internal/testutil"
	"recipe-api/internal/utils/mailing"
	"recipe-api/pkg/events"
	"recipe-api/pkg/jwt"
	"recipe-api/pkg/password"
)

type fixture struct {
	db        *gorm.DB
	svc       *userService
	jwt       jwt.JWTService
	hasher    password.PasswordHasher
	mailer    *testutil.Mailer
	storage   *testutil.Storage
	publisher *testutil.Publisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens, err := jwt.NewJWTService(jwt.Config{Secret: "user-test-secret"})
	require.NoError(t, err)

	f := &fixture{
		db:        db,
		jwt:       tokens,
		hasher:    password.NewBcryptHasher(bcrypt.MinCost),
		mailer:    &testutil.Mailer{},
		storage:   testutil.NewStorage(),
		publisher: &testutil.Publisher{},
	}
	f.svc = NewUserService(Dependencies{
		Repository: NewUserRepository(db),
		Hasher:     f.hasher,
		JWT:        tokens,
		Mailer:     f.mailer,
		Storage:    f.storage,
		Publisher:  f.publisher,
		AppURL:     "https://recipes.example.com",
	}).(*userService)
	return f
}

func (f *fixture) register(t *testing.T, email, pass string) domain.UserResponse {
	t.Helper()
	u, err := f.svc.Register(context.Background(), domain.RegisterRequest{Email: email, Name: "Ana", Password: pass})
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	u := f.register(t, "ana@example.com", "hunter22")
	assert.NotZero(t, u.UserID)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.LastLogin)

	var stored entities.User
	require.NoError(t, f.db.First(&stored, u.UserID).Error)
	assert.NotEqual(t, "hunter22", stored.Password)
	assert.True(t, f.hasher.Verify("hunter22", stored.Password))

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, mailing.SubjectWelcome, f.mailer.Sent[0].Subject)
	assert.Equal(t, []testutil.Event{{Name: events.UserRegistered, ID: u.UserID}}, f.publisher.Events)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com", "hunter22")

	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{Email: "ana@example.com", Name: "Again", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
	assert.Equal(t, "email already registered", err.Error())

	// Emails are case-sensitive.
	_, err = f.svc.Register(context.Background(), domain.RegisterRequest{Email: "Ana@example.com", Name: "Other", Password: "x"})
	assert.NoError(t, err)
}

func TestRegisterRejectsLongPassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Register(context.Background(), domain.RegisterRequest{
		Email: "ana@example.com", Name: "Ana", Password: strings.Repeat("p", 73),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana@example.com", "hunter22")
	loginAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	f.svc.now = func() time.Time { return loginAt }

	res, err := f.svc.Login(context.Background(), domain.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	assert.Equal(t, domain.TokenTypeBearer, res.TokenType)
	assert.Equal(t, u.UserID, res.User.UserID)
	require.NotNil(t, res.User.LastLogin)
	assert.True(t, loginAt.Equal(*res.User.LastLogin))

	email, err := f.jwt.VerifyAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), res.ExpiresAt, time.Minute)

	var stored entities.User
	require.NoError(t, f.db.First(&stored, u.UserID).Error)
	require.NotNil(t, stored.LastLogin)
	assert.True(t, loginAt.Equal(stored.LastLogin.UTC()))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com", "hunter22")
	ctx := context.Background()

	_, unknown := f.svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	_, wrong := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "hunter23"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown, wrong)
	assert.ErrorIs(t, unknown, domain.ErrInvalidCredentials)

	var stored entities.User
	require.NoError(t, f.db.Where("email = ?", "ana@example.com").First(&stored).Error)
	assert.Nil(t, stored.LastLogin)
}

// countingHasher counts Verify calls and the digests they were given.
type countingHasher struct {
	password.PasswordHasher
	verified []string
}

func (h *countingHasher) Verify(plaintext string, digest string) bool {
	h.verified = append(h.verified, digest)
	return h.PasswordHasher.Verify(plaintext, digest)
}

func TestLoginUnknownEmailComparesAHash(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com", "hunter22")
	ctx := context.Background()

	counter := &countingHasher{PasswordHasher: f.hasher}
	f.svc.hasher = counter

	for i := 0; i < 2; i++ {
		_, err := f.svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	_, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "hunter23"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.Len(t, counter.verified, 3)
	decoy := counter.verified[0]
	assert.NotEmpty(t, decoy)
	assert.Equal(t, decoy, counter.verified[1])
	cost, err := bcrypt.Cost([]byte(decoy))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana@example.com", "hunter22")
	ctx := context.Background()

	before, err := f.svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, f.svc.ChangePassword(ctx, u.UserID, domain.ChangePasswordRequest{Password: "n3w-pass"}))

	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "n3w-pass"})
	assert.NoError(t, err)

	// Outstanding tokens are not revoked.
	_, err = f.jwt.VerifyAccessToken(before.AccessToken)
	assert.NoError(t, err)

	assert.Equal(t, mailing.SubjectPasswordChanged, f.mailer.Sent[len(f.mailer.Sent)-1].Subject)
	assert.ErrorIs(t, f.svc.ChangePassword(ctx, 999, domain.ChangePasswordRequest{Password: "x"}), domain.ErrUserNotFound)
}

func TestGetUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "a@example.com", "pw")
	f.register(t, "b@example.com", "pw")

	list, err := f.svc.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	got, err := f.svc.GetUser(ctx, a.UserID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)

	_, err = f.svc.GetUser(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "ana@example.com", "hunter22")
	other := testutil.SeedUser(t, f.db, "other@example.com", "digest")
	egg := testutil.SeedIngredient(t, f.db, "Egg")
	breakfast := testutil.SeedCategory(t, f.db, "Breakfast")

	r1 := testutil.SeedRecipe(t, f.db, testutil.RecipeSeed{
		Title: "Omelette", AuthorID: u.UserID,
		IngredientIDs: []uint{egg.ID}, CategoryIDs: []uint{breakfast.ID}, Steps: []string{"Whisk", "Fry"},
	})
	testutil.SeedRecipe(t, f.db, testutil.RecipeSeed{Title: "Tea", AuthorID: u.UserID, Steps: []string{"Steep"}})
	kept := testutil.SeedRecipe(t, f.db, testutil.RecipeSeed{
		Title: "Toast", AuthorID: other.ID, IngredientIDs: []uint{egg.ID}, Steps: []string{"Toast"},
	})
	require.NoError(t, f.db.Model(r1).Update("image_url", "https://bucket.test/recipes/omelette.png").Error)

	require.NoError(t, f.svc.DeleteAccount(ctx, u.UserID))

	count := func(model any, where string, args ...any) int64 {
		var n int64
		require.NoError(t, f.db.Model(model).Where(where, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&entities.User{}, "id = ?", u.UserID))
	assert.Zero(t, count(&entities.Recipe{}, "author_id = ?", u.UserID))
	assert.Equal(t, int64(1), count(&entities.Recipe{}, "id = ?", kept.ID))
	assert.Equal(t, int64(1), count(&entities.Instruction{}, "1 = 1"))
	assert.Equal(t, int64(1), count(&entities.RecipeIngredient{}, "1 = 1"))
	assert.Zero(t, count(&entities.RecipeCategory{}, "1 = 1"))
	assert.Equal(t, int64(1), count(&entities.Ingredient{}, "1 = 1"))

	assert.Equal(t, []string{"recipes/omelette.png"}, f.storage.Deleted)
	assert.Contains(t, f.publisher.Events, testutil.Event{Name: events.UserDeleted, ID: u.UserID})

	assert.ErrorIs(t, f.svc.DeleteAccount(ctx, u.UserID), domain.ErrUserNotFound)
}
