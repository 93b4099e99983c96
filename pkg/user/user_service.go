package user

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"recipe-api/domain"
	"recipe-api/entities"
	"recipe-api/internal/utils/mailing"
	"recipe-api/internal/utils/storage"
	"recipe-api/pkg/events"
	"recipe-api/pkg/jwt"
	"recipe-api/pkg/password"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "user").Logger()

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetUsers(ctx context.Context) ([]domain.UserResponse, error)
		GetUser(ctx context.Context, id uint) (domain.UserResponse, error)
		ChangePassword(ctx context.Context, userID uint, req domain.ChangePasswordRequest) error
		DeleteAccount(ctx context.Context, userID uint) error
	}

	Dependencies struct {
		Repository UserRepository
		Hasher     password.PasswordHasher
		JWT        jwt.JWTService
		Mailer     mailing.Mailer
		// Storage may be nil when no bucket is configured.
		Storage   storage.AwsS3
		Publisher events.Publisher
		AppURL    string
	}

	userService struct {
		userRepository UserRepository
		hasher         password.PasswordHasher
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		s3             storage.AwsS3
		publisher      events.Publisher
		appURL         string
		now            func() time.Time

		decoyOnce   sync.Once
		decoyDigest string
	}
)

func NewUserService(deps Dependencies) UserService {
	return &userService{
		userRepository: deps.Repository,
		hasher:         deps.Hasher,
		jwtService:     deps.JWT,
		mailer:         deps.Mailer,
		s3:             deps.Storage,
		publisher:      deps.Publisher,
		appURL:         deps.AppURL,
		now:            time.Now,
	}
}

func ToUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.UserResponse{}, domain.ValidationError("name must not be blank")
	}

	_, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Email:    req.Email,
		Name:     name,
		Password: digest,
		IsActive: true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyRegistered
		}
		return domain.UserResponse{}, err
	}

	logger.Info().Uint("user_id", user.ID).Msg("user registered")
	s.notify(ctx, user.Email, mailing.SubjectWelcome, mailing.WelcomeBody(user.Name, s.appURL))
	s.publish(ctx, events.UserRegistered, user.ID, ToUserResponse(user))
	return ToUserResponse(user), nil
}

// Login does not distinguish an unknown email from a wrong password.
func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown emails cost one hash comparison, like a wrong password.
			s.hasher.Verify(req.Password, s.decoy())
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		logger.Debug().Uint("user_id", user.ID).Msg("password mismatch")
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	if err := s.userRepository.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return domain.LoginResponse{}, err
	}
	user.LastLogin = &loginAt

	token, expiresAt, err := s.jwtService.GenerateAccessToken(user.Email)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		AccessToken: token,
		TokenType:   domain.TokenTypeBearer,
		ExpiresAt:   expiresAt,
		User: domain.LoginUser{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			LastLogin: user.LastLogin,
		},
	}, nil
}

func (s *userService) GetUsers(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u))
	}
	return res, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword re-hashes the password. Tokens issued before the change stay
// valid until they expire.
func (s *userService) ChangePassword(ctx context.Context, userID uint, req domain.ChangePasswordRequest) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return err
	}
	if err := s.userRepository.UpdatePassword(ctx, user.ID, digest); err != nil {
		return err
	}

	logger.Info().Uint("user_id", user.ID).Msg("password changed")
	s.notify(ctx, user.Email, mailing.SubjectPasswordChanged, mailing.PasswordChangedBody(user.Name))
	return nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID uint) error {
	images, err := s.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	s.removeImages(ctx, images)
	logger.Info().Uint("user_id", userID).Int("recipes_removed_images", len(images)).Msg("account deleted")
	s.publish(ctx, events.UserDeleted, userID, nil)
	return nil
}

func (s *userService) removeImages(ctx context.Context, links []string) {
	if s.s3 == nil {
		return
	}
	for _, link := range links {
		key := s.s3.GetObjectKeyFromLink(link)
		if key == "" {
			continue
		}
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			logger.Warn().Err(err).Str("object_key", key).Msg("failed to delete recipe image")
		}
	}
}

// decoy returns a digest made with the configured cost that no password
// matches in practice.
func (s *userService) decoy() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			logger.Warn().Err(err).Msg("failed to build decoy digest")
			return
		}
		s.decoyDigest = digest
	})
	return s.decoyDigest
}

func (s *userService) notify(ctx context.Context, to, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendMail(ctx, to, subject, body); err != nil {
		logger.Warn().Err(err).Str("subject", subject).Msg("failed to send mail")
	}
}

func (s *userService) publish(ctx context.Context, event string, id uint, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event, id, payload); err != nil {
		logger.Warn().Err(err).Str("event", event).Uint("id", id).Msg("failed to publish event")
	}
}
