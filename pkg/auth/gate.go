package auth

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"recipe-api/domain"
	"recipe-api/entities"
	"recipe-api/pkg/jwt"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "auth").Logger()

type (
	// UserLookup resolves the subject of a verified token.
	UserLookup interface {
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	}

	Gate interface {
		Authenticate(ctx context.Context, authorizationHeader string) (*entities.User, error)
	}

	gate struct {
		jwtService jwt.JWTService
		users      UserLookup
	}
)

func NewGate(jwtService jwt.JWTService, users UserLookup) Gate {
	return &gate{jwtService: jwtService, users: users}
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate verifies the token once and looks its subject up once. Every
// failure is reported as domain.ErrUnauthorized; the cause is only logged.
func (g *gate) Authenticate(ctx context.Context, authorizationHeader string) (*entities.User, error) {
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		logger.Debug().Msg("missing or malformed authorization header")
		return nil, domain.ErrUnauthorized
	}

	email, err := g.jwtService.VerifyAccessToken(token)
	if err != nil {
		logger.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrUnauthorized
	}

	user, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		logger.Debug().Err(err).Msg("token subject lookup failed")
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
