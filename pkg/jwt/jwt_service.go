package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"recipe-api/domain"
)

const DefaultAccessTokenLifetime = 30 * time.Minute

type (
	JWTService interface {
		GenerateAccessToken(email string) (string, time.Time, error)
		VerifyAccessToken(token string) (string, error)
	}

	Config struct {
		Secret              string
		Algorithm           string
		AccessTokenLifetime time.Duration
		Issuer              string
	}

	jwtService struct {
		secretKey []byte
		method    *jwt.SigningMethodHMAC
		lifetime  time.Duration
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(cfg Config) (JWTService, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg Config, now func() time.Time) (*jwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}

	lifetime := cfg.AccessTokenLifetime
	if lifetime <= 0 {
		lifetime = DefaultAccessTokenLifetime
	}

	return &jwtService{
		secretKey: []byte(cfg.Secret),
		method:    method,
		lifetime:  lifetime,
		issuer:    cfg.Issuer,
		now:       now,
	}, nil
}

// GenerateAccessToken signs a token whose subject is the user's email.
func (j *jwtService) GenerateAccessToken(email string) (string, time.Time, error) {
	issuedAt := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.lifetime)),
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

func (j *jwtService) keyFunc(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

// VerifyAccessToken returns the subject of a valid token. The signature is
// checked before expiry so a forged token never reports as merely expired.
func (j *jwtService) VerifyAccessToken(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &jwt.RegisteredClaims{}
	if _, err := parser.ParseWithClaims(token, claims, j.keyFunc); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", domain.ErrTokenBadSignature
		default:
			return "", fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
		}
	}

	if claims.ExpiresAt == nil {
		return "", domain.ErrTokenMalformed
	}
	if !j.now().Before(claims.ExpiresAt.Time) {
		return "", domain.ErrTokenExpired
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenMissingSubject
	}
	return claims.Subject, nil
}
