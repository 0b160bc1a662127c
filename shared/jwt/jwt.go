package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/gemchat-dev/gemchat/shared/domain"
	internal_errors "github.com/gemchat-dev/gemchat/shared/errors"
	"github.com/gemchat-dev/gemchat/shared/logger"
	"github.com/golang-jwt/jwt/v5"
)

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

// NewToken signs {id, email} with an absolute expiry of now+ttl.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	issuedAt := j.now()
	claims := domain.Claims{
		Id:    user.Id,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign token", "user_id", user.Id, "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}

	return tokenString, nil
}

// DecodeToken verifies signature and expiry and returns the embedded claims.
// Errors wrap ErrExpired or ErrInvalidSignature; anything that is not a well-formed,
// correctly signed HS256 token counts as an invalid signature.
func (j *Jwt) DecodeToken(jwtStr string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	_, err := jwt.ParseWithClaims(jwtStr, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", internal_errors.ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", internal_errors.ErrInvalidSignature, err)
	}

	// exp is exclusive. The library enforces this too; checked against our clock so
	// the boundary does not depend on parser defaults.
	if !j.now().Before(claims.ExpiresAt.Time) {
		return nil, internal_errors.ErrExpired
	}

	return claims, nil
}
