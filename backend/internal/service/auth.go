package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gemchat-dev/gemchat/shared/domain"
	"github.com/gemchat-dev/gemchat/shared/errors"
	"github.com/gemchat-dev/gemchat/shared/logger"
	"github.com/gemchat-dev/gemchat/shared/middleware/metrics"
)

// Client-facing messages. Storage and signing detail is only logged.
const (
	msgRequired           = "Email and password are required"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgRegistrationFailed = "User registration failed"
	msgLoginFailed        = "Login failed"
	msgNoToken            = "Unauthorized: No token provided"
	msgInvalidToken       = "Unauthorized: Invalid token"
)

const bearerPrefix = "Bearer "

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	VerifyRequest(authorizationHeader string) (*domain.Claims, error)
}

type Auth struct {
	storage   AuthStorage
	hasher    Hasher
	jwt       Jwt
	dummyHash string
}

type AuthStorage interface {
	SaveUser(ctx context.Context, email domain.Email, passHash string) (domain.User, error)
	User(ctx context.Context, email domain.Email) (domain.User, error)
}

type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*domain.Claims, error)
}

func NewAuth(storage AuthStorage, hasher Hasher, jwt Jwt) *Auth {
	// verified against on unknown email so both login failures cost one bcrypt round
	dummyHash, err := hasher.Hash("gemchat-login-timing")
	if err != nil {
		logger.Log.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &Auth{
		storage:   storage,
		hasher:    hasher,
		jwt:       jwt,
		dummyHash: dummyHash,
	}
}

// Register creates a user with a bcrypt-hashed password and returns its public part.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if err := validateCredentials(creds); err != nil {
		metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeRejected)
		return domain.User{}, err
	}

	_, err := a.storage.User(ctx, creds.Email)
	switch {
	case err == nil:
		metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeRejected)
		return domain.User{}, duplicateUser()
	case !errors.IsNotFound(err):
		logger.Log.Error("failed to look up user", "error", err)
		metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeError)
		return domain.User{}, storageFailure(msgRegistrationFailed)
	}

	passHash, err := a.hasher.Hash(creds.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeError)
		return domain.User{}, storageFailure(msgRegistrationFailed)
	}

	user, err := a.storage.SaveUser(ctx, creds.Email, passHash)
	if err != nil {
		// lost a race with a concurrent registration of the same email
		if stderrors.Is(err, errors.ErrDuplicateUser) {
			metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeRejected)
			return domain.User{}, duplicateUser()
		}
		logger.Log.Error("failed to save user", "error", err)
		metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeError)
		return domain.User{}, storageFailure(msgRegistrationFailed)
	}

	logger.Log.Info("user registered", "user_id", user.Id)
	metrics.RecordAuth(metrics.OpRegister, metrics.OutcomeSuccess)
	return domain.User{Id: user.Id, Email: user.Email}, nil
}

// Login checks the credentials and returns a signed session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := validateCredentials(creds); err != nil {
		metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeRejected)
		return "", err
	}

	user, err := a.storage.User(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			if a.dummyHash != "" {
				_, _ = a.hasher.Verify(creds.Password, a.dummyHash)
			}
			metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeRejected)
			return "", invalidCredentials()
		}
		logger.Log.Error("failed to look up user", "error", err)
		metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeError)
		return "", storageFailure(msgLoginFailed)
	}

	ok, err := a.hasher.Verify(creds.Password, user.PassHash)
	if err != nil {
		logger.Log.Error("stored password hash is unusable", "user_id", user.Id, "error", err)
		metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeError)
		return "", storageFailure(msgLoginFailed)
	}
	if !ok {
		metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeRejected)
		return "", invalidCredentials()
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeError)
		return "", &errors.ErrorWithStatusCode{Message: msgLoginFailed, StatusCode: http.StatusInternalServerError, Err: err}
	}

	metrics.RecordAuth(metrics.OpLogin, metrics.OutcomeSuccess)
	return token, nil
}

// VerifyRequest extracts the bearer token from an Authorization header value and
// returns its claims. No storage access.
func (a *Auth) VerifyRequest(authorizationHeader string) (*domain.Claims, error) {
	token, ok := bearerToken(authorizationHeader)
	if !ok {
		metrics.RecordAuth(metrics.OpVerify, metrics.OutcomeRejected)
		return nil, &errors.ErrorWithStatusCode{Message: msgNoToken, StatusCode: http.StatusUnauthorized, Err: errors.ErrMissingToken}
	}

	claims, err := a.jwt.DecodeToken(token)
	if err != nil {
		metrics.RecordAuth(metrics.OpVerify, metrics.OutcomeRejected)
		return nil, &errors.ErrorWithStatusCode{Message: msgInvalidToken, StatusCode: http.StatusForbidden, Err: err}
	}

	metrics.RecordAuth(metrics.OpVerify, metrics.OutcomeSuccess)
	return claims, nil
}

// bearerToken returns the token part of "Bearer <token>". The scheme is matched
// case-insensitively.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func validateCredentials(creds domain.Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return &errors.ErrorWithStatusCode{Message: msgRequired, StatusCode: http.StatusBadRequest, Err: errors.ErrValidation}
	}
	return nil
}

func duplicateUser() error {
	return &errors.ErrorWithStatusCode{Message: msgUserExists, StatusCode: http.StatusBadRequest, Err: errors.ErrDuplicateUser}
}

func invalidCredentials() error {
	return &errors.ErrorWithStatusCode{Message: msgInvalidCredentials, StatusCode: http.StatusBadRequest, Err: errors.ErrInvalidCredentials}
}

func storageFailure(message string) error {
	return &errors.ErrorWithStatusCode{Message: message, StatusCode: http.StatusInternalServerError, Err: errors.ErrStorage}
}
