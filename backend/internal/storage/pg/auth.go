package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gemchat-dev/gemchat/shared/domain"
	internal_errors "github.com/gemchat-dev/gemchat/shared/errors"
	sharedpg "github.com/gemchat-dev/gemchat/shared/storage/pg"
)

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user row. A concurrent or repeated registration of the
// same email loses on the unique constraint and gets ErrDuplicateUser.
func (s *Storage) SaveUser(ctx context.Context, email domain.Email, passHash string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		user, err = s.saveUser(ctx, tx, email, passHash)
		return err
	})
	return user, err
}

// User fetches a user by exact email. A miss wraps ErrNotFound.
func (s *Storage) User(ctx context.Context, email domain.Email) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.user(ctx, s.db, email)
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q sharedpg.Querier, email domain.Email, passHash string) (domain.User, error) {
	user := domain.User{PassHash: passHash}
	err := q.QueryRowContext(ctx,
		"INSERT INTO users(email, password) VALUES($1, $2) RETURNING id, email, created_at",
		email, passHash,
	).Scan(&user.Id, &user.Email, &user.CreatedAt)
	if err != nil {
		if sharedpg.IsUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("%w: %s", internal_errors.ErrDuplicateUser, email)
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) user(ctx context.Context, q sharedpg.Querier, email domain.Email) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx,
		"SELECT id, email, password, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user %s: %w", email, internal_errors.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
