package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a user and returns it with the server-assigned UserID
// and CreatedAt. A duplicate email yields [ErrEmailAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var created models.User
	if err := row.Scan(&created.UserID, &created.Email, &created.PasswordHash, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("failed to build query")
		return models.User{}, err
	}

	var found models.User
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&found.UserID, &found.Email, &found.PasswordHash, &found.CreatedAt)
	})

	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	default:
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error querying user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}
}
