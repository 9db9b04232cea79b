package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows(userColumns).
		AddRow(1, "john@example.com", "hash", now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john@example.com", "hash").
		WillReturnRows(rows)

	created, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john@example.com", created.Email)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unexpected DB error"))
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	// intentionally wrong shape → scan error
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ─────────────────────────────────────────────────────────────────────────────

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, email, password_hash, created_at FROM users WHERE email = \\$1").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(7, "john@example.com", "hash", time.Now()))

	found, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), found.UserID)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByEmail_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, email, password_hash, created_at FROM users WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(7, "john@example.com", "hash", time.Now()))

	found, err := repo.FindUserByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", found.Email)
}
