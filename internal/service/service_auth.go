package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/utils"
	"github.com/MKhiriev/go-notes/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength mirrors the default policy of hosted auth backends.
	minPasswordLength = 6
	// bcrypt ignores everything after 72 bytes
	maxPasswordBytes = 72
)

// authService is the concrete implementation of AuthService.
type authService struct {
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is lowered in tests.
	bcryptCost int

	logger *logger.Logger
}

// NewAuthService constructs an AuthService over userRepository with token
// parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     bcrypt.DefaultCost,
		logger:         logger,
	}
}

// normalizeCredentials trims and lower-cases the email and checks the
// password policy.
func normalizeCredentials(user models.User) (models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if !strings.Contains(user.Email, "@") || strings.HasPrefix(user.Email, "@") || strings.HasSuffix(user.Email, "@") {
		return models.User{}, fmt.Errorf("%w: email is invalid", ErrInvalidDataProvided)
	}
	if utf8.RuneCountInString(user.Password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password should be at least %d characters", ErrInvalidDataProvided, minPasswordLength)
	}
	if len(user.Password) > maxPasswordBytes {
		return models.User{}, fmt.Errorf("%w: password is too long", ErrInvalidDataProvided)
	}

	return user, nil
}

// RegisterUser validates the credentials, hashes the password with bcrypt and
// creates the account. A taken email yields store.ErrEmailAlreadyExists.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	normalized, err := normalizeCredentials(user)
	if err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, err
	}
	user = normalized

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser.Public(), nil
}

// Login checks the email and password. An unknown email and a wrong password
// are both reported as [ErrWrongPassword].
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if email == "" || user.Password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("email", email).Msg("login with unknown email")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(user.Password)); err != nil {
		log.Info().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser.Public(), nil
}

func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}

	return user.Public(), nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any validation failure is reported as
// [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
