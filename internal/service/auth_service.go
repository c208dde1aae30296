package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fuelpos/internal/config"
	"fuelpos/internal/dto"
	"fuelpos/internal/model"
	"fuelpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = 12

type AuthService interface {
	// Authenticate checks username/password and returns the matching active user.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ChangePassword(ctx context.Context, username, newPassword string) error
	CreateUser(ctx context.Context, username, password, role string) (*model.User, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
}

type authService struct {
	repo repository.UserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, legacy := verifyPassword(user.PasswordHash, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Upgrade unsalted SHA-256 digests on first successful login.
	if legacy {
		if hash, err := HashPassword(password); err == nil {
			if _, err := s.repo.UpdatePasswordHash(ctx, user.Username, hash); err != nil {
				log.Warn().Err(err).Str("username", user.Username).Msg("password hash upgrade failed")
			} else {
				user.PasswordHash = hash
			}
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := s.generateToken(user, ttl)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        userToResponse(user),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, username, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	n, err := s.repo.UpdatePasswordHash(ctx, username, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	return nil
}

func (s *authService) CreateUser(ctx context.Context, username, password, role string) (*model.User, error) {
	user, err := newAccount(username, password, role)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// newAccount builds an active user row with a bcrypt hash.
func newAccount(username, password, role string) (*model.User, error) {
	if role != model.RoleAdmin && role != model.RoleEmployee {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &model.User{Username: username, PasswordHash: hash, Role: role, Active: true}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) generateToken(user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LegacyHash is the unsalted SHA-256 hex digest used by older databases.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// verifyPassword reports whether password matches hash and whether hash is a legacy digest.
func verifyPassword(hash, password string) (ok, legacy bool) {
	if isLegacyHash(hash) {
		want := LegacyHash(password)
		return subtle.ConstantTimeCompare([]byte(hash), []byte(want)) == 1, true
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, false
}

func isLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
		Active:   u.Active,
	}
}
