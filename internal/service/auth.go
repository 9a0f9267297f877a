package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/hash"
	"github.com/fabian692/ecommerce/internal/logging"
	"github.com/fabian692/ecommerce/internal/models"
	"github.com/fabian692/ecommerce/internal/mykafka"
	"github.com/fabian692/ecommerce/internal/repo"
	"github.com/fabian692/ecommerce/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	User         models.User
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         models.RoleCustomer,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_error", "reason", "username taken", "username", username)
			return nil, fmt.Errorf("username %q: %w", username, ErrAlreadyExists)
		}
		l.Error("register_error", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("user registered", "userID", user.ID)
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("login failed", "error", err)
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login ok", "userID", user.ID, "role", user.Role)
	return result, nil
}

// Logout revokes the stored refresh token. Idempotent: an unknown or
// already revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, tokens.Sha256Hex(refreshToken))
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh failed", "reason", "invalid token", "error", err)
		return nil, ErrInvalidCredentials
	}

	userID, err := tokens.SubjectToUserID(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	result, err := s.rotateTokens(ctx, user, claims.ID)
	if err != nil {
		l.Warn("refresh failed", "error", err)
		return nil, ErrInvalidCredentials
	}

	l.Info("tokens rotated", "userID", user.ID)
	return result, nil
}

// EnsureAdmin creates the admin account on first run. An existing admin row
// is left untouched, including its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.bootstrap")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &admin); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			return nil
		}
		return err
	}

	l.Info("admin account created", "userID", admin.ID)
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	jti := tokens.NewJTI()
	refreshToken, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret, refreshExp, jti)
	if err != nil {
		return nil, err
	}

	refreshModel := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.SaveRefreshToken(ctx, &refreshModel); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         *user,
	}, nil
}

func (s *AuthService) rotateTokens(ctx context.Context, user *models.User, oldJTI string) (*LoginResult, error) {
	accessExp := time.Now().Add(tokens.AccessTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(tokens.RefreshTTL)
	jti := tokens.NewJTI()
	refreshToken, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret, refreshExp, jti)
	if err != nil {
		return nil, err
	}

	newModel := models.RefreshToken{
		Token:     tokens.Sha256Hex(refreshToken),
		JTI:       jti,
		UserID:    user.ID,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.RotateRefreshToken(ctx, oldJTI, newModel); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		User:         *user,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
