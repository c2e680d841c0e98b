package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/softdesk/api/internal/models"
	"github.com/softdesk/api/internal/repository"
	appErr "github.com/softdesk/api/pkg/errors"
	"github.com/softdesk/api/pkg/logger"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair carries the two JWTs issued at login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	Age              int
	ContactConsent   bool
	DataShareConsent bool
}

type AuthService interface {
	// Register creates an account. Open endpoint; the only validation beyond
	// field presence is the minimum-age rule.
	Register(ctx context.Context, in *RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *models.User, error)
	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		hmacSecret: secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

var _ AuthService = (*authService)(nil)

func (s *authService) Register(ctx context.Context, in *RegisterInput) (*models.User, error) {
	if in.Age < models.MinimumAge {
		return nil, appErr.Invalid("age must be 16 or older")
	}

	ph, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}

	user := &models.User{
		Username:         in.Username,
		Email:            in.Email,
		PasswordHash:     string(ph),
		Age:              in.Age,
		ContactConsent:   in.ContactConsent,
		DataShareConsent: in.DataShareConsent,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, "username or email already taken")
	}

	logger.L().Info("user registered", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenPair, *models.User, error) {
	var user models.User
	if err := s.users.GetByUsername(ctx, username, &user); err != nil {
		return nil, nil, appErr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, appErr.Unauthorized("invalid credentials")
	}

	access, err := s.sign(user.ID, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.sign(user.ID, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	logger.L().Info("user logged in", zap.String("user_id", user.ID.String()))
	return &TokenPair{Access: access, Refresh: refresh}, &user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.hmacSecret, nil
	})
	if err != nil || !token.Valid {
		return "", appErr.Unauthorized("invalid refresh token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", appErr.Unauthorized("invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", appErr.Unauthorized("invalid refresh token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return "", appErr.Unauthorized("invalid refresh token")
	}

	// The subject must still exist.
	var user models.User
	if err := s.users.GetByID(ctx, userID, &user); err != nil {
		return "", appErr.Unauthorized("invalid refresh token")
	}

	return s.sign(user.ID, tokenTypeAccess, s.accessTTL)
}

func (s *authService) sign(userID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"typ": typ,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}
