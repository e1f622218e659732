package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/example/punkfits/pkg/events"
	"github.com/example/punkfits/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Token struct {
	AccessToken string       `json:"token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

type AuthService struct {
	db     *gorm.DB
	cfg    config.AuthConfig
	events events.Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, cfg config.AuthConfig, pub events.Publisher, logger *zap.Logger) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		events: pub,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the password against the stored bcrypt hash and issues a
// signed token. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Token, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	signed, expiresAt, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Action: events.ActionLogin, EntityID: user.ID})

	return &Token{AccessToken: signed, ExpiresAt: expiresAt, User: &user}, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token has no user_id", ErrUnauthorized)
	}
	return claims, nil
}

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

func HashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", invalid("password must be at most %d bytes", maxPasswordBytes)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
