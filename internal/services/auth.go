package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/database"
	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/models"
	"github.com/WareOnGo/WareOnGo-Website-Backend/pkg/auth"
	"github.com/WareOnGo/WareOnGo-Website-Backend/pkg/sns"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *database.DB
	cfg *config.Config
}

func NewAuthService(db *database.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type GoogleLoginRequest struct {
	AccessToken string `json:"access_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	User         *UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
	LoginMethod string    `json:"login_method"`
}

// GoogleLogin verifies a Google access token and issues a session token pair,
// creating the user on first login
func (s *AuthService) GoogleLogin(ctx context.Context, accessToken string) (*AuthResponse, error) {
	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	googleUser, err := sns.VerifyGoogleToken(verifyCtx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("google token verification failed: %w", err)
	}
	if googleUser.Email == "" {
		return nil, errors.New("google account has no email")
	}

	user, err := s.findOrCreateGoogleUser(ctx, googleUser)
	if err != nil {
		return nil, err
	}

	// Best-effort touch; a failed timestamp update must not block login
	now := time.Now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Printf("last login update failed for user %d: %v", user.ID, err)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, googleUser *sns.GoogleUserInfo) (*models.User, error) {
	var account models.SocialAccount
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", "google", googleUser.ID).
		First(&account).Error
	if err == nil {
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, account.UserID).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Username:     fmt.Sprintf("%s_google", googleUser.Email),
		Email:        googleUser.Email,
		LoginMethod:  "google",
		Name:         googleUser.Name,
		ProfileImage: googleUser.ProfileImage,
		IsActive:     true,
		DateJoined:   time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		account := models.SocialAccount{
			UserID:         user.ID,
			Provider:       "google",
			ProviderUserID: googleUser.ID,
			Email:          &googleUser.Email,
			Name:           &googleUser.Name,
			ProfileImage:   &googleUser.ProfileImage,
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// RefreshToken rotates the token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := auth.ValidateRefreshToken(refreshToken, s.cfg.JWTSecretKey)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return s.buildAuthResponse(&user)
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, refreshToken, err := auth.GenerateTokenPair(
		user.ID,
		s.cfg.JWTSecretKey,
		s.cfg.JWTAccessTokenExpireMin,
		s.cfg.JWTRefreshTokenExpireDays,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User: &UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			IsActive:    user.IsActive,
			DateJoined:  user.DateJoined,
			LoginMethod: user.LoginMethod,
		},
	}, nil
}
