package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-calling-agent/internal/converter"
	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/apperr"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SessionResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	Logout(ctx context.Context, userID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authUsecase struct {
	log         *logrus.Logger
	userRepo    repository.UserRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	now         func() time.Time
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		log:         log,
		userRepo:    userRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
		now:         time.Now,
	}
}

// AccessTokenKey is the Redis key marking an access token as live.
func AccessTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("access_token:%s:%s", userID, tokenID)
}

func RefreshTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("refresh_token:%s:%s", userID, tokenID)
}

// Signup creates the account and signs it in straight away.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SessionResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:             req.Email,
		Password:          string(hashedPassword),
		FullName:          req.FullName,
		Phone:             req.Phone,
		PreferredLanguage: req.PreferredLanguage,
		Role:              entity.RoleUser,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	tokens, err := u.issueTokens(ctx, user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return newSession(tokens, user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	loginAt := u.now().UTC()
	if err := u.userRepo.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		u.log.Warnf("Failed to record last login for %s: %+v", user.ID, err)
	} else {
		user.LastLogin = &loginAt
	}

	return newSession(tokens, user), nil
}

func newSession(tokens *dto.TokenResponse, user *entity.User) *dto.SessionResponse {
	return &dto.SessionResponse{
		TokenResponse:     *tokens,
		FullName:          user.FullName,
		Role:              user.Role,
		PreferredLanguage: user.PreferredLanguage,
		User:              converter.UserToResponse(user),
	}
}

func (u *authUsecase) Logout(ctx context.Context, userID, accessTokenID, refreshTokenID string) error {
	keys := []string{AccessTokenKey(userID, accessTokenID)}
	if refreshTokenID != "" {
		keys = append(keys, RefreshTokenKey(userID, refreshTokenID))
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Check if refresh token exists in Redis
	refreshKey := RefreshTokenKey(claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, entity.UserID(userID))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID, email, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, AccessTokenKey(userID, accessTokenID), "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, RefreshTokenKey(userID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
