package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/nextmimo/nextmimo_api/dto"
	"github.com/nextmimo/nextmimo_api/model"
	"github.com/nextmimo/nextmimo_api/shared"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	context.DefaultService

	sqlSvc  *SqlService
	jwtSvc  *JWTService
	progSvc *ProgressionService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.progSvc = svc.Service(PROGRESSION_SVC).(*ProgressionService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := svc.sqlSvc.GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewConflictError(nil, "Email already registered")
	}
	if _, err := svc.sqlSvc.GetUserByEmailOrUsername(req.Username); err == nil {
		return nil, shared.NewConflictError(nil, "Username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to hash password")
	}

	user, err := svc.sqlSvc.CreateUser(&model.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to create user")
	}

	// Every account starts with a fresh game state.
	if _, err := svc.progSvc.InitGameState(user.ID); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to initialize game state")
	}

	return &dto.RegisterResponse{
		UserID:  user.ID,
		Message: "Registration successful",
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.GetUserByEmailOrUsername(req.EmailOrUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
		}
		return nil, shared.NewUnauthorizedError(err, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError(nil, "Invalid credentials")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate tokens")
	}

	user.LastLogin = time.Now()
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to update last login")
	}

	return &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: dto.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			CreatedAt:   user.CreatedAt,
			LastLoginAt: &user.LastLogin,
		},
	}, nil
}

func (svc *AuthService) RefreshToken(req dto.RefreshTokenRequest) (*dto.TokenPair, error) {
	userID, err := svc.jwtSvc.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewUnauthorizedError(err, "Invalid refresh token")
	}

	if _, err := svc.sqlSvc.GetUser(userID); err != nil {
		return nil, shared.NewUnauthorizedError(err, "User no longer exists")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate tokens")
	}

	return pair, nil
}

// RequiredAuth verifies the bearer token and stores the user id in
// fiber locals for downstream handlers.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseUnauthorized(c)
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil || userID == "" {
			return shared.ResponseUnauthorized(c)
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}
