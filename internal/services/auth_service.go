package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"answerhub/internal/config"
	"answerhub/internal/models"
	"answerhub/internal/repositories"
	"answerhub/internal/validation"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService.
type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	cfg         *config.AuthConfig
	logger      *zap.Logger
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Register creates a new account and opens a session for it.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return nil, NewInternalError("Failed to check email", err)
	} else if existing != nil {
		return nil, NewConflictError("email is already registered")
	}
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err != nil {
		return nil, NewInternalError("Failed to check username", err)
	} else if existing != nil {
		return nil, NewConflictError("username is taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, NewInternalError("Failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Reputation:   1,
		BadgeTier:    models.TierBeginner,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, NewInternalError("Failed to create user", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, NewInternalError("Failed to look up user", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	return s.openSession(ctx, user)
}

// Logout deletes the session for the given token. Unknown tokens are not
// an error.
func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	if err := s.sessionRepo.DeleteByToken(ctx, sessionToken); err != nil {
		return NewInternalError("Failed to delete session", err)
	}
	return nil
}

// UserFromSession resolves a session token to its user. Expired sessions
// are rejected and cleaned up lazily.
func (s *authService) UserFromSession(ctx context.Context, sessionToken string) (*models.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, sessionToken)
	if err != nil {
		return nil, NewInternalError("Failed to look up session", err)
	}
	if session == nil {
		return nil, NewUnauthorizedError("invalid session")
	}
	if session.IsExpired() {
		_ = s.sessionRepo.DeleteByToken(ctx, sessionToken)
		return nil, NewUnauthorizedError("session expired")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid session")
	}
	return user, nil
}

// UserFromJWT validates a bearer token and resolves its user.
func (s *authService) UserFromJWT(ctx context.Context, tokenString string) (*models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, NewUnauthorizedError("invalid token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, NewUnauthorizedError("invalid token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid token")
	}
	return user, nil
}

func (s *authService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokenID, err := uuid.NewV4()
	if err != nil {
		return nil, NewInternalError("Failed to generate session token", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		SessionToken: tokenID.String(),
		ExpiresAt:    time.Now().Add(s.cfg.SessionExpiry),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, NewInternalError("Failed to create session", err)
	}

	jwtToken, err := s.signJWT(user)
	if err != nil {
		return nil, NewInternalError("Failed to sign token", err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		User:         user,
		Token:        jwtToken,
		SessionToken: session.SessionToken,
	}, nil
}

func (s *authService) signJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
