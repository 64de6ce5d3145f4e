package services

import (
	"context"
	"errors"
	"time"

	"drone-survey-service/internal/apperr"
	"drone-survey-service/internal/models"
	"drone-survey-service/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type IUserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *models.TokenPair, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, *models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) (*models.TokenPair, error)
}

type UserService struct {
	userRepo     repository.IUserRepository
	sessionRepo  repository.SessionRepository
	tokenService *TokenService
	now          func() time.Time
}

func NewUserService(userRepo repository.IUserRepository, sessionRepo repository.SessionRepository, tokenService *TokenService) IUserService {
	return &UserService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
		now:          time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *models.TokenPair, error) {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return nil, nil, apperr.Validation("email, first name and last name are required")
	}
	if len(req.Password) < 8 {
		return nil, nil, apperr.Validation("password must be at least 8 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}
	if !role.IsValid() {
		return nil, nil, apperr.Validation("invalid role")
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.KindUpstream, "HASH_ERROR", "failed to hash password", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Status:    models.UserActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, apperr.Conflict("Email already registered")
		}
		return nil, nil, apperr.Upstream("failed to create user", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, *models.TokenPair, error) {
	if req.Email == "" || req.Password == "" {
		return nil, nil, apperr.Validation("email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, apperr.Upstream("failed to fetch user", err)
	}
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, nil, apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	updated, err := s.userRepo.FindByIDAndUpdate(ctx, user.ID, bson.M{"$set": bson.M{"lastLogin": s.now()}})
	if err != nil {
		return nil, nil, apperr.Upstream("failed to update last login", err)
	}
	if updated != nil {
		user = updated
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RefreshTokens verifies the refresh token, checks its session is still
// registered (logout revokes it), and rotates the pair.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperr.Validation("refresh token is required")
	}

	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.GetUserSessions(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Upstream("failed to check sessions", err)
	}
	tokenHash := repository.HashToken(refreshToken)
	active := false
	for _, session := range sessions {
		if session.RefreshTokenHash == tokenHash && session.IsActive {
			active = true
			break
		}
	}
	if !active {
		return nil, apperr.New(apperr.KindForbidden, "SESSION_REVOKED", "refresh token has been revoked")
	}

	oid, err := parseObjectID(claims.UserID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	// Rotate: old sessions out, new one in.
	if err := s.sessionRepo.DeleteUserSessions(ctx, claims.UserID); err != nil {
		return nil, apperr.Upstream("failed to rotate sessions", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.sessionRepo.DeleteUserSessions(ctx, userID); err != nil {
		return apperr.Upstream("failed to revoke sessions", err)
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, apperr.Upstream("failed to fetch user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) (*models.TokenPair, error) {
	if len(req.NewPassword) < 8 {
		return nil, apperr.Validation("new password must be at least 8 characters")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !repository.CheckPasswordHash(req.CurrentPassword, user.Password) {
		return nil, apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
	}

	hash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "HASH_ERROR", "failed to hash password", err)
	}
	if _, err := s.userRepo.FindByIDAndUpdate(ctx, user.ID, bson.M{"$set": bson.M{"password": hash}}); err != nil {
		return nil, apperr.Upstream("failed to update password", err)
	}

	// Old refresh tokens die with the old password.
	if err := s.sessionRepo.DeleteUserSessions(ctx, userID); err != nil {
		return nil, apperr.Upstream("failed to revoke sessions", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	claims := models.Claims{
		UserID:     user.ID.Hex(),
		Email:      user.Email,
		Role:       user.Role,
		Facilities: user.FacilityIDs(),
	}
	tokens, err := s.tokenService.GenerateTokenPair(claims)
	if err != nil {
		return nil, err
	}

	session := &models.RefreshSession{
		ID:               uuid.New().String(),
		UserID:           user.ID.Hex(),
		RefreshTokenHash: repository.HashToken(tokens.RefreshToken),
		CreatedAt:        s.now(),
	}
	if err := s.sessionRepo.CreateSession(ctx, session, RefreshTokenTTL); err != nil {
		return nil, apperr.Upstream("failed to register session", err)
	}
	return tokens, nil
}
