package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-presence/internal/auth/errors"
	"go-presence/internal/domain"
	"go-presence/internal/shared/apperror"
	"go-presence/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error)
}

type service struct {
	repo   Repository
	secret []byte
	now    func() time.Time
}

func NewService(repo Repository, secret string) Service {
	return &service{repo: repo, secret: []byte(secret), now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		contextutil.GetLogger(ctx, zap.L()).Info("login rejected", zap.String("user_id", user.ID.String()))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrUserInactive
	}

	return s.issue(user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	claims, err := domain.ParseToken(refreshToken, string(s.secret))
	if err != nil || claims.TokenType != domain.TokenTypeRefresh {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenResponse{}, autherrors.ErrUserInactive
	}

	return s.issue(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}
	return toResponse(user), nil
}

// Register creates an account inside companyID. A missing employee id gets a fresh one.
func (s *service) Register(ctx context.Context, companyID string, req RegisterRequest) (AuthResponse, error) {
	cID, err := uuid.Parse(companyID)
	if err != nil {
		return AuthResponse{}, apperror.InvalidField("company_id")
	}

	eID := uuid.New()
	if req.EmployeeID != "" {
		if eID, err = uuid.Parse(req.EmployeeID); err != nil {
			return AuthResponse{}, apperror.InvalidField("employee_id")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleEmployee
	}

	user := &User{
		ID:         uuid.New(),
		CompanyID:  cID,
		EmployeeID: eID,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Name:       req.Name,
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	return toResponse(user), nil
}

func (s *service) issue(user *User) (TokenResponse, error) {
	access, err := s.generateToken(user, domain.TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}
	refresh, err := s.generateToken(user, domain.TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}

	return TokenResponse{
		User:         toResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(AccessTokenTTL.Seconds()),
	}, nil
}

func (s *service) generateToken(user *User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID:     user.ID.String(),
		EmployeeID: user.EmployeeID.String(),
		CompanyID:  user.CompanyID.String(),
		Role:       strings.ToUpper(user.Role),
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func toResponse(u *User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		CompanyID:  u.CompanyID.String(),
		EmployeeID: u.EmployeeID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       strings.ToUpper(u.Role),
	}
}
