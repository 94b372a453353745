package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barangaylink-backend/internal/entity"
	"barangaylink-backend/internal/middleware"
	staffRepo "barangaylink-backend/internal/modules/staff/repository"
	"barangaylink-backend/internal/modules/user/dto"
	"barangaylink-backend/internal/modules/user/repository"
	"barangaylink-backend/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, input dto.RegisterInput) (*dto.UserResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ChangeOwnPassword(ctx context.Context, userID uuid.UUID, input dto.ChangeOwnPasswordInput) (*dto.UserResponse, error)
	SetStaffPassword(ctx context.Context, staffID uuid.UUID, input dto.SetStaffPasswordInput) (*dto.UserResponse, error)
	DeleteStaffLogin(ctx context.Context, staffID uuid.UUID) error
}

type authService struct {
	repo        repository.UserRepository
	staff       staffRepo.StaffRepository
	rdb         *redis.Client
	secret      string
	tokenTTL    time.Duration
	loginWindow time.Duration
}

func NewAuthService(repo repository.UserRepository, staff staffRepo.StaffRepository, rdb *redis.Client, secret string, tokenTTL, loginWindow time.Duration) AuthService {
	return &authService{
		repo:        repo,
		staff:       staff,
		rdb:         rdb,
		secret:      secret,
		tokenTTL:    tokenTTL,
		loginWindow: loginWindow,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	allowed, err := checkAndSetRateLimit(ctx, s.rdb, input.Username, s.loginWindow)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "too many login attempts", apperror.ErrRateLimitExceeded)
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
	}

	_ = clearRateLimit(ctx, s.rdb, input.Username)

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserResponse, error) {
	if existing, _ := s.repo.FindByUsername(ctx, input.Username); existing != nil {
		return nil, apperror.New(http.StatusConflict, "Username already exists", apperror.ErrConflict)
	}

	var staffID *uuid.UUID
	if input.Role == entity.RoleStaff {
		if input.StaffID == "" {
			return nil, apperror.New(http.StatusBadRequest, "staffId required for staff role", apperror.ErrInvalidInput)
		}
		id, err := uuid.Parse(input.StaffID)
		if err != nil {
			return nil, apperror.New(http.StatusBadRequest, "invalid staffId", apperror.ErrInvalidInput)
		}
		if _, err := s.staff.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(http.StatusNotFound, "Staff not found", apperror.ErrNotFound)
			}
			return nil, err
		}
		staffID = &id
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: string(hashed),
		Role:         input.Role,
		StaffID:      staffID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ChangeOwnPassword(ctx context.Context, userID uuid.UUID, input dto.ChangeOwnPasswordInput) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "User not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Current password is incorrect", apperror.ErrUnauthorized)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashed)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// SetStaffPassword resets the login tied to a staff roster entry without the
// current password. Admin only; gated at the route.
func (s *authService) SetStaffPassword(ctx context.Context, staffID uuid.UUID, input dto.SetStaffPasswordInput) (*dto.UserResponse, error) {
	user, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "Staff user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashed)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) DeleteStaffLogin(ctx context.Context, staffID uuid.UUID) error {
	user, err := s.repo.FindByStaffID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "Staff user not found", apperror.ErrNotFound)
		}
		return err
	}

	return s.repo.Delete(ctx, user.ID)
}

func (s *authService) generateToken(user *entity.User) (string, error) {
	now := time.Now()

	claims := middleware.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Staff:    user.Staff,
	}
}
