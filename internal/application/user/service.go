package user

import (
	"context"
	"errors"
	"strings"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service holds DB and Redis for user operations.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// RegisterInput matches the register request body.
type RegisterInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates a user account. Returns the created model (password_hash
// never serializes).
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Fullname) == "" {
		return nil, errors.New("Full name is required and must be a non-empty string")
	}
	trimmed := strings.TrimSpace(in.Fullname)
	if !validation.IsValidFullname(trimmed) {
		return nil, errors.New("Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)")
	}
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, errors.New("Invalid email format")
	}
	if in.Password == "" || !validation.IsValidPassword(in.Password) {
		return nil, errors.New("Invalid password format")
	}
	role := in.Role
	if role == "" {
		role = constants.Trader
	}
	if !constants.IsValidRole(role) {
		return nil, errors.New("Invalid role")
	}

	email := strings.TrimSpace(strings.ToLower(in.Email))

	var existing domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, errors.New("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Fullname:     trimmed,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile updates allowed fields: fullname, phone, company_name, password.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	if len(fields) == 0 {
		return nil, errors.New("Missing update fields")
	}

	allowed := map[string]bool{"fullname": true, "phone": true, "company_name": true, "password": true}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, errors.New("No valid update fields provided")
	}

	if fn, ok := upd["fullname"].(string); ok {
		trimmed := strings.TrimSpace(fn)
		if trimmed == "" {
			return nil, errors.New("Full name must be a non-empty string")
		}
		if !validation.IsValidFullname(trimmed) {
			return nil, errors.New("Full name contains invalid characters")
		}
		upd["fullname"] = trimmed
	}
	if p, ok := upd["password"].(string); ok && p != "" {
		if !validation.IsValidPassword(p) {
			return nil, errors.New("Invalid password format")
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte(p), 10)
		upd["password_hash"] = string(hash)
		delete(upd, "password")
	}

	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&u).Updates(upd).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u)
	return &u, nil
}

// GetProfile returns a user by id.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	return &u, nil
}
