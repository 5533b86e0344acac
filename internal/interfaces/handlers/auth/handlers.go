package auth

import (
	"context"

	authsvc "github.com/badaskaptan/kargomarket-sub002/internal/application/auth"
	usersvc "github.com/badaskaptan/kargomarket-sub002/internal/application/user"
	"github.com/badaskaptan/kargomarket-sub002/internal/middleware"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	DB       *gorm.DB
	Users    *usersvc.Service
	Verifier authsvc.TokenVerifier
	Rdb      *redis.Client
	Config   middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register POST /api/v1/auth/register — create account, start a session.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req usersvc.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Users.Register(c.Context(), req)
	if err != nil {
		statusMap := map[string]int{
			"Full name is required and must be a non-empty string": 400,
			"Full name contains invalid characters (only letters, spaces, hyphens, and apostrophes allowed)": 400,
			"Invalid email format":     400,
			"Invalid password format":  400,
			"Invalid role":             400,
			"Email already registered": 409,
		}
		if code, ok := statusMap[err.Error()]; ok {
			return response.Error(c, err.Error(), code, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	if err := h.startSession(c, user.UserID.String(), user.Fullname, user.Email, user.Role); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Account created successfully", fiber.Map{"user": user}, nil)
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}

	user, err := authsvc.LoginUser(h.DB, authsvc.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case authsvc.ErrInvalidEmail, authsvc.ErrIncorrectPassword:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	if err := h.startSession(c, user.UserID.String(), user.Fullname, user.Email, user.Role); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":  user.UserID.String(),
			"fullname": user.Fullname,
			"email":    user.Email,
			"role":     user.Role,
		},
	}, nil)
}

// GoogleRequest body.
type GoogleRequest struct {
	IDToken string `json:"id_token"`
}

// Google POST /api/v1/auth/google — verify the ID token, find or create the
// account, start a session.
func (h *Handlers) Google(c *fiber.Ctx) error {
	if h.Verifier == nil {
		return response.Error(c, "Google sign-in is not configured", fiber.StatusServiceUnavailable, nil)
	}
	var req GoogleRequest
	if err := c.BodyParser(&req); err != nil || req.IDToken == "" {
		return response.Error(c, "id_token is required", fiber.StatusBadRequest, nil)
	}

	claims, err := h.Verifier.Verify(c.Context(), req.IDToken)
	if err != nil {
		log.Info().Err(err).Msg("auth/google: token verification failed")
		return response.Error(c, "Invalid Google token", fiber.StatusUnauthorized, nil)
	}

	user, err := authsvc.FindOrCreateGoogleUser(h.DB, claims)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	if err := h.startSession(c, user.UserID.String(), user.Fullname, user.Email, user.Role); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{"user": user}, nil)
}

// Me GET /api/v1/auth/me — return current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser := middleware.GetUser(c)
	user, err := authsvc.VerifyUser(sessionUser)
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout — drop session state and clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()
	if sessionUser != nil && sessionID != "" {
		if m, ok := sessionUser.(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// startSession regenerates the session id, stores the user shape, tracks the
// session in the per-user set, and sets the cookie.
func (h *Handlers) startSession(c *fiber.Ctx, userID, fullname, email, role string) error {
	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   userID,
		Fullname: fullname,
		Email:    email,
		Role:     role,
	})
	if err := h.Rdb.SAdd(context.Background(), userSessionsPrefix+userID, sessionID).Err(); err != nil {
		return err
	}
	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)
	return nil
}
