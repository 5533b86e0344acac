package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/badaskaptan/kargomarket-sub002/internal/domain"
	"github.com/badaskaptan/kargomarket-sub002/internal/pkg/constants"

	"gorm.io/gorm"
)

// GoogleClaims is the subset of the tokeninfo response we use.
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// TokenVerifier verifies a Google ID token and returns its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

// HTTPTokenVerifier verifies tokens against Google's tokeninfo endpoint.
type HTTPTokenVerifier struct {
	ClientID string
	Client   *http.Client
}

const tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

func (v *HTTPTokenVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if v.Client == nil {
		v.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if idToken == "" {
		return nil, ErrInvalidGoogleToken
	}
	u := tokeninfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}
	var claims GoogleClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, fmt.Errorf("google tokeninfo decode: %w", err)
	}
	if v.ClientID != "" && claims.Audience != v.ClientID {
		return nil, ErrInvalidGoogleToken
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, ErrInvalidGoogleToken
	}
	return &claims, nil
}

// FindOrCreateGoogleUser looks up a user by Google subject, then by email
// (linking the account), and creates one when neither exists.
func FindOrCreateGoogleUser(db *gorm.DB, claims *GoogleClaims) (*domain.User, error) {
	var u domain.User
	if err := db.Where("google_id = ?", claims.Sub).First(&u).Error; err == nil {
		return &u, nil
	}

	email := strings.TrimSpace(strings.ToLower(claims.Email))
	if err := db.Where("email = ?", email).First(&u).Error; err == nil {
		sub := claims.Sub
		if err := db.Model(&u).Update("google_id", sub).Error; err != nil {
			return nil, err
		}
		u.GoogleID = &sub
		return &u, nil
	}

	sub := claims.Sub
	fullname := claims.Name
	if fullname == "" {
		fullname = email
	}
	u = domain.User{
		Fullname: fullname,
		Email:    email,
		GoogleID: &sub,
		Role:     constants.Trader,
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
