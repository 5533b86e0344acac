package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fullname: letters, spaces, hyphens, apostrophes only.
var fullnameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

// IMO numbers are exactly 7 digits, MMSI numbers exactly 9 digits.
var (
	imoRe  = regexp.MustCompile(`^\d{7}$`)
	mmsiRe = regexp.MustCompile(`^\d{9}$`)
)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword requires:
// - at least 8 characters
// - at least one letter
// - at least one number
// - at least one special character
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullname(fullname string) bool {
	return fullname != "" && fullnameRe.MatchString(fullname)
}

// IsValidIMO accepts exactly 7 digits. Empty is valid: the field is optional.
func IsValidIMO(imo string) bool {
	return imo == "" || imoRe.MatchString(imo)
}

// IsValidMMSI accepts exactly 9 digits. Empty is valid: the field is optional.
func IsValidMMSI(mmsi string) bool {
	return mmsi == "" || mmsiRe.MatchString(mmsi)
}

// InRange reports min <= v <= max (both bounds inclusive).
func InRange(v, min, max float64) bool {
	return v >= min && v <= max
}

// FieldError names the offending field so the UI can highlight it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is an ordered collect-all list of validation failures.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a failure and returns the updated list.
func (e Errors) Add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

// File constraints. Documents cap at 10MB; ad media (images/video) at 50MB.
const (
	MaxDocumentSize = 10 * 1024 * 1024
	MaxAdMediaSize  = 50 * 1024 * 1024
)

var documentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

var adMediaMimeTypes = map[string]bool{
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

// CheckDocumentFile validates a single document upload; rejection applies to
// the file, not the whole submission.
func CheckDocumentFile(name, mimeType string, size int64) error {
	if !documentMimeTypes[mimeType] {
		return fmt.Errorf("File type not allowed: %s (%s)", name, mimeType)
	}
	if size > MaxDocumentSize {
		return fmt.Errorf("File too large: %s (max 10MB)", name)
	}
	return nil
}

// CheckAdMediaFile validates a single ad-media upload (document types plus
// gif/mp4/webm/ogg, larger size cap).
func CheckAdMediaFile(name, mimeType string, size int64) error {
	if !documentMimeTypes[mimeType] && !adMediaMimeTypes[mimeType] {
		return fmt.Errorf("File type not allowed: %s (%s)", name, mimeType)
	}
	if size > MaxAdMediaSize {
		return fmt.Errorf("File too large: %s (max 50MB)", name)
	}
	return nil
}
