package entity

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	maxTitleLength    = 255
	maxUsernameLength = 50
)

// ValidateImageURL checks that an image reference is an absolute http(s) URL.
// Empty values are allowed since the image field is optional.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: image URL is unparsable", ErrInvalidInput)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: image URL scheme must be http or https", ErrInvalidInput)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: image URL must be absolute", ErrInvalidInput)
	}
	return nil
}

// ValidateTitle checks that an article title is present and within length limits.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleLength)}
	}
	return nil
}

// ValidateUsername checks that an account name is present and within length limits.
func ValidateUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "username", Message: "is required"}
	}
	if len(name) > maxUsernameLength {
		return &ValidationError{Field: "username", Message: fmt.Sprintf("must be at most %d characters", maxUsernameLength)}
	}
	return nil
}
