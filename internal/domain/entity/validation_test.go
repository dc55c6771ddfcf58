package entity_test

import (
	"errors"
	"strings"
	"testing"

	"newswire/internal/domain/entity"
)

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "empty is allowed", url: "", wantErr: false},
		{name: "https URL", url: "https://picsum.photos/seed/42/600/400", wantErr: false},
		{name: "http URL", url: "http://example.com/a.png", wantErr: false},
		{name: "missing scheme", url: "picsum.photos/seed/42", wantErr: true},
		{name: "bad scheme", url: "ftp://example.com/a.png", wantErr: true},
		{name: "scheme only", url: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateImageURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, entity.ErrInvalidInput) {
				t.Errorf("error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	if err := entity.ValidateTitle("Breaking news"); err != nil {
		t.Fatalf("valid title rejected: %v", err)
	}
	if err := entity.ValidateTitle("   "); err == nil {
		t.Fatal("blank title accepted")
	}
	if err := entity.ValidateTitle(strings.Repeat("x", 256)); err == nil {
		t.Fatal("overlong title accepted")
	}

	var verr *entity.ValidationError
	err := entity.ValidateTitle("")
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "title" {
		t.Errorf("Field = %q, want title", verr.Field)
	}
}

func TestValidateUsername(t *testing.T) {
	if err := entity.ValidateUsername("alice"); err != nil {
		t.Fatalf("valid username rejected: %v", err)
	}
	if err := entity.ValidateUsername(""); err == nil {
		t.Fatal("empty username accepted")
	}
	if err := entity.ValidateUsername(strings.Repeat("a", 51)); err == nil {
		t.Fatal("overlong username accepted")
	}
}
