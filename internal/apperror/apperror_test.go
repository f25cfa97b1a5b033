package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("product", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden("only the owner may edit this product"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "InvalidCredentials wraps ErrUnauthorized",
			err:       InvalidCredentials(),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "DuplicateEmail wraps ErrDuplicateEmail",
			err:       DuplicateEmail(),
			target:    ErrDuplicateEmail,
			wantMatch: true,
		},
		{
			name:      "EmptyCart wraps ErrEmptyCart",
			err:       EmptyCart(),
			target:    ErrEmptyCart,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("product", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "DuplicateEmail does NOT match ErrValidation",
			err:       DuplicateEmail(),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("product", "abc123"),
			wantMessage: "product not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("title", "title is required"),
			wantMessage: "title is required",
		},
		{
			name:        "InvalidCredentials is generic",
			err:         InvalidCredentials(),
			wantMessage: "invalid credentials",
		},
		{
			name:        "EmptyCart message",
			err:         EmptyCart(),
			wantMessage: "cart is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("product", "abc123")
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("price", "price must be a number")
	if err.Field != "price" {
		t.Errorf("Field = %q, want %q", err.Field, "price")
	}
}
