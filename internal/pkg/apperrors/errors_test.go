package apperrors

import (
	"errors"
	"testing"
)

func TestSentinelMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{401, ErrUnauthorized},
		{404, ErrResourceNotFound},
		{400, ErrValidationFailed},
		{500, ErrServerError},
		{503, ErrServerError},
		{403, ErrBadRequest},
	}

	for _, tc := range cases {
		err := NewAPIError(tc.status, nil)
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestNewAPIErrorDetail(t *testing.T) {
	err := NewAPIError(401, []byte(`{"detail": "Invalid credentials"}`))
	if err.Detail != "Invalid credentials" {
		t.Fatalf("expected detail, got %q", err.Detail)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("Error() should prefer detail, got %q", err.Error())
	}
}

func TestNewAPIErrorFieldErrors(t *testing.T) {
	body := []byte(`{"email": ["Enter a valid email address.", "This field is required."], "year": ["Invalid year"]}`)
	err := NewAPIError(400, body)

	if got := err.FieldError("email"); got != "Enter a valid email address." {
		t.Fatalf("unexpected field error: %q", got)
	}
	want := "email: Enter a valid email address., This field is required. | year: Invalid year"
	if got := err.FlattenFieldErrors(); got != want {
		t.Fatalf("flatten mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestNewAPIErrorScalarFieldValue(t *testing.T) {
	err := NewAPIError(400, []byte(`{"username": "already taken"}`))
	if got := err.FieldError("username"); got != "already taken" {
		t.Fatalf("scalar field value should become a message, got %q", got)
	}
}

func TestNewAPIErrorNonJSONBody(t *testing.T) {
	err := NewAPIError(502, []byte("Bad Gateway"))
	if err.Detail != "" {
		t.Fatalf("non-JSON body should not set detail, got %q", err.Detail)
	}
	if err.Error() != "Bad Gateway" {
		t.Fatalf("Error() should fall back to the raw body, got %q", err.Error())
	}

	err = NewAPIError(502, nil)
	if err.Error() != "request failed (502)" {
		t.Fatalf("empty body fallback wrong: %q", err.Error())
	}
}

func TestNewAPIErrorBareString(t *testing.T) {
	err := NewAPIError(400, []byte(`"nothing to do"`))
	if err.Detail != "nothing to do" {
		t.Fatalf("bare string should become detail, got %q", err.Detail)
	}
}
