package validator

import (
	"strings"
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountForm struct {
	Name     string            `json:"name" validate:"required,personname,min=3"`
	Password string            `json:"password" validate:"required,password"`
	Links    map[string]string `json:"links" validate:"omitempty,dive,keys,oneof=github website,endkeys"`
	Note     string            `json:"note" validate:"max=3"`
}

func (f *accountForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f *accountForm) Messages() map[string]string {
	return map[string]string{
		"name.personname": "name has bad characters",
		"links.oneof":     "unknown link %s",
		"links.type":      "links must be an object",
	}
}

func violationsOf(t *testing.T, err error) []domainerrors.FieldViolation {
	t.Helper()

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected a validation error, got %v", err)

	return validationErr.Violations
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(&accountForm{Name: "  Ada Lovelace-King  ", Password: "abc123def", Links: map[string]string{"github": "x"}})

	assert.NoError(t, err)
}

func TestValidate_CollectsViolationsInFieldOrder(t *testing.T) {
	v := New()

	err := v.Validate(&accountForm{Name: "Ada1", Password: "abcdefghij", Links: map[string]string{"myspace": "x"}, Note: "long"})

	got := violationsOf(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, domainerrors.FieldViolation{Field: "name", Message: "name has bad characters"}, got[0])
	assert.Equal(t, "password", got[1].Field)
	assert.Equal(t, "password is invalid", got[1].Message)
	assert.Equal(t, domainerrors.FieldViolation{Field: "links", Message: "unknown link myspace"}, got[2])
	assert.Equal(t, domainerrors.FieldViolation{Field: "note", Message: "note is out of range"}, got[3])
}

func TestValidate_DefaultRequiredMessage(t *testing.T) {
	v := New()

	got := violationsOf(t, v.Validate(&accountForm{Password: "abc123def"}))

	require.Len(t, got, 1)
	assert.Equal(t, domainerrors.FieldViolation{Field: "name", Message: "name is required"}, got[0])
}

func TestPasswordRule(t *testing.T) {
	v := New()

	tests := []struct {
		password string
		valid    bool
	}{
		{password: "abc123def", valid: true},
		{password: "123456789a", valid: true},
		{password: "abcdefghi", valid: false},
		{password: "123456789", valid: false},
		{password: "abc12", valid: false},
		{password: "abc123de!", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := v.Validate(&accountForm{Name: "Ada", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: " Ada@Example.COM ", want: "ada@example.com"},
		{in: "ada.love+courses@gmail.com", want: "adalove@gmail.com"},
		{in: "Ada.Love@GoogleMail.com", want: "adalove@gmail.com"},
		{in: "first.last+tag@example.com", want: "first.last+tag@example.com"},
		{in: "not-an-email", want: "not-an-email"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.in))
		})
	}
}

func TestTrimPtr(t *testing.T) {
	s := "  bio  "
	TrimPtr(&s)
	assert.Equal(t, "bio", s)

	assert.NotPanics(t, func() { TrimPtr(nil) })
}
