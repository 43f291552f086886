package validator

import (
	"testing"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestTypeViolation(t *testing.T) {
	form := &accountForm{}

	assert.Equal(t,
		domainerrors.FieldViolation{Field: "links", Message: "links must be an object"},
		TypeViolation(form, "links"))
	assert.Equal(t,
		domainerrors.FieldViolation{Field: "note", Message: "note is invalid"},
		TypeViolation(form, "note"))
}

func TestMerge_OrdersDecodeAndRuleViolationsByField(t *testing.T) {
	v := New()
	form := &accountForm{Name: "A1", Password: "abc123def"}

	err := Merge(form, []domainerrors.FieldViolation{TypeViolation(form, "links")}, v.Validate(form))

	got := violationsOf(t, err)
	assert.Equal(t, []domainerrors.FieldViolation{
		{Field: "name", Message: "name has bad characters"},
		{Field: "links", Message: "links must be an object"},
	}, got)
}

func TestMerge_DecodeViolationReplacesRuleViolationOnSameField(t *testing.T) {
	v := New()
	form := &accountForm{Name: "Ada", Password: "abc123def", Links: map[string]string{"myspace": "x"}}

	err := Merge(form, []domainerrors.FieldViolation{TypeViolation(form, "links")}, v.Validate(form))

	assert.Equal(t, []domainerrors.FieldViolation{
		{Field: "links", Message: "links must be an object"},
	}, violationsOf(t, err))
}

func TestMerge_PassThrough(t *testing.T) {
	form := &accountForm{}

	assert.NoError(t, Merge(form, nil, nil))

	ruleErr := domainerrors.NewValidationError(domainerrors.FieldViolation{Field: "name", Message: "name is required"})
	assert.Same(t, ruleErr, Merge(form, nil, ruleErr))

	other := errors.New("boom")
	assert.Same(t, other, Merge(form, []domainerrors.FieldViolation{TypeViolation(form, "links")}, other))
}
