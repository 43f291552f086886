package validator

import (
	"reflect"
	"slices"
	"strings"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"
)

// TypeViolation reports a field of i whose value could not be decoded into
// its Go type. The message comes from the "field.type" entry when i is a Messenger.
func TypeViolation(i any, field string) domainerrors.FieldViolation {
	if m, ok := i.(Messenger); ok {
		if msg, ok := m.Messages()[field+".type"]; ok {
			return domainerrors.FieldViolation{Field: field, Message: msg}
		}
	}

	return domainerrors.FieldViolation{Field: field, Message: field + " is invalid"}
}

// Merge combines violations found while decoding i with the result of
// validating it, ordered by the fields of i. A field that failed to decode
// keeps only its decode violation.
func Merge(i any, decoded []domainerrors.FieldViolation, validateErr error) error {
	if len(decoded) == 0 {
		return validateErr
	}

	violations := slices.Clone(decoded)
	if validateErr != nil {
		var ruleErr *domainerrors.ValidationError
		if !errors.As(validateErr, &ruleErr) {
			return validateErr
		}
		for _, v := range ruleErr.Violations {
			if !slices.ContainsFunc(decoded, func(d domainerrors.FieldViolation) bool { return d.Field == v.Field }) {
				violations = append(violations, v)
			}
		}
	}

	order := fieldOrder(i)
	rank := func(field string) int {
		if idx, ok := order[field]; ok {
			return idx
		}

		return len(order)
	}
	slices.SortStableFunc(violations, func(a, b domainerrors.FieldViolation) int {
		return rank(a.Field) - rank(b.Field)
	})

	return domainerrors.NewValidationError(violations...)
}

// fieldOrder maps each json field name of the struct behind i to its position.
func fieldOrder(i any) map[string]int {
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	order := make(map[string]int, t.NumField())
	for idx := range t.NumField() {
		fld := t.Field(idx)
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = fld.Name
		}
		order[name] = idx
	}

	return order
}
