package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: ""},
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "scheme without credential", header: "Bearer", want: ""},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", want: "Basic dXNlcjpwYXNz"},
		{name: "bare token", header: "abc.def.ghi", want: "abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(tt.header))
		})
	}
}
