package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "acme", want: "acme"},
		{name: "percent escaped", in: "100%", want: `100\%`},
		{name: "underscore escaped", in: "CASE_2025", want: `CASE\_2025`},
		{name: "backslash escaped first", in: `a\%b`, want: `a\\\%b`},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.in))
		})
	}
}
