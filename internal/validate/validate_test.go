package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/validate"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"guest.name+trip@mail.example.com.br", true},
		{"a@b", false},
		{"a b@c.com", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@b..com", false},
		{"a@b.com.", false},
		{"a@@b.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Email(tt.in))
		})
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"https://airbnb.com/rooms/1042", true},
		{"example.com", false},
		{"ftp://x.com", false},
		{"https://", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.URL(tt.in))
		})
	}
}
