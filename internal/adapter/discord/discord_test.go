package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		content string
		name    string
		arg     string
		ok      bool
	}{
		{"s!today", "today", "", true},
		{"s!next 5", "next", "5", true},
		{"s!next   5  extra", "next", "5", true},
		{"s!weather", "weather", "", true},
		{"s!", "", "", false},
		{"s! ", "", "", false},
		{"hello", "", "", false},
		{"S!today", "", "", false}, // prefix is case-sensitive
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			name, arg, ok := parseCommand(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.arg, arg)
		})
	}
}
