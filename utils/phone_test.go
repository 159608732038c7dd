package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare ten digits gets country code", input: "5125551234", want: "15125551234"},
		{name: "formatted US number", input: "(512) 555-1234", want: "15125551234"},
		{name: "already has country code", input: "+1 512 555 1234", want: "15125551234"},
		{name: "international", input: "+44 20 7946 0958", want: "442079460958"},
		{name: "leading zeros stripped", input: "0044 20 7946 0958", want: "442079460958"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.input))
		})
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("(512) 555-1234"))
	assert.True(t, ValidatePhoneNumber("+442079460958"))
	assert.False(t, ValidatePhoneNumber("555-1234"))
	assert.False(t, ValidatePhoneNumber("12345678901234567"))
	assert.False(t, ValidatePhoneNumber(""))
}
