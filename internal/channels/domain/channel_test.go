package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAccessCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"ACME2024", true},
		{"abcdEF89", true},
		{"ACME202", false},
		{"ACME20245", false},
		{"ACME-024", false},
		{"ACME 024", false},
		{"ÄCME2024", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAccessCode(tt.code))
		})
	}
}

func TestGenerateAccessCode(t *testing.T) {
	t.Run("crypto source", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 50 {
			code, err := GenerateAccessCode(nil)
			require.NoError(t, err)
			assert.True(t, ValidAccessCode(code), code)
			seen[code] = true
		}
		assert.Greater(t, len(seen), 45)
	})

	t.Run("biased bytes are skipped", func(t *testing.T) {
		// 0xFF is above the rejection limit; 0x00 maps to 'A' and 0x3D (61) to '9'.
		src := bytes.NewReader(append(
			bytes.Repeat([]byte{0xFF}, 16),
			[]byte{0x00, 0x3D, 0x00, 0x3D, 0x00, 0x3D, 0x00, 0x3D, 0, 0, 0, 0, 0, 0, 0, 0}...,
		))
		code, err := GenerateAccessCode(src)
		require.NoError(t, err)
		assert.Equal(t, "A9A9A9A9", code)
	})

	t.Run("short source", func(t *testing.T) {
		_, err := GenerateAccessCode(bytes.NewReader([]byte{1, 2, 3}))
		assert.Error(t, err)
	})
}

func TestUpdateChannelInput_Apply(t *testing.T) {
	ch := &Channel{Title: "Hotline", Description: "d", AccessCode: "ACME2024", IsActive: true}

	assert.False(t, (&UpdateChannelInput{}).Apply(ch))

	title := "Ethics Hotline"
	inactive := false
	changed := (&UpdateChannelInput{Title: &title, IsActive: &inactive}).Apply(ch)

	assert.True(t, changed)
	assert.Equal(t, "Ethics Hotline", ch.Title)
	assert.False(t, ch.IsActive)
	assert.Equal(t, "ACME2024", ch.AccessCode)
	assert.Equal(t, "d", ch.Description)
}
