package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeToken(t *testing.T) {
	t.Run("zero-padded prefix", func(t *testing.T) {
		token, err := MergeToken("abc", "xyz")
		require.NoError(t, err)
		assert.Equal(t, "003abcxyz", token)
	})

	t.Run("field at the bound", func(t *testing.T) {
		field1 := strings.Repeat("a", MaxTokenFieldLength)
		token, err := MergeToken(field1, "b")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(token, "999"))
	})

	t.Run("field over the bound", func(t *testing.T) {
		_, err := MergeToken(strings.Repeat("a", MaxTokenFieldLength+1), "b")
		assert.ErrorIs(t, err, ErrTokenFieldTooLong)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := MergeToken("", "b")
		assert.ErrorIs(t, err, ErrMalformedEncoding)
		_, err = MergeToken("a", "")
		assert.ErrorIs(t, err, ErrMalformedEncoding)
	})
}

func TestSplitToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, n := range []int{1, 9, 10, 99, 100, 500, 999} {
			field1 := strings.Repeat("k", n)
			field2 := "private-" + strings.Repeat("p", n%17)
			token, err := MergeToken(field1, field2)
			require.NoError(t, err)

			parts, ok := SplitToken(token)
			require.True(t, ok)
			assert.Equal(t, field1, parts.Field1)
			assert.Equal(t, field2, parts.Field2)
		}
	})

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "short prefix", token: "01"},
		{name: "non-numeric prefix", token: "abcdefgh"},
		{name: "signed prefix", token: "+03abcxyz"},
		{name: "length past end", token: "010abc"},
		{name: "empty first field", token: "000xyz"},
		{name: "empty second field", token: "003abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := SplitToken(tt.token)
			assert.False(t, ok)
		})
	}
}

func TestCaseAccessToken(t *testing.T) {
	pub := EncodeSodium(make([]byte, PublicKeySize))
	require.Len(t, pub, EncodedPublicKeyLength)
	priv := EncodeSodium([]byte(strings.Repeat("s", PrivateKeySize)))

	t.Run("round trip", func(t *testing.T) {
		token, err := NewCaseAccessToken(pub, "case-123", priv)
		require.NoError(t, err)

		parsed, err := ParseCaseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, pub, parsed.PublicKey)
		assert.Equal(t, "case-123", parsed.CaseID)
		assert.Equal(t, priv, parsed.PrivateKey)

		kp, err := parsed.KeyPair()
		require.NoError(t, err)
		assert.Len(t, kp.PublicKey, PublicKeySize)
		assert.Len(t, kp.PrivateKey, PrivateKeySize)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		token, err := NewCaseAccessToken(pub, "case-1", priv)
		require.NoError(t, err)
		_, err = ParseCaseAccessToken("  " + token + "\n")
		assert.NoError(t, err)
	})

	t.Run("first field is public key then case id", func(t *testing.T) {
		caseID := "0192f3a4-5b6c-7d8e-9f00-112233445566"
		token, err := MergeToken(pub+caseID, priv)
		require.NoError(t, err)

		parsed, err := ParseCaseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, pub, parsed.PublicKey)
		assert.Equal(t, caseID, parsed.CaseID)
		assert.Equal(t, priv, parsed.PrivateKey)

		built, err := NewCaseAccessToken(pub, caseID, priv)
		require.NoError(t, err)
		assert.Equal(t, token, built)
		assert.NotContains(t, built, ":")
	})

	t.Run("case id may contain any character", func(t *testing.T) {
		token, err := NewCaseAccessToken(pub, "a:b", priv)
		require.NoError(t, err)
		parsed, err := ParseCaseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "a:b", parsed.CaseID)
	})

	t.Run("missing case id", func(t *testing.T) {
		token, err := MergeToken(pub, priv)
		require.NoError(t, err)
		_, err = ParseCaseAccessToken(token)
		assert.ErrorIs(t, err, ErrMalformedEncoding)

		_, err = NewCaseAccessToken(pub, "", priv)
		assert.ErrorIs(t, err, ErrMalformedEncoding)
	})

	t.Run("first field shorter than a public key", func(t *testing.T) {
		token, err := MergeToken(pub[:20], priv)
		require.NoError(t, err)
		_, err = ParseCaseAccessToken(token)
		assert.ErrorIs(t, err, ErrMalformedEncoding)
	})

	t.Run("wrong public key length rejected", func(t *testing.T) {
		_, err := NewCaseAccessToken(pub+"A", "case-1", priv)
		assert.ErrorIs(t, err, ErrMalformedEncoding)
		_, err = NewCaseAccessToken(pub[:42], "case-1", priv)
		assert.ErrorIs(t, err, ErrMalformedEncoding)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseCaseAccessToken("not a token")
		assert.ErrorIs(t, err, ErrMalformedEncoding)
	})
}

func TestKeyDownloadContent(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	content := KeyDownloadContent("003abcxyz", "case-1", "Acme Hotline", "ACCESS", created)

	assert.True(t, strings.HasPrefix(content, "WhistleBase Case Reference\n"))
	assert.Contains(t, content, "Case ID: case-1\n")
	assert.Contains(t, content, "Channel: Acme Hotline\n")
	assert.Contains(t, content, "Reference Key: 003abcxyz\n")
	assert.Contains(t, content, "Created: 2026-01-02T03:04:05Z\n")
	assert.Contains(t, content, "WhistleBase cannot recover this key if lost")
}
