package vault

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New("test-encryption-secret")
	require.NoError(t, err)
	return v
}

func strPtr(s string) *string { return &s }

func TestVault_RoundTrip(t *testing.T) {
	v := newTestVault(t)

	keys := []string{"sk-proj-abc123", "AIzaSyD-example", "sk-ant-api03-xyz", "pplx-1234", "ключ with unicode", " "}
	for _, k := range keys {
		encrypted, err := v.Encrypt(k)
		require.NoError(t, err)
		assert.NotEqual(t, k, encrypted)
		assert.Len(t, strings.Split(encrypted, ":"), 3)

		decrypted := v.Decrypt(&encrypted)
		require.NotNil(t, decrypted)
		assert.Equal(t, k, *decrypted)
	}
}

func TestVault_EncryptIsRandomized(t *testing.T) {
	v := newTestVault(t)

	a, err := v.Encrypt("same")
	require.NoError(t, err)
	b, err := v.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVault_DecryptNeverFails(t *testing.T) {
	v := newTestVault(t)

	tests := []struct {
		name  string
		input *string
	}{
		{name: "nil", input: nil},
		{name: "empty", input: strPtr("")},
		{name: "plaintext", input: strPtr("not-ciphertext")},
		{name: "plaintext api key", input: strPtr("sk-proj-abc123")},
		{name: "bad hex", input: strPtr("zz:yy:xx")},
		{name: "short nonce", input: strPtr("abcd:00112233445566778899aabbccddeeff:abcd")},
		{name: "tampered", input: strPtr("000000000000000000000000:00112233445566778899aabbccddeeff:abcd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, v.Decrypt(tt.input))
		})
	}
}

func TestVault_DecryptWithDifferentSecret(t *testing.T) {
	v := newTestVault(t)
	encrypted, err := v.Encrypt("sk-secret")
	require.NoError(t, err)

	other, err := New("another-secret")
	require.NoError(t, err)

	assert.Nil(t, other.Decrypt(&encrypted))
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	assert.Nil(t, Mask(nil))
	assert.Nil(t, Mask(strPtr("")))

	masked := Mask(strPtr("a:b:c"))
	require.NotNil(t, masked)
	assert.Equal(t, MaskedSentinel, *masked)
}

func TestSecretUpdate_Apply(t *testing.T) {
	v := newTestVault(t)
	stored, err := v.Encrypt("sk-old")
	require.NoError(t, err)

	t.Run("masked sentinel keeps stored ciphertext", func(t *testing.T) {
		next, err := ParseSecretUpdate(strPtr(MaskedSentinel)).Apply(v, &stored)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, stored, *next)
	})

	t.Run("null clears", func(t *testing.T) {
		next, err := ParseSecretUpdate(nil).Apply(v, &stored)
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("empty string clears", func(t *testing.T) {
		next, err := ParseSecretUpdate(strPtr("")).Apply(v, &stored)
		require.NoError(t, err)
		assert.Nil(t, next)
	})

	t.Run("new value is encrypted", func(t *testing.T) {
		next, err := ParseSecretUpdate(strPtr("sk-new")).Apply(v, &stored)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.NotEqual(t, "sk-new", *next)

		decrypted := v.Decrypt(next)
		require.NotNil(t, decrypted)
		assert.Equal(t, "sk-new", *decrypted)
	})
}

func TestSecretUpdate_UnmarshalJSON(t *testing.T) {
	var payload struct {
		OpenAI     SecretUpdate `json:"openai_key"`
		Gemini     SecretUpdate `json:"gemini_key"`
		Anthropic  SecretUpdate `json:"anthropic_key"`
		Perplexity SecretUpdate `json:"perplexity_key"`
	}

	body := `{"openai_key":"***masked***","gemini_key":null,"anthropic_key":"sk-ant"}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.Equal(t, SecretUnchanged, payload.OpenAI.Action)
	assert.Equal(t, SecretClear, payload.Gemini.Action)
	assert.Equal(t, SecretSet, payload.Anthropic.Action)
	assert.Equal(t, "sk-ant", payload.Anthropic.Value)
	// absent field
	assert.Equal(t, SecretUnchanged, payload.Perplexity.Action)
}
