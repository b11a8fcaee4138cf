package vault

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESVault_RoundTrip(t *testing.T) {
	v, err := New("segredo-de-teste")
	require.NoError(t, err)

	blob, err := v.Encrypt("EAAB-token-de-acesso")
	require.NoError(t, err)

	assert.True(t, IsEncrypted(blob))
	assert.NotContains(t, blob, "EAAB-token-de-acesso")

	parts := strings.Split(blob, ":")
	assert.Len(t, parts[0], ivLength*2)
	assert.Len(t, parts[1], tagLength*2)

	plaintext, err := v.Decrypt(blob)
	require.NoError(t, err)
	assert.Equal(t, "EAAB-token-de-acesso", plaintext)
}

func TestAESVault_EncryptUsesFreshIV(t *testing.T) {
	v, err := New("segredo-de-teste")
	require.NoError(t, err)

	first, err := v.Encrypt("mesmo-token")
	require.NoError(t, err)
	second, err := v.Encrypt("mesmo-token")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAESVault_Decrypt(t *testing.T) {
	v, err := New("segredo-de-teste")
	require.NoError(t, err)

	blob, err := v.Encrypt("token")
	require.NoError(t, err)

	other, err := New("outro-segredo")
	require.NoError(t, err)

	parts := strings.Split(blob, ":")
	tampered := parts[0] + ":" + parts[1] + ":" + strings.Repeat("0", len(parts[2]))

	tests := []struct {
		name    string
		vault   *AESVault
		blob    string
		wantErr error
	}{
		{name: "formato sem separadores", vault: v, blob: "abc", wantErr: ErrInvalidFormat},
		{name: "iv que não é hexadecimal", vault: v, blob: "zz:" + parts[1] + ":" + parts[2], wantErr: ErrInvalidFormat},
		{name: "payload adulterado", vault: v, blob: tampered, wantErr: ErrDecrypt},
		{name: "segredo diferente", vault: other, blob: blob, wantErr: ErrDecrypt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.vault.Decrypt(tt.blob)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIsEncrypted(t *testing.T) {
	v, err := New("segredo-de-teste")
	require.NoError(t, err)
	blob, err := v.Encrypt("EAAB-token")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "blob gerado pelo cofre", value: blob, want: true},
		{name: "texto puro", value: "EAAB-token", want: false},
		{name: "três partes sem hexadecimal", value: "iv:tag:payload", want: false},
		{name: "iv com tamanho errado", value: "abcd:" + strings.Repeat("0", tagLength*2) + ":ff", want: false},
		{name: "vazio", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEncrypted(tt.value))
		})
	}
}

func TestNew_EmptySecret(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
