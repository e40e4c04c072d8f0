package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCredentialHasher_HashAndVerify(t *testing.T) {
	h := NewAdminCredentialHasher()

	encoded, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v="))
	assert.Contains(t, encoded, "m=65536,t=1,p=4")

	ok, err := h.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminCredentialHasher_SaltedPerHash(t *testing.T) {
	h := NewAdminCredentialHasher()

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "fresh salt per hash")
}

// Stored parameters win over the hasher's own, so a credential hashed
// under an older cost point keeps verifying after a parameter bump.
func TestAdminCredentialHasher_VerifiesOlderCostPoint(t *testing.T) {
	old := &AdminCredentialHasher{passes: 2, memoryKiB: 32 * 1024, lanes: 2, saltLen: 16, tagLen: 32}
	encoded, err := old.Hash("pre-bump password")
	require.NoError(t, err)
	assert.Contains(t, encoded, "m=32768,t=2,p=2")

	ok, err := NewAdminCredentialHasher().Verify("pre-bump password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdminCredentialHasher_RejectsMalformedHashes(t *testing.T) {
	h := NewAdminCredentialHasher()

	tests := []struct {
		name    string
		encoded string
	}{
		{"not argon2id", "$bcrypt$2b$12$abcdefghijkl"},
		{"missing fields", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad version", "$argon2id$v=banana$m=65536,t=1,p=4$c2FsdA$dGFn"},
		{"bad params", "$argon2id$v=19$m=lots$c2FsdA$dGFn"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$dGFn"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify("anything", tt.encoded)
			assert.Error(t, err)
		})
	}
}
