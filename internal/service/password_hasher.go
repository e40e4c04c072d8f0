package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// AdminCredentialHasher implements ports.HashService with Argon2id for
// admin passwords. Hashes are stored in PHC string form, so the parameters
// travel with the hash and older credentials keep verifying after a
// parameter bump.
type AdminCredentialHasher struct {
	passes    uint32
	memoryKiB uint32
	lanes     uint8
	saltLen   int
	tagLen    uint32
}

// NewAdminCredentialHasher returns a hasher at the interactive-login cost
// point: 64MB memory, single pass, four lanes.
func NewAdminCredentialHasher() *AdminCredentialHasher {
	return &AdminCredentialHasher{
		passes:    1,
		memoryKiB: 64 * 1024,
		lanes:     4,
		saltLen:   16,
		tagLen:    32,
	}
}

// Hash derives an Argon2id tag under a fresh salt and encodes both as
// $argon2id$v=19$m=<kib>,t=<passes>,p=<lanes>$<salt>$<tag>.
func (h *AdminCredentialHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("credential salt: %w", err)
	}
	tag := argon2.IDKey([]byte(password), salt, h.passes, h.memoryKiB, h.lanes, h.tagLen)

	var b strings.Builder
	fmt.Fprintf(&b, "$argon2id$v=%d$m=%d,t=%d,p=%d$", argon2.Version, h.memoryKiB, h.passes, h.lanes)
	b.WriteString(base64.RawStdEncoding.EncodeToString(salt))
	b.WriteByte('$')
	b.WriteString(base64.RawStdEncoding.EncodeToString(tag))
	return b.String(), nil
}

// Verify re-derives the tag under the parameters recorded in encoded and
// compares in constant time. The stored parameters win over the hasher's
// own, so credentials hashed under an older cost point still verify.
func (h *AdminCredentialHasher) Verify(password string, encoded string) (bool, error) {
	salt, tag, stored, err := parseCredentialHash(encoded)
	if err != nil {
		return false, err
	}
	derived := argon2.IDKey([]byte(password), salt, stored.passes, stored.memoryKiB, stored.lanes, uint32(len(tag)))
	return subtle.ConstantTimeCompare(tag, derived) == 1, nil
}

type credentialParams struct {
	passes    uint32
	memoryKiB uint32
	lanes     uint8
}

func parseCredentialHash(encoded string) (salt, tag []byte, params credentialParams, err error) {
	rest, ok := strings.CutPrefix(encoded, "$argon2id$")
	if !ok {
		return nil, nil, params, fmt.Errorf("credential hash is not argon2id")
	}
	fields := strings.Split(rest, "$")
	if len(fields) != 4 {
		return nil, nil, params, fmt.Errorf("malformed credential hash: %d fields", len(fields))
	}

	var version int
	if _, err = fmt.Sscanf(fields[0], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("credential hash version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, params, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if _, err = fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d", &params.memoryKiB, &params.passes, &params.lanes); err != nil {
		return nil, nil, params, fmt.Errorf("credential hash params: %w", err)
	}

	if salt, err = base64.RawStdEncoding.DecodeString(fields[2]); err != nil {
		return nil, nil, params, fmt.Errorf("credential hash salt: %w", err)
	}
	if tag, err = base64.RawStdEncoding.DecodeString(fields[3]); err != nil {
		return nil, nil, params, fmt.Errorf("credential hash tag: %w", err)
	}
	return salt, tag, params, nil
}
