package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"eduplatform/config"

	"golang.org/x/crypto/argon2"
)

var ErrInvalidHash = errors.New("encoded password hash is invalid")

// ArgonParams configures argon2id.
type ArgonParams struct {
	Time     uint32
	MemoryKB uint32
	Threads  uint8
	SaltLen  uint32
	KeyLen   uint32
}

func argonParams() ArgonParams {
	p := ArgonParams{Time: 1, MemoryKB: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}
	if cfg := config.AppConfig; cfg != nil {
		if cfg.ArgonTime > 0 {
			p.Time = cfg.ArgonTime
		}
		if cfg.ArgonMemoryKB > 0 {
			p.MemoryKB = cfg.ArgonMemoryKB
		}
		if cfg.ArgonThreads > 0 {
			p.Threads = cfg.ArgonThreads
		}
	}
	return p
}

// HashPassword derives an argon2id hash with a random salt, encoded as
// $argon2id$v=19$m=<kb>,t=<time>,p=<threads>$<salt>$<hash>.
func HashPassword(password string) (string, error) {
	p := argonParams()

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKB, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches encoded, using the parameters stored in encoded.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrInvalidHash
	}

	var p ArgonParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKB, &p.Time, &p.Threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	got := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKB, p.Threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
