// Package primitives defines the cryptographic constants, the Algorithm and
// Mode tagged variants, and the nonce-length/randomness helpers shared by
// every other component in the engine.
package primitives

import (
	"crypto/rand"
	"fmt"

	"github.com/dexios-go/dexios/internal/secret"
)

// BlockSize is the streaming block size: plaintext is sealed in blocks of
// this size, with a short final block.
const BlockSize = 1_048_576 // 1 MiB

// SaltLen is the length, in bytes, of every salt used for password hashing.
const SaltLen = 16

// MasterKeyLen is the length, in bytes, of the data-encryption master key.
const MasterKeyLen = 32

// EncryptedMasterKeyLen is the length, in bytes, of a master key once sealed
// inside a keyslot (32-byte key + 16-byte AEAD tag).
const EncryptedMasterKeyLen = 48

// Algorithm identifies which AEAD family protects the data stream.
type Algorithm int

const (
	XChaCha20Poly1305 Algorithm = iota
	Aes256Gcm
	DeoxysII256
)

func (a Algorithm) String() string {
	switch a {
	case XChaCha20Poly1305:
		return "XChaCha20-Poly1305"
	case Aes256Gcm:
		return "AES-256-GCM"
	case DeoxysII256:
		return "Deoxys-II-256"
	default:
		return "unknown algorithm"
	}
}

// Algorithms lists every AEAD supported by the engine, for use by a caller
// presenting a picklist.
var Algorithms = [...]Algorithm{XChaCha20Poly1305, Aes256Gcm, DeoxysII256}

// Mode identifies whether data is sealed in one shot or streamed in blocks.
type Mode int

const (
	StreamMode Mode = iota
	MemoryMode
)

func (m Mode) String() string {
	switch m {
	case StreamMode:
		return "stream mode"
	case MemoryMode:
		return "memory mode"
	default:
		return "unknown mode"
	}
}

// NonceLen returns the nonce length, in bytes, for the given (algorithm,
// mode) pair. Stream-mode nonces are 4 bytes shorter than their memory-mode
// counterparts: the trailing 4 bytes are reserved for the LE31 STREAM
// counter and its last-block flag.
func NonceLen(alg Algorithm, mode Mode) (int, error) {
	var n int
	switch alg {
	case XChaCha20Poly1305:
		n = 24
	case Aes256Gcm:
		n = 12
	case DeoxysII256:
		n = 15
	default:
		return 0, fmt.Errorf("primitives: unknown algorithm %d", alg)
	}
	if mode == StreamMode {
		n -= 4
	}
	return n, nil
}

// GenNonce returns a cryptographically random nonce of the correct length
// for (algorithm, mode).
func GenNonce(alg Algorithm, mode Mode) ([]byte, error) {
	n, err := NonceLen(alg, mode)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, n)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("primitives: generate nonce: %w", err)
	}
	return nonce, nil
}

// GenSalt returns a fresh, cryptographically random SaltLen-byte salt.
func GenSalt() ([SaltLen]byte, error) {
	var salt [SaltLen]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return salt, fmt.Errorf("primitives: generate salt: %w", err)
	}
	return salt, nil
}

// GenMasterKey returns a fresh, cryptographically random master key wrapped
// in a Secret so its lifetime is explicit.
func GenMasterKey() (*secret.Secret[*secret.Array32], error) {
	var arr secret.Array32
	if _, err := rand.Read(arr[:]); err != nil {
		return nil, fmt.Errorf("primitives: generate master key: %w", err)
	}
	return secret.New(&arr), nil
}
