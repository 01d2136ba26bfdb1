// Package cipher implements algorithm-agnostic, single-shot AEAD sealing and
// opening. It is the non-streaming counterpart to package stream, and is
// used both directly for MemoryMode data and internally to wrap/unwrap the
// master key inside a keyslot.
package cipher

import (
	stdcipher "crypto/aes"
	cryptocipher "crypto/cipher"
	"fmt"

	"github.com/oasisprotocol/deoxysii"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
)

// ErrInit is returned when the underlying AEAD rejects the supplied key.
// Given that every wrapping key is always exactly 32 bytes (enforced by
// primitives.MasterKeyLen and the key-hashing output), this should be
// unreachable in practice; it is retained so a future algorithm addition
// fails loudly instead of silently.
var ErrInit = fmt.Errorf("cipher: unable to initialize AEAD with the supplied key")

// Payload pairs a message with the associated data it should be bound to.
// AAD is authenticated but never encrypted.
type Payload struct {
	AAD []byte
	Msg []byte
}

// Cipher seals and opens data in a single shot, for one of the three AEAD
// families the engine supports.
type Cipher struct {
	aead cryptocipher.AEAD
}

// Initialize builds a Cipher from a 32-byte wrapping key. The key Secret is
// released (zeroized) before Initialize returns, regardless of outcome.
func Initialize(key *secret.Secret[*secret.Array32], alg primitives.Algorithm) (*Cipher, error) {
	defer key.Release()

	aead, err := NewAEAD(key.Expose()[:], alg)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// NewAEAD builds the raw crypto/cipher.AEAD for alg from a 32-byte key. It is
// exported so package stream can build the same underlying primitive that
// EncryptorLE31/DecryptorLE31 wrap, without duplicating the per-algorithm
// switch.
func NewAEAD(key []byte, alg primitives.Algorithm) (cryptocipher.AEAD, error) {
	var aead cryptocipher.AEAD
	var err error

	switch alg {
	case primitives.XChaCha20Poly1305:
		aead, err = chacha20poly1305.NewX(key)
	case primitives.Aes256Gcm:
		var block stdcipher.Block
		block, err = stdcipher.NewCipher(key)
		if err == nil {
			aead, err = cryptocipher.NewGCM(block)
		}
	case primitives.DeoxysII256:
		aead, err = deoxysii.New(key)
	default:
		return nil, fmt.Errorf("cipher: unknown algorithm %d", alg)
	}

	if err != nil {
		return nil, ErrInit
	}

	return aead, nil
}

// Encrypt seals payload.Msg under nonce, authenticating payload.AAD alongside
// it. The returned slice is msg length + the AEAD's tag overhead.
func (c *Cipher) Encrypt(nonce []byte, payload Payload) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("cipher: nonce is %d bytes, want %d", len(nonce), c.aead.NonceSize())
	}
	return c.aead.Seal(nil, nonce, payload.Msg, payload.AAD), nil
}

// Decrypt opens payload.Msg (ciphertext+tag) under nonce, verifying
// payload.AAD. It fails if the key, nonce, ciphertext, or AAD do not match
// what was used to encrypt.
func (c *Cipher) Decrypt(nonce []byte, payload Payload) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, fmt.Errorf("cipher: nonce is %d bytes, want %d", len(nonce), c.aead.NonceSize())
	}
	out, err := c.aead.Open(nil, nonce, payload.Msg, payload.AAD)
	if err != nil {
		return nil, fmt.Errorf("cipher: open failed: %w", err)
	}
	return out, nil
}
