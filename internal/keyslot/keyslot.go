// Package keyslot implements master-key recovery from a header's keyslots,
// and the V5-only add/change/delete/verify operations used to manage
// multiple passwords/keyfiles on one encrypted file.
package keyslot

import (
	"fmt"
	"io"

	"github.com/dexios-go/dexios/internal/cipher"
	"github.com/dexios-go/dexios/internal/header"
	"github.com/dexios-go/dexios/internal/keyhash"
	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
)

// Sentinel errors, one per failure mode a keyslot operation can hit. These
// are deliberately coarse: an incorrect key and a corrupted keyslot look
// identical from the outside, and collapsing them avoids leaking which case
// occurred to an attacker probing the file.
var (
	ErrUnsupported     = fmt.Errorf("keyslot: this operation requires a header version >= V5")
	ErrIncorrectKey    = fmt.Errorf("keyslot: unable to decrypt the master key (maybe you supplied the wrong key?)")
	ErrTooManyKeyslots = fmt.Errorf("keyslot: there are already too many populated keyslots in this file")
	ErrMissingKeyslots = fmt.Errorf("keyslot: header has no keyslots")
)

func hashKindToKeyhash(k header.HashKind) keyhash.Algorithm {
	if k == header.Blake3Balloon {
		return keyhash.Blake3Balloon
	}
	return keyhash.Argon2id
}

// hashRawKey runs rawKey through the memory-hard function identified by ha,
// deriving the wrapping key used to seal/open one keyslot.
func hashRawKey(ha header.HashAlgorithm, rawKey *secret.Secret[secret.Bytes], salt [primitives.SaltLen]byte) (*secret.Secret[*secret.Array32], error) {
	return keyhash.Hash(hashKindToKeyhash(ha.Kind), rawKey, salt, ha.Param)
}

// copyRawKey clones rawKey's bytes into a fresh Secret, since every keyslot
// attempt consumes (and zeroizes) its own copy.
func copyRawKey(rawKey []byte) *secret.Secret[secret.Bytes] {
	cp := make(secret.Bytes, len(rawKey))
	copy(cp, rawKey)
	return secret.New(cp)
}

// DecryptMasterKey recovers the data-encryption master key from header using
// rawKey, trying every keyslot (V4 has exactly one; V5 has up to four) until
// one succeeds. rawKey is released before this function returns.
func DecryptMasterKey(rawKey *secret.Secret[secret.Bytes], h *header.Header) (*secret.Secret[*secret.Array32], error) {
	defer rawKey.Release()

	if len(h.Keyslots) == 0 {
		return nil, ErrMissingKeyslots
	}

	raw := append([]byte(nil), rawKey.Expose()...)
	defer secret.Bytes(raw).Zeroize()

	key, _, err := decryptWithIndex(h.Keyslots, raw, h.Type.Algorithm)
	return key, err
}

// DecryptMasterKeyWithIndex is DecryptMasterKey, but also returns which
// keyslot index matched — needed by change/delete to know which slot to
// replace or remove.
func DecryptMasterKeyWithIndex(rawKey *secret.Secret[secret.Bytes], keyslots []header.Keyslot, algorithm primitives.Algorithm) (*secret.Secret[*secret.Array32], int, error) {
	defer rawKey.Release()

	if len(keyslots) == 0 {
		return nil, 0, ErrMissingKeyslots
	}

	raw := append([]byte(nil), rawKey.Expose()...)
	defer secret.Bytes(raw).Zeroize()

	return decryptWithIndex(keyslots, raw, algorithm)
}

func decryptWithIndex(keyslots []header.Keyslot, raw []byte, algorithm primitives.Algorithm) (*secret.Secret[*secret.Array32], int, error) {
	for i, slot := range keyslots {
		key, err := hashRawKey(slot.HashAlgorithm, copyRawKey(raw), slot.Salt)
		if err != nil {
			continue
		}
		c, err := cipher.Initialize(key, algorithm)
		if err != nil {
			continue
		}
		plain, err := c.Decrypt(slot.Nonce, cipher.Payload{Msg: slot.EncryptedKey[:]})
		if err != nil {
			continue
		}

		var out secret.Array32
		copy(out[:], plain)
		secret.Bytes(plain).Zeroize()
		return secret.New(&out), i, nil
	}
	return nil, 0, ErrIncorrectKey
}

// encryptMasterKey seals masterKey under keyNew, for storage in a keyslot.
// Both Secrets are released before returning.
func encryptMasterKey(masterKey *secret.Secret[*secret.Array32], keyNew *secret.Secret[*secret.Array32], nonce []byte, algorithm primitives.Algorithm) ([primitives.EncryptedMasterKeyLen]byte, error) {
	var out [primitives.EncryptedMasterKeyLen]byte

	c, err := cipher.Initialize(keyNew, algorithm)
	if err != nil {
		masterKey.Release()
		return out, err
	}
	mk := masterKey.Expose()
	ct, err := c.Encrypt(nonce, cipher.Payload{Msg: mk[:]})
	masterKey.Release()
	if err != nil {
		return out, fmt.Errorf("keyslot: encrypt master key: %w", err)
	}
	copy(out[:], ct)
	return out, nil
}

// requireV5 rejects any header version below V5, since add/change/delete/
// verify are only defined for the multi-keyslot V5 layout.
func requireV5(h *header.Header) error {
	if h.Type.Version < header.V5 {
		return ErrUnsupported
	}
	return nil
}

// rewindToHeaderStart seeks rw back by the header's on-disk size, so a
// rewritten header can be written over the original bytes in place.
func rewindToHeaderStart(rw io.Seeker, h *header.Header) error {
	_, err := rw.Seek(-h.Size(), io.SeekCurrent)
	return err
}

// Add appends a new keyslot, wrapping the master key recovered via
// rawKeyOld under rawKeyNew hashed with hashAlgorithm. Fails with
// ErrTooManyKeyslots once the header already carries four keyslots. On any
// error, rw is left unmodified: the header is only rewritten after every
// step succeeds.
func Add(rw io.ReadWriteSeeker, rawKeyOld, rawKeyNew *secret.Secret[secret.Bytes], hashAlgorithm header.HashAlgorithm) error {
	h, _, err := header.Deserialize(rw)
	if err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return fmt.Errorf("keyslot: deserialize header: %w", err)
	}
	if err := requireV5(h); err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return err
	}

	if len(h.Keyslots) >= 4 {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return ErrTooManyKeyslots
	}

	if err := rewindToHeaderStart(rw, h); err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return fmt.Errorf("keyslot: seek back to header start: %w", err)
	}

	masterKey, _, err := DecryptMasterKeyWithIndex(rawKeyOld, h.Keyslots, h.Type.Algorithm)
	if err != nil {
		rawKeyNew.Release()
		return err
	}

	salt, err := primitives.GenSalt()
	if err != nil {
		masterKey.Release()
		rawKeyNew.Release()
		return err
	}
	nonce, err := primitives.GenNonce(h.Type.Algorithm, primitives.MemoryMode)
	if err != nil {
		masterKey.Release()
		rawKeyNew.Release()
		return err
	}

	keyNew, err := hashRawKey(hashAlgorithm, rawKeyNew, salt)
	if err != nil {
		masterKey.Release()
		return err
	}

	encKey, err := encryptMasterKey(masterKey, keyNew, nonce, h.Type.Algorithm)
	if err != nil {
		return err
	}

	h.Keyslots = append(h.Keyslots, header.Keyslot{
		HashAlgorithm: hashAlgorithm,
		EncryptedKey:  encKey,
		Nonce:         nonce,
		Salt:          salt,
	})

	return h.Write(rw)
}

// Change replaces the keyslot that rawKeyOld unlocks with a new one wrapping
// the same master key under rawKeyNew hashed with hashAlgorithm. The
// replaced keyslot's position in the header is preserved.
func Change(rw io.ReadWriteSeeker, rawKeyOld, rawKeyNew *secret.Secret[secret.Bytes], hashAlgorithm header.HashAlgorithm) error {
	h, _, err := header.Deserialize(rw)
	if err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return fmt.Errorf("keyslot: deserialize header: %w", err)
	}
	if err := requireV5(h); err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return err
	}

	if err := rewindToHeaderStart(rw, h); err != nil {
		rawKeyOld.Release()
		rawKeyNew.Release()
		return fmt.Errorf("keyslot: seek back to header start: %w", err)
	}

	masterKey, index, err := DecryptMasterKeyWithIndex(rawKeyOld, h.Keyslots, h.Type.Algorithm)
	if err != nil {
		rawKeyNew.Release()
		return err
	}

	salt, err := primitives.GenSalt()
	if err != nil {
		masterKey.Release()
		rawKeyNew.Release()
		return err
	}
	nonce, err := primitives.GenNonce(h.Type.Algorithm, primitives.MemoryMode)
	if err != nil {
		masterKey.Release()
		rawKeyNew.Release()
		return err
	}

	keyNew, err := hashRawKey(hashAlgorithm, rawKeyNew, salt)
	if err != nil {
		masterKey.Release()
		return err
	}

	encKey, err := encryptMasterKey(masterKey, keyNew, nonce, h.Type.Algorithm)
	if err != nil {
		return err
	}

	h.Keyslots[index] = header.Keyslot{
		HashAlgorithm: hashAlgorithm,
		EncryptedKey:  encKey,
		Nonce:         nonce,
		Salt:          salt,
	}

	return h.Write(rw)
}

// Delete removes the keyslot that rawKey unlocks.
func Delete(rw io.ReadWriteSeeker, rawKey *secret.Secret[secret.Bytes]) error {
	h, _, err := header.Deserialize(rw)
	if err != nil {
		rawKey.Release()
		return fmt.Errorf("keyslot: deserialize header: %w", err)
	}
	if err := requireV5(h); err != nil {
		rawKey.Release()
		return err
	}

	if err := rewindToHeaderStart(rw, h); err != nil {
		rawKey.Release()
		return fmt.Errorf("keyslot: seek back to header start: %w", err)
	}

	masterKey, index, err := DecryptMasterKeyWithIndex(rawKey, h.Keyslots, h.Type.Algorithm)
	if err != nil {
		return err
	}
	masterKey.Release()

	h.Keyslots = append(h.Keyslots[:index], h.Keyslots[index+1:]...)

	return h.Write(rw)
}

// Verify confirms rawKey unlocks one of header's keyslots, without mutating
// anything. It is used to validate a password before an expensive operation
// (e.g. re-encrypting a very large file) commits to it.
func Verify(r io.ReadSeeker, rawKey *secret.Secret[secret.Bytes]) error {
	h, _, err := header.Deserialize(r)
	if err != nil {
		rawKey.Release()
		return fmt.Errorf("keyslot: deserialize header: %w", err)
	}
	if err := requireV5(h); err != nil {
		rawKey.Release()
		return err
	}

	masterKey, _, err := DecryptMasterKeyWithIndex(rawKey, h.Keyslots, h.Type.Algorithm)
	if err != nil {
		return err
	}
	masterKey.Release()
	return nil
}
