// Package domain wires together the header, keyslot, keyhash, cipher and
// stream packages into the two end-to-end operations users actually care
// about: encrypting a plaintext into a Dexios file, and decrypting one back.
package domain

import (
	"fmt"
	"io"

	"github.com/dexios-go/dexios/internal/cipher"
	"github.com/dexios-go/dexios/internal/header"
	"github.com/dexios-go/dexios/internal/keyhash"
	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
	"github.com/dexios-go/dexios/internal/stream"
)

// Sentinel errors for Encrypt, one per step that can fail.
var (
	ErrResetCursor      = fmt.Errorf("domain: unable to reset cursor position")
	ErrHashKey          = fmt.Errorf("domain: cannot hash raw key")
	ErrEncryptMasterKey = fmt.Errorf("domain: cannot encrypt master key")
	ErrEncryptFile      = fmt.Errorf("domain: cannot encrypt file")
	ErrWriteHeader      = fmt.Errorf("domain: cannot write header")
	ErrInitStreams      = fmt.Errorf("domain: cannot initialize streams")
	ErrInitCipher       = fmt.Errorf("domain: cannot initialize cipher")
	ErrCreateAAD        = fmt.Errorf("domain: cannot create AAD")
)

// hashKindFor dispatches a header.HashKind to the keyhash.Algorithm that
// implements it.
func hashKindFor(k header.HashKind) keyhash.Algorithm {
	if k == header.Blake3Balloon {
		return keyhash.Blake3Balloon
	}
	return keyhash.Argon2id
}

// EncryptRequest describes one encrypt operation.
type EncryptRequest struct {
	Reader io.ReadSeeker
	Writer io.WriteSeeker
	// HeaderWriter, if non-nil, receives the serialized header instead of
	// Writer, producing a detached header and a headerless ciphertext.
	HeaderWriter  io.Writer
	RawKey        *secret.Secret[secret.Bytes]
	HeaderType    header.Type
	HashAlgorithm header.HashAlgorithm
	// OnProgress, if set, is called once per processed block in StreamMode.
	// It is ignored in MemoryMode, which has no blocks to report between.
	OnProgress stream.ProgressCallback
	// Total, if set, is the plaintext size passed through to OnProgress.
	Total int64
}

// Encrypt derives a wrapping key from req.RawKey, seals a freshly generated
// master key into a single keyslot, writes the header, and encrypts the
// data read from req.Reader under the master key, in req.HeaderType.Mode.
//
// Only V4 and V5 headers are accepted: earlier versions have no keyslot
// region to hold the sealed master key.
func Encrypt(req EncryptRequest) error {
	if req.HeaderType.Version < header.V4 {
		req.RawKey.Release()
		return fmt.Errorf("domain: encryption requires header version >= V4, got %v", req.HeaderType.Version)
	}

	salt, err := primitives.GenSalt()
	if err != nil {
		req.RawKey.Release()
		return err
	}

	wrappingKey, err := keyhash.Hash(hashKindFor(req.HashAlgorithm.Kind), req.RawKey, salt, req.HashAlgorithm.Param)
	if err != nil {
		return ErrHashKey
	}

	keyslotCipher, err := cipher.Initialize(wrappingKey, req.HeaderType.Algorithm)
	if err != nil {
		return ErrInitCipher
	}

	masterKey, err := primitives.GenMasterKey()
	if err != nil {
		return err
	}
	masterKeyNonce, err := primitives.GenNonce(req.HeaderType.Algorithm, primitives.MemoryMode)
	if err != nil {
		masterKey.Release()
		return err
	}

	mkBytes := masterKey.Expose()
	ct, err := keyslotCipher.Encrypt(masterKeyNonce, cipher.Payload{Msg: mkBytes[:]})
	if err != nil {
		masterKey.Release()
		return ErrEncryptMasterKey
	}
	var encKey [primitives.EncryptedMasterKeyLen]byte
	copy(encKey[:], ct)

	// Copy the master key into a fresh Secret for sealing the data itself,
	// then release the original now that the keyslot has been sealed.
	var dataKeyArr secret.Array32
	copy(dataKeyArr[:], mkBytes[:])
	masterKey.Release()
	dataKey := secret.New(&dataKeyArr)

	slot := header.Keyslot{
		HashAlgorithm: req.HashAlgorithm,
		EncryptedKey:  encKey,
		Nonce:         masterKeyNonce,
		Salt:          salt,
	}

	headerNonce, err := primitives.GenNonce(req.HeaderType.Algorithm, req.HeaderType.Mode)
	if err != nil {
		dataKey.Release()
		return err
	}

	h := &header.Header{
		Type:     req.HeaderType,
		Nonce:    headerNonce,
		Salt:     &salt,
		Keyslots: []header.Keyslot{slot},
	}

	if _, err := req.Writer.Seek(0, io.SeekStart); err != nil {
		dataKey.Release()
		return ErrResetCursor
	}

	if req.HeaderWriter == nil {
		if err := h.Write(req.Writer); err != nil {
			dataKey.Release()
			return ErrWriteHeader
		}
	} else {
		if err := h.Write(req.HeaderWriter); err != nil {
			dataKey.Release()
			return ErrWriteHeader
		}
	}

	aad, err := h.CreateAAD()
	if err != nil {
		dataKey.Release()
		return ErrCreateAAD
	}

	if _, err := req.Reader.Seek(0, io.SeekStart); err != nil {
		dataKey.Release()
		return ErrResetCursor
	}

	switch req.HeaderType.Mode {
	case primitives.MemoryMode:
		plaintext, err := io.ReadAll(req.Reader)
		if err != nil {
			dataKey.Release()
			return ErrEncryptFile
		}
		c, err := cipher.Initialize(dataKey, req.HeaderType.Algorithm)
		if err != nil {
			return ErrInitCipher
		}
		ct, err := c.Encrypt(h.Nonce, cipher.Payload{AAD: aad, Msg: plaintext})
		if err != nil {
			return ErrEncryptFile
		}
		if _, err := req.Writer.Write(ct); err != nil {
			return ErrEncryptFile
		}
		return nil

	case primitives.StreamMode:
		enc, err := stream.NewEncryptor(dataKey, h.Nonce, req.HeaderType.Algorithm)
		if err != nil {
			return ErrInitStreams
		}
		enc.OnProgress = req.OnProgress
		enc.Total = req.Total
		if err := enc.EncryptFile(req.Reader, req.Writer, aad); err != nil {
			return ErrEncryptFile
		}
		return nil

	default:
		dataKey.Release()
		return fmt.Errorf("domain: unknown mode %v", req.HeaderType.Mode)
	}
}
