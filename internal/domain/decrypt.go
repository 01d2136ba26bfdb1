package domain

import (
	"fmt"
	"io"

	"github.com/dexios-go/dexios/internal/cipher"
	"github.com/dexios-go/dexios/internal/header"
	"github.com/dexios-go/dexios/internal/keyslot"
	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
	"github.com/dexios-go/dexios/internal/stream"
)

// Sentinel errors for Decrypt, one per step that can fail.
var (
	ErrDeserializeHeader = fmt.Errorf("domain: cannot deserialize header")
	ErrReadEncryptedData = fmt.Errorf("domain: unable to read encrypted data")
	ErrDecryptMasterKey  = fmt.Errorf("domain: cannot decrypt master key")
	ErrDecryptData       = fmt.Errorf("domain: unable to decrypt data")
	ErrWriteData         = fmt.Errorf("domain: unable to write data")
	ErrRewindReader      = fmt.Errorf("domain: unable to rewind the reader")
)

// OnDecryptedHeader, if set on a DecryptRequest, is called once the header
// has been parsed but before any decryption has happened — callers use it to
// surface the algorithm/mode/version to a user before committing to a
// (potentially very slow) key-hash-and-decrypt.
type OnDecryptedHeader func(header.Type)

// DecryptRequest describes one decrypt operation.
type DecryptRequest struct {
	// HeaderReader, if non-nil, holds a previously detached header; Reader
	// then holds headerless ciphertext, possibly still prefixed with
	// header.Size() zero bytes left over from a Strip that was never
	// followed by a Restore.
	HeaderReader      io.ReadSeeker
	Reader            io.ReadSeeker
	Writer            io.Writer
	RawKey            *secret.Secret[secret.Bytes]
	OnDecryptedHeader OnDecryptedHeader
	// OnProgress, if set, is called once per processed block in StreamMode.
	OnProgress stream.ProgressCallback
	// Total, if set, is the plaintext size passed through to OnProgress.
	Total int64
}

// Decrypt parses req's header (attached or detached), recovers the master
// key from whichever keyslot req.RawKey unlocks, and decrypts the data
// stream in the header's declared mode.
func Decrypt(req DecryptRequest) error {
	var h *header.Header
	var aad []byte
	var err error

	if req.HeaderReader != nil {
		h, aad, err = header.Deserialize(req.HeaderReader)
		if err != nil {
			req.RawKey.Release()
			return ErrDeserializeHeader
		}

		probe := make([]byte, h.Size())
		_, rerr := io.ReadFull(req.Reader, probe)
		if rerr != nil && rerr != io.ErrUnexpectedEOF && rerr != io.EOF {
			req.RawKey.Release()
			return ErrReadEncryptedData
		}

		allZero := true
		for _, b := range probe {
			if b != 0 {
				allZero = false
				break
			}
		}
		if !allZero {
			if _, serr := req.Reader.Seek(0, io.SeekStart); serr != nil {
				req.RawKey.Release()
				return ErrRewindReader
			}
		}
	} else {
		h, aad, err = header.Deserialize(req.Reader)
		if err != nil {
			req.RawKey.Release()
			return ErrDeserializeHeader
		}
	}

	if req.OnDecryptedHeader != nil {
		req.OnDecryptedHeader(h.Type)
	}

	switch h.Type.Mode {
	case primitives.MemoryMode:
		encryptedData, rerr := io.ReadAll(req.Reader)
		if rerr != nil {
			req.RawKey.Release()
			return ErrReadEncryptedData
		}

		masterKey, merr := keyslot.DecryptMasterKey(req.RawKey, h)
		if merr != nil {
			return ErrDecryptMasterKey
		}

		c, cerr := cipher.Initialize(masterKey, h.Type.Algorithm)
		if cerr != nil {
			return ErrDecryptData
		}
		plaintext, derr := c.Decrypt(h.Nonce, cipher.Payload{AAD: aad, Msg: encryptedData})
		if derr != nil {
			return ErrDecryptData
		}
		if _, werr := req.Writer.Write(plaintext); werr != nil {
			return ErrWriteData
		}
		return nil

	case primitives.StreamMode:
		masterKey, merr := keyslot.DecryptMasterKey(req.RawKey, h)
		if merr != nil {
			return ErrDecryptMasterKey
		}

		dec, serr := stream.NewDecryptor(masterKey, h.Nonce, h.Type.Algorithm)
		if serr != nil {
			return ErrDecryptData
		}
		dec.OnProgress = req.OnProgress
		dec.Total = req.Total
		if derr := dec.DecryptFile(req.Reader, req.Writer, aad); derr != nil {
			return ErrDecryptData
		}
		return nil

	default:
		req.RawKey.Release()
		return ErrDecryptData
	}
}
