// Package stream implements the LE31 STREAM construction: a sequence of AEAD
// blocks sharing one (key, nonce-prefix) pair, distinguished by a 31-bit
// little-endian block counter packed into the last 4 bytes of the nonce,
// with the top bit of that word reserved as a "this is the final block"
// flag. This is the streaming counterpart to the Hopper-Rogaway STREAM
// construction used (under the same name) by the RustCrypto `aead` crate.
//
// Blocks must be produced, and consumed, in strict sequential order: reusing
// or skipping a counter value reuses a nonce, which breaks the AEAD's
// confidentiality and authenticity guarantees outright.
package stream

import (
	"crypto/cipher"
	"encoding/binary"
	"fmt"
	"io"

	enginecipher "github.com/dexios-go/dexios/internal/cipher"
	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
)

const counterLen = 4

// lastBlockFlag is the high bit of the little-endian counter word, set only
// on the final block's nonce suffix.
const lastBlockFlag = 1 << 31

// maxCounter is the largest block index the 31-bit counter can express
// before colliding with the last-block flag bit.
const maxCounter = 1<<31 - 1

// ErrMessageLimit is returned once more than maxCounter blocks have been
// produced or consumed by one stream.
var ErrMessageLimit = fmt.Errorf("stream: message limit reached for this nonce")

// ErrSealFailed collapses every AEAD failure during streaming encryption.
var ErrSealFailed = fmt.Errorf("stream: unable to encrypt the data")

// ErrOpenFailed collapses every AEAD failure during streaming decryption:
// wrong key, corrupted ciphertext, and a tampered header/AAD are
// indistinguishable from each other, by design.
var ErrOpenFailed = fmt.Errorf("stream: wrong key, not an encrypted file, or header tampered")

func nonceFor(prefix []byte, counter uint32, last bool) []byte {
	suffix := counter
	if last {
		suffix |= lastBlockFlag
	}
	nonce := make([]byte, len(prefix)+counterLen)
	copy(nonce, prefix)
	binary.LittleEndian.PutUint32(nonce[len(prefix):], suffix)
	return nonce
}

// ProgressCallback reports how many plaintext bytes have been processed so
// far, out of total (which may be 0 if the caller doesn't know it upfront).
type ProgressCallback func(processed, total int64)

// Encryptor seals successive plaintext blocks under one (key, nonce-prefix)
// pair. It is consumed by EncryptLast: once the final block has been sealed,
// the Encryptor must not be reused.
type Encryptor struct {
	aead    cipher.AEAD
	prefix  []byte
	counter uint32
	done    bool

	// OnProgress, if set, is invoked once per block written by EncryptFile.
	OnProgress ProgressCallback
	// Total is the plaintext size reported to OnProgress, when known.
	Total int64
}

// NewEncryptor builds an Encryptor from a 32-byte master key and the
// header's data nonce (already the stream-mode, 4-bytes-short length for
// alg). The key Secret is released before NewEncryptor returns.
func NewEncryptor(key *secret.Secret[*secret.Array32], nonce []byte, alg primitives.Algorithm) (*Encryptor, error) {
	defer key.Release()

	wantLen, err := primitives.NonceLen(alg, primitives.StreamMode)
	if err != nil {
		return nil, err
	}
	if len(nonce) != wantLen {
		return nil, fmt.Errorf("stream: nonce is %d bytes, want %d", len(nonce), wantLen)
	}

	aead, err := enginecipher.NewAEAD(key.Expose()[:], alg)
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, len(nonce))
	copy(prefix, nonce)
	return &Encryptor{aead: aead, prefix: prefix}, nil
}

// EncryptNext seals one non-final block.
func (e *Encryptor) EncryptNext(aad, msg []byte) ([]byte, error) {
	if e.done {
		return nil, fmt.Errorf("stream: encryptor already finalized")
	}
	if e.counter > maxCounter {
		return nil, ErrMessageLimit
	}
	nonce := nonceFor(e.prefix, e.counter, false)
	e.counter++
	ct := e.aead.Seal(nil, nonce, msg, aad)
	return ct, nil
}

// EncryptLast seals the final block and marks the Encryptor done.
func (e *Encryptor) EncryptLast(aad, msg []byte) ([]byte, error) {
	if e.done {
		return nil, fmt.Errorf("stream: encryptor already finalized")
	}
	nonce := nonceFor(e.prefix, e.counter, true)
	e.done = true
	ct := e.aead.Seal(nil, nonce, msg, aad)
	return ct, nil
}

// EncryptFile reads plaintext from r in BlockSize chunks, sealing each with
// EncryptNext (or EncryptLast for the final, short chunk), and writes the
// ciphertext blocks to w. aad is authenticated with every block.
func (e *Encryptor) EncryptFile(r io.Reader, w io.Writer, aad []byte) error {
	buf := make([]byte, primitives.BlockSize)
	defer secret.Bytes(buf).Zeroize()

	var processed int64
	for {
		n, err := io.ReadFull(r, buf)
		switch {
		case err == nil:
			ct, encErr := e.EncryptNext(aad, buf)
			if encErr != nil {
				return ErrSealFailed
			}
			if _, werr := w.Write(ct); werr != nil {
				return fmt.Errorf("stream: write ciphertext block: %w", werr)
			}
			processed += int64(n)
			if e.OnProgress != nil {
				e.OnProgress(processed, e.Total)
			}
		case err == io.ErrUnexpectedEOF || err == io.EOF:
			ct, encErr := e.EncryptLast(aad, buf[:n])
			if encErr != nil {
				return ErrSealFailed
			}
			if _, werr := w.Write(ct); werr != nil {
				return fmt.Errorf("stream: write final ciphertext block: %w", werr)
			}
			processed += int64(n)
			if e.OnProgress != nil {
				e.OnProgress(processed, e.Total)
			}
			if f, ok := w.(interface{ Flush() error }); ok {
				return f.Flush()
			}
			return nil
		default:
			return fmt.Errorf("stream: read plaintext block: %w", err)
		}
	}
}

// Decryptor opens successive ciphertext blocks under one (key, nonce-prefix)
// pair. It is consumed by DecryptLast.
type Decryptor struct {
	aead    cipher.AEAD
	prefix  []byte
	counter uint32
	done    bool

	// OnProgress, if set, is invoked once per block written by DecryptFile.
	OnProgress ProgressCallback
	// Total is the plaintext size reported to OnProgress, when known.
	Total int64
}

// NewDecryptor builds a Decryptor from a 32-byte master key and the header's
// data nonce. The key Secret is released before NewDecryptor returns.
func NewDecryptor(key *secret.Secret[*secret.Array32], nonce []byte, alg primitives.Algorithm) (*Decryptor, error) {
	defer key.Release()

	wantLen, err := primitives.NonceLen(alg, primitives.StreamMode)
	if err != nil {
		return nil, err
	}
	if len(nonce) != wantLen {
		return nil, fmt.Errorf("stream: nonce is %d bytes, want %d", len(nonce), wantLen)
	}

	aead, err := enginecipher.NewAEAD(key.Expose()[:], alg)
	if err != nil {
		return nil, err
	}

	prefix := make([]byte, len(nonce))
	copy(prefix, nonce)
	return &Decryptor{aead: aead, prefix: prefix}, nil
}

// DecryptNext opens one non-final block.
func (d *Decryptor) DecryptNext(aad, ct []byte) ([]byte, error) {
	if d.done {
		return nil, fmt.Errorf("stream: decryptor already finalized")
	}
	if d.counter > maxCounter {
		return nil, ErrMessageLimit
	}
	nonce := nonceFor(d.prefix, d.counter, false)
	d.counter++
	pt, err := d.aead.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return pt, nil
}

// DecryptLast opens the final block and marks the Decryptor done.
func (d *Decryptor) DecryptLast(aad, ct []byte) ([]byte, error) {
	if d.done {
		return nil, fmt.Errorf("stream: decryptor already finalized")
	}
	nonce := nonceFor(d.prefix, d.counter, true)
	d.done = true
	pt, err := d.aead.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return pt, nil
}

// DecryptFile reads ciphertext from r in (BlockSize+tag) chunks, opening
// each with DecryptNext (or DecryptLast for the final, short chunk), and
// writes the recovered plaintext to w.
func (d *Decryptor) DecryptFile(r io.Reader, w io.Writer, aad []byte) error {
	const tagLen = 16
	buf := make([]byte, primitives.BlockSize+tagLen)

	var processed int64
	for {
		n, err := io.ReadFull(r, buf)
		switch {
		case err == nil:
			pt, decErr := d.DecryptNext(aad, buf)
			if decErr != nil {
				return ErrOpenFailed
			}
			if _, werr := w.Write(pt); werr != nil {
				secret.Bytes(pt).Zeroize()
				return fmt.Errorf("stream: write plaintext block: %w", werr)
			}
			processed += int64(len(pt))
			secret.Bytes(pt).Zeroize()
			if d.OnProgress != nil {
				d.OnProgress(processed, d.Total)
			}
		case err == io.ErrUnexpectedEOF || err == io.EOF:
			pt, decErr := d.DecryptLast(aad, buf[:n])
			if decErr != nil {
				return ErrOpenFailed
			}
			if _, werr := w.Write(pt); werr != nil {
				secret.Bytes(pt).Zeroize()
				return fmt.Errorf("stream: write final plaintext block: %w", werr)
			}
			processed += int64(len(pt))
			secret.Bytes(pt).Zeroize()
			if d.OnProgress != nil {
				d.OnProgress(processed, d.Total)
			}
			if f, ok := w.(interface{ Flush() error }); ok {
				return f.Flush()
			}
			return nil
		default:
			return fmt.Errorf("stream: read ciphertext block: %w", err)
		}
	}
}
