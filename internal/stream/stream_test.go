package stream

import (
	"bytes"
	"testing"

	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
)

func freshKey(t *testing.T) *secret.Secret[*secret.Array32] {
	t.Helper()
	var arr secret.Array32
	for i := range arr {
		arr[i] = byte(i)
	}
	return secret.New(&arr)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, alg := range primitives.Algorithms {
		alg := alg
		t.Run(alg.String(), func(t *testing.T) {
			nonce, err := primitives.GenNonce(alg, primitives.StreamMode)
			if err != nil {
				t.Fatalf("GenNonce: %v", err)
			}
			aad := []byte("header bytes")

			enc, err := NewEncryptor(freshKey(t), nonce, alg)
			if err != nil {
				t.Fatalf("NewEncryptor: %v", err)
			}
			block0, err := enc.EncryptNext(aad, []byte("first block of plaintext"))
			if err != nil {
				t.Fatalf("EncryptNext: %v", err)
			}
			block1, err := enc.EncryptLast(aad, []byte("final short block"))
			if err != nil {
				t.Fatalf("EncryptLast: %v", err)
			}

			dec, err := NewDecryptor(freshKey(t), nonce, alg)
			if err != nil {
				t.Fatalf("NewDecryptor: %v", err)
			}
			pt0, err := dec.DecryptNext(aad, block0)
			if err != nil {
				t.Fatalf("DecryptNext: %v", err)
			}
			if !bytes.Equal(pt0, []byte("first block of plaintext")) {
				t.Fatalf("block0 mismatch: %q", pt0)
			}
			pt1, err := dec.DecryptLast(aad, block1)
			if err != nil {
				t.Fatalf("DecryptLast: %v", err)
			}
			if !bytes.Equal(pt1, []byte("final short block")) {
				t.Fatalf("block1 mismatch: %q", pt1)
			}
		})
	}
}

func TestDecryptWrongAADFails(t *testing.T) {
	alg := primitives.XChaCha20Poly1305
	nonce, err := primitives.GenNonce(alg, primitives.StreamMode)
	if err != nil {
		t.Fatalf("GenNonce: %v", err)
	}

	enc, err := NewEncryptor(freshKey(t), nonce, alg)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}
	ct, err := enc.EncryptLast([]byte("real aad"), []byte("secret message"))
	if err != nil {
		t.Fatalf("EncryptLast: %v", err)
	}

	dec, err := NewDecryptor(freshKey(t), nonce, alg)
	if err != nil {
		t.Fatalf("NewDecryptor: %v", err)
	}
	if _, err := dec.DecryptLast([]byte("tampered aad"), ct); err != ErrOpenFailed {
		t.Fatalf("expected ErrOpenFailed, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	alg := primitives.Aes256Gcm
	nonce, err := primitives.GenNonce(alg, primitives.StreamMode)
	if err != nil {
		t.Fatalf("GenNonce: %v", err)
	}
	aad := []byte("aad")

	plaintext := bytes.Repeat([]byte("A"), primitives.BlockSize+37)

	enc, err := NewEncryptor(freshKey(t), nonce, alg)
	if err != nil {
		t.Fatalf("NewEncryptor: %v", err)
	}
	var ciphertext bytes.Buffer
	if err := enc.EncryptFile(bytes.NewReader(plaintext), &ciphertext, aad); err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}

	dec, err := NewDecryptor(freshKey(t), nonce, alg)
	if err != nil {
		t.Fatalf("NewDecryptor: %v", err)
	}
	var recovered bytes.Buffer
	if err := dec.DecryptFile(bytes.NewReader(ciphertext.Bytes()), &recovered, aad); err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}

	if !bytes.Equal(recovered.Bytes(), plaintext) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", recovered.Len(), len(plaintext))
	}
}
