// Package headerops implements the three header-manipulation operations
// that don't touch the ciphertext itself: dumping a header to a separate
// file, restoring a previously dumped header back onto a stripped file, and
// stripping a header down to zero bytes in place.
package headerops

import (
	"fmt"
	"io"

	"github.com/dexios-go/dexios/internal/header"
)

var (
	// ErrUnsupportedRestore means the target doesn't begin with exactly
	// header.Size() zero bytes: either it isn't a stripped Dexios file, or
	// it was never stripped to begin with.
	ErrUnsupportedRestore = fmt.Errorf("headerops: target file does not begin with enough empty bytes to restore a header onto")
	// ErrInvalidFile means the source didn't parse as a Dexios header.
	ErrInvalidFile = fmt.Errorf("headerops: source does not contain a valid header")
)

// Dump reads the header from r and writes its raw bytes to w, leaving r
// positioned just past the header and w positioned just past the written
// copy.
func Dump(r io.ReadSeeker, w io.Writer) error {
	h, _, err := header.Deserialize(r)
	if err != nil {
		return ErrInvalidFile
	}
	if err := h.Write(w); err != nil {
		return fmt.Errorf("headerops: write dumped header: %w", err)
	}
	return nil
}

// Restore reads a header from r (a previously dumped header file) and
// writes it onto rw, but only if rw currently begins with exactly
// h.Size() zero bytes — proof that its own header was stripped, not that
// something else is being overwritten.
func Restore(r io.ReadSeeker, rw io.ReadWriteSeeker) error {
	h, _, err := header.Deserialize(r)
	if err != nil {
		return ErrInvalidFile
	}

	probe := make([]byte, h.Size())
	n, err := io.ReadFull(rw, probe)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("headerops: read target's current header region: %w", err)
	}
	for _, b := range probe[:n] {
		if b != 0 {
			return ErrUnsupportedRestore
		}
	}
	if int64(n) < h.Size() {
		return ErrUnsupportedRestore
	}

	if _, err := rw.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("headerops: rewind target: %w", err)
	}
	if err := h.Write(rw); err != nil {
		return fmt.Errorf("headerops: write restored header: %w", err)
	}
	return nil
}

// Describe renders h's version, algorithm, mode and keyslot count for
// diagnostic output, without pulling in any CLI or logging framework.
func Describe(h *header.Header) string {
	return fmt.Sprintf("%s, %s/%s, %d keyslot(s)",
		h.Type.Version, h.Type.Algorithm, h.Type.Mode, len(h.Keyslots))
}

// Strip reads the header from rw, then overwrites its on-disk bytes with
// zeroes, leaving the ciphertext that follows untouched.
func Strip(rw io.ReadWriteSeeker) error {
	h, _, err := header.Deserialize(rw)
	if err != nil {
		return ErrInvalidFile
	}

	if _, err := rw.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("headerops: rewind target: %w", err)
	}

	zeroes := make([]byte, h.Size())
	if _, err := rw.Write(zeroes); err != nil {
		return fmt.Errorf("headerops: write zeroed header: %w", err)
	}
	return nil
}
