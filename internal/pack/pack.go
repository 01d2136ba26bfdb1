// Package pack defines how directory/archive packing feeds into the
// encryption API. Traversing a directory and writing a zip archive is out
// of scope for this module — Reader below is the seam: hand it any
// io.Reader producing archive bytes (a real zip.Writer's output, or in
// tests, a bytes.Reader standing in for one) and it becomes an ordinary
// domain.EncryptRequest.Reader.
package pack

import "io"

// Reader is an archive byte stream ready to be encrypted. A real packer
// writes a zip archive to a temp file and hands back its Reader; nothing
// downstream needs to know that happened.
type Reader = io.Reader

// Entry names one item a packer would add to the archive before handing
// its Reader off for encryption, mirroring the original's directory-walk
// request shape without performing the walk itself.
type Entry struct {
	Path  string
	IsDir bool
}
