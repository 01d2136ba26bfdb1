// Package erase defines the seam for secure multi-pass file erasure.
// Overwriting a file's contents before unlinking it is out of scope for
// this module — implement it and hand a real shredder in behind Eraser.
package erase

import "github.com/dexios-go/dexios/internal/storage"

// Eraser overwrites a file's contents the given number of times before
// removing it (or its directory) from stor.
type Eraser interface {
	EraseFile(stor storage.Storage, path string, passes int) error
	EraseDir(stor storage.Storage, path string, passes int) error
}
