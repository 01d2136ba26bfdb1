// Package keyhash turns a user-supplied password (or keyfile content) into a
// 32-byte wrapping key, using one of two memory-hard functions selected by
// the header's HashingAlgorithm: Argon2id for header versions V1-V3, and a
// BLAKE3-backed Balloon hash for V4 and V5.
package keyhash

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dexios-go/dexios/internal/primitives"
	"github.com/dexios-go/dexios/internal/secret"
	"github.com/zeebo/blake3"
)

// Algorithm identifies which memory-hard function produced a keyslot's
// wrapping key.
type Algorithm int

const (
	Argon2id Algorithm = iota
	Blake3Balloon
)

func (a Algorithm) String() string {
	switch a {
	case Argon2id:
		return "Argon2id"
	case Blake3Balloon:
		return "BLAKE3-Balloon"
	default:
		return "unknown hashing algorithm"
	}
}

// argon2Params holds the (memory KiB, iterations, parallelism) triple for one
// header version.
type argon2Params struct {
	memoryKiB uint32
	time      uint32
	threads   uint8
}

var argon2ParamsByVersion = map[int]argon2Params{
	1: {memoryKiB: 8192, time: 8, threads: 4},    // V1: 8 MiB
	2: {memoryKiB: 262144, time: 8, threads: 4},  // V2: 256 MiB
	3: {memoryKiB: 262144, time: 10, threads: 4}, // V3: 256 MiB, more iterations
}

// balloonParams holds the (space cost, time cost, parallelism) triple for one
// header version.
type balloonParams struct {
	sCost uint64
	tCost uint64
	pCost uint64
}

var balloonParamsByVersion = map[int]balloonParams{
	4: {sCost: 262144, tCost: 1, pCost: 1},
	5: {sCost: 278528, tCost: 1, pCost: 1},
}

// Argon2idHash derives a 32-byte wrapping key from rawKey and salt using the
// Argon2id parameters tied to headerVersion (1, 2, or 3). rawKey is released
// (zeroized) before this function returns, regardless of outcome.
func Argon2idHash(rawKey *secret.Secret[secret.Bytes], salt [primitives.SaltLen]byte, headerVersion int) (*secret.Secret[*secret.Array32], error) {
	defer rawKey.Release()

	params, ok := argon2ParamsByVersion[headerVersion]
	if !ok {
		return nil, fmt.Errorf("keyhash: argon2id is not supported on header version %d", headerVersion)
	}

	derived := argon2.IDKey(rawKey.Expose(), salt[:], params.time, params.memoryKiB, params.threads, primitives.MasterKeyLen)
	defer secret.Bytes(derived).Zeroize()

	var out secret.Array32
	copy(out[:], derived)
	return secret.New(&out), nil
}

// Blake3BalloonHash derives a 32-byte wrapping key from rawKey and salt using
// the Balloon hashing parameters tied to headerVersion (4 or 5). rawKey is
// released (zeroized) before this function returns, regardless of outcome.
func Blake3BalloonHash(rawKey *secret.Secret[secret.Bytes], salt [primitives.SaltLen]byte, headerVersion int) (*secret.Secret[*secret.Array32], error) {
	defer rawKey.Release()

	params, ok := balloonParamsByVersion[headerVersion]
	if !ok {
		return nil, fmt.Errorf("keyhash: balloon hashing is not supported on header version %d", headerVersion)
	}

	derived := balloonHash(rawKey.Expose(), salt[:], params.sCost, params.tCost, params.pCost)
	defer secret.Bytes(derived).Zeroize()

	var out secret.Array32
	copy(out[:], derived)
	return secret.New(&out), nil
}

// Hash dispatches to Argon2idHash or Blake3BalloonHash according to a, the
// way Keyslot.HashAlgorithm ties a keyslot to the function that produced it.
func Hash(a Algorithm, rawKey *secret.Secret[secret.Bytes], salt [primitives.SaltLen]byte, headerVersion int) (*secret.Secret[*secret.Array32], error) {
	switch a {
	case Argon2id:
		return Argon2idHash(rawKey, salt, headerVersion)
	case Blake3Balloon:
		return Blake3BalloonHash(rawKey, salt, headerVersion)
	default:
		rawKey.Release()
		return nil, fmt.Errorf("keyhash: unknown hashing algorithm %d", a)
	}
}

// blockSize is the digest width the Balloon construction compresses into and
// out of; BLAKE3's default output size.
const blockSize = 32

// delta is the number of pseudo-random dependency blocks mixed into every
// block during Balloon's mixing phase, per Boneh, Corrigan-Gibbs &
// Schechter's original construction.
const delta = 3

// balloonHash implements Balloon hashing (Boneh, Corrigan-Gibbs, Schechter,
// "Balloon Hashing: A Memory-Hard Function for Password Hashing and
// Proof-of-Work", 2016) over BLAKE3 as the underlying compression function.
// It expands the input into an sCost-block buffer, mixes the buffer for
// tCost rounds (each block absorbing its predecessor plus delta
// pseudo-randomly chosen blocks), and returns the buffer's last block.
// pCost independent instances (seeded by an index-salted salt) are hashed
// in and XORed together into the final output, giving the parallelism knob.
func balloonHash(password, salt []byte, sCost, tCost, pCost uint64) []byte {
	out := make([]byte, blockSize)
	for p := uint64(0); p < pCost; p++ {
		instanceSalt := saltForInstance(salt, p)
		instance := balloonInstance(password, instanceSalt, sCost, tCost)
		for i := range out {
			out[i] ^= instance[i]
		}
	}
	return out
}

func saltForInstance(salt []byte, index uint64) []byte {
	if index == 0 {
		return salt
	}
	s := make([]byte, len(salt)+8)
	copy(s, salt)
	binary.LittleEndian.PutUint64(s[len(salt):], index)
	return s
}

func balloonInstance(password, salt []byte, sCost, tCost uint64) []byte {
	var ctr uint64

	buf := make([][]byte, sCost)
	buf[0] = hashCounterInputs(&ctr, password, salt)
	for m := uint64(1); m < sCost; m++ {
		buf[m] = hashCounterInputs(&ctr, buf[m-1])
	}

	for t := uint64(0); t < tCost; t++ {
		for m := uint64(0); m < sCost; m++ {
			prev := buf[(m+sCost-1)%sCost]
			buf[m] = hashCounterInputs(&ctr, prev, buf[m])

			for i := uint64(0); i < delta; i++ {
				idxInput := hashCounterInputs(&ctr, salt, le64(t), le64(m), le64(i))
				other := buf[blockIndex(idxInput, sCost)]
				buf[m] = hashCounterInputs(&ctr, buf[m], other)
			}
		}
	}

	return buf[sCost-1]
}

func hashCounterInputs(ctr *uint64, parts ...[]byte) []byte {
	h := blake3.New()
	h.Write(le64(*ctr))
	*ctr++
	for _, p := range parts {
		h.Write(p)
	}
	sum := h.Sum(nil)
	return sum[:blockSize]
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func blockIndex(digest []byte, sCost uint64) uint64 {
	v := binary.LittleEndian.Uint64(digest[:8])
	return v % sCost
}
