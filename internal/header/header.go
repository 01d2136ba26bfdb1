// Package header implements the Dexios on-disk header: the fixed-size
// preamble that precedes every encrypted file and carries everything needed
// to decrypt it back (version, algorithm, mode, salt/nonce, and — from V4
// onward — keyslots).
//
// Versions V1-V3 are fixed at 64 bytes, V4 is 128 bytes, and V5 is 416 bytes
// (a 32-byte static preamble followed by four 96-byte keyslot regions).
package header

import (
	"fmt"
	"io"

	"github.com/dexios-go/dexios/internal/primitives"
)

// Version identifies the on-disk layout of a header.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4
	V5
)

// Latest is the header version new encryptions should use.
const Latest = V5

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	case V3:
		return "V3"
	case V4:
		return "V4"
	case V5:
		return "V5"
	default:
		return "unknown version"
	}
}

func (v Version) sizeBytes() [2]byte {
	return [2]byte{0xDE, byte(v)}
}

// Size returns the fixed on-disk size of a header of this version.
func (v Version) Size() int64 {
	switch v {
	case V1, V2, V3:
		return 64
	case V4:
		return 128
	case V5:
		return 416
	default:
		return 0
	}
}

// Type carries the three tagged fields common to every header version.
type Type struct {
	Version   Version
	Algorithm primitives.Algorithm
	Mode      primitives.Mode
}

func algorithmBytes(a primitives.Algorithm) ([2]byte, error) {
	switch a {
	case primitives.XChaCha20Poly1305:
		return [2]byte{0x0E, 0x01}, nil
	case primitives.Aes256Gcm:
		return [2]byte{0x0E, 0x02}, nil
	case primitives.DeoxysII256:
		return [2]byte{0x0E, 0x03}, nil
	default:
		return [2]byte{}, fmt.Errorf("header: unknown algorithm %d", a)
	}
}

func algorithmFromBytes(b [2]byte) (primitives.Algorithm, error) {
	switch b {
	case [2]byte{0x0E, 0x01}:
		return primitives.XChaCha20Poly1305, nil
	case [2]byte{0x0E, 0x02}:
		return primitives.Aes256Gcm, nil
	case [2]byte{0x0E, 0x03}:
		return primitives.DeoxysII256, nil
	default:
		return 0, fmt.Errorf("header: unrecognized algorithm tag %v", b)
	}
}

func modeBytes(m primitives.Mode) ([2]byte, error) {
	switch m {
	case primitives.StreamMode:
		return [2]byte{0x0C, 0x01}, nil
	case primitives.MemoryMode:
		return [2]byte{0x0C, 0x02}, nil
	default:
		return [2]byte{}, fmt.Errorf("header: unknown mode %d", m)
	}
}

func modeFromBytes(b [2]byte) (primitives.Mode, error) {
	switch b {
	case [2]byte{0x0C, 0x01}:
		return primitives.StreamMode, nil
	case [2]byte{0x0C, 0x02}:
		return primitives.MemoryMode, nil
	default:
		return 0, fmt.Errorf("header: unrecognized mode tag %v", b)
	}
}

func versionFromBytes(b [2]byte) (Version, error) {
	if b[0] != 0xDE {
		return 0, fmt.Errorf("header: unrecognized version tag %v", b)
	}
	switch b[1] {
	case 0x01:
		return V1, nil
	case 0x02:
		return V2, nil
	case 0x03:
		return V3, nil
	case 0x04:
		return V4, nil
	case 0x05:
		return V5, nil
	default:
		return 0, fmt.Errorf("header: unrecognized version tag %v", b)
	}
}

// calcNonceLen mirrors primitives.NonceLen but takes a Type directly, the
// way the teacher's header code threads HeaderType through everywhere.
func calcNonceLen(t Type) (int, error) {
	return primitives.NonceLen(t.Algorithm, t.Mode)
}

// HashKind identifies which memory-hard function produced a keyslot's key,
// together with the parameter-set version it was run with.
type HashKind int

const (
	Argon2id HashKind = iota
	Blake3Balloon
)

// HashAlgorithm pairs a HashKind with the parameter-set version (matching a
// HeaderVersion) that was used: Argon2id is tied to {1,2,3}, Blake3Balloon to
// {4,5}.
type HashAlgorithm struct {
	Kind  HashKind
	Param int
}

func (h HashAlgorithm) String() string {
	switch h.Kind {
	case Argon2id:
		return fmt.Sprintf("Argon2id (param v%d)", h.Param)
	case Blake3Balloon:
		return fmt.Sprintf("BLAKE3-Balloon (param v%d)", h.Param)
	default:
		return "unknown hashing algorithm"
	}
}

func (h HashAlgorithm) identifierBytes() ([2]byte, error) {
	switch h.Kind {
	case Argon2id:
		switch h.Param {
		case 1:
			return [2]byte{0xDF, 0xA1}, nil
		case 2:
			return [2]byte{0xDF, 0xA2}, nil
		case 3:
			return [2]byte{0xDF, 0xA3}, nil
		}
	case Blake3Balloon:
		switch h.Param {
		case 4:
			return [2]byte{0xDF, 0xB4}, nil
		case 5:
			return [2]byte{0xDF, 0xB5}, nil
		}
	}
	return [2]byte{}, fmt.Errorf("header: no keyslot identifier for %v", h)
}

func hashAlgorithmFromIdentifier(b [2]byte) (HashAlgorithm, error) {
	switch b {
	case [2]byte{0xDF, 0xA1}:
		return HashAlgorithm{Argon2id, 1}, nil
	case [2]byte{0xDF, 0xA2}:
		return HashAlgorithm{Argon2id, 2}, nil
	case [2]byte{0xDF, 0xA3}:
		return HashAlgorithm{Argon2id, 3}, nil
	case [2]byte{0xDF, 0xB4}:
		return HashAlgorithm{Blake3Balloon, 4}, nil
	case [2]byte{0xDF, 0xB5}:
		return HashAlgorithm{Blake3Balloon, 5}, nil
	default:
		return HashAlgorithm{}, fmt.Errorf("header: key hashing algorithm not identified: %v", b)
	}
}

// Keyslot wraps one password- or keyfile-derived path to the master key:
// the hashing parameters used on the raw key, the sealed master key, the
// nonce it was sealed under, and the salt the raw key was hashed with.
type Keyslot struct {
	HashAlgorithm HashAlgorithm
	EncryptedKey  [primitives.EncryptedMasterKeyLen]byte
	Nonce         []byte
	Salt          [primitives.SaltLen]byte
}

// Header is the fully parsed (or about-to-be-serialized) header for one
// encrypted file.
type Header struct {
	Type     Type
	Nonce    []byte
	Salt     *[primitives.SaltLen]byte // V1-V4 only; V5 does not serialize it and Deserialize leaves it nil, since each V5 keyslot carries its own salt
	Keyslots []Keyslot
}

// Size returns this header's fixed on-disk size.
func (h *Header) Size() int64 {
	return h.Type.Version.Size()
}

// keyslotNonceLen is the nonce length used inside a keyslot: always the
// algorithm's memory-mode length, regardless of the data stream's own mode.
func keyslotNonceLen(alg primitives.Algorithm) (int, error) {
	return primitives.NonceLen(alg, primitives.MemoryMode)
}

// Deserialize reads one header from r, which must support seeking (the
// version tag is peeked, then re-read as part of the full fixed-size
// region). It returns the parsed Header together with the AAD that must be
// passed to every AEAD operation against this file: empty for V1/V2, the
// full header for V3, and a version-specific subset for V4/V5.
func Deserialize(r io.ReadSeeker) (*Header, []byte, error) {
	var versionTag [2]byte
	if _, err := io.ReadFull(r, versionTag[:]); err != nil {
		return nil, nil, fmt.Errorf("header: read version tag: %w", err)
	}
	if _, err := r.Seek(-2, io.SeekCurrent); err != nil {
		return nil, nil, fmt.Errorf("header: seek back to start of header: %w", err)
	}

	version, err := versionFromBytes(versionTag)
	if err != nil {
		return nil, nil, err
	}

	full := make([]byte, version.Size())
	if _, err := io.ReadFull(r, full); err != nil {
		return nil, nil, fmt.Errorf("header: read full header bytes: %w", err)
	}

	algorithm, err := algorithmFromBytes([2]byte{full[2], full[3]})
	if err != nil {
		return nil, nil, err
	}
	mode, err := modeFromBytes([2]byte{full[4], full[5]})
	if err != nil {
		return nil, nil, err
	}
	typ := Type{Version: version, Algorithm: algorithm, Mode: mode}

	nonceLen, err := calcNonceLen(typ)
	if err != nil {
		return nil, nil, err
	}

	var salt [primitives.SaltLen]byte
	var nonce []byte
	var keyslots []Keyslot

	const tagLen = 6 // version + algorithm + mode tags

	switch version {
	case V1, V3:
		copy(salt[:], full[tagLen:tagLen+primitives.SaltLen])
		off := tagLen + primitives.SaltLen + 16 // 16 reserved bytes
		nonce = append([]byte(nil), full[off:off+nonceLen]...)

	case V2:
		copy(salt[:], full[tagLen:tagLen+primitives.SaltLen])
		off := tagLen + primitives.SaltLen
		nonce = append([]byte(nil), full[off:off+nonceLen]...)

	case V4:
		copy(salt[:], full[tagLen:tagLen+primitives.SaltLen])
		off := tagLen + primitives.SaltLen
		nonce = append([]byte(nil), full[off:off+nonceLen]...)

		mkNonceLen, err := keyslotNonceLen(algorithm)
		if err != nil {
			return nil, nil, err
		}

		// Layout: tag(6) + salt(16) + nonce(var) + pad(26-nonce_len) + encrypted_key(48) + mk_nonce(var) + pad(32-mk_nonce_len)
		base := tagLen + primitives.SaltLen + 26
		var encKey [primitives.EncryptedMasterKeyLen]byte
		copy(encKey[:], full[base:base+primitives.EncryptedMasterKeyLen])
		base += primitives.EncryptedMasterKeyLen
		mkNonce := append([]byte(nil), full[base:base+mkNonceLen]...)

		keyslots = []Keyslot{{
			HashAlgorithm: HashAlgorithm{Blake3Balloon, 4},
			EncryptedKey:  encKey,
			Nonce:         mkNonce,
			Salt:          salt,
		}}

	case V5:
		off := tagLen
		nonce = append([]byte(nil), full[off:off+nonceLen]...)

		keyslotNonceLenV, err := keyslotNonceLen(algorithm)
		if err != nil {
			return nil, nil, err
		}

		const staticPreamble = 32
		const slotWidth = 96
		for i := 0; i < 4; i++ {
			base := staticPreamble + i*slotWidth
			var identifier [2]byte
			copy(identifier[:], full[base:base+2])
			if identifier[0] != 0xDF {
				continue
			}

			p := base + 2
			var encKey [primitives.EncryptedMasterKeyLen]byte
			copy(encKey[:], full[p:p+primitives.EncryptedMasterKeyLen])
			p += primitives.EncryptedMasterKeyLen

			slotNonce := append([]byte(nil), full[p:p+keyslotNonceLenV]...)
			p += keyslotNonceLenV
			p += 24 - keyslotNonceLenV // padding out to a fixed 24-byte nonce region

			var slotSalt [primitives.SaltLen]byte
			copy(slotSalt[:], full[p:p+primitives.SaltLen])
			// remaining 6 bytes of the 96-byte region are reserved padding

			hashAlg, err := hashAlgorithmFromIdentifier(identifier)
			if err != nil {
				return nil, nil, err
			}

			keyslots = append(keyslots, Keyslot{
				HashAlgorithm: hashAlg,
				EncryptedKey:  encKey,
				Nonce:         slotNonce,
				Salt:          slotSalt,
			})
		}
	}

	aad, err := createAADFromBytes(typ, full, nonceLen)
	if err != nil {
		return nil, nil, err
	}

	h := &Header{Type: typ, Nonce: nonce, Keyslots: keyslots}
	if version == V1 || version == V2 || version == V3 || version == V4 {
		h.Salt = &salt
	}
	return h, aad, nil
}

func createAADFromBytes(typ Type, full []byte, nonceLen int) ([]byte, error) {
	switch typ.Version {
	case V1, V2:
		return []byte{}, nil
	case V3:
		return append([]byte(nil), full...), nil
	case V4:
		mkNonceLen, err := keyslotNonceLen(typ.Algorithm)
		if err != nil {
			return nil, err
		}
		aad := make([]byte, 0, 48+len(full)-(96+mkNonceLen))
		aad = append(aad, full[:48]...)
		aad = append(aad, full[96+mkNonceLen:]...)
		return aad, nil
	case V5:
		return append([]byte(nil), full[:32]...), nil
	default:
		return nil, fmt.Errorf("header: unknown version %v", typ.Version)
	}
}

// Serialize renders the header to its on-disk byte form. Only V3, V4, and V5
// are supported for writing; V1 and V2 are read-only legacy formats.
func (h *Header) Serialize() ([]byte, error) {
	switch h.Type.Version {
	case V1:
		return nil, fmt.Errorf("header: serializing V1 headers is not supported")
	case V2:
		return nil, fmt.Errorf("header: serializing V2 headers is not supported")
	case V3:
		return h.serializeV3()
	case V4:
		return h.serializeV4()
	case V5:
		return h.serializeV5()
	default:
		return nil, fmt.Errorf("header: unknown version %v", h.Type.Version)
	}
}

func (h *Header) tagBytes() ([6]byte, error) {
	var tag [6]byte
	vb := h.Type.Version.sizeBytes()
	ab, err := algorithmBytes(h.Type.Algorithm)
	if err != nil {
		return tag, err
	}
	mb, err := modeBytes(h.Type.Mode)
	if err != nil {
		return tag, err
	}
	copy(tag[0:2], vb[:])
	copy(tag[2:4], ab[:])
	copy(tag[4:6], mb[:])
	return tag, nil
}

func (h *Header) serializeV3() ([]byte, error) {
	tag, err := h.tagBytes()
	if err != nil {
		return nil, err
	}
	nonceLen, err := calcNonceLen(h.Type)
	if err != nil {
		return nil, err
	}
	if h.Salt == nil {
		return nil, fmt.Errorf("header: V3 header is missing its salt")
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, tag[:]...)
	buf = append(buf, h.Salt[:]...)
	buf = append(buf, make([]byte, 16)...)
	buf = append(buf, h.Nonce...)
	buf = append(buf, make([]byte, 26-nonceLen)...)
	return buf, nil
}

func (h *Header) serializeV4() ([]byte, error) {
	tag, err := h.tagBytes()
	if err != nil {
		return nil, err
	}
	nonceLen, err := calcNonceLen(h.Type)
	if err != nil {
		return nil, err
	}
	mkNonceLen, err := keyslotNonceLen(h.Type.Algorithm)
	if err != nil {
		return nil, err
	}
	if h.Salt == nil {
		return nil, fmt.Errorf("header: V4 header is missing its salt")
	}
	if len(h.Keyslots) != 1 {
		return nil, fmt.Errorf("header: V4 header must carry exactly one implicit keyslot, has %d", len(h.Keyslots))
	}
	slot := h.Keyslots[0]

	buf := make([]byte, 0, 128)
	buf = append(buf, tag[:]...)
	buf = append(buf, h.Salt[:]...)
	buf = append(buf, h.Nonce...)
	buf = append(buf, make([]byte, 26-nonceLen)...)
	buf = append(buf, slot.EncryptedKey[:]...)
	buf = append(buf, slot.Nonce...)
	buf = append(buf, make([]byte, 32-mkNonceLen)...)
	return buf, nil
}

func (h *Header) serializeV5() ([]byte, error) {
	tag, err := h.tagBytes()
	if err != nil {
		return nil, err
	}
	nonceLen, err := calcNonceLen(h.Type)
	if err != nil {
		return nil, err
	}
	if len(h.Keyslots) == 0 || len(h.Keyslots) > 4 {
		return nil, fmt.Errorf("header: V5 header must carry between 1 and 4 keyslots, has %d", len(h.Keyslots))
	}

	buf := make([]byte, 0, 416)
	buf = append(buf, tag[:]...)
	buf = append(buf, h.Nonce...)
	buf = append(buf, make([]byte, 26-nonceLen)...)

	keyslotNonceLenV, err := keyslotNonceLen(h.Type.Algorithm)
	if err != nil {
		return nil, err
	}

	for _, slot := range h.Keyslots {
		ident, err := slot.HashAlgorithm.identifierBytes()
		if err != nil {
			return nil, err
		}
		buf = append(buf, ident[:]...)
		buf = append(buf, slot.EncryptedKey[:]...)
		buf = append(buf, slot.Nonce...)
		buf = append(buf, make([]byte, 24-keyslotNonceLenV)...)
		buf = append(buf, slot.Salt[:]...)
		buf = append(buf, make([]byte, 6)...)
	}
	for i := 0; i < 4-len(h.Keyslots); i++ {
		buf = append(buf, make([]byte, 96)...)
	}
	return buf, nil
}

// CreateAAD returns the AAD bytes this header should be validated against.
// Unlike the AAD returned by Deserialize (which reflects bytes actually read
// from disk), CreateAAD renders the AAD a freshly-built in-memory Header
// would produce, for use when sealing new data.
func (h *Header) CreateAAD() ([]byte, error) {
	switch h.Type.Version {
	case V1, V2:
		return nil, fmt.Errorf("header: AAD is not defined for version %v", h.Type.Version)
	case V3:
		return h.serializeV3()
	case V4:
		tag, err := h.tagBytes()
		if err != nil {
			return nil, err
		}
		nonceLen, err := calcNonceLen(h.Type)
		if err != nil {
			return nil, err
		}
		mkNonceLen, err := keyslotNonceLen(h.Type.Algorithm)
		if err != nil {
			return nil, err
		}
		if h.Salt == nil {
			return nil, fmt.Errorf("header: V4 header is missing its salt")
		}
		buf := make([]byte, 0, 48+32-mkNonceLen)
		buf = append(buf, tag[:]...)
		buf = append(buf, h.Salt[:]...)
		buf = append(buf, h.Nonce...)
		buf = append(buf, make([]byte, 26-nonceLen)...)
		buf = append(buf, make([]byte, 32-mkNonceLen)...)
		return buf, nil
	case V5:
		tag, err := h.tagBytes()
		if err != nil {
			return nil, err
		}
		nonceLen, err := calcNonceLen(h.Type)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 0, 32)
		buf = append(buf, tag[:]...)
		buf = append(buf, h.Nonce...)
		buf = append(buf, make([]byte, 26-nonceLen)...)
		return buf, nil
	default:
		return nil, fmt.Errorf("header: unknown version %v", h.Type.Version)
	}
}

// Write serializes h and writes it to w.
func (h *Header) Write(w io.Writer) error {
	b, err := h.Serialize()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
