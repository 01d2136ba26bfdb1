// Package secret provides a zeroizing wrapper for sensitive byte material.
//
// Every raw key, hashed wrapping key, master key, or intermediate plaintext
// block that flows through the engine is carried inside a Secret so that its
// lifetime — and the moment it is wiped — is explicit at the call site.
package secret

// Zeroizable is anything that can overwrite its own backing storage with
// zero bytes. The Bytes ([]byte) and *Array32 (fixed 32-byte array) types
// below both qualify.
type Zeroizable interface {
	Zeroize()
}

// Secret owns a sensitive value of type T and guarantees it is wiped once
// released. The zero value is not usable; construct with New.
type Secret[T Zeroizable] struct {
	data     T
	released bool
}

// New wraps value in a Secret. The caller gives up direct ownership of value;
// all further access must go through Expose or Release.
func New[T Zeroizable](value T) *Secret[T] {
	return &Secret[T]{data: value}
}

// Expose returns a read/write reference to the wrapped value. The returned
// reference is only valid until Release is called.
func (s *Secret[T]) Expose() T {
	return s.data
}

// Release zeroizes the wrapped value immediately. It is idempotent: calling
// it more than once is a no-op after the first call.
func (s *Secret[T]) Release() {
	if s.released {
		return
	}
	s.data.Zeroize()
	s.released = true
}

// String redacts the wrapped value so that fmt's default formatting (%v,
// %+v, %s — which would otherwise reflect into data, including its
// unexported field) never prints raw key or password bytes.
func (s *Secret[T]) String() string {
	return "[REDACTED]"
}

// GoString redacts %#v the same way String redacts the rest of fmt.
func (s *Secret[T]) GoString() string {
	return "[REDACTED]"
}

// Bytes is a Zeroizable []byte, used for variable-length secrets such as a
// raw password or an arbitrary-length raw key.
type Bytes []byte

func (b Bytes) Zeroize() {
	for i := range b {
		b[i] = 0
	}
}

// Array32 is a Zeroizable fixed 32-byte secret, used for master keys and
// hashed wrapping keys.
type Array32 [32]byte

func (a *Array32) Zeroize() {
	for i := range a {
		a[i] = 0
	}
}
