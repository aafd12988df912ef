package p224

import (
	"crypto/hmac"
	"encoding/binary"
	"math/rand/v2"

	sha256simd "github.com/minio/sha256-simd"
)

// Source supplies the words used to draw the random seed of the square root
// ladder. It does not need to be cryptographically secure: a poor source
// only slows Sqrt down, every returned root is checked by squaring.
type Source interface {
	Uint32() uint32
}

type defaultSource struct{}

func (defaultSource) Uint32() uint32 { return rand.Uint32() }

// DefaultSource returns a Source backed by the math/rand/v2 global generator.
// It is safe for concurrent use.
func DefaultSource() Source {
	return defaultSource{}
}

// HashSource is a deterministic Source built on the HMAC-SHA256 generate loop
// of RFC 6979 section 3.2. The same seed always yields the same words.
// A HashSource is not safe for concurrent use.
type HashSource struct {
	v, k [32]byte
	buf  [32]byte
	off  int
}

// NewHashSource creates a HashSource keyed by seed
func NewHashSource(seed []byte) *HashSource {
	s := &HashSource{off: 32}

	// RFC6979 3.2.b and 3.2.c
	for i := range s.v {
		s.v[i] = 0x01
	}

	// K = HMAC_K(V || 0x00 || seed), V = HMAC_K(V)
	s.k = hmacSHA256(s.k[:], s.v[:], []byte{0x00}, seed)
	s.v = hmacSHA256(s.k[:], s.v[:])

	// K = HMAC_K(V || 0x01 || seed), V = HMAC_K(V)
	s.k = hmacSHA256(s.k[:], s.v[:], []byte{0x01}, seed)
	s.v = hmacSHA256(s.k[:], s.v[:])

	return s
}

// Uint32 returns the next four bytes of generator output
func (s *HashSource) Uint32() uint32 {
	if s.off+4 > len(s.buf) {
		s.refill()
	}
	w := binary.LittleEndian.Uint32(s.buf[s.off:])
	s.off += 4
	return w
}

// refill runs one generate step: V = HMAC_K(V), then reseeds K so that a
// captured buffer does not reveal the next one.
func (s *HashSource) refill() {
	s.v = hmacSHA256(s.k[:], s.v[:])
	s.buf = s.v
	s.off = 0

	s.k = hmacSHA256(s.k[:], s.v[:], []byte{0x00})
	s.v = hmacSHA256(s.k[:], s.v[:])
}

func hmacSHA256(key []byte, data ...[]byte) (out [32]byte) {
	h := hmac.New(sha256simd.New, key)
	for _, d := range data {
		h.Write(d)
	}
	copy(out[:], h.Sum(nil))
	return
}
