// Package word implements the fixed-width machine words RC5 operates on.
//
// The width is part of the type: W8, W16, W32, W64 and W128 all satisfy the
// Word constraint, so code generic over a width can never mix two of them.
// All arithmetic wraps modulo 2^width.
package word

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Widths lists the supported word widths in bits.
var Widths = []int{8, 16, 32, 64, 128}

var ErrInvalidHex = errors.New("invalid hex word literal")

// Word is the constraint satisfied by every word type in this package.
// It cannot be implemented outside of it.
type Word[W any] interface {
	comparable

	Add(W) W
	Sub(W) W
	And(W) W
	Or(W) W
	Xor(W) W
	// RotateLeft and RotateRight take the rotate amount as a full word and
	// reduce it modulo Bits().
	RotateLeft(W) W
	RotateRight(W) W

	Bits() int
	PutLittleEndian(b []byte)
	String() string

	fromParts(lo, hi uint64) W
}

// Supported reports whether bits is one of Widths.
func Supported(bits int) bool {
	for _, w := range Widths {
		if w == bits {
			return true
		}
	}
	return false
}

// Bits returns the width of W.
func Bits[W Word[W]]() int {
	var w W
	return w.Bits()
}

// Bytes returns the number of bytes in one W.
func Bytes[W Word[W]]() int {
	return Bits[W]() / 8
}

// Of returns v truncated to the width of W.
func Of[W Word[W]](v uint64) W {
	var w W
	return w.fromParts(v, 0)
}

// FromLittleEndian builds a W from up to Bytes[W]() bytes, least
// significant first. Missing high bytes are zero, extra bytes are ignored.
func FromLittleEndian[W Word[W]](b []byte) W {
	var buf [16]byte
	n := Bytes[W]()
	if len(b) < n {
		n = len(b)
	}
	copy(buf[:], b[:n])
	var lo, hi uint64
	for i := 7; i >= 0; i-- {
		lo = lo<<8 | uint64(buf[i])
		hi = hi<<8 | uint64(buf[i+8])
	}
	var w W
	return w.fromParts(lo, hi)
}

// LittleEndian returns w serialized least significant byte first.
func LittleEndian[W Word[W]](w W) []byte {
	b := make([]byte, w.Bits()/8)
	w.PutLittleEndian(b)
	return b
}

// FromHex parses a big-endian hex literal such as "B7E15163" or "0x9e37".
// The literal must fit in W.
func FromHex[W Word[W]](s string) (W, error) {
	var zero W
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return zero, errors.Wrapf(ErrInvalidHex, "%q: %v", s, err)
	}
	if len(raw) > Bytes[W]() {
		return zero, errors.Wrapf(ErrInvalidHex, "%q does not fit in %d bits", s, Bits[W]())
	}
	for i, j := 0, len(raw)-1; i < j; i, j = i+1, j-1 {
		raw[i], raw[j] = raw[j], raw[i]
	}
	return FromLittleEndian[W](raw), nil
}

// Parse splits b into little-endian words, ceil(len(b)/Bytes[W]()) of them,
// zero padding the last one.
func Parse[W Word[W]](b []byte) []W {
	u := Bytes[W]()
	words := make([]W, DivCeil(len(b), u))
	for i := range words {
		end := (i + 1) * u
		if end > len(b) {
			end = len(b)
		}
		words[i] = FromLittleEndian[W](b[i*u : end])
	}
	return words
}

// Serialize is the inverse of Parse for inputs that are a whole number of words.
func Serialize[W Word[W]](words []W) []byte {
	u := Bytes[W]()
	out := make([]byte, len(words)*u)
	for i, w := range words {
		w.PutLittleEndian(out[i*u:])
	}
	return out
}

// DivCeil returns numerator/divisor rounded up.
func DivCeil(numerator, divisor int) int {
	return (numerator + divisor - 1) / divisor
}
