package word

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// W8 is an 8-bit word.
type W8 uint8

// W16 is a 16-bit word.
type W16 uint16

// W32 is a 32-bit word.
type W32 uint32

// W64 is a 64-bit word.
type W64 uint64

// The rotates below reduce the amount modulo the width while it still has
// its own type, before converting to int. A multiple of the width therefore
// becomes 0 and leaves the value unchanged.

func (w W8) Add(x W8) W8 { return w + x }
func (w W8) Sub(x W8) W8 { return w - x }
func (w W8) And(x W8) W8 { return w & x }
func (w W8) Or(x W8) W8  { return w | x }
func (w W8) Xor(x W8) W8 { return w ^ x }

func (w W8) RotateLeft(n W8) W8  { return W8(bits.RotateLeft8(uint8(w), int(n%8))) }
func (w W8) RotateRight(n W8) W8 { return W8(bits.RotateLeft8(uint8(w), -int(n%8))) }

func (W8) Bits() int                  { return 8 }
func (w W8) PutLittleEndian(b []byte) { b[0] = byte(w) }
func (w W8) String() string           { return fmt.Sprintf("%02X", uint8(w)) }
func (W8) fromParts(lo, _ uint64) W8  { return W8(lo) }

func (w W16) Add(x W16) W16 { return w + x }
func (w W16) Sub(x W16) W16 { return w - x }
func (w W16) And(x W16) W16 { return w & x }
func (w W16) Or(x W16) W16  { return w | x }
func (w W16) Xor(x W16) W16 { return w ^ x }

func (w W16) RotateLeft(n W16) W16  { return W16(bits.RotateLeft16(uint16(w), int(n%16))) }
func (w W16) RotateRight(n W16) W16 { return W16(bits.RotateLeft16(uint16(w), -int(n%16))) }

func (W16) Bits() int                  { return 16 }
func (w W16) PutLittleEndian(b []byte) { binary.LittleEndian.PutUint16(b, uint16(w)) }
func (w W16) String() string           { return fmt.Sprintf("%04X", uint16(w)) }
func (W16) fromParts(lo, _ uint64) W16 { return W16(lo) }

func (w W32) Add(x W32) W32 { return w + x }
func (w W32) Sub(x W32) W32 { return w - x }
func (w W32) And(x W32) W32 { return w & x }
func (w W32) Or(x W32) W32  { return w | x }
func (w W32) Xor(x W32) W32 { return w ^ x }

func (w W32) RotateLeft(n W32) W32  { return W32(bits.RotateLeft32(uint32(w), int(n%32))) }
func (w W32) RotateRight(n W32) W32 { return W32(bits.RotateLeft32(uint32(w), -int(n%32))) }

func (W32) Bits() int                  { return 32 }
func (w W32) PutLittleEndian(b []byte) { binary.LittleEndian.PutUint32(b, uint32(w)) }
func (w W32) String() string           { return fmt.Sprintf("%08X", uint32(w)) }
func (W32) fromParts(lo, _ uint64) W32 { return W32(lo) }

func (w W64) Add(x W64) W64 { return w + x }
func (w W64) Sub(x W64) W64 { return w - x }
func (w W64) And(x W64) W64 { return w & x }
func (w W64) Or(x W64) W64  { return w | x }
func (w W64) Xor(x W64) W64 { return w ^ x }

func (w W64) RotateLeft(n W64) W64  { return W64(bits.RotateLeft64(uint64(w), int(n%64))) }
func (w W64) RotateRight(n W64) W64 { return W64(bits.RotateLeft64(uint64(w), -int(n%64))) }

func (W64) Bits() int                  { return 64 }
func (w W64) PutLittleEndian(b []byte) { binary.LittleEndian.PutUint64(b, uint64(w)) }
func (w W64) String() string           { return fmt.Sprintf("%016X", uint64(w)) }
func (W64) fromParts(lo, _ uint64) W64 { return W64(lo) }
