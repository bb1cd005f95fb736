package word

import (
	"fmt"

	"lukechampine.com/uint128"
)

// W128 is a 128-bit word.
type W128 struct {
	v uint128.Uint128
}

// Of128 builds a W128 from its high and low halves.
func Of128(hi, lo uint64) W128 {
	return W128{v: uint128.New(lo, hi)}
}

func (w W128) Add(x W128) W128 { return W128{w.v.AddWrap(x.v)} }
func (w W128) Sub(x W128) W128 { return W128{w.v.SubWrap(x.v)} }
func (w W128) And(x W128) W128 { return W128{w.v.And(x.v)} }
func (w W128) Or(x W128) W128  { return W128{w.v.Or(x.v)} }
func (w W128) Xor(x W128) W128 { return W128{w.v.Xor(x.v)} }

// 2^64 is a multiple of 128, so the low half alone decides the amount.
func rotateAmount128(n W128) uint {
	return uint(n.v.Lo % 128)
}

func (w W128) RotateLeft(n W128) W128 {
	s := rotateAmount128(n)
	if s == 0 {
		return w
	}
	return W128{w.v.Lsh(s).Or(w.v.Rsh(128 - s))}
}

func (w W128) RotateRight(n W128) W128 {
	s := rotateAmount128(n)
	if s == 0 {
		return w
	}
	return W128{w.v.Rsh(s).Or(w.v.Lsh(128 - s))}
}

func (W128) Bits() int { return 128 }

func (w W128) PutLittleEndian(b []byte) { w.v.PutBytes(b) }

func (w W128) String() string { return fmt.Sprintf("%016X%016X", w.v.Hi, w.v.Lo) }

func (W128) fromParts(lo, hi uint64) W128 { return W128{uint128.New(lo, hi)} }
