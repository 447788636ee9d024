package core

import (
	"math/bits"
)

// This file contains the BLaMka permutation: the Blake2b round function with
// the G mixing operation replaced by the multiplication-hardened fBlaMka
// operation, applied to 16-word groups of a block.
//
// The round is written the way vectorized implementations execute it: the
// sixteen words form four register rows (a, b, c, d) of four words each, the
// half-rounds mix every word column of those rows in lock-step, and the
// diagonal step is an explicit shuffle of the b, c, and d rows rather than
// re-indexed G calls. Any lock-step width produces results bit-identical to
// the scalar, column-at-a-time definition.
//
// Reference: RFC 9106 section 3.6
// Reference: Argon2 specification section 3.4 (design of the compression function)

// roundWords is the number of 64-bit words a single round permutes, and
// roundWidth is the width of one register row (two 16-byte lanes mixed in
// lock-step).
const (
	roundWords = 16
	roundWidth = roundWords / 4
)

// fBlaMka is the multiplication-hardened mixing operation at the heart of
// Argon2's compression function:
//
//	fBlaMka(x, y) = x + y + 2 * trunc(x) * trunc(y)  (mod 2^64)
//
// where trunc() takes the lower 32 bits of each 64-bit word. The extra
// multiplication term is what distinguishes BLaMka from the plain Blake2b
// G function and increases the latency of ASIC implementations.
func fBlaMka(x, y uint64) uint64 {
	m := (x & 0xFFFFFFFF) * (y & 0xFFFFFFFF)
	return x + y + 2*m
}

// g1 applies the first mixing half-round to the four register rows,
// processing every word column in lock-step. Rotation amounts are 32 and 24.
func g1(a, b, c, d []uint64) {
	for i := range a {
		a[i] = fBlaMka(a[i], b[i])
		d[i] = bits.RotateLeft64(d[i]^a[i], -32)
		c[i] = fBlaMka(c[i], d[i])
		b[i] = bits.RotateLeft64(b[i]^c[i], -24)
	}
}

// g2 applies the second mixing half-round. Rotation amounts are 16 and 63.
func g2(a, b, c, d []uint64) {
	for i := range a {
		a[i] = fBlaMka(a[i], b[i])
		d[i] = bits.RotateLeft64(d[i]^a[i], -16)
		c[i] = fBlaMka(c[i], d[i])
		b[i] = bits.RotateLeft64(b[i]^c[i], -63)
	}
}

// diagonalize permutes the b, c, and d register rows so that the following
// half-rounds mix across the diagonals of the 4xN word matrix: b rotates
// left by one word, c by two, d by three.
//
// SIMD ports realize these rotations with byte-shuffle instructions
// (palignr on SSSE3, vec_perm on VSX); the word rotation below is the
// canonical definition they must match.
func diagonalize(b, c, d []uint64) {
	rotateWords(b, 1)
	rotateWords(c, 2)
	rotateWords(d, 3)
}

// undiagonalize is the exact inverse of diagonalize: each row rotates back
// by the complementary amount. Applying diagonalize then undiagonalize with
// no intervening mixing is the identity.
func undiagonalize(b, c, d []uint64) {
	rotateWords(b, len(b)-1)
	rotateWords(c, len(c)-2)
	rotateWords(d, len(d)-3)
}

// rotateWords rotates a register row left by n word positions, 0 <= n < len(row).
func rotateWords(row []uint64, n int) {
	if n == 0 {
		return
	}
	var tmp [roundWidth]uint64
	copy(tmp[:n], row[:n])
	copy(row, row[n:])
	copy(row[len(row)-n:], tmp[:n])
}

// permute applies one full BLaMka round to a group of 16 words:
// two half-rounds down the columns, the diagonal shuffle, two half-rounds
// across the diagonals, and the inverse shuffle.
//
// Equivalent to the scalar BLAKE2_ROUND_NOMSG definition
// G(v0,v4,v8,v12) .. G(v3,v7,v11,v15), G(v0,v5,v10,v15) .. G(v3,v4,v9,v14)
// with G replaced by fBlaMka mixing.
func permute(v []uint64) {
	a := v[0*roundWidth : 1*roundWidth]
	b := v[1*roundWidth : 2*roundWidth]
	c := v[2*roundWidth : 3*roundWidth]
	d := v[3*roundWidth : 4*roundWidth]

	g1(a, b, c, d)
	g2(a, b, c, d)

	diagonalize(b, c, d)

	g1(a, b, c, d)
	g2(a, b, c, d)

	undiagonalize(b, c, d)
}
