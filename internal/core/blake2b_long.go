package core

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Blake2bLong is the variable-length hash H' from the Argon2 specification,
// built on Blake2b. It produces outputs longer than Blake2b's native 64-byte
// maximum by chaining hashes together.
//
// Algorithm per RFC 9106 section 3.3:
//   - The input is always prefixed with the output length as LE32.
//   - If outlen <= 64: the result is Blake2b(LE32(outlen) || input, outlen).
//   - If outlen > 64:
//     V1 = Blake2b-512(LE32(outlen) || input); emit V1[0:32]
//     Vi = Blake2b-512(Vi-1); emit Vi[0:32] while more than 64 bytes remain
//     finally emit Blake2b(Vlast, remaining) in full.
//
// Used for seeding the first two blocks of each lane (outlen = 1024) and for
// deriving the final tag.
func Blake2bLong(input []byte, outlen uint32) []byte {
	if outlen == 0 {
		return nil
	}

	prefixed := make([]byte, 4+len(input))
	binary.LittleEndian.PutUint32(prefixed[0:4], outlen)
	copy(prefixed[4:], input)

	if outlen <= blake2b.Size {
		h, err := blake2b.New(int(outlen), nil)
		if err != nil {
			// Unreachable for 1 <= outlen <= 64.
			panic("core: blake2b.New failed: " + err.Error())
		}
		h.Write(prefixed)
		return h.Sum(nil)
	}

	out := make([]byte, 0, outlen)
	v := blake2b.Sum512(prefixed)
	out = append(out, v[:32]...)

	toProduce := outlen - 32
	for toProduce > blake2b.Size {
		v = blake2b.Sum512(v[:])
		out = append(out, v[:32]...)
		toProduce -= 32
	}

	h, err := blake2b.New(int(toProduce), nil)
	if err != nil {
		panic("core: blake2b.New failed: " + err.Error())
	}
	h.Write(v[:])
	return h.Sum(out)
}
