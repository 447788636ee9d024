package core

import (
	"encoding/binary"
)

// Block size constants from the Argon2 specification (RFC 9106 section 3.1)
const (
	// BlockSize is the size of an Argon2 memory block in bytes (1024 bytes = 1 KB)
	BlockSize = 1024

	// QWordsInBlock is the number of 64-bit words (uint64) in a block (1024 / 8 = 128)
	QWordsInBlock = 128
)

// Block represents a 1024-byte Argon2 memory block as an array of 128 uint64 values.
// Logically a block is an 8x8 matrix of 16-byte register lanes; the compression
// function addresses it row-wise and column-wise through that matrix view.
//
// Memory layout: [uint64 x 128] = 1024 bytes, little-endian on the wire.
//
// Blocks are only ever produced whole, by fillBlock or by the Blake2bLong
// seeding of the first two blocks of each lane. No partial writes escape the
// compression routine.
type Block [QWordsInBlock]uint64

// XOR performs in-place XOR of this block with another block:
// b[i] = b[i] XOR other[i] for all i.
//
// This is a hot path called once or twice per fillBlock invocation. The
// simple loop is efficient and easily optimized by the Go compiler.
func (b *Block) XOR(other *Block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

// Copy copies data from another block into this block.
func (b *Block) Copy(other *Block) {
	copy(b[:], other[:])
}

// Zero clears all data in the block by setting every uint64 to 0.
//
// Used for the ephemeral input/address blocks of data-independent
// addressing and for wiping the compression scratch between the two
// chained calls of the address generator.
func (b *Block) Zero() {
	for i := range b {
		b[i] = 0
	}
}

// FromBytes loads a block from a byte slice of exactly BlockSize bytes,
// interpreted as 128 little-endian uint64 values. Bytes [0:8] become b[0],
// bytes [8:16] become b[1], and so on.
//
// All callers are internal and pass fixed-size buffers, so the length is a
// precondition rather than a runtime error.
func (b *Block) FromBytes(data []byte) {
	_ = data[BlockSize-1]
	for i := 0; i < QWordsInBlock; i++ {
		b[i] = binary.LittleEndian.Uint64(data[i*8 : (i+1)*8])
	}
}

// ToBytes converts the block to a new BlockSize-byte slice containing the
// block data encoded as little-endian uint64 values.
func (b *Block) ToBytes() []byte {
	data := make([]byte, BlockSize)
	for i := 0; i < QWordsInBlock; i++ {
		binary.LittleEndian.PutUint64(data[i*8:(i+1)*8], b[i])
	}
	return data
}
