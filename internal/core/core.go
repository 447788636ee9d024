// Package core implements the Argon2 memory-filling engine: the BLaMka
// block compression function, the data-independent address generator, the
// segment-filling loop, and the surrounding pipeline (initial hash, seed
// blocks, pass/slice scheduling, finalization) shared by Argon2d, Argon2i,
// and Argon2id.
//
// The package is deliberately free of error paths: parameters are validated
// by the public argon2 package before an Instance is built, and every
// offset inside the engine is derived from that pre-validated geometry.
//
// Reference: RFC 9106
package core

import (
	"encoding/binary"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Mode selects the addressing behavior of the memory filler. The numeric
// values are the wire-format type codes hashed into H0 and into the address
// generator's input block, so they must match RFC 9106 exactly.
type Mode uint32

const (
	// ModeArgon2d uses data-dependent addressing for all blocks.
	ModeArgon2d Mode = 0

	// ModeArgon2i uses data-independent addressing for all blocks.
	ModeArgon2i Mode = 1

	// ModeArgon2id uses data-independent addressing for the first half of
	// the first pass and data-dependent addressing afterwards.
	ModeArgon2id Mode = 2
)

// Argon2 version numbers. Version 1.0 never XOR-accumulates when refilling
// blocks; version 1.3 accumulates on every pass after the first.
const (
	Version10 = 0x10
	Version13 = 0x13
)

// Params carries the full, pre-validated configuration of one hashing run.
type Params struct {
	Password []byte
	Salt     []byte
	Secret   []byte // optional keyed input (K)
	Data     []byte // optional associated data (X)

	Passes    uint32 // time cost t
	Memory    uint32 // memory cost m, in KiB (= requested block count)
	Lanes     uint32 // parallelism p
	TagLength uint32 // output length in bytes
	Version   uint32 // Version10 or Version13
	Mode      Mode
}

// Instance is the shared state of one hashing run: the caller-allocated
// memory region plus the derived geometry. The memory slice is the only
// mutable field; fillSegment calls write to it under the slice-barrier
// discipline enforced by fillMemory.
type Instance struct {
	Memory []Block

	Passes        uint32
	MemoryBlocks  uint32 // total blocks = Lanes * LaneLength
	SegmentLength uint32 // blocks per (lane, slice) segment
	LaneLength    uint32 // SegmentLength * SyncPoints
	Lanes         uint32
	Version       uint32
	Mode          Mode
}

// NewInstance derives the memory geometry from the requested parameters and
// allocates the zeroed memory region.
//
// The requested memory cost is clamped to at least 2*SyncPoints blocks per
// lane and rounded down to a multiple of SyncPoints*lanes, per RFC 9106
// section 3.2.
func NewInstance(p Params) *Instance {
	memoryBlocks := p.Memory
	if memoryBlocks < 2*SyncPoints*p.Lanes {
		memoryBlocks = 2 * SyncPoints * p.Lanes
	}
	segmentLength := memoryBlocks / (p.Lanes * SyncPoints)
	memoryBlocks = segmentLength * p.Lanes * SyncPoints

	return &Instance{
		Memory:        make([]Block, memoryBlocks),
		Passes:        p.Passes,
		MemoryBlocks:  memoryBlocks,
		SegmentLength: segmentLength,
		LaneLength:    segmentLength * SyncPoints,
		Lanes:         p.Lanes,
		Version:       p.Version,
		Mode:          p.Mode,
	}
}

// Hash runs the complete Argon2 pipeline for the given parameters and
// returns the tag.
func Hash(p Params) []byte {
	h0 := initialHash(p)
	in := NewInstance(p)
	in.initializeMemory(h0)
	in.fillMemory()
	return in.finalize(p.TagLength)
}

// initialHash computes H0, the 64-byte seed for the first two blocks of
// every lane.
//
// H0 = Blake2b-512(LE32(lanes) || LE32(tagLength) || LE32(memory) ||
// LE32(passes) || LE32(version) || LE32(mode) || length-prefixed password,
// salt, secret, and associated data). The memory field is the requested
// cost, before rounding.
//
// Reference: RFC 9106 section 3.2, step 1
func initialHash(p Params) [blake2b.Size]byte {
	h, err := blake2b.New512(nil)
	if err != nil {
		// Unreachable: New512 with no key cannot fail.
		panic("core: blake2b.New512 failed: " + err.Error())
	}

	writeUint32(h, p.Lanes)
	writeUint32(h, p.TagLength)
	writeUint32(h, p.Memory)
	writeUint32(h, p.Passes)
	writeUint32(h, p.Version)
	writeUint32(h, uint32(p.Mode))
	writeLenPrefixed(h, p.Password)
	writeLenPrefixed(h, p.Salt)
	writeLenPrefixed(h, p.Secret)
	writeLenPrefixed(h, p.Data)

	var h0 [blake2b.Size]byte
	h.Sum(h0[:0])
	return h0
}

func writeUint32(h hash.Hash, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	h.Write(b[:])
}

func writeLenPrefixed(h hash.Hash, data []byte) {
	writeUint32(h, uint32(len(data)))
	h.Write(data)
}

// initializeMemory seeds blocks 0 and 1 of each lane from H0:
//
//	B[lane][i] = H'(H0 || LE32(i) || LE32(lane), 1024)  for i in {0, 1}
//
// Every other block of the region is produced by the segment filler, which
// therefore starts at index 2 in the first slice of the first pass.
func (in *Instance) initializeMemory(h0 [blake2b.Size]byte) {
	input := make([]byte, blake2b.Size+8)
	copy(input, h0[:])

	for lane := uint32(0); lane < in.Lanes; lane++ {
		binary.LittleEndian.PutUint32(input[blake2b.Size+4:], lane)

		binary.LittleEndian.PutUint32(input[blake2b.Size:], 0)
		in.Memory[lane*in.LaneLength].FromBytes(Blake2bLong(input, BlockSize))

		binary.LittleEndian.PutUint32(input[blake2b.Size:], 1)
		in.Memory[lane*in.LaneLength+1].FromBytes(Blake2bLong(input, BlockSize))
	}
}

// fillMemory fills the whole memory region: for every pass and every slice,
// all lanes are filled concurrently and joined before the next slice
// starts. The slice boundary is the synchronization barrier that makes
// cross-lane references safe — a segment only ever reads blocks finalized
// in earlier slices (or its own lane's preceding block), so one goroutine
// per lane with a WaitGroup per slice needs no further locking.
func (in *Instance) fillMemory() {
	for pass := uint32(0); pass < in.Passes; pass++ {
		for slice := uint32(0); slice < SyncPoints; slice++ {
			var wg sync.WaitGroup
			for lane := uint32(0); lane < in.Lanes; lane++ {
				wg.Add(1)
				go func(lane uint32) {
					defer wg.Done()
					fillSegment(in, Position{Pass: pass, Lane: lane, Slice: slice})
				}(lane)
			}
			wg.Wait()
		}
	}
}

// FillSegment fills one (pass, lane, slice) segment of the memory region.
// Exposed for callers that schedule lanes themselves; fillMemory is the
// standard driver. A nil instance is a no-op.
func FillSegment(in *Instance, pos Position) {
	fillSegment(in, pos)
}

// finalize XORs the last block of every lane into a single block and
// hashes it down to the requested tag length with H'.
//
// Reference: RFC 9106 section 3.2, step 8
func (in *Instance) finalize(tagLength uint32) []byte {
	var final Block
	final.Copy(&in.Memory[in.LaneLength-1])
	for lane := uint32(1); lane < in.Lanes; lane++ {
		final.XOR(&in.Memory[lane*in.LaneLength+in.LaneLength-1])
	}
	return Blake2bLong(final.ToBytes(), tagLength)
}
