package core

// This file contains the reference-block indexing logic shared by all
// Argon2 variants. The pseudo-random input comes either from the address
// generator (data-independent) or from the previous block's first word
// (data-dependent); mapping it to a block index is identical in both modes.

const (
	// SyncPoints is the number of slices (segments per lane) in a pass.
	// Slice boundaries are the synchronization barriers between lanes.
	SyncPoints = 4
)

// Position identifies exactly one block-filling step within the memory
// region: which pass, which lane, which slice, and which block inside the
// segment. fillSegment advances Index monotonically; a position is never
// revisited within a call.
type Position struct {
	Pass  uint32 // Current pass number (0 to Passes-1)
	Lane  uint32 // Current lane number (0 to Lanes-1)
	Slice uint32 // Current slice number (0 to SyncPoints-1)
	Index uint32 // Current block index within the segment
}

// indexAlpha maps a 32-bit pseudo-random value to the index of the reference
// block within the reference lane.
//
// The function first determines the reference area: the set of blocks the
// current position may legally reference. During pass 0 that is the blocks
// finalized so far (minus the previous block when staying in the same lane,
// minus the unfinished current block when crossing lanes); during later
// passes it is the whole lane except the segment currently being
// overwritten. The pseudo-random value is then mapped over that area with
// the quadratic distribution x -> 1 - x^2/2^64, which favors recently
// written blocks.
//
// sameLane reports whether the reference lane equals the current lane;
// cross-lane references may not include the current slice's in-progress
// blocks.
//
// Returns the block index within the reference lane (not an absolute memory
// offset).
//
// Reference: RFC 9106 section 3.4.1.3
func indexAlpha(in *Instance, pos *Position, pseudoRand uint32, sameLane bool) uint32 {
	var referenceAreaSize uint32

	if pos.Pass == 0 {
		if pos.Slice == 0 {
			// First slice of first pass: all blocks before the previous one.
			referenceAreaSize = pos.Index - 1
		} else if sameLane {
			// Same lane: all finished slices plus the blocks already
			// produced in this segment, minus the previous block.
			referenceAreaSize = pos.Slice*in.SegmentLength + pos.Index - 1
		} else {
			// Cross lane: only the finished slices; exclude the current
			// block's row when it is the first of its segment.
			referenceAreaSize = pos.Slice * in.SegmentLength
			if pos.Index == 0 {
				referenceAreaSize--
			}
		}
	} else {
		// Later passes: the whole lane minus the segment being overwritten.
		referenceAreaSize = in.LaneLength - in.SegmentLength
		if sameLane {
			referenceAreaSize += pos.Index - 1
		} else if pos.Index == 0 {
			referenceAreaSize--
		}
	}

	// Quadratic mapping of the pseudo-random value over the reference area,
	// biased toward the most recent blocks:
	// relative = (size - 1) - size * rand^2 / 2^64
	relativePosition := uint64(pseudoRand)
	relativePosition = relativePosition * relativePosition >> 32
	relativePosition = uint64(referenceAreaSize) - 1 -
		(uint64(referenceAreaSize)*relativePosition)>>32

	// During later passes the reference area starts right after the segment
	// being overwritten and wraps around the lane.
	var startPosition uint32
	if pos.Pass != 0 && pos.Slice != SyncPoints-1 {
		startPosition = (pos.Slice + 1) * in.SegmentLength
	}

	return (startPosition + uint32(relativePosition)) % in.LaneLength
}
