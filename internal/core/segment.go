package core

// This file contains the segment-filling procedure: the unit of work that
// fills one (pass, lane, slice) segment of the memory region, block by
// block. It is the control loop that drives the address generator and the
// block compression function.

// fillSegment fills every block of the segment identified by pos, strictly
// in index order. Each step resolves a reference block — via the address
// generator in data-independent mode, or from the previous block's first
// word in data-dependent mode — and compresses the previous block with the
// reference block to produce the current one, in place in in.Memory.
//
// The caller guarantees exclusive write access to the segment's offsets and
// that every lane has finished the preceding slice (the slice barrier), so
// no locking happens here. A nil instance is a defensive no-op; all other
// inputs are pre-validated geometry with no failure paths.
func fillSegment(in *Instance, pos Position) {
	if in == nil {
		return
	}

	// Argon2i is always data-independent; Argon2id is data-independent for
	// the first half of the slices of pass 0 and data-dependent afterwards.
	dataIndependent := in.Mode == ModeArgon2i ||
		(in.Mode == ModeArgon2id && pos.Pass == 0 && pos.Slice < SyncPoints/2)

	// Ephemeral blocks of the address generator. The input block carries the
	// position counters; the address block holds the current batch of
	// pseudo-random values. Both die with this call.
	var addressBlock, inputBlock Block
	if dataIndependent {
		inputBlock[0] = uint64(pos.Pass)
		inputBlock[1] = uint64(pos.Lane)
		inputBlock[2] = uint64(pos.Slice)
		inputBlock[3] = uint64(in.MemoryBlocks)
		inputBlock[4] = uint64(in.Passes)
		inputBlock[5] = uint64(in.Mode)
	}

	startingIndex := uint32(0)
	if pos.Pass == 0 && pos.Slice == 0 {
		// Blocks 0 and 1 of every lane are seeded from H0 before filling
		// starts and must not be overwritten.
		startingIndex = 2

		if dataIndependent {
			nextAddresses(&addressBlock, &inputBlock)
		}
	}

	currOffset := pos.Lane*in.LaneLength + pos.Slice*in.SegmentLength + startingIndex

	// The previous block is the one immediately before the current block in
	// the same lane, wrapping to the lane's last block at the lane start.
	var prevOffset uint32
	if currOffset%in.LaneLength == 0 {
		prevOffset = currOffset + in.LaneLength - 1
	} else {
		prevOffset = currOffset - 1
	}

	// Running compression state, seeded from the previous block. fillBlock
	// leaves the newly produced block in it, so it stays equal to the
	// previous block for the whole walk.
	var state Block
	state.Copy(&in.Memory[prevOffset])

	for i := startingIndex; i < in.SegmentLength; i, currOffset, prevOffset = i+1, currOffset+1, prevOffset+1 {
		// Re-anchor after wrapping at the lane boundary.
		if currOffset%in.LaneLength == 1 {
			prevOffset = currOffset - 1
		}

		var pseudoRand uint64
		if dataIndependent {
			if i%AddressesInBlock == 0 {
				nextAddresses(&addressBlock, &inputBlock)
			}
			pseudoRand = addressBlock[i%AddressesInBlock]
		} else {
			pseudoRand = in.Memory[prevOffset][0]
		}

		// High 32 bits select the reference lane. During pass 0, slice 0 no
		// other lane has finished anything yet, so the reference stays in
		// the current lane.
		refLane := uint32(pseudoRand>>32) % in.Lanes
		if pos.Pass == 0 && pos.Slice == 0 {
			refLane = pos.Lane
		}

		// Low 32 bits select the block within the reference lane.
		pos.Index = i
		refIndex := indexAlpha(in, &pos, uint32(pseudoRand), refLane == pos.Lane)

		refBlock := &in.Memory[in.LaneLength*refLane+refIndex]
		currBlock := &in.Memory[currOffset]

		// Version 1.0 always overwrites; version 1.3 XORs over the previous
		// pass's contents from the second pass on.
		withXOR := in.Version != Version10 && pos.Pass != 0
		fillBlock(&state, refBlock, currBlock, withXOR)
	}
}
