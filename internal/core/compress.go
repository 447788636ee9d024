package core

// This file contains the Argon2 block compression function G(X, Y), which
// fills one new 1024-byte memory block from the running state and a
// pseudo-randomly selected reference block.

// fillBlock compresses the reference block into the running state and writes
// the result to the next block, optionally XORing over the next block's
// previous contents.
//
// The state block is a caller-owned scratch matrix that persists across the
// calls of one segment: on entry it holds the previous block's contents, on
// exit it holds the newly produced block, so the segment loop never has to
// re-read the previous block from memory.
//
// Algorithm per RFC 9106 section 3.5:
//  1. state = state XOR ref
//  2. mixed = state (additionally XOR next when withXOR is set)
//  3. Apply the BLaMka round to each of the 8 rows of the 8x8 matrix of
//     16-byte lanes (16 consecutive words per row).
//  4. Apply the BLaMka round to each of the 8 columns (two words from each
//     row, strided 16 words apart).
//  5. state = state XOR mixed; next = state
//
// withXOR is set for every pass after the first under version 1.3; version
// 1.0 always overwrites. The reference block may alias the next block (the
// address generator relies on this); ref is fully consumed in step 1 before
// next is written.
func fillBlock(state, ref, next *Block, withXOR bool) {
	var mixed Block

	state.XOR(ref)
	mixed.Copy(state)
	if withXOR {
		mixed.XOR(next)
	}

	// Row rounds: 16 consecutive words per row.
	for i := 0; i < 8; i++ {
		permute(state[roundWords*i : roundWords*(i+1)])
	}

	// Column rounds: word pair (2i, 2i+1) from each of the 8 rows. The
	// strided words are gathered into a contiguous group, permuted, and
	// scattered back.
	var col [roundWords]uint64
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			col[2*j] = state[roundWords*j+2*i]
			col[2*j+1] = state[roundWords*j+2*i+1]
		}
		permute(col[:])
		for j := 0; j < 8; j++ {
			state[roundWords*j+2*i] = col[2*j]
			state[roundWords*j+2*i+1] = col[2*j+1]
		}
	}

	state.XOR(&mixed)
	next.Copy(state)
}
