package core

// This file contains the address generator used by data-independent
// addressing (Argon2i, and the first half of pass 0 in Argon2id).

// AddressesInBlock is the number of 64-bit pseudo-random values one address
// block yields before it must be refreshed (128 = one value per block word).
const AddressesInBlock = QWordsInBlock

// nextAddresses refreshes the address block with the next batch of 128
// pseudo-random 64-bit values.
//
// The input block carries the position counters (pass, lane, slice, total
// blocks, total passes, type) in its first six words and a monotonic batch
// counter in word 6. Each call increments the counter and then compresses
// the input block twice with all-zero state blocks:
//
//	address = G(zero, input)
//	address = G(zero, address)
//
// Because only position counters feed the generator, the resulting reference
// indices reveal nothing about memory contents — the data-independent
// property that makes Argon2i resistant to memory-access side channels.
//
// Reference: RFC 9106 section 3.4.1.2
func nextAddresses(address, input *Block) {
	input[6]++

	var zero Block
	fillBlock(&zero, input, address, false)
	zero.Zero()
	fillBlock(&zero, address, address, false)
}
