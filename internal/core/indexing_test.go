package core

import (
	"testing"
)

func testInstance(lanes, laneLength uint32) *Instance {
	return &Instance{
		Lanes:         lanes,
		LaneLength:    laneLength,
		SegmentLength: laneLength / SyncPoints,
		MemoryBlocks:  lanes * laneLength,
	}
}

// TestIndexAlpha_FirstPassFirstSlice verifies indexing in pass 0, slice 0:
// only blocks strictly before the previous one are reachable.
func TestIndexAlpha_FirstPassFirstSlice(t *testing.T) {
	in := testInstance(1, 400)
	pos := Position{Pass: 0, Lane: 0, Slice: 0, Index: 10}

	tests := []struct {
		name       string
		pseudoRand uint32
	}{
		{"low_value", 0x1000},
		{"mid_value", 0x80000000},
		{"high_value", 0xFFFFFFFF},
		{"zero", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refIndex := indexAlpha(in, &pos, tt.pseudoRand, true)

			if refIndex >= pos.Index {
				t.Errorf("refIndex = %d, must be < Index = %d in pass 0, slice 0",
					refIndex, pos.Index)
			}
		})
	}
}

// TestIndexAlpha_FirstPassLaterSlice verifies indexing in pass 0, slice > 0
// stays within the finished slices plus current progress.
func TestIndexAlpha_FirstPassLaterSlice(t *testing.T) {
	in := testInstance(1, 400)
	pos := Position{Pass: 0, Lane: 0, Slice: 2, Index: 10}

	for _, rand := range []uint32{0, 0x12345678, 0xFFFFFFFF} {
		refIndex := indexAlpha(in, &pos, rand, true)

		maxRef := pos.Slice*in.SegmentLength + pos.Index - 1
		if refIndex >= maxRef {
			t.Errorf("rand %#x: refIndex = %d, must be < %d in pass 0, slice %d",
				rand, refIndex, maxRef, pos.Slice)
		}
	}
}

// TestIndexAlpha_CrossLane verifies cross-lane references in pass 0 only
// reach finished slices, never the slice in progress.
func TestIndexAlpha_CrossLane(t *testing.T) {
	in := testInstance(4, 400)
	pos := Position{Pass: 0, Lane: 1, Slice: 2, Index: 10}

	for _, rand := range []uint32{0, 0x9ABCDEF0, 0xFFFFFFFF} {
		refIndex := indexAlpha(in, &pos, rand, false)

		if refIndex >= pos.Slice*in.SegmentLength {
			t.Errorf("rand %#x: cross-lane refIndex = %d reaches unfinished slice (limit %d)",
				rand, refIndex, pos.Slice*in.SegmentLength)
		}
	}
}

// TestIndexAlpha_LaterPass verifies later passes stay within the lane.
func TestIndexAlpha_LaterPass(t *testing.T) {
	in := testInstance(1, 400)

	for slice := uint32(0); slice < SyncPoints; slice++ {
		pos := Position{Pass: 1, Lane: 0, Slice: slice, Index: 5}
		for _, rand := range []uint32{0, 0x40000000, 0xFFFFFFFF} {
			refIndex := indexAlpha(in, &pos, rand, true)

			if refIndex >= in.LaneLength {
				t.Errorf("slice %d, rand %#x: refIndex = %d exceeds lane length %d",
					slice, rand, refIndex, in.LaneLength)
			}
		}
	}
}

// TestIndexAlpha_FavorsRecentBlocks verifies the quadratic distribution:
// a maximal pseudo-random value maps near the start of the reference area,
// a zero value maps to its most recent end.
func TestIndexAlpha_FavorsRecentBlocks(t *testing.T) {
	in := testInstance(1, 400)
	pos := Position{Pass: 0, Lane: 0, Slice: 3, Index: 50}

	newest := indexAlpha(in, &pos, 0, true)
	oldest := indexAlpha(in, &pos, 0xFFFFFFFF, true)

	if newest <= oldest {
		t.Errorf("rand 0 gave %d, rand max gave %d; expected zero to map newer than max",
			newest, oldest)
	}

	wantNewest := pos.Slice*in.SegmentLength + pos.Index - 2
	if newest != wantNewest {
		t.Errorf("rand 0: refIndex = %d, want %d (most recent reachable block)",
			newest, wantNewest)
	}
}

// TestIndexAlpha_Deterministic verifies the mapping is a pure function.
func TestIndexAlpha_Deterministic(t *testing.T) {
	in := testInstance(2, 64)
	pos := Position{Pass: 2, Lane: 1, Slice: 1, Index: 3}

	a := indexAlpha(in, &pos, 0xCAFEBABE, false)
	b := indexAlpha(in, &pos, 0xCAFEBABE, false)

	if a != b {
		t.Errorf("indexAlpha not deterministic: %d != %d", a, b)
	}
}
