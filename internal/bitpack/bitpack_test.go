package bitpack

import "testing"

func TestInsertZeroAt(t *testing.T) {
	got := InsertZeroAt(0b1111, 2, 4)
	want := uint64(0b11011)
	if got != want {
		t.Fatalf("InsertZeroAt(0b1111, 2, 4) = %b, want %b", got, want)
	}
}

func TestRemoveBitAt(t *testing.T) {
	got := RemoveBitAt(0b11011, 2, 5)
	want := uint64(0b1111)
	if got != want {
		t.Fatalf("RemoveBitAt(0b11011, 2, 5) = %b, want %b", got, want)
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	numGroups := 6
	for val := uint64(0); val < 1<<uint(numGroups); val++ {
		for pos := 0; pos < numGroups; pos++ {
			inserted := InsertZeroAt(val, pos, numGroups)
			back := RemoveBitAt(inserted, pos, numGroups+1)
			if back != val {
				t.Fatalf("round trip failed for val=%b pos=%d: got %b", val, pos, back)
			}
		}
	}
}

func TestHighestSetBit(t *testing.T) {
	cases := map[uint64]int{
		1:      0,
		0b10:   1,
		0b1001: 3,
		1 << 63: 63,
	}
	for mask, want := range cases {
		if got := HighestSetBit(mask); got != want {
			t.Fatalf("HighestSetBit(%b) = %d, want %d", mask, got, want)
		}
	}
}
