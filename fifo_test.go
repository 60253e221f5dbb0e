package powerlink

import "testing"

func TestFifoWriteRead(t *testing.T) {
	f := NewFifo(8)
	n := f.Write([]byte{1, 2, 3, 4})
	if n != 4 {
		t.Fatalf("wrote %d, want 4", n)
	}
	if got := f.Occupied(); got != 4 {
		t.Fatalf("occupied = %d, want 4", got)
	}
	out := make([]byte, 4)
	if n := f.Read(out); n != 4 {
		t.Fatalf("read %d, want 4", n)
	}
	for i, b := range out {
		if int(b) != i+1 {
			t.Fatalf("out[%d] = %d, want %d", i, b, i+1)
		}
	}
	if f.Occupied() != 0 {
		t.Fatalf("expected empty fifo")
	}
}

func TestFifoWriteStopsAtCapacity(t *testing.T) {
	f := NewFifo(4) // 3 usable bytes, one slot always kept free
	n := f.Write([]byte{1, 2, 3, 4, 5})
	if n != 3 {
		t.Fatalf("wrote %d, want 3 (capacity-1)", n)
	}
}

func TestNodeIDValid(t *testing.T) {
	cases := []struct {
		id   NodeID
		want bool
	}{
		{0, false},
		{1, true},
		{239, true},
		{240, true}, // MN
		{253, false},
		{254, false},
		{255, false},
	}
	for _, c := range cases {
		if got := c.id.Valid(); got != c.want {
			t.Errorf("NodeID(%d).Valid() = %v, want %v", c.id, got, c.want)
		}
	}
}
