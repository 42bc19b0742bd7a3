package match3

import "testing"

func TestRngDeterministic(t *testing.T) {
	a := NewRng(12345)
	b := NewRng(12345)

	for i := 0; i < 100; i++ {
		va := a.NextN(1000)
		vb := b.NextN(1000)
		if va != vb {
			t.Fatalf("draw %d diverged: %d != %d", i, va, vb)
		}
	}
}

func TestRngGetSetStateRoundTrip(t *testing.T) {
	a := NewRng(987654321)
	for i := 0; i < 10; i++ {
		a.NextN(100)
	}
	saved := a.GetState()

	want := make([]int, 20)
	for i := range want {
		want[i] = a.NextN(1 << 20)
	}

	b := NewRng(1) // arbitrary different seed
	b.SetState(saved)
	for i, w := range want {
		if got := b.NextN(1 << 20); got != w {
			t.Fatalf("draw %d after SetState: got %d, want %d", i, got, w)
		}
	}
}

func TestRngZeroSeedRemapped(t *testing.T) {
	a := NewRng(0)
	if a.GetState() == 0 {
		t.Fatal("zero seed must be remapped to a nonzero state")
	}
}

func TestRngNextNBounds(t *testing.T) {
	r := NewRng(42)
	for i := 0; i < 1000; i++ {
		v := r.NextN(7)
		if v < 0 || v >= 7 {
			t.Fatalf("NextN(7) out of range: %d", v)
		}
	}
}

func TestRngNextNPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for NextN(0)")
		}
	}()
	NewRng(1).NextN(0)
}

func TestRngNextRangeBounds(t *testing.T) {
	r := NewRng(7)
	for i := 0; i < 1000; i++ {
		v := r.NextRange(5, 9)
		if v < 5 || v >= 9 {
			t.Fatalf("NextRange(5,9) out of range: %d", v)
		}
	}
}
