package mathx

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
		{11, 10, 1, 10}, // swapped bounds
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(uint32(0), 1, 1000); got != 1 {
		t.Errorf("uint32 clamp = %d", got)
	}
}

func TestSubSat(t *testing.T) {
	if got := SubSat(uint32(1000), 240); got != 760 {
		t.Errorf("SubSat = %d, want 760", got)
	}
	if got := SubSat(uint32(100), 240); got != 0 {
		t.Errorf("SubSat underflow = %d, want 0", got)
	}
}
