package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"last cell", 5, 4, true},
		{"right edge exclusive", 6, 3, false},
		{"bottom edge exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 5, 7)
	if r.Right() != 15 {
		t.Errorf("Right() = %d, want 15", r.Right())
	}
	if r.Bottom() != 27 {
		t.Errorf("Bottom() = %d, want 27", r.Bottom())
	}
	if x, y := r.Center(); x != 12 || y != 23 {
		t.Errorf("Center() = (%d, %d), want (12, 23)", x, y)
	}
}

func TestCenteredRect(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	r := CenteredRect(outer, 21, 9)
	if r.X != 29 || r.Y != 7 || r.W != 21 || r.H != 9 {
		t.Errorf("CenteredRect() = %+v, want {29 7 21 9}", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}
