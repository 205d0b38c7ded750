package raster

import "testing"

func TestRectDimensions(t *testing.T) {
	r := Rect{2, 3, 12, 8}
	if r.Width() != 10 {
		t.Errorf("Width: got %d, want 10", r.Width())
	}
	if r.Height() != 5 {
		t.Errorf("Height: got %d, want 5", r.Height())
	}
	if r.Area() != 50 {
		t.Errorf("Area: got %d, want 50", r.Area())
	}
	if r.Empty() {
		t.Errorf("Rect %v reported empty", r)
	}
}

func TestRectIn(t *testing.T) {
	s := Size{100, 50}
	cases := []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 100, 50}, true},
		{Rect{10, 10, 20, 20}, true},
		{Rect{-1, 0, 10, 10}, false},
		{Rect{0, 0, 101, 50}, false},
		{Rect{0, 0, 100, 51}, false},
	}
	for _, c := range cases {
		if got := c.r.In(s); got != c.want {
			t.Errorf("%v.In(%v): got %v, want %v", c.r, s, got, c.want)
		}
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{5, 5, 5, 10}).Empty() {
		t.Error("zero-width rect not reported empty")
	}
	if !(Rect{5, 5, 10, 5}).Empty() {
		t.Error("zero-height rect not reported empty")
	}
}
