package circle

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestSectorSpanPartitionsCircle(t *testing.T) {
	for n := 1; n <= 64; n++ {
		span := SectorSpan(n)
		if got := span * float64(n); math.Abs(got-360) > 1e-6 {
			t.Fatalf("n=%d: span*n = %v, want 360", n, got)
		}
		for i := 0; i < n-1; i++ {
			end := SectorStart(n, i) + span
			if math.Abs(end-SectorStart(n, i+1)) > 1e-6 {
				t.Fatalf("n=%d: sector %d ends at %v, sector %d starts at %v", n, i, end, i+1, SectorStart(n, i+1))
			}
		}
		if last := SectorStart(n, n-1) + span; math.Abs(last-360) > 1e-6 {
			t.Fatalf("n=%d: last sector ends at %v, want 360", n, last)
		}
	}
}

func TestSectorSpanNoSectors(t *testing.T) {
	if got := SectorSpan(0); got != 0 {
		t.Errorf("SectorSpan(0) = %v, want 0", got)
	}
	if got := SectorSpan(-3); got != 0 {
		t.Errorf("SectorSpan(-3) = %v, want 0", got)
	}
}

func TestSectorCenter(t *testing.T) {
	// four sectors: the first bisector is at 45 degrees
	p := SectorCenter(4, 100, Point{}, 0)
	want := 70 * math.Cos(math.Pi/4)
	if math.Abs(p.X-want) > 1e-6 || math.Abs(p.Y-want) > 1e-6 {
		t.Errorf("SectorCenter(4,100,0) = %+v, want (%v, %v)", p, want, want)
	}

	// second of two sectors points left
	p = SectorCenter(2, 100, Point{X: 10, Y: 10}, 1)
	if math.Abs(p.X-(10)) > 1e-6 || math.Abs(p.Y-(10-70)) > 1e-6 {
		t.Errorf("SectorCenter(2,100,1) = %+v, want (10, -60)", p)
	}
}

func TestPointAngle(t *testing.T) {
	c := Point{X: 150, Y: 150}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"right", Point{X: 200, Y: 150}, 0},
		{"down", Point{X: 150, Y: 200}, 90},
		{"left", Point{X: 100, Y: 150}, 180},
		{"up", Point{X: 150, Y: 130}, 270},
		{"lower right", Point{X: 200, Y: 200}, 45},
		{"lower left", Point{X: 100, Y: 200}, 135},
		{"upper left", Point{X: 100, Y: 100}, 225},
		{"upper right", Point{X: 200, Y: 100}, 315},
		{"center", c, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointAngle(tt.p, c)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("PointAngle(%+v) = %v, want %v", tt.p, got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("PointAngle(%+v) = %v, outside [0, 360)", tt.p, got)
			}
		})
	}
}

func TestHitTestTopOfCircle(t *testing.T) {
	c := Circle{Center: Point{X: 150, Y: 150}, Radius: 100}
	unchecked := func(int) bool { return false }

	got, ok := HitTest(Point{X: 150, Y: 130}, c, 1.2, 5, unchecked)
	if !ok {
		t.Fatal("expected a hit straight above the center")
	}
	// 270 degrees falls in [216, 288)
	if got != 3 {
		t.Errorf("HitTest = %d, want 3", got)
	}
}

func TestHitTestZones(t *testing.T) {
	c := Circle{Center: Point{X: 0, Y: 0}, Radius: 100}
	checked := map[int]bool{0: true}
	isChecked := func(i int) bool { return checked[i] }

	tests := []struct {
		name  string
		p     Point
		want  int
		found bool
	}{
		{"inside base, unchecked", Point{X: -50, Y: -10}, 2, true},
		{"inside base, checked", Point{X: 50, Y: 10}, 0, true},
		{"ring, checked sector", Point{X: 105, Y: 10}, 0, true},
		{"ring, unchecked sector", Point{X: -105, Y: 10}, -1, false},
		{"outside scaled radius", Point{X: 125, Y: 10}, -1, false},
		{"on base edge", Point{X: -100, Y: 0}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(tt.p, c, 1.2, 4, isChecked)
			if ok != tt.found || got != tt.want {
				t.Errorf("HitTest(%+v) = (%d, %v), want (%d, %v)", tt.p, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestHitTestIsIdempotent(t *testing.T) {
	c := Circle{Center: Point{X: 40, Y: 60}, Radius: 30}
	p := Point{X: 52, Y: 41}
	checked := func(i int) bool { return i%2 == 0 }

	first, firstOK := HitTest(p, c, 1.3, 7, checked)
	for i := 0; i < 10; i++ {
		got, ok := HitTest(p, c, 1.3, 7, checked)
		if got != first || ok != firstOK {
			t.Fatalf("call %d: HitTest = (%d, %v), first was (%d, %v)", i, got, ok, first, firstOK)
		}
	}
}

func TestHitTestNoSectors(t *testing.T) {
	c := Circle{Center: Point{}, Radius: 100}
	if _, ok := HitTest(Point{X: 1, Y: 1}, c, 1.2, 0, nil); ok {
		t.Error("expected no hit without sectors")
	}
}

func TestIconSize(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		radius   float64
		fallback int
		want     int
	}{
		{"chord for nine sectors", 9, 120, 34, int(60 * math.Sqrt(2*(1-math.Cos(40*math.Pi/180))))},
		{"third of radius", 5, 90, 34, 30},
		{"eight sectors still use a third", 8, 90, 34, 30},
		{"fallback without radius", 3, 0, 34, 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconSize(tt.n, tt.radius, tt.fallback); got != tt.want {
				t.Errorf("IconSize(%d, %v) = %d, want %d", tt.n, tt.radius, got, tt.want)
			}
		})
	}

	if got := IconSize(9, 120, 0); got < 40 || got > 42 {
		t.Errorf("IconSize(9, 120) = %d, want about 41", got)
	}
}

func TestRectOutset(t *testing.T) {
	r := Circle{Center: Point{X: 10, Y: 20}, Radius: 5}.Bounds()
	got := r.Outset(2)
	want := Rect{Left: 3, Top: 13, Right: 17, Bottom: 27}
	if got != want {
		t.Errorf("Outset = %+v, want %+v", got, want)
	}
	if c := got.Center(); math.Abs(c.X-10) > eps || math.Abs(c.Y-20) > eps {
		t.Errorf("Center = %+v, want (10, 20)", c)
	}
}
