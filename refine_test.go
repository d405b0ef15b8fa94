package projclip

import (
	"math"
	"testing"
)

// identityProjector projects points unchanged, with everything left of
// x = 0 unrepresentable. Combined with a [0,10] square boundary it gives
// exact, easily checked crossings.
type identityProjector struct{}

func (identityProjector) Forward(p Point) (Point, bool) {
	if p.X < 0 {
		return Point{}, false
	}
	return p, true
}

func newTestRefiner(t *testing.T) *refiner {
	t.Helper()
	b := unitSquare(t)
	return &refiner{
		proj:      identityProjector{},
		b:         b,
		maxIter:   64,
		tol:       b.Tolerance(),
		threshold: b.Extent() / 4,
	}
}

func TestRefiner_Classify(t *testing.T) {
	r := newTestRefiner(t)
	tests := []struct {
		name   string
		p      Point
		expect pointState
	}{
		{"inside", Pt(5, 5), stateInside},
		{"on boundary", Pt(0, 5), stateInside},
		{"outside domain", Pt(12, 5), stateOutside},
		{"undefined", Pt(-3, 5), stateUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, st := r.classify(tt.p); st != tt.expect {
				t.Errorf("classify(%v) state = %v, want %v", tt.p, st, tt.expect)
			}
		})
	}
}

func TestRefiner_CrossingLandsOnBoundary(t *testing.T) {
	r := newTestRefiner(t)
	tests := []struct {
		name          string
		srcIn, srcOut Point
		expect        Point
	}{
		{"exit right", Pt(5, 5), Pt(15, 5), Pt(10, 5)},
		{"exit into undefined", Pt(5, 3), Pt(-5, 3), Pt(0, 3)},
		{"diagonal exit", Pt(8, 8), Pt(14, 14), Pt(10, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imgIn, _ := r.proj.Forward(tt.srcIn)
			got := r.crossing(tt.srcIn, tt.srcOut, imgIn)
			if !got.NearlyEqual(tt.expect, 1e-5) {
				t.Errorf("crossing = %v, want %v", got, tt.expect)
			}
			if d, _, _ := r.b.closest(got); d > r.b.Tolerance() {
				t.Errorf("crossing %v not snapped onto the boundary (d=%v)", got, d)
			}
		})
	}
}

// hostileProjector returns wildly oscillating images whose distances never
// settle, defeating any pure tolerance cutoff. Termination must come from
// the iteration cap alone.
type hostileProjector struct{ calls int }

func (h *hostileProjector) Forward(p Point) (Point, bool) {
	h.calls++
	if h.calls%2 == 0 {
		return Pt(5+math.Mod(float64(h.calls), 5), 5), true
	}
	return Pt(500, 500), true
}

func TestRefiner_IterationCapBoundsWork(t *testing.T) {
	b := unitSquare(t)
	h := &hostileProjector{}
	r := &refiner{proj: h, b: b, maxIter: 50, tol: 0, threshold: 1}

	r.crossing(Pt(5, 5), Pt(15, 5), Pt(5, 5))
	if h.calls > 51 {
		t.Errorf("crossing used %d projections, cap was 50", h.calls)
	}

	h.calls = 0
	r.seam(Pt(1, 1), Pt(9, 9), Pt(1, 1), Pt(9, 9))
	// seam may hand off to one crossing refinement per side.
	if h.calls > 2*50+1 {
		t.Errorf("seam used %d projections, cap was 50 per refinement", h.calls)
	}
}

// wrapProjector teleports across the domain: the left half maps onto the
// right half and vice versa, so any edge spanning x = 5 jumps.
type wrapProjector struct{}

func (wrapProjector) Forward(p Point) (Point, bool) {
	if p.X < 5 {
		return Pt(p.X+5, p.Y), true
	}
	return Pt(p.X-5, p.Y), true
}

// bandProjector is wrapProjector with the strip 4 <= x <= 6 unrepresentable,
// so the jump hides inside a gap in the projection's domain.
type bandProjector struct{}

func (bandProjector) Forward(p Point) (Point, bool) {
	switch {
	case p.X < 4:
		return Pt(p.X+6, p.Y), true
	case p.X > 6:
		return Pt(p.X-6, p.Y), true
	}
	return Point{}, false
}

func TestRefiner_SeamConfirmsGenuineJump(t *testing.T) {
	b := unitSquare(t)
	r := &refiner{proj: wrapProjector{}, b: b, maxIter: 64, tol: b.Tolerance(), threshold: 1}

	img0, _ := r.proj.Forward(Pt(1, 5))
	img1, _ := r.proj.Forward(Pt(9, 5))
	exit, entry, ok := r.seam(Pt(1, 5), Pt(9, 5), img0, img1)
	if !ok {
		t.Fatal("expected the wrap to register as a genuine jump")
	}
	if !exit.NearlyEqual(Pt(10, 5), 1e-5) {
		t.Errorf("exit = %v, want (10,5)", exit)
	}
	if !entry.NearlyEqual(Pt(0, 5), 1e-5) {
		t.Errorf("entry = %v, want (0,5)", entry)
	}
}

func TestRefiner_SeamRejectsContinuousEdge(t *testing.T) {
	b := unitSquare(t)
	r := &refiner{proj: identityProjector{}, b: b, maxIter: 64, tol: b.Tolerance(), threshold: 1}

	// Image distance 8 exceeds the threshold, yet the edge is continuous:
	// both bisection estimates converge to the same midpoint image.
	if _, _, ok := r.seam(Pt(1, 5), Pt(9, 5), Pt(1, 5), Pt(9, 5)); ok {
		t.Error("continuous edge reported as a jump")
	}
}

func TestRefiner_SeamAcrossUnrepresentableBand(t *testing.T) {
	b := unitSquare(t)
	r := &refiner{proj: bandProjector{}, b: b, maxIter: 64, tol: b.Tolerance(), threshold: 1}

	img0, _ := r.proj.Forward(Pt(1, 2)) // (7,2)
	img1, _ := r.proj.Forward(Pt(9, 2)) // (3,2)
	exit, entry, ok := r.seam(Pt(1, 2), Pt(9, 2), img0, img1)
	if !ok {
		t.Fatal("expected the band to register as a jump")
	}
	// Each side must refine toward the band edge, not snap a deep-interior
	// image onto the boundary.
	if !exit.NearlyEqual(Pt(10, 2), 1e-5) {
		t.Errorf("exit = %v, want (10,2)", exit)
	}
	if !entry.NearlyEqual(Pt(0, 2), 1e-5) {
		t.Errorf("entry = %v, want (0,2)", entry)
	}
}

func TestRefiner_InsideBetween(t *testing.T) {
	r := newTestRefiner(t)

	// A segment dipping through the domain: both ends undefined/outside,
	// midpoint inside.
	if _, img, ok := r.insideBetween(Pt(-6, 5), Pt(16, 5)); !ok {
		t.Fatal("expected midpoint dip to be detected")
	} else if !img.NearlyEqual(Pt(5, 5), 1e-9) {
		t.Errorf("dip image = %v, want (5,5)", img)
	}

	// A segment passing nowhere near the domain.
	if _, _, ok := r.insideBetween(Pt(-6, 50), Pt(16, 50)); ok {
		t.Error("expected no dip for a segment clear of the domain")
	}
}
