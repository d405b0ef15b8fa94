package projclip

// Bisection refinement of boundary crossings. All bisection runs in source
// space: the projection is only trustworthy for points that land strictly
// inside the domain, so interpolating in projected space would chase
// meaningless coordinates.

// pointState classifies a source vertex by what its projection did.
type pointState uint8

const (
	// stateInside: projection defined and inside the domain.
	stateInside pointState = iota
	// stateOutside: projection defined but outside the domain.
	stateOutside
	// stateUndefined: the projector reported the point unrepresentable.
	stateUndefined
)

// refiner locates domain-boundary crossings along source-space segments.
// The iteration cap is a hard liveness bound, not a tuning knob: certain
// inputs (near-polar rings, seam-hugging edges) never satisfy a pure
// distance tolerance.
type refiner struct {
	proj      Projector
	b         *Boundary
	maxIter   int
	tol       float64 // projected-space convergence tolerance
	threshold float64 // discontinuity (seam jump) threshold
}

// classify projects one source point and reports what happened.
func (r *refiner) classify(src Point) (Point, pointState) {
	img, ok := r.proj.Forward(src)
	if !ok {
		return Point{}, stateUndefined
	}
	if !r.b.Contains(img) {
		return img, stateOutside
	}
	return img, stateInside
}

// crossing bisects the source segment from srcIn (whose image imgIn lies
// inside the domain) toward srcOut (outside or undefined) and returns the
// image of the crossing snapped exactly onto the boundary ring. Snapping
// goes through an orthogonal projection onto the nearest boundary edge so
// no sliver gap is left between the chain end and the ring.
func (r *refiner) crossing(srcIn, srcOut Point, imgIn Point) Point {
	lo, hi := 0.0, 1.0
	last := imgIn
	for i := 0; i < r.maxIter; i++ {
		mid := 0.5 * (lo + hi)
		img, st := r.classify(srcIn.Lerp(srcOut, mid))
		if st == stateInside {
			step := img.Distance(last)
			lo = mid
			last = img
			if step <= r.tol {
				break
			}
		} else {
			hi = mid
		}
		if hi-lo < 1e-15 {
			break
		}
	}
	_, snapped := r.b.Project(last)
	return snapped
}

// seam probes an edge whose endpoints both project inside the domain but
// whose images are further apart than the discontinuity threshold. It
// bisects on "which side of the jump is this image on", converging to the
// seam from both directions. The jump is only confirmed when the two image
// estimates stay apart after the source interval collapses: a long but
// continuous edge converges to a single image and reports ok=false, so the
// caller keeps it intact. When the bisection lands in an unrepresentable
// band between the endpoints, each side is refined against the band
// independently. On a confirmed jump the exit attachment (continuous with
// img0) and the entry attachment (continuous with img1) are returned
// snapped onto the boundary.
func (r *refiner) seam(src0, src1, img0, img1 Point) (exit, entry Point, ok bool) {
	lo, hi := 0.0, 1.0
	la, lb := img0, img1
	at := func(t float64) Point { return src0.Lerp(src1, t) }
	for i := 0; i < r.maxIter; i++ {
		mid := 0.5 * (lo + hi)
		img, st := r.classify(at(mid))
		switch {
		case st != stateInside:
			// An unrepresentable band separates the two sides.
			exit = r.crossing(at(lo), at(mid), la)
			entry = r.crossing(at(hi), at(mid), lb)
			return exit, entry, true
		case img.Distance(la) <= img.Distance(lb):
			lo = mid
			la = img
		default:
			hi = mid
			lb = img
		}
		if hi-lo < 1e-15 {
			break
		}
	}
	if la.Distance(lb) <= r.threshold {
		return Point{}, Point{}, false
	}
	_, exit = r.b.Project(la)
	_, entry = r.b.Project(lb)
	return exit, entry, true
}

// insideBetween samples the midpoint of a source segment whose endpoints
// both fail to project inside the domain, and reports whether the segment
// dips through the domain. Degenerate edges entirely outside the
// representable domain simply return false: they contribute no geometry.
func (r *refiner) insideBetween(src0, src1 Point) (Point, Point, bool) {
	mid := src0.Lerp(src1, 0.5)
	img, st := r.classify(mid)
	if st != stateInside {
		return Point{}, Point{}, false
	}
	return mid, img, true
}
