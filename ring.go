package projclip

// chain is a projected run of points produced by walking one source ring.
// A closed chain is a complete ring that never touched the domain boundary.
// An open chain begins and ends with boundary attachment points; start and
// end hold their arc positions along the boundary ring.
type chain struct {
	pts    []Point
	ring   int // source ring index: 0 = exterior, 1+ = holes
	seq    int // emission order within the source ring
	closed bool
	start  float64
	end    float64
}

// projectPath walks one source ring (or open line) vertex by vertex,
// projecting each, refining every discontinuity and boundary crossing, and
// returns the resulting chains. Consecutive points closer than the
// tolerance are suppressed so no repeated points survive near the boundary.
func (p *Projection) projectPath(src []Point, ringIndex int, closed bool) []*chain {
	r := p.refiner()
	n := len(src)
	imgs := make([]Point, n)
	sts := make([]pointState, n)
	for i, s := range src {
		imgs[i], sts[i] = r.classify(s)
	}

	var chains []*chain
	var cur []Point
	attached := false

	appendPt := func(pt Point) {
		if len(cur) > 0 && cur[len(cur)-1].NearlyEqual(pt, p.tol) {
			return
		}
		cur = append(cur, pt)
	}
	closeChain := func() {
		if len(cur) >= 2 {
			chains = append(chains, &chain{pts: cur, ring: ringIndex})
		}
		cur = nil
	}

	// edge consumes one source-space segment. The image of the segment's
	// first endpoint, when inside the domain, is already accumulated.
	var edge func(sa, sb, ia, ib Point, sta, stb pointState, depth int)
	edge = func(sa, sb, ia, ib Point, sta, stb pointState, depth int) {
		switch {
		case sta == stateInside && stb == stateInside:
			if ia.Distance(ib) > r.threshold {
				// Far-apart images suggest a seam teleport, but a long
				// continuous edge can exceed the threshold too; only a
				// confirmed jump splits the chain.
				if exit, entry, ok := r.seam(sa, sb, ia, ib); ok {
					appendPt(exit)
					closeChain()
					attached = true
					appendPt(entry)
					appendPt(ib)
					return
				}
			}
			// A straight image segment can still leave a concave domain
			// through a notch. Crossings at the endpoints are snap noise.
			if xs := p.interiorCrossings(ia, ib); len(xs) >= 2 {
				appendPt(xs[0].Point)
				closeChain()
				attached = true
				for k := 1; k+1 < len(xs); k += 2 {
					appendPt(xs[k].Point)
					appendPt(xs[k+1].Point)
					closeChain()
				}
				appendPt(xs[len(xs)-1].Point)
			}
			appendPt(ib)
		case sta == stateInside:
			// Leaving the domain.
			appendPt(r.crossing(sa, sb, ia))
			closeChain()
			attached = true
		case stb == stateInside:
			// Entering the domain.
			appendPt(r.crossing(sb, sa, ib))
			appendPt(ib)
			attached = true
		default:
			// Both endpoints fail: the segment may still dip through the
			// domain. One midpoint sample per level, depth-capped.
			if depth >= 4 {
				return
			}
			if smid, imid, ok := r.insideBetween(sa, sb); ok {
				edge(sa, smid, ia, imid, sta, stateInside, depth+1)
				edge(smid, sb, imid, ib, stateInside, stb, depth+1)
			}
		}
	}

	if sts[0] == stateInside {
		appendPt(imgs[0])
	}
	last := n - 1
	if closed {
		last = n
	}
	for i := 1; i <= last; i++ {
		j := i % n
		edge(src[i-1], src[j], imgs[i-1], imgs[j], sts[i-1], sts[j], 0)
	}

	switch {
	case closed && !attached:
		// Never touched the boundary: either a complete projected ring or
		// nothing at all.
		if len(cur) >= 2 && cur[0].NearlyEqual(cur[len(cur)-1], p.tol) {
			cur = cur[:len(cur)-1]
		}
		if len(cur) >= 3 {
			chains = append(chains, &chain{pts: cur, ring: ringIndex, closed: true})
		}
		cur = nil
	case closed && len(cur) > 0 && len(chains) > 0 && sts[0] == stateInside:
		// The ring started inside the domain, so the leftover run and the
		// first emitted chain are two halves of one traversal: the leftover
		// ends where the first chain begins. Merge them.
		first := chains[0].pts
		if len(first) > 0 && cur[len(cur)-1].NearlyEqual(first[0], p.tol) {
			first = first[1:]
		}
		chains[0].pts = append(cur, first...)
		cur = nil
	default:
		closeChain()
	}

	out := chains[:0]
	for _, c := range chains {
		if c.closed || len(c.pts) >= 2 {
			c.seq = len(out)
			out = append(out, c)
		}
	}
	Logger().Debug("projclip: ring projected",
		"ring", ringIndex, "chains", len(out), "attached", attached)
	return out
}

// interiorCrossings returns the true boundary crossings of a projected
// segment whose endpoints both lie inside the domain, filtering out
// endpoint snap noise. An odd count means a tolerance artifact; the
// segment is then treated as fully interior.
func (p *Projection) interiorCrossings(ia, ib Point) []Crossing {
	xs := p.boundary.Intersect(ia, ib)
	if len(xs) == 0 {
		return nil
	}
	seg := ia.Distance(ib)
	if seg <= p.tol {
		return nil
	}
	tEps := p.tol / seg
	out := xs[:0]
	for _, x := range xs {
		if x.T <= tEps || x.T >= 1-tEps {
			continue
		}
		out = append(out, x)
	}
	if len(out)%2 != 0 {
		return nil
	}
	return out
}
