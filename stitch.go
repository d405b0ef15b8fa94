package projclip

import (
	"math"
	"sort"
)

// Boundary-following reassembly: open chains from every ring of one
// polygon are pooled and reconnected into closed rings by alternating
// original-path runs with arcs walked along the domain boundary. This is
// Weiler-Atherton restricted to a single clip boundary, expressed over a
// flat pool of chains instead of a linked crossing graph.

// arcAhead returns the travel distance from arc position from to arc
// position to, measured in the walk direction.
func arcAhead(b *Boundary, from, to float64, forward bool) float64 {
	var d float64
	if forward {
		d = math.Mod(to-from, b.Length())
	} else {
		d = math.Mod(from-to, b.Length())
	}
	if d < 0 {
		d += b.Length()
	}
	return d
}

// stitch closes the pooled open chains into rings. The boundary is walked
// counter-clockwise for counter-clockwise source exteriors and clockwise
// otherwise, so the domain interior stays on the same side as the polygon
// interior. Returns the closed rings and whether any unmatched fragment
// was dropped; the caller decides whether that is an error.
func stitch(b *Boundary, open []*chain, srcCCW bool, tol float64) (rings [][]Point, fallback bool) {
	if len(open) == 0 {
		return nil, false
	}

	// Deterministic processing order: ring origin, then emission sequence.
	pool := make([]*chain, len(open))
	copy(pool, open)
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].ring != pool[j].ring {
			return pool[i].ring < pool[j].ring
		}
		return pool[i].seq < pool[j].seq
	})

	used := make([]bool, len(pool))
	for s := range pool {
		if used[s] {
			continue
		}
		used[s] = true
		start := pool[s]
		ring := appendDedup(nil, start.pts, tol)
		cur := start.end

		closed := false
		for steps := 0; steps <= len(pool); steps++ {
			// Select the next attachment reached when walking the boundary
			// from cur: the nearest unused chain entry, or the start chain's
			// own entry, whichever comes first. Exact ties break by pool
			// order so results are reproducible.
			next := -1
			best := arcAhead(b, cur, start.start, srcCCW)
			for j, c := range pool {
				if used[j] {
					continue
				}
				d := arcAhead(b, cur, c.start, srcCCW)
				if d < best-tol {
					best = d
					next = j
				}
			}
			arc := b.Walk(cur, pickStart(pool, next, start), srcCCW)
			if next < 0 {
				// Closing arc back to where this ring began.
				ring = appendDedup(ring, arc[:len(arc)-1], tol)
				closed = true
				break
			}
			ring = appendDedup(ring, arc[:len(arc)-1], tol)
			ring = appendDedup(ring, pool[next].pts, tol)
			used[next] = true
			cur = pool[next].end
		}
		if !closed {
			// An attachment was consumed twice or never matched: upstream
			// geometry or tolerance defect. Keep the rings already closed,
			// drop the fragment, and report the fallback.
			fallback = true
			Logger().Warn("projclip: unmatched boundary attachment, dropping fragment",
				"ring", start.ring, "seq", start.seq)
			continue
		}
		if len(ring) >= 2 && ring[0].NearlyEqual(ring[len(ring)-1], tol) {
			ring = ring[:len(ring)-1]
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings, fallback
}

// pickStart returns the arc position stitching should walk to next: the
// chosen chain's entry, or the start chain's entry when closing.
func pickStart(pool []*chain, next int, start *chain) float64 {
	if next < 0 {
		return start.start
	}
	return pool[next].start
}

// appendDedup appends pts to ring, suppressing consecutive points that
// coincide within tol.
func appendDedup(ring []Point, pts []Point, tol float64) []Point {
	for _, p := range pts {
		if len(ring) > 0 && ring[len(ring)-1].NearlyEqual(p, tol) {
			continue
		}
		ring = append(ring, p)
	}
	return ring
}
