package projclip

// Option configures a Projection during creation.
//
// Example:
//
//	// Default behavior
//	pr := projclip.New(projector, boundary)
//
//	// Tighter refinement with strict stitching
//	pr := projclip.New(projector, boundary,
//	    projclip.WithMaxIterations(100),
//	    projclip.WithStrictStitching(true))
type Option func(*Projection)

// WithTolerance sets the absolute projected-space tolerance used for
// duplicate suppression, bisection convergence, and stitching tie-breaks.
// The default is derived from the boundary's extent. Boundary walks keep
// filtering ring vertices with the boundary's own tolerance; points a
// coarser setting would merge are dropped by chain deduplication instead.
func WithTolerance(tol float64) Option {
	return func(p *Projection) {
		if tol > 0 {
			p.tol = tol
		}
	}
}

// WithThreshold sets the discontinuity threshold: a projected edge whose
// endpoints are further apart than this is probed for a seam teleport. The
// probe only splits the edge when the jump is confirmed by bisection, so a
// long continuous edge passing the threshold stays intact. The default is
// a quarter of the domain extent.
func WithThreshold(d float64) Option {
	return func(p *Projection) {
		if d > 0 {
			p.threshold = d
		}
	}
}

// WithMaxIterations caps the bisection iteration count of the edge
// refiner. The cap guarantees termination regardless of input geometry;
// reaching it is not an error, the current best estimate is used. The
// default is 64.
func WithMaxIterations(n int) Option {
	return func(p *Projection) {
		if n > 0 {
			p.maxIter = n
		}
	}
}

// WithStrictStitching makes an unresolved boundary crossing a returned
// error instead of a logged fallback. Useful in tests and debug builds;
// production callers normally want the default best-effort behavior.
func WithStrictStitching(strict bool) Option {
	return func(p *Projection) {
		p.strict = strict
	}
}
