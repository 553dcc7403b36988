package backend

import (
	"github.com/rs/zerolog"
)

// Select picks the strategy for the process and logs the decision once.
// A forced parallel kind that is not usable falls back to Scalar with a
// warning; selection never fails.
func Select(opts Options, logger zerolog.Logger) Backend {
	caps := Detect(opts.Workers)
	return selectWith(opts, caps, logger)
}

func selectWith(opts Options, caps Capabilities, logger zerolog.Logger) Backend {
	var (
		b      Backend
		lanes  = 1
		reason string
	)

	switch {
	case opts.Kind == KindScalar:
		b, reason = Scalar{}, "scalar requested"
	case caps.Parallel:
		p := NewParallel(caps.Lanes, opts.BatchThreshold, caps.Features)
		b, lanes, reason = p, p.Lanes(), caps.Reason
	default:
		if opts.Kind == KindParallel {
			logger.Warn().
				Str("reason", caps.Reason).
				Msg("parallel backend requested but unavailable, using scalar")
		}
		b, reason = Scalar{}, caps.Reason
	}

	logger.Info().
		Str("backend", b.Name()).
		Int("lanes", lanes).
		Str("reason", reason).
		Msg("backend selected")
	return b
}
