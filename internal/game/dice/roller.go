package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged random draws.
// Every draw is logged at debug level with the purpose it was drawn for.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Float64 draws a uniform value in [0, 1).
func (r *Roller) Float64(purpose string) float64 {
	v := r.src.Float64()
	r.logger.Debug("draw",
		zap.String("purpose", purpose),
		zap.Float64("value", v),
	)
	return v
}

// Pick draws a uniform index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(purpose string, n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("pick",
		zap.String("purpose", purpose),
		zap.Int("n", n),
		zap.Int("index", v),
	)
	return v
}

// Range draws a uniform int in [lo, hi], inclusive on both ends.
//
// Precondition: lo <= hi.
func (r *Roller) Range(purpose string, lo, hi int) int {
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("range",
		zap.String("purpose", purpose),
		zap.Int("min", lo),
		zap.Int("max", hi),
		zap.Int("value", v),
	)
	return v
}
