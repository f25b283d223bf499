package logging

// ProgressSampler decides when a long loop should log its progress: every
// interval items, and always for the final item.
type ProgressSampler struct {
	interval int
	total    int
}

// NewProgressSampler constructs a sampler for total items. An interval below
// one falls back to 100.
func NewProgressSampler(interval, total int) *ProgressSampler {
	if interval < 1 {
		interval = 100
	}
	return &ProgressSampler{interval: interval, total: total}
}

// ShouldLog reports whether progress should be logged after done items.
func (s *ProgressSampler) ShouldLog(done int) bool {
	if s == nil {
		return true
	}
	if done <= 0 {
		return false
	}
	return done == s.total || done%s.interval == 0
}

// Percent returns completion as a percentage, or 100 with no items.
func (s *ProgressSampler) Percent(done int) float64 {
	if s == nil || s.total <= 0 {
		return 100
	}
	return float64(done) * 100 / float64(s.total)
}
