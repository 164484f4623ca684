package telemetry

// Sampler decides when a generation is due for logging, the same
// window-cadence role the teacher's Collector plays for its event
// windows, simplified to a flat tick interval since there is nothing
// here to accumulate between samples (GenerationStats is built fresh
// from a single grid walk each time).
type Sampler struct {
	everyNTicks int
	lastSample  int
}

// NewSampler returns a Sampler that considers a generation due once
// every n ticks, starting with generation 0. n <= 0 samples every
// generation.
func NewSampler(everyNTicks int) *Sampler {
	return &Sampler{everyNTicks: everyNTicks, lastSample: -everyNTicks}
}

// Due reports whether generation should be sampled, and if so advances
// the internal cadence tracker.
func (s *Sampler) Due(generation int) bool {
	if s.everyNTicks <= 0 || generation-s.lastSample >= s.everyNTicks {
		s.lastSample = generation
		return true
	}
	return false
}
