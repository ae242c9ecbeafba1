package anneal

// Observer receives progress callbacks from a running driver, always on
// the coordinating goroutine. A nil Observer disables reporting; the
// CLI passes its verbosity-gated reporter here.
type Observer interface {
	// TemperatureLevel is called once per completed temperature level
	// with that level's statistics.
	TemperatureLevel(level int, temperature, avgEnergy float64, accepted, trials int)
	// ResampleDecision is called once per worker slot during the
	// parallel driver's resampling step.
	ResampleDecision(level, slot, source int, restarted bool, energy float64)
}
