package status

// Progress is the sink the graph build driver reports through
// Fraction is in [0.0, 1.0]; Task is a short description of the active step
// Readers (render, bench) poll; the single build owner writes
type Progress struct {
	Fraction AtomicFloat
	Task     AtomicString
}

// Report stores fraction and task in one call
func (p *Progress) Report(fraction float64, task string) {
	p.Fraction.Set(fraction)
	p.Task.Store(task)
}

// NewProgress returns a zeroed progress sink
func NewProgress() *Progress {
	return &Progress{}
}
