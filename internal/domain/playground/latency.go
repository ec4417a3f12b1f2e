package playground

import "time"

// Latency is the artificial delay applied before each operation runs.
type Latency struct {
	Models     time.Duration
	Model      time.Duration
	Completion time.Duration
	Templates  time.Duration
	Template   time.Duration
	Search     time.Duration
	Save       time.Duration
	Update     time.Duration
	Delete     time.Duration
	Reset      time.Duration
}

// DefaultLatency returns delays in the range a real backend would show.
func DefaultLatency() Latency {
	return Latency{
		Models:     300 * time.Millisecond,
		Model:      200 * time.Millisecond,
		Completion: 1500 * time.Millisecond,
		Templates:  400 * time.Millisecond,
		Template:   200 * time.Millisecond,
		Search:     300 * time.Millisecond,
		Save:       500 * time.Millisecond,
		Update:     500 * time.Millisecond,
		Delete:     400 * time.Millisecond,
		Reset:      500 * time.Millisecond,
	}
}

// NoLatency disables every delay.
func NoLatency() Latency {
	return Latency{}
}

// Scaled multiplies every delay by factor; a factor <= 0 yields NoLatency.
func (l Latency) Scaled(factor float64) Latency {
	if factor <= 0 {
		return NoLatency()
	}
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
	return Latency{
		Models:     scale(l.Models),
		Model:      scale(l.Model),
		Completion: scale(l.Completion),
		Templates:  scale(l.Templates),
		Template:   scale(l.Template),
		Search:     scale(l.Search),
		Save:       scale(l.Save),
		Update:     scale(l.Update),
		Delete:     scale(l.Delete),
		Reset:      scale(l.Reset),
	}
}
