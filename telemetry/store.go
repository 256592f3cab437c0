package telemetry

// metricLog is a fixed-capacity ring buffer over recorded metrics.
//
// Appends are O(1): once the buffer is full the oldest entry is overwritten
// in place, so retention never reallocates or slices the backing array.
// Callers hold the engine lock; the log itself is not synchronized.
type metricLog struct {
	entries []Metric
	head    int // next write position
	count   int
	max     int
}

func newMetricLog(max int) *metricLog {
	if max <= 0 {
		max = defaultMaxMetrics
	}
	return &metricLog{
		entries: make([]Metric, max),
		max:     max,
	}
}

// append stores m, evicting the oldest entry when the log is full.
func (l *metricLog) append(m Metric) {
	l.entries[l.head] = m
	l.head = (l.head + 1) % l.max
	if l.count < l.max {
		l.count++
	}
}

// all returns a copy of every entry in chronological order. The copy is
// never nil, so an empty log yields an empty slice.
func (l *metricLog) all() []Metric {
	result := make([]Metric, l.count)

	if l.count < l.max {
		// Buffer not yet full - entries are in order from 0 to count-1
		copy(result, l.entries[:l.count])
	} else {
		// Buffer is full - oldest entry sits at head
		for i := 0; i < l.count; i++ {
			result[i] = l.entries[(l.head+i)%l.max]
		}
	}

	return result
}

// byName returns entries whose name matches exactly, oldest first.
func (l *metricLog) byName(name string) []Metric {
	result := make([]Metric, 0)
	l.visit(func(m Metric) {
		if m.Name == name {
			result = append(result, m)
		}
	})
	return result
}

// byCategory returns entries in the given category, oldest first.
func (l *metricLog) byCategory(category Category) []Metric {
	result := make([]Metric, 0)
	l.visit(func(m Metric) {
		if m.Category == category {
			result = append(result, m)
		}
	})
	return result
}

// durationsByName returns the durations recorded under name, oldest first.
func (l *metricLog) durationsByName(name string) []float64 {
	result := make([]float64, 0)
	l.visit(func(m Metric) {
		if m.Name == name {
			result = append(result, m.DurationMs)
		}
	})
	return result
}

// visit walks entries in chronological order without copying.
func (l *metricLog) visit(fn func(Metric)) {
	if l.count < l.max {
		for i := 0; i < l.count; i++ {
			fn(l.entries[i])
		}
		return
	}
	for i := 0; i < l.count; i++ {
		fn(l.entries[(l.head+i)%l.max])
	}
}

// len returns the number of retained entries.
func (l *metricLog) len() int {
	return l.count
}

// clear discards every entry, keeping the allocated capacity.
func (l *metricLog) clear() {
	l.entries = make([]Metric, l.max)
	l.head = 0
	l.count = 0
}
