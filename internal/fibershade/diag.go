package fibershade

import (
	"log/slog"
	"sort"
	"sync"
)

// Category classifies a diagnostic event.
type Category uint8

const (
	NonFinite  Category = iota // an intermediate was NaN/Inf and was zeroed
	NoRoot                     // the azimuthal solver found no root for a path
	Degenerate                 // input geometry collapsed (zero-length or colinear vectors)
)

func (c Category) String() string {
	switch c {
	case NonFinite:
		return "nonFinite"
	case NoRoot:
		return "noRoot"
	case Degenerate:
		return "degenerate"
	}
	return "unknown"
}

// DiagEvent is one recorded diagnostic: where it happened and the offending value.
type DiagEvent struct {
	Name     string
	Category Category
	Value    Real
}

// DiagLog collects numerical diagnostics from a shader.
// A nil *DiagLog is valid and records nothing.
type DiagLog struct {
	mu     sync.Mutex
	counts map[Category]int
	events map[Category][]DiagEvent // first DiagKeep events per category
	logger *slog.Logger
}

// NewDiagLog returns a log that also emits each kept event to logger (may be nil).
func NewDiagLog(logger *slog.Logger) *DiagLog {
	return &DiagLog{
		counts: make(map[Category]int),
		events: make(map[Category][]DiagEvent),
		logger: logger,
	}
}

func (d *DiagLog) record(name string, category Category, value Real) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[category]++
	if len(d.events[category]) >= DiagKeep {
		return
	}
	d.events[category] = append(d.events[category], DiagEvent{Name: name, Category: category, Value: value})
	if d.logger != nil {
		d.logger.Debug("shader diagnostic", "name", name, "category", category.String(), "value", value)
	}
}

// check records a NonFinite event for x and returns x, or 0 if it was not finite.
func (d *DiagLog) check(name string, x Real) Real {
	if isFinite(x) {
		return x
	}
	d.record(name, NonFinite, x)
	return 0
}

// Count returns how many events of category were seen.
func (d *DiagLog) Count(category Category) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[category]
}

// Events returns a copy of the kept events of category.
func (d *DiagLog) Events(category Category) []DiagEvent {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DiagEvent(nil), d.events[category]...)
}

// Stats logs per-category totals.
func (d *DiagLog) Stats(logger *slog.Logger) {
	if d == nil || logger == nil {
		return
	}
	d.mu.Lock()
	cats := make([]Category, 0, len(d.counts))
	for c := range d.counts {
		cats = append(cats, c)
	}
	counts := make(map[Category]int, len(d.counts))
	for c, n := range d.counts {
		counts[c] = n
	}
	d.mu.Unlock()
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, c := range cats {
		logger.Info("shader diagnostics", "category", c.String(), "count", counts[c])
	}
}
