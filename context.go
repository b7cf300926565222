package voronoi

import (
	"fmt"
	"time"
)

// LogCategory classifies a diagnostic message emitted through a Contexter.
type LogCategory int

const (
	// LogProgress reports normal build progress.
	LogProgress LogCategory = iota
	// LogWarning reports a recoverable oddity (e.g. a near-degenerate
	// configuration that was still resolved).
	LogWarning
	// LogError reports a condition that is about to become a returned
	// error.
	LogError
)

// TimerLabel names one phase of Build that can be timed independently.
type TimerLabel int

const (
	TimerTotal TimerLabel = iota
	TimerSweep
	TimerCompleteEdges
	TimerClip
)

// Contexter is the set of logging and timing calls Build makes on its
// diagnostic context, after the teacher's rcContext logging/timer split.
// Context implements it. Build itself takes a *Context, so another
// Contexter implementation cannot be passed to Build.
type Contexter interface {
	Log(category LogCategory, format string, args ...interface{})
	StartTimer(label TimerLabel)
	StopTimer(label TimerLabel)
}

// Context is the default Contexter. It accumulates elapsed time per label
// across possibly multiple Start/Stop pairs, and discards log messages
// unless EnableLog is set.
type Context struct {
	EnableLog bool

	start map[TimerLabel]time.Time
	total map[TimerLabel]time.Duration
}

// NewContext returns a ready-to-use Context with logging disabled.
func NewContext() *Context {
	return &Context{
		start: make(map[TimerLabel]time.Time),
		total: make(map[TimerLabel]time.Duration),
	}
}

// Log prints a diagnostic message if c.EnableLog is set.
func (c *Context) Log(category LogCategory, format string, args ...interface{}) {
	if !c.EnableLog {
		return
	}
	prefix := "voronoi"
	switch category {
	case LogWarning:
		prefix = "voronoi: warning"
	case LogError:
		prefix = "voronoi: error"
	}
	fmt.Printf("%s: %s\n", prefix, fmt.Sprintf(format, args...))
}

// StartTimer marks the start of a phase. Calling it again before StopTimer
// overwrites the previous start time.
func (c *Context) StartTimer(label TimerLabel) {
	c.start[label] = time.Now()
}

// StopTimer adds the elapsed time since the matching StartTimer to label's
// running total. No-op if StartTimer was not called for label.
func (c *Context) StopTimer(label TimerLabel) {
	if start, ok := c.start[label]; ok {
		c.total[label] += time.Since(start)
		delete(c.start, label)
	}
}

// ElapsedTime returns the accumulated duration recorded for label.
func (c *Context) ElapsedTime(label TimerLabel) time.Duration {
	return c.total[label]
}
