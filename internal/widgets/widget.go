package widgets

import (
	"github.com/SAP-F-2025/widget-service/internal/models"
	"k8s.io/utils/clock"
)

// Widget is the part of every interaction state machine the session host needs.
type Widget interface {
	Kind() models.WidgetType
	// Snapshot returns a copy of the view state safe to serialize.
	Snapshot() interface{}
	Marks() Marks
	// Close releases timers and in-flight work. Every later event returns ErrClosed.
	Close()
}

// Marks is how a widget scores itself for the host.
type Marks struct {
	Total    float64
	Obtained float64
	Finished bool
	// Incorrect is set by widgets that count wrong attempts.
	Incorrect *int
}

// Clock is the timer capability machines schedule deferred work on.
type Clock = clock.WithDelayedExecution

func stopTimers(timers []clock.Timer) {
	for _, t := range timers {
		t.Stop()
	}
}
