// Package telemetry exposes gameplay metrics and a small debug HTTP surface.
package telemetry

import (
	"sync/atomic"
	"time"

	"github.com/milk9111/tower/ecs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tower_frame_duration_seconds",
		Help:    "Time spent in one game update",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.016, 0.033},
	})

	levelGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tower_level",
		Help: "Current level index",
	})

	entityGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tower_entities",
		Help: "Live ECS entities",
	})

	// bounded: one label value per ecs.EventType
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tower_events_total",
		Help: "Gameplay events by type",
	}, []string{"type"})
)

// Snapshot is the state reported by the debug endpoints.
type Snapshot struct {
	State    string `json:"state"`
	Level    int    `json:"level"`
	Entities int    `json:"entities"`
	Paused   bool   `json:"paused"`
}

// Recorder publishes frame data from the game loop. It is safe to read the
// snapshot from the HTTP goroutine while the loop writes it.
type Recorder struct {
	snapshot atomic.Pointer[Snapshot]
}

func NewRecorder() *Recorder {
	r := &Recorder{}
	r.snapshot.Store(&Snapshot{State: "loading"})
	return r
}

// ObserveFrame records one update and the events it produced.
func (r *Recorder) ObserveFrame(d time.Duration, events []ecs.Event) {
	frameDuration.Observe(d.Seconds())
	for _, evt := range events {
		eventsTotal.WithLabelValues(string(evt.Type)).Inc()
	}
}

// Publish replaces the current snapshot.
func (r *Recorder) Publish(s Snapshot) {
	if r == nil {
		return
	}
	levelGauge.Set(float64(s.Level))
	entityGauge.Set(float64(s.Entities))
	r.snapshot.Store(&s)
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return *r.snapshot.Load()
}
