package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding flow.
type Metrics struct {
	// Screen moves by origin and destination
	Transitions *prometheus.CounterVec

	// Events that were not reachable from the current screen
	EventsIgnored *prometheus.CounterVec

	// Forward moves refused by a gate, by screen
	GateRejections *prometheus.CounterVec

	// Timer callbacks that reached a screen no longer current
	StaleTimerFirings prometheus.Counter

	// Sessions that reached their terminal state, by variant
	SessionsCompleted *prometheus.CounterVec

	// Time spent on each screen activation
	ScreenDuration *prometheus.HistogramVec
}

// New creates the flow metrics and registers them on reg. A nil reg creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_transitions_total",
			Help: "Total screen transitions by origin and destination screen",
		}, []string{"from", "to"}),

		EventsIgnored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_events_ignored_total",
			Help: "Total events ignored because the current screen does not accept them",
		}, []string{"screen", "event"}),

		GateRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_gate_rejections_total",
			Help: "Total forward transitions refused by a validation gate",
		}, []string{"screen"}),

		StaleTimerFirings: factory.NewCounter(prometheus.CounterOpts{
			Name: "onboarding_stale_timer_firings_total",
			Help: "Total timer callbacks discarded because their screen was no longer current",
		}),

		SessionsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "onboarding_sessions_completed_total",
			Help: "Total onboarding sessions that reached their terminal state",
		}, []string{"variant"}),

		ScreenDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "onboarding_screen_duration_seconds",
			Help:    "Time spent on a screen before leaving it",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"screen"}),
	}
}

func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

func (m *Metrics) IncrementIgnored(screen, event string) {
	if m != nil {
		m.EventsIgnored.WithLabelValues(screen, event).Inc()
	}
}

func (m *Metrics) IncrementGateRejection(screen string) {
	if m != nil {
		m.GateRejections.WithLabelValues(screen).Inc()
	}
}

func (m *Metrics) IncrementStaleTimerFiring() {
	if m != nil {
		m.StaleTimerFirings.Inc()
	}
}

func (m *Metrics) IncrementSessionCompleted(variant string) {
	if m != nil {
		m.SessionsCompleted.WithLabelValues(variant).Inc()
	}
}

// ObserveScreenDuration records how long a screen stayed current.
func (m *Metrics) ObserveScreenDuration(screen string, d time.Duration) {
	if m != nil {
		m.ScreenDuration.WithLabelValues(screen).Observe(d.Seconds())
	}
}
