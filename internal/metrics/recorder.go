// Package metrics provides observability hooks for resolve runs. Components
// receive a Recorder by injection; NoopRecorder is the default so metrics
// stay optional and zero-cost when not configured.
package metrics

import "time"

// Recorder defines observability hooks for resolve runs. Implementations
// may forward to Prometheus; NoopRecorder is used when metrics are disabled.
type Recorder interface {
	ObserveResolveDuration(d time.Duration)
	IncResolveOutcome(outcome string) // outcome: success|failed
	IncResolveFailure(category string)
	SetPagesDiscovered(n int)
	SetNodesResolved(locale string, n int)
}

// Outcome label values for IncResolveOutcome.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(time.Duration) {}
func (NoopRecorder) IncResolveOutcome(string)             {}
func (NoopRecorder) IncResolveFailure(string)             {}
func (NoopRecorder) SetPagesDiscovered(int)               {}
func (NoopRecorder) SetNodesResolved(string, int)         {}
