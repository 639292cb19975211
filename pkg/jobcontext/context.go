// Package jobcontext bounds background sync runs with a deadline and a run
// identity readable by the code the run invokes, and classifies provider
// errors as transient or permanent for retry decisions.
package jobcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunTimeout caps a single background sync run
const RunTimeout = 5 * time.Minute

type runKey struct{}

// Run identifies one background sync run
type Run struct {
	IntegrationID uuid.UUID
	Trigger       string
	StartedAt     time.Time
}

// Begin derives a deadline-bounded context carrying the run identity.
// The caller must invoke the returned cancel when the run finishes.
func Begin(parent context.Context, integrationID uuid.UUID, trigger string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, RunTimeout)
	ctx = context.WithValue(ctx, runKey{}, &Run{
		IntegrationID: integrationID,
		Trigger:       trigger,
		StartedAt:     time.Now(),
	})
	return ctx, cancel
}

// FromContext returns the run identity when ctx came from Begin
func FromContext(ctx context.Context) (*Run, bool) {
	run, ok := ctx.Value(runKey{}).(*Run)
	return run, ok
}

// transientMarkers are lowercase substrings of error text worth retrying:
// network faults, provider throttling and 5xx responses, and postgres
// lock conflicts.
var transientMarkers = []string{
	"context deadline exceeded",
	"connection refused",
	"connection reset",
	"network unreachable",
	"no such host",
	"i/o timeout",
	"deadlock",
	"40001", // serialization_failure
	"rate limit",
	"too many requests",
	"status 429",
	"status 5",
	"service unavailable",
	"bad gateway",
	"temporary failure",
}

// IsRetryableError reports whether a provider or store error is transient.
// Anything unrecognized is treated as permanent so bad credentials and
// malformed requests fail fast instead of burning the retry budget.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
