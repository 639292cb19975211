package jobcontext

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBeginCarriesRunIdentity(t *testing.T) {
	id := uuid.New()
	ctx, cancel := Begin(context.Background(), id, "scheduled")
	defer cancel()

	run, ok := FromContext(ctx)
	if !ok {
		t.Fatal("run identity missing from context")
	}
	if run.IntegrationID != id || run.Trigger != "scheduled" {
		t.Fatalf("unexpected run identity: %+v", run)
	}
	if run.StartedAt.IsZero() {
		t.Fatal("run start time not set")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context has no deadline")
	}
	if remaining := time.Until(deadline); remaining > RunTimeout {
		t.Fatalf("deadline exceeds run timeout: %v", remaining)
	}
}

func TestFromContext_PlainContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("plain context must carry no run identity")
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err       error
		retryable bool
	}{
		{nil, false},
		{fmt.Errorf("dial tcp: connection refused"), true},
		{fmt.Errorf("transcript provider returned status 503"), true},
		{fmt.Errorf("transcript provider returned status 429"), true},
		{fmt.Errorf("rate limit exceeded"), true},
		{fmt.Errorf("pq: deadlock detected"), true},
		{fmt.Errorf("context deadline exceeded"), true},
		{fmt.Errorf("invalid token"), false},
		{fmt.Errorf("transcript provider returned status 401"), false},
		{fmt.Errorf("board id is required"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.retryable {
			t.Fatalf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.retryable)
		}
	}
}
