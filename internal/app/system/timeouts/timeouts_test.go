package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	defer timeouts.Reset()

	timeouts.Configure(timeouts.Config{Validate: 3 * time.Second})

	if got := timeouts.Validate(); got != 3*time.Second {
		t.Errorf("Validate() = %v, want 3s", got)
	}
	if got := timeouts.Metadata(); got != timeouts.DefaultMetadata {
		t.Errorf("Metadata() = %v, want default %v", got, timeouts.DefaultMetadata)
	}
}

func TestReset(t *testing.T) {
	timeouts.Configure(timeouts.Config{Submit: time.Minute, Ping: time.Second})
	timeouts.Reset()

	cur := timeouts.Current()
	if cur.Submit != timeouts.DefaultSubmit || cur.Ping != timeouts.DefaultPing {
		t.Errorf("Reset did not restore defaults: %+v", cur)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), 10*time.Millisecond, zap.NewNop(), "test op")
	defer cancel()

	select {
	case <-ctx.Done():
		if ctx.Err() != context.DeadlineExceeded {
			t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
		}
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
}
