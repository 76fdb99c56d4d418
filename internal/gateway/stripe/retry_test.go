package stripegw

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v74"

	testlog "profast-parcel-service/internal/testutil"
)

type fakeGateway struct {
	createFn func(context.Context, int64, string) (*Intent, error)
	getFn    func(context.Context, string) (*Intent, error)
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountCents int64, trackingCode string) (*Intent, error) {
	return f.createFn(ctx, amountCents, trackingCode)
}
func (f *fakeGateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	return f.getFn(ctx, id)
}

type counterStub struct{ n int64 }

func (c *counterStub) Inc() { atomic.AddInt64(&c.n, 1) }
func (c *counterStub) Count() int64 {
	return atomic.LoadInt64(&c.n)
}

func transientErr() error {
	return &stripe.Error{HTTPStatusCode: 503, Msg: "stripe is down"}
}

func TestRetryingGateway_CreateIntent_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		createFn: func(context.Context, int64, string) (*Intent, error) {
			switch atomic.AddInt32(&calls, 1) {
			case 1, 2:
				return nil, transientErr()
			default:
				return &Intent{ID: "pi_1"}, nil
			}
		},
	}
	ctr := &counterStub{}
	cfg := RetryConfig{MaxAttempts: 5, BaseDelay: 0, MaxDelay: 0}

	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)
	if g == nil {
		t.Fatal("expected non-nil gateway")
	}

	got, err := g.CreateIntent(context.Background(), 100, "PFT-1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got == nil || got.ID != "pi_1" {
		t.Fatalf("unexpected intent: %#v", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if ctr.Count() != 2 {
		t.Fatalf("expected 2 retries, got %d", ctr.Count())
	}
}

func TestRetryingGateway_NoRetryOnCardError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		createFn: func(context.Context, int64, string) (*Intent, error) {
			atomic.AddInt32(&calls, 1)
			return nil, &stripe.Error{HTTPStatusCode: 402, Msg: "card declined"}
		},
	}

	ctr := &counterStub{}
	cfg := RetryConfig{MaxAttempts: 5, BaseDelay: 0, MaxDelay: 0}

	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)

	_, err := g.CreateIntent(context.Background(), 100, "PFT-1")
	if err == nil {
		t.Fatal("expected error")
	}

	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if ctr.Count() != 0 {
		t.Fatalf("expected 0 retries, got %d", ctr.Count())
	}
}

func TestRetryingGateway_GetIntent_RetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	var calls int32
	next := &fakeGateway{
		getFn: func(context.Context, string) (*Intent, error) {
			switch atomic.AddInt32(&calls, 1) {
			case 1:
				return nil, &stripe.Error{HTTPStatusCode: 429, Msg: "rate limit"}
			default:
				return &Intent{ID: "pi_1", Status: "succeeded"}, nil
			}
		},
	}

	ctr := &counterStub{}
	cfg := RetryConfig{MaxAttempts: 3, BaseDelay: 0, MaxDelay: 0}

	g := NewRetryingGateway(next, rec.Logger(), ctr, cfg)

	got, err := g.GetIntent(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != "succeeded" {
		t.Fatalf("unexpected intent: %#v", got)
	}
	if ctr.Count() != 1 {
		t.Fatalf("expected 1 retry, got %d", ctr.Count())
	}
}

func TestRetryingGateway_StopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	rec := testlog.New()

	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	next := &fakeGateway{
		createFn: func(context.Context, int64, string) (*Intent, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return nil, transientErr()
		},
	}

	g := NewRetryingGateway(next, rec.Logger(), nil, RetryConfig{MaxAttempts: 5, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond})

	_, err := g.CreateIntent(ctx, 100, "PFT-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestBackoff_Capped(t *testing.T) {
	t.Parallel()

	if d := backoff(100*time.Millisecond, 200*time.Millisecond, 1); d != 100*time.Millisecond {
		t.Fatalf("unexpected delay: %v", d)
	}
	if d := backoff(100*time.Millisecond, 200*time.Millisecond, 2); d != 200*time.Millisecond {
		t.Fatalf("unexpected delay: %v", d)
	}
	if d := backoff(100*time.Millisecond, 200*time.Millisecond, 5); d != 200*time.Millisecond {
		t.Fatalf("unexpected delay: %v", d)
	}
}
