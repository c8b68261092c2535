package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/viable-systems/competitor-quick-scan/internal/analyzer"
)

// fakeClock lets tests drive the cooldown window without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestLifecycle() (*Lifecycle, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
	lc := New(5 * time.Second)
	lc.now = clock.now
	return lc, clock
}

func TestSubmit_FromIdle(t *testing.T) {
	lc, _ := newTestLifecycle()

	if err := lc.Submit("Stripe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := lc.Current()
	if snap.State != StatePending {
		t.Errorf("expected pending, got %s", snap.State)
	}
	if snap.Query != "Stripe" {
		t.Errorf("expected query Stripe, got %q", snap.Query)
	}
}

func TestSubmit_RejectedWhilePending(t *testing.T) {
	lc, clock := newTestLifecycle()
	mustSubmit(t, lc, "Stripe")

	// Even past the cooldown, a second submission while pending is a no-op.
	clock.advance(10 * time.Second)
	err := lc.Submit("Square")
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	snap := lc.Current()
	if snap.State != StatePending || snap.Query != "Stripe" {
		t.Errorf("state changed on rejected submit: %s %q", snap.State, snap.Query)
	}
}

func TestSubmit_CooldownFromTerminalState(t *testing.T) {
	lc, clock := newTestLifecycle()
	mustSubmit(t, lc, "Stripe")

	// Complete quickly; the window is measured from the submission start.
	clock.advance(1 * time.Second)
	if err := lc.Succeed(&analyzer.Report{Query: "Stripe"}); err != nil {
		t.Fatalf("succeed: %v", err)
	}

	clock.advance(2 * time.Second) // 3s after start, inside the 5s window
	err := lc.Submit("Square")
	if !errors.Is(err, ErrCoolingDown) {
		t.Fatalf("expected ErrCoolingDown, got %v", err)
	}
	if snap := lc.Current(); snap.State != StateSucceeded {
		t.Errorf("state changed on rejected submit: %s", snap.State)
	}

	clock.advance(3 * time.Second) // 6s after start, window elapsed
	if err := lc.Submit("Square"); err != nil {
		t.Fatalf("submit after cooldown: %v", err)
	}
	if snap := lc.Current(); snap.State != StatePending || snap.Query != "Square" {
		t.Errorf("expected pending Square, got %s %q", snap.State, snap.Query)
	}
}

func TestFail_ThenRetryReusesQuery(t *testing.T) {
	lc, clock := newTestLifecycle()
	mustSubmit(t, lc, "Stripe")

	failure := errors.New("provider down")
	if err := lc.Fail(failure); err != nil {
		t.Fatalf("fail: %v", err)
	}
	snap := lc.Current()
	if snap.State != StateFailed || !errors.Is(snap.Err, failure) {
		t.Fatalf("expected failed with recorded error, got %s %v", snap.State, snap.Err)
	}

	clock.advance(6 * time.Second)
	if err := lc.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	snap = lc.Current()
	if snap.State != StatePending {
		t.Errorf("expected pending after retry, got %s", snap.State)
	}
	if snap.Query != "Stripe" {
		t.Errorf("retry must reuse the original query, got %q", snap.Query)
	}
	if snap.Err != nil {
		t.Errorf("error not cleared on retry: %v", snap.Err)
	}
}

func TestRetry_SubjectToCooldown(t *testing.T) {
	lc, clock := newTestLifecycle()
	mustSubmit(t, lc, "Stripe")
	if err := lc.Fail(errors.New("boom")); err != nil {
		t.Fatalf("fail: %v", err)
	}

	clock.advance(2 * time.Second)
	if err := lc.Retry(); !errors.Is(err, ErrCoolingDown) {
		t.Fatalf("expected ErrCoolingDown, got %v", err)
	}
	if snap := lc.Current(); snap.State != StateFailed {
		t.Errorf("state changed on rejected retry: %s", snap.State)
	}
}

func TestRetry_OnlyFromFailed(t *testing.T) {
	lc, _ := newTestLifecycle()
	if err := lc.Retry(); err == nil {
		t.Fatal("expected error retrying from idle")
	}

	mustSubmit(t, lc, "Stripe")
	if err := lc.Retry(); err == nil {
		t.Fatal("expected error retrying while pending")
	}
}

func TestSucceed_RecordsReport(t *testing.T) {
	lc, _ := newTestLifecycle()
	mustSubmit(t, lc, "Stripe")

	report := &analyzer.Report{Query: "Stripe", Markdown: "# Competitive Analysis: Stripe\n"}
	if err := lc.Succeed(report); err != nil {
		t.Fatalf("succeed: %v", err)
	}
	snap := lc.Current()
	if snap.State != StateSucceeded {
		t.Errorf("expected succeeded, got %s", snap.State)
	}
	if snap.Report != report {
		t.Errorf("report not recorded")
	}
}

func TestSucceedFail_OnlyFromPending(t *testing.T) {
	lc, _ := newTestLifecycle()
	if err := lc.Succeed(&analyzer.Report{}); err == nil {
		t.Error("expected error succeeding from idle")
	}
	if err := lc.Fail(errors.New("x")); err == nil {
		t.Error("expected error failing from idle")
	}
}

func mustSubmit(t *testing.T, lc *Lifecycle, query string) {
	t.Helper()
	if err := lc.Submit(query); err != nil {
		t.Fatalf("submit %q: %v", query, err)
	}
}
