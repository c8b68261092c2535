// Package lifecycle models one user session's request state machine:
// Idle -> Pending -> Succeeded | Failed, with re-entry from the terminal
// states. At most one pipeline invocation is in flight per instance, and a
// cooldown window throttles how quickly submissions may follow each other.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viable-systems/competitor-quick-scan/internal/analyzer"
)

const DefaultCooldown = 5 * time.Second

var (
	// ErrInFlight rejects a submission while a request is pending. Rejection
	// happens at the boundary; the state itself does not change.
	ErrInFlight = errors.New("a scan is already in progress")
	// ErrCoolingDown rejects a submission inside the cooldown window,
	// measured from the start of the most recent accepted submission.
	ErrCoolingDown = errors.New("please wait a few seconds between scans")
)

type State int

const (
	StateIdle State = iota
	StatePending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is a point-in-time view of a lifecycle. Query is set in every
// state except Idle; Report only in Succeeded; Err only in Failed.
type Snapshot struct {
	State  State
	Query  string
	Report *analyzer.Report
	Err    error
}

type Lifecycle struct {
	id       string
	cooldown time.Duration
	now      func() time.Time

	mu           sync.Mutex
	state        State
	query        string
	report       *analyzer.Report
	err          error
	lastAccepted time.Time
}

func New(cooldown time.Duration) *Lifecycle {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Lifecycle{
		id:       uuid.NewString(),
		cooldown: cooldown,
		now:      time.Now,
		state:    StateIdle,
	}
}

// ID identifies this session in logs.
func (l *Lifecycle) ID() string {
	return l.id
}

// Submit accepts a new query and moves to Pending. Allowed from Idle and
// from either terminal state, never while Pending, and never inside the
// cooldown window.
func (l *Lifecycle) Submit(query string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.acceptLocked(); err != nil {
		return err
	}
	l.toPendingLocked(query)
	return nil
}

// Retry re-issues the failed query unchanged. Only valid from Failed, and
// subject to the same cooldown guard as Submit: a retry is a resubmission.
func (l *Lifecycle) Retry() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateFailed {
		return fmt.Errorf("retry from %s state", l.state)
	}
	if err := l.acceptLocked(); err != nil {
		return err
	}
	l.toPendingLocked(l.query)
	return nil
}

// Succeed records the report for the pending query.
func (l *Lifecycle) Succeed(report *analyzer.Report) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StatePending {
		return fmt.Errorf("succeed from %s state", l.state)
	}
	l.state = StateSucceeded
	l.report = report
	l.err = nil
	return nil
}

// Fail records the error for the pending query.
func (l *Lifecycle) Fail(err error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StatePending {
		return fmt.Errorf("fail from %s state", l.state)
	}
	l.state = StateFailed
	l.report = nil
	l.err = err
	return nil
}

func (l *Lifecycle) Current() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		State:  l.state,
		Query:  l.query,
		Report: l.report,
		Err:    l.err,
	}
}

func (l *Lifecycle) acceptLocked() error {
	if l.state == StatePending {
		return ErrInFlight
	}
	if !l.lastAccepted.IsZero() && l.now().Sub(l.lastAccepted) < l.cooldown {
		return ErrCoolingDown
	}
	return nil
}

func (l *Lifecycle) toPendingLocked(query string) {
	l.state = StatePending
	l.query = query
	l.report = nil
	l.err = nil
	l.lastAccepted = l.now()
}
