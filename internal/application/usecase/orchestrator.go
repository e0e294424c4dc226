// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/takumin/newsbrief/internal/domain/digest"
)

const (
	// DefaultDeadline bounds one whole submission, retries and backoffs
	// included.
	DefaultDeadline = 90 * time.Second
	// DefaultAttempts is the total number of attempts per submission.
	DefaultAttempts = 3
	// DefaultBackoff is the fixed delay between attempts. No growth, no
	// jitter.
	DefaultBackoff = time.Second
)

// Attempt is the raw outcome of one network attempt against the digest API.
type Attempt struct {
	Status int    // HTTP status code, zero when no response arrived
	Body   []byte // response body when Status is set
	Err    error  // transport-level failure
}

// Transport issues a single digest request attempt. Implementations must
// honor ctx cancellation.
type Transport interface {
	Send(ctx context.Context, req digest.Request) Attempt
}

// Phase is one state of the submission protocol.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSending
	PhaseRetrying
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSending:
		return "sending"
	case PhaseRetrying:
		return "retrying"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// outcomeKind classifies a single attempt for the transition function.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeApplication
	outcomeClient
	outcomeServer
	outcomeNetwork
	outcomeTimeout
)

// attemptOutcome is a classified attempt plus, when the attempt reached
// payload validation, the parsed result.
type attemptOutcome struct {
	kind   outcomeKind
	status int
	err    error
	result digest.Result
}

// nextPhase is the pure transition function of the submission state
// machine: Sending -> {Retrying, Succeeded, Failed}. Only transient
// outcomes earn a retry, and only while attempts remain.
func nextPhase(attempt, maxAttempts int, kind outcomeKind) Phase {
	switch kind {
	case outcomeSuccess:
		return PhaseSucceeded
	case outcomeNetwork, outcomeServer:
		if attempt < maxAttempts {
			return PhaseRetrying
		}
		return PhaseFailed
	default:
		return PhaseFailed
	}
}

// Orchestrator runs the bounded retry protocol around a single digest
// call. Each Submit owns its own state; nothing is shared across
// concurrent submissions.
type Orchestrator struct {
	transport Transport
	deadline  time.Duration
	attempts  int
	backoff   time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator creates an orchestrator with the default protocol
// parameters.
func NewOrchestrator(transport Transport) *Orchestrator {
	return &Orchestrator{
		transport: transport,
		deadline:  DefaultDeadline,
		attempts:  DefaultAttempts,
		backoff:   DefaultBackoff,
		sleep:     sleepContext,
	}
}

// WithProtocol overrides deadline, attempt count and backoff. Zero values
// keep the defaults.
func (o *Orchestrator) WithProtocol(deadline time.Duration, attempts int, backoff time.Duration) *Orchestrator {
	if deadline > 0 {
		o.deadline = deadline
	}
	if attempts > 0 {
		o.attempts = attempts
	}
	if backoff > 0 {
		o.backoff = backoff
	}
	return o
}

// Submit runs the full protocol for one topic and always returns exactly
// one result; every failure mode is recovered into the result value.
func (o *Orchestrator) Submit(ctx context.Context, topic string) digest.Result {
	req := digest.Request{Topic: topic, GenerateAIDigest: true}
	if err := req.Validate(); err != nil {
		return digest.Fail(digest.FailureClient, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	phase := PhaseSending
	attempt := 0
	var last attemptOutcome

	for phase == PhaseSending || phase == PhaseRetrying {
		if phase == PhaseRetrying {
			if err := o.sleep(ctx, o.backoff); err != nil {
				last = attemptOutcome{kind: outcomeTimeout, err: err}
				phase = PhaseFailed
				break
			}
			phase = PhaseSending
		}
		attempt++
		last = classifyAttempt(ctx, o.transport.Send(ctx, req))
		phase = nextPhase(attempt, o.attempts, last.kind)
	}

	if phase == PhaseSucceeded {
		return last.result
	}
	return failureResult(last, attempt)
}

// classifyAttempt maps a raw attempt onto the protocol's retry taxonomy.
// A transport abort caused by the overall deadline is a timeout, not a
// network failure.
func classifyAttempt(ctx context.Context, att Attempt) attemptOutcome {
	if att.Err != nil {
		if errors.Is(att.Err, context.DeadlineExceeded) || ctx.Err() != nil {
			return attemptOutcome{kind: outcomeTimeout, err: att.Err}
		}
		return attemptOutcome{kind: outcomeNetwork, err: att.Err}
	}

	switch {
	case att.Status >= 500:
		return attemptOutcome{kind: outcomeServer, status: att.Status}
	case att.Status >= 200 && att.Status < 300:
		result := digest.ParsePayload(att.Body)
		if result.Succeeded() {
			return attemptOutcome{kind: outcomeSuccess, status: att.Status, result: result}
		}
		return attemptOutcome{kind: outcomeApplication, status: att.Status, result: result}
	default:
		return attemptOutcome{kind: outcomeClient, status: att.Status}
	}
}

func failureResult(last attemptOutcome, attempts int) digest.Result {
	switch last.kind {
	case outcomeTimeout:
		return digest.Fail(digest.FailureTimeout, "digest request exceeded its deadline")
	case outcomeNetwork:
		return digest.Fail(digest.FailureNetwork, fmt.Sprintf("request failed after %d attempts: %v", attempts, last.err))
	case outcomeServer:
		return digest.Fail(digest.FailureServer, fmt.Sprintf("server returned status %d after %d attempts", last.status, attempts))
	case outcomeClient:
		return digest.Fail(digest.FailureClient, fmt.Sprintf("server rejected the request with status %d", last.status))
	case outcomeApplication:
		return last.result
	default:
		return digest.Fail(digest.FailureApplication, "submission ended in an unexpected state")
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
