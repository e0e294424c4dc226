package usecase

import (
	"context"
	"sync/atomic"

	"github.com/takumin/newsbrief/internal/domain/digest"
)

// SubmissionRecorder persists resolved submissions. Recording is
// best-effort; failures never surface into the UI.
type SubmissionRecorder interface {
	Record(topic, outcome string, articleCount int) error
}

// Submission couples a resolved result with the sequence number it was
// issued under. The UI keeps only the newest sequence and drops anything
// older, so a slow earlier call can never overwrite a later one.
type Submission struct {
	Seq    uint64
	Topic  string
	Result digest.Result
}

// DigestService hands out sequence numbers and runs submissions through
// the orchestrator.
type DigestService struct {
	Orchestrator *Orchestrator
	Recorder     SubmissionRecorder

	seq atomic.Uint64
}

// NewDigestService constructs a DigestService.
func NewDigestService(orchestrator *Orchestrator, recorder SubmissionRecorder) *DigestService {
	return &DigestService{Orchestrator: orchestrator, Recorder: recorder}
}

// Begin reserves the next submission sequence number.
func (s *DigestService) Begin() uint64 {
	return s.seq.Add(1)
}

// Submit runs one submission to completion and records its outcome.
func (s *DigestService) Submit(ctx context.Context, seq uint64, topic string) Submission {
	result := s.Orchestrator.Submit(ctx, topic)

	if s.Recorder != nil {
		outcome := "success"
		if !result.Succeeded() {
			outcome = result.Failure.Kind.String()
		}
		_ = s.Recorder.Record(topic, outcome, len(result.Articles))
	}

	return Submission{Seq: seq, Topic: topic, Result: result}
}
