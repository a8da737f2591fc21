package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"voicecrm-backend/internal/ai"
	"voicecrm-backend/internal/alerts"
	"voicecrm-backend/internal/recording"
)

type service struct {
	resolver   Resolver
	normalizer Normalizer
	synth      Synthesizer
	notifier   alerts.Notificator
}

func NewService(resolver Resolver, normalizer Normalizer, synth Synthesizer, notifier alerts.Notificator) Service {
	return &service{
		resolver:   resolver,
		normalizer: normalizer,
		synth:      synth,
		notifier:   notifier,
	}
}

// GenerateDualEmail runs one invocation through Resolved -> Normalized ->
// Synthesized -> Packaged. Resolution faults are fatal and typed; everything
// after resolution degrades instead of failing, so a non-nil error past that
// point only ever means an unexpected fault wrapped as *Failure.
func (s *service) GenerateDualEmail(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	log.Printf("[pipeline] >>> START user=%s rel=%s cont=%s",
		req.UserID, req.RelationshipRecordingID, req.ContentRecordingID)

	pair, err := s.resolver.ResolveDual(ctx, req.RelationshipRecordingID, req.ContentRecordingID, req.UserID)
	if err != nil {
		if recording.IsResolutionError(err) {
			return nil, err
		}
		s.notifier.Notify(ctx, err, fmt.Sprintf("pipeline resolve failed for user %s", req.UserID))
		return nil, &Failure{Stage: "resolve", Err: err}
	}

	// The two conversions have no data dependency.
	relPath, contPath := pair.RelationshipPath, pair.ContentPath
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		relPath = s.normalizer.EnsureMP3(ctx, relPath, req.RelationshipRecordingID)
	}()
	go func() {
		defer wg.Done()
		contPath = s.normalizer.EnsureMP3(ctx, contPath, req.ContentRecordingID)
	}()
	wg.Wait()

	res := s.synth.Synthesize(ctx, relPath, contPath, ai.Recipient{
		Name:         req.RecipientName,
		Email:        req.RecipientEmail,
		Relationship: req.Relationship,
	})
	if res.Failed {
		// Provider faults stay errors-as-content: the caller still gets a
		// well-formed envelope, with the explanation in the text field.
		log.Printf("[pipeline] synthesis degraded (%s) for user %s", res.Reason, req.UserID)
		s.notifier.Notify(ctx, fmt.Errorf("synthesis %s", res.Reason),
			fmt.Sprintf("dual-audio synthesis degraded for user %s", req.UserID))
	}

	log.Printf("[pipeline][%.1fs] done user=%s failed=%v", time.Since(start).Seconds(), req.UserID, res.Failed)

	return &Result{
		Email:            res.Text,
		ProcessingMethod: ProcessingMethodDirectAudio,
	}, nil
}
