package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultPollInterval = 10 * time.Second
	defaultPollTimeout  = 10 * time.Minute
)

var errStillProcessing = errors.New("file still processing")

type service struct {
	client       Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewService(client Client) Service {
	return NewServiceWithPolling(client, defaultPollInterval, defaultPollTimeout)
}

// NewServiceWithPolling exposes the poll knobs; the defaults match the
// provider's tens-of-seconds processing times.
func NewServiceWithPolling(client Client, interval, timeout time.Duration) Service {
	return &service{
		client:       client,
		pollInterval: interval,
		pollTimeout:  timeout,
	}
}

func (s *service) Synthesize(ctx context.Context, relationshipPath, contentPath string, rcpt Recipient) SynthesisResult {
	start := time.Now()
	log.Printf("[ai] >>> START dual-audio synthesis rel=%s cont=%s",
		filepath.Base(relationshipPath), filepath.Base(contentPath))

	relFile, err := s.client.UploadFile(ctx, relationshipPath)
	if err != nil {
		return failure(ReasonUploadFailed,
			fmt.Sprintf("Error: could not upload the relationship audio: %v. Re-recording or converting the file to mp3 usually resolves this.", err))
	}
	contFile, err := s.client.UploadFile(ctx, contentPath)
	if err != nil {
		return failure(ReasonUploadFailed,
			fmt.Sprintf("Error: could not upload the content audio: %v. Re-recording or converting the file to mp3 usually resolves this.", err))
	}

	files := []*UploadedFile{relFile, contFile}
	if err := s.waitUntilTerminal(ctx, files); err != nil {
		return failure(ReasonNotReady,
			fmt.Sprintf("Error: the uploaded audio was not processed in time: %v. Try again with mp3 audio.", err))
	}
	relFile, contFile = files[0], files[1]

	for _, f := range []struct {
		label string
		file  *UploadedFile
	}{
		{"relationship", relFile},
		{"content", contFile},
	} {
		if f.file.State != FileStateActive {
			log.Printf("[ai] %s audio settled in state %s", f.label, f.file.State)
			return failure(ReasonNotReady,
				fmt.Sprintf("Error: the %s audio could not be processed by the model (state %s). This usually happens with webm uploads - convert the recording to mp3 and try again.", f.label, f.file.State))
		}
	}

	text, err := s.client.GenerateFromFiles(ctx, buildPrompt(rcpt), files)
	log.Printf("[ai][%.1fs] generation done err=%v", time.Since(start).Seconds(), err)
	if err != nil {
		return failure(ReasonGenerationFailed,
			fmt.Sprintf("Error: the model failed to process the audio files: %v. Uploading mp3 audio usually resolves this.", err))
	}

	// Raw model output, no schema validation: downstream gets best-effort text.
	return SynthesisResult{Text: text}
}

// waitUntilTerminal polls both handles at a fixed interval until neither is
// PROCESSING, bounded by the service's poll timeout.
func (s *service) waitUntilTerminal(ctx context.Context, files []*UploadedFile) error {
	ctx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()

	tick := backoff.WithContext(backoff.NewConstantBackOff(s.pollInterval), ctx)

	return backoff.Retry(func() error {
		done := true
		for i, f := range files {
			if f.State != FileStateProcessing {
				continue
			}
			fresh, err := s.client.GetFile(ctx, f.Name)
			if err != nil {
				return backoff.Permanent(err)
			}
			files[i] = fresh
			if fresh.State == FileStateProcessing {
				log.Printf("[ai] file %s is still %s", fresh.Name, fresh.State)
				done = false
			}
		}
		if !done {
			return errStillProcessing
		}
		return nil
	}, tick)
}

func failure(reason, text string) SynthesisResult {
	return SynthesisResult{Text: text, Failed: true, Reason: reason}
}
