package convert

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const ffmpegBin = "ffmpeg"

// Extensions we know how to transcode. Anything else passes through.
var convertible = map[string]bool{
	".webm": true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
}

type service struct {
	runner Runner
	store  MetadataStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(runner Runner, store MetadataStore) Service {
	return &service{
		runner: runner,
		store:  store,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *service) EnsureMP3(ctx context.Context, path string, recordingID string) string {
	ext := strings.ToLower(filepath.Ext(path))

	// Common case: already canonical, zero filesystem writes.
	if ext == ".mp3" {
		return path
	}

	if !convertible[ext] {
		log.Printf("[convert] unknown format %s, passing through: %s", ext, filepath.Base(path))
		return path
	}

	// Two concurrent requests converting the same recording would otherwise
	// both run the check-sibling/transcode sequence.
	key := recordingID
	if key == "" {
		key = path
	}
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	mp3Path := strings.TrimSuffix(path, filepath.Ext(path)) + ".mp3"

	// Prior conversion: reuse it, but still repair any metadata drift.
	if _, err := os.Stat(mp3Path); err == nil {
		log.Printf("[convert] reusing existing mp3: %s", filepath.Base(mp3Path))
		s.propagate(ctx, recordingID, mp3Path)
		return mp3Path
	}

	err := s.runner.Run(ctx, ffmpegBin,
		"-i", path,
		"-acodec", "mp3",
		"-ab", "128k",
		"-ar", "44100",
		"-y",
		mp3Path,
	)
	if err != nil {
		// Deliberate degrade: keep the original path and let downstream
		// stages fail visibly instead of retrying here.
		log.Printf("[convert] ffmpeg failed for %s: %v (using original)", filepath.Base(path), err)
		return path
	}

	log.Printf("[convert] converted %s -> %s", filepath.Base(path), filepath.Base(mp3Path))
	s.propagate(ctx, recordingID, mp3Path)
	return mp3Path
}

func (s *service) propagate(ctx context.Context, recordingID, mp3Path string) {
	if recordingID == "" || s.store == nil {
		return
	}
	id, err := uuid.Parse(recordingID)
	if err != nil {
		log.Printf("[convert] bad recording id %q, metadata not updated", recordingID)
		return
	}

	var size int64
	if fi, err := os.Stat(mp3Path); err == nil {
		size = fi.Size()
	}

	if err := s.store.UpdateConverted(ctx, id, mp3Path, "audio/mp3", size); err != nil {
		log.Printf("[convert] metadata update failed for %s: %v", recordingID, err)
	}
}

func (s *service) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}
