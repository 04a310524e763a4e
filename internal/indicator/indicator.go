// Package indicator plays audio cues for calculator session events.
package indicator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rbright/caltwo/internal/config"
)

// Sound is the concrete cue player wired into runtime sessions.
type Sound struct {
	cfg    config.SoundConfig
	logger *slog.Logger

	// emit is swapped in tests.
	emit func(context.Context, cueKind, config.SoundConfig) error

	soundMu sync.Mutex
	wg      sync.WaitGroup
}

// NewSound creates a cue player from config.
func NewSound(cfg config.SoundConfig, logger *slog.Logger) *Sound {
	return &Sound{cfg: cfg, logger: logger, emit: emitCue}
}

// CueKey emits the key-click cue when key clicks are enabled.
func (s *Sound) CueKey(ctx context.Context) {
	if !s.cfg.KeyClicks {
		return
	}
	s.playCue(ctx, cueKey)
}

// CueResult emits the evaluation cue.
func (s *Sound) CueResult(ctx context.Context) {
	s.playCue(ctx, cueResult)
}

// CueError emits the error cue.
func (s *Sound) CueError(ctx context.Context) {
	s.playCue(ctx, cueError)
}

// CueClear emits the reset cue.
func (s *Sound) CueClear(ctx context.Context) {
	s.playCue(ctx, cueClear)
}

// Wait blocks until queued cues have finished playing.
func (s *Sound) Wait() {
	s.wg.Wait()
}

// playCue serializes cue playback and emits audio asynchronously.
func (s *Sound) playCue(ctx context.Context, kind cueKind) {
	if !s.cfg.Enable {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.soundMu.Lock()
		defer s.soundMu.Unlock()
		if err := s.emit(ctx, kind, s.cfg); err != nil {
			s.log("indicator audio cue failed", err)
		}
	}()
}

// log emits debug-only indicator failures to the runtime logger.
func (s *Sound) log(message string, err error) {
	if s.logger == nil || err == nil {
		return
	}
	s.logger.Debug(message, "error", err.Error())
}
