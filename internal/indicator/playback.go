package indicator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfreymuth/pulse"
	"github.com/rbright/caltwo/internal/config"
)

// emitCue plays kind, preferring a configured sound file and falling back to
// the synthesized tone when the file is missing or fails to play.
func emitCue(ctx context.Context, kind cueKind, cfg config.SoundConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if path := cueFile(kind, cfg); path != "" {
		if err := playFile(ctx, path); err == nil {
			return nil
		}
	}

	pcm := cuePCM(kind)
	if len(pcm) == 0 {
		return nil
	}
	return playPCM(pcm)
}

// cueFile returns the configured override for kind, if any.
func cueFile(kind cueKind, cfg config.SoundConfig) string {
	switch kind {
	case cueResult:
		return ExpandHome(cfg.ResultFile)
	case cueError:
		return ExpandHome(cfg.ErrorFile)
	default:
		return ""
	}
}

// ExpandHome resolves a leading "~" against the user home directory.
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func playFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat cue file %q: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
	defer cancel()
	if err := exec.CommandContext(ctx, "pw-play", "--media-role", "Notification", path).Run(); err != nil {
		return fmt.Errorf("play cue file %q: %w", path, err)
	}
	return nil
}

// ProbeServer checks that the PulseAudio/PipeWire server accepts a client.
func ProbeServer() error {
	client, err := dialPulse()
	if err != nil {
		return err
	}
	client.Close()
	return nil
}

func dialPulse() (*pulse.Client, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("caltwo"),
		pulse.ClientApplicationIconName("accessories-calculator"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return client, nil
}

func playPCM(pcm []int16) error {
	client, err := dialPulse()
	if err != nil {
		return err
	}
	defer client.Close()

	stream, err := client.NewPlayback(
		pcmSource(pcm),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(0.02),
		pulse.PlaybackMediaName("caltwo cue"),
	)
	if err != nil {
		return fmt.Errorf("create pulse playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()
	stream.Drain()
	if err := stream.Error(); err != nil {
		return fmt.Errorf("play cue stream: %w", err)
	}
	return nil
}

// pcmSource feeds pcm to a playback stream and signals EndOfData with the
// final chunk.
func pcmSource(pcm []int16) pulse.Int16Reader {
	return func(buf []int16) (int, error) {
		n := copy(buf, pcm)
		pcm = pcm[n:]
		if len(pcm) == 0 {
			return n, pulse.EndOfData
		}
		return n, nil
	}
}
