package indicator

import (
	"math"
	"sync"
	"time"
)

type cueKind int

const (
	cueKey cueKind = iota + 1
	cueResult
	cueError
	cueClear
)

const sampleRate = 16000

// note is one sine partial with a short linear attack/release.
type note struct {
	hz     float64
	length time.Duration
	gain   float64
	// decay fades the note exponentially instead of sustaining it.
	decay bool
}

// cue is a short phrase of notes separated by silence.
type cue struct {
	notes []note
	gap   time.Duration
}

var cues = map[cueKind]cue{
	cueKey: {notes: []note{
		{hz: 2000, length: 15 * time.Millisecond, gain: 0.12, decay: true},
	}},
	cueResult: {gap: 15 * time.Millisecond, notes: []note{
		{hz: 660, length: 60 * time.Millisecond, gain: 0.18},
		{hz: 880, length: 60 * time.Millisecond, gain: 0.18},
		{hz: 1320, length: 90 * time.Millisecond, gain: 0.16, decay: true},
	}},
	cueError: {gap: 30 * time.Millisecond, notes: []note{
		{hz: 330, length: 110 * time.Millisecond, gain: 0.2},
		{hz: 247, length: 140 * time.Millisecond, gain: 0.2},
	}},
	cueClear: {gap: 10 * time.Millisecond, notes: []note{
		{hz: 1046, length: 40 * time.Millisecond, gain: 0.14},
		{hz: 784, length: 50 * time.Millisecond, gain: 0.14, decay: true},
	}},
}

var renderedCues = sync.OnceValue(func() map[cueKind][]int16 {
	out := make(map[cueKind][]int16, len(cues))
	for kind, c := range cues {
		out[kind] = c.render()
	}
	return out
})

// cuePCM returns the mono 16 kHz samples for kind.
func cuePCM(kind cueKind) []int16 {
	return renderedCues()[kind]
}

func (c cue) render() []int16 {
	silence := make([]int16, sampleCount(c.gap))
	var pcm []int16
	for i, n := range c.notes {
		if i > 0 {
			pcm = append(pcm, silence...)
		}
		pcm = append(pcm, n.render()...)
	}
	return pcm
}

func (n note) render() []int16 {
	count := sampleCount(n.length)
	if count == 0 || n.hz <= 0 || n.gain <= 0 {
		return nil
	}

	// 5ms ramps keep note edges from clicking.
	ramp := float64(min(max(count/10, 1), sampleRate/200))
	pcm := make([]int16, count)
	for i := range pcm {
		amp := n.gain * min(1, float64(i)/ramp, float64(count-1-i)/ramp)
		if n.decay {
			amp *= math.Exp(-4 * float64(i) / float64(count))
		}
		phase := 2 * math.Pi * n.hz * float64(i) / sampleRate
		pcm[i] = int16(math.Round(math.Sin(phase) * amp * math.MaxInt16))
	}
	return pcm
}

func sampleCount(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * sampleRate))
}
