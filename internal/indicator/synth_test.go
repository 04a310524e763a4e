package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEveryCueRenders(t *testing.T) {
	for _, kind := range []cueKind{cueKey, cueResult, cueError, cueClear} {
		pcm := cuePCM(kind)
		require.NotEmpty(t, pcm, kind)
		require.Zero(t, pcm[0], "cue %d must start silent", kind)
		require.Zero(t, pcm[len(pcm)-1], "cue %d must end silent", kind)
	}
	require.Empty(t, cuePCM(cueKind(99)))
}

func TestKeyCueIsShortest(t *testing.T) {
	key := len(cuePCM(cueKey))
	for _, kind := range []cueKind{cueResult, cueError, cueClear} {
		require.Less(t, key, len(cuePCM(kind)))
	}
}

func TestNoteRender(t *testing.T) {
	pcm := note{hz: 440, length: 100 * time.Millisecond, gain: 0.2}.render()
	require.Len(t, pcm, sampleCount(100*time.Millisecond))

	peak := 0
	for _, s := range pcm {
		peak = max(peak, int(math.Abs(float64(s))))
	}
	require.LessOrEqual(t, peak, int(0.2*math.MaxInt16)+1)
	require.Greater(t, peak, int(0.15*math.MaxInt16))

	require.Empty(t, note{hz: 0, length: 100 * time.Millisecond, gain: 0.2}.render())
	require.Empty(t, note{hz: 440, gain: 0.2}.render())
	require.Empty(t, note{hz: 440, length: 100 * time.Millisecond}.render())
}

func TestDecayingNoteFades(t *testing.T) {
	pcm := note{hz: 500, length: 100 * time.Millisecond, gain: 0.2, decay: true}.render()
	quarter := len(pcm) / 4

	peak := func(samples []int16) float64 {
		p := 0.0
		for _, s := range samples {
			p = math.Max(p, math.Abs(float64(s)))
		}
		return p
	}
	require.Greater(t, peak(pcm[:quarter]), 2*peak(pcm[3*quarter:]))
}

func TestCueRenderInsertsGaps(t *testing.T) {
	c := cue{gap: 20 * time.Millisecond, notes: []note{
		{hz: 440, length: 50 * time.Millisecond, gain: 0.2},
		{hz: 660, length: 50 * time.Millisecond, gain: 0.2},
	}}
	want := 2*sampleCount(50*time.Millisecond) + sampleCount(20*time.Millisecond)
	require.Len(t, c.render(), want)
	require.Empty(t, cue{}.render())
}

func TestSampleCount(t *testing.T) {
	require.Equal(t, 0, sampleCount(0))
	require.Equal(t, 0, sampleCount(-time.Second))
	require.Equal(t, 400, sampleCount(25*time.Millisecond))
}
