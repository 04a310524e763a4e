package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPrefersLinkerValues(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = saved[0], saved[1], saved[2] })

	Version, Commit, Date = "1.2.3", "abc123", "2026-02-18"

	got := String()
	require.Contains(t, got, "caltwo 1.2.3 (commit=abc123, date=2026-02-18, go=")
}

func TestFromBuildInfoFillsUnsetFields(t *testing.T) {
	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	}}

	commit, date := fromBuildInfo(info, "none", "unknown")
	require.Equal(t, "0123456789ab", commit)
	require.Equal(t, "2026-10-01T12:00:00Z", date)

	commit, date = fromBuildInfo(info, "abc", "today")
	require.Equal(t, "abc", commit)
	require.Equal(t, "today", date)
}
