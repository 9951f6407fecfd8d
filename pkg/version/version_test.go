package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests in this file mutate package globals and must not run in parallel.

func restore(t *testing.T) {
	t.Helper()

	v, c, d := Version, Commit, Date

	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFromBuildInfo_FillsDefaults(t *testing.T) {
	restore(t)

	Version, Commit, Date = "dev", "none", "unknown"

	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v1.4.0", Version)
	assert.Equal(t, "0123456789ab", Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", Date)
}

func TestFromBuildInfo_KeepsLinkerValues(t *testing.T) {
	restore(t)

	Version, Commit, Date = "v2.0.0", "abc", "today"

	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})

	assert.Equal(t, "v2.0.0", Version)
	assert.Equal(t, "abc", Commit)
	assert.Equal(t, "today", Date)
}

func TestFromBuildInfo_IgnoresDevel(t *testing.T) {
	restore(t)

	Version = "dev"

	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	assert.Equal(t, "dev", Version)
}

func TestString(t *testing.T) {
	restore(t)

	Version, Commit, Date = "v1", "c", "d"

	assert.Equal(t, "mtie v1 (commit: c, built: d)", String())
}
