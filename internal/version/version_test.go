package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	SetBuildVars("", "", "")
	t.Cleanup(func() { SetBuildVars("", "", "") })

	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "unknown", info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

func TestGet_BuildVars(t *testing.T) {
	SetBuildVars("v1.2.3", "abc1234", "2026-08-27T10:00:00Z")
	t.Cleanup(func() { SetBuildVars("", "", "") })

	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.Commit)
	assert.Equal(t, "2026-08-27T10:00:00Z", info.BuildTime)
}

func TestWrite(t *testing.T) {
	SetBuildVars("v1.2.3", "abc1234", "2026-08-27T10:00:00Z")
	t.Cleanup(func() { SetBuildVars("", "", "") })
	info := Get()

	var short strings.Builder
	require.NoError(t, info.Write(&short, true))
	assert.Equal(t, "v1.2.3\n", short.String())

	var full strings.Builder
	require.NoError(t, info.Write(&full, false))
	assert.Contains(t, full.String(), "testsmith v1.2.3")
	assert.Contains(t, full.String(), "commit: abc1234")
}
