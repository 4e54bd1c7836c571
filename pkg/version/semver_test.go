package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedDevBuild(t *testing.T) {
	resetParsedVersion()
	old := Version
	defer func() { Version = old; resetParsedVersion() }()

	Version = "dev"
	assert.Nil(t, Parsed())
	assert.True(t, IsDevBuild())
}

func TestCompare(t *testing.T) {
	resetParsedVersion()
	old := Version
	defer func() { Version = old; resetParsedVersion() }()

	Version = "1.2.3"
	assert.Equal(t, 1, Compare("1.2.2"))
	assert.Equal(t, 0, Compare("1.2.3"))
	assert.Equal(t, -1, Compare("1.3.0"))
	assert.True(t, IsNewerThan("1.0.0"))
	assert.False(t, IsNewerThan("2.0.0"))

	// Unparseable other version compares equal
	assert.Equal(t, 0, Compare("not-a-version"))
}
