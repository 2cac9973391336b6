package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	Version, Commit, Date = "1.2.0", "unknown", "unknown"
	assert.Equal(t, "1.2.0", String())

	Commit, Date = "abc123", "2026-10-01"
	assert.Equal(t, "1.2.0 (commit abc123, built 2026-10-01)", String())
}
