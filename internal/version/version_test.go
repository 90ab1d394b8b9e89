package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev (none, built unknown)", String())
	assert.Equal(t, "dev", Info()["version"])
}
