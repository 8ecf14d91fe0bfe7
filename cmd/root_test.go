package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, "debug", logLevel(true))
	assert.Empty(t, logLevel(false), "an empty level lets LOG_LEVEL decide")
}
