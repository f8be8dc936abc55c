package main

import (
	"testing"

	"ledger-reports/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfigReturnsError(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")

	err := run(config.Load())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}
