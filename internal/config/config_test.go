package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Dedup.Strict)
	assert.InDelta(t, 0.95, cfg.Dedup.FuzzyThreshold, 0.0001)
	assert.Equal(t, 30, cfg.Classifier.SampleRows)
	assert.Equal(t, "transactions.yaml", cfg.Data.TransactionsFile)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INGEST_LOG_LEVEL", "debug")
	t.Setenv("INGEST_DEDUP_STRICT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Dedup.Strict)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "loud"
	cfg.Log.Format = "text"
	cfg.Dedup.FuzzyThreshold = 0.95
	cfg.Classifier.SampleRows = 30
	assert.Error(t, validate(cfg))

	cfg.Log.Level = "info"
	cfg.Dedup.FuzzyThreshold = 1.5
	assert.Error(t, validate(cfg))

	cfg.Dedup.FuzzyThreshold = 0.95
	cfg.Classifier.SampleRows = 0
	assert.Error(t, validate(cfg))

	cfg.Classifier.SampleRows = 10
	assert.NoError(t, validate(cfg))
}
