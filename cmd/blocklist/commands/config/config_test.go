package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/marmos91/blocklist/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := generateSchema()
	require.NoError(t, err)

	var schema struct {
		Title      string                     `json:"title"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "Blocklist Configuration", schema.Title)
	for _, section := range []string{"logging", "telemetry", "metrics", "list", "workload"} {
		assert.Contains(t, schema.Properties, section)
	}
	assert.Contains(t, string(schema.Properties["workload"]), "memory_limit")
}

func TestConfigWarnings(t *testing.T) {
	cfg := config.GetDefaultConfig()
	assert.Empty(t, configWarnings(cfg))

	cfg.List.Degree = 100
	cfg.Workload.Seed = 5
	cfg.Workload.Runs = 3
	warnings := configWarnings(cfg)
	require.Len(t, warnings, 2)
	assert.True(t, strings.Contains(warnings[0], "power of two"))
	assert.Contains(t, warnings[1], "5..7")
}

func TestConfigWarnings_NoFullChecks(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Workload.Mix = config.MixConfig{Append: 1, Get: 1}

	warnings := configWarnings(cfg)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "never iterates")
}
