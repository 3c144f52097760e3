package logging

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttachesIdentity(t *testing.T) {
	var buf bytes.Buffer
	var logger = New(Config{Level: "debug", Service: "vpcflow", Instance: "i-123", Output: &buf})
	logger.Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "vpcflow", entry["service"])
	assert.Equal(t, "i-123", entry["instance"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hello", entry["message"])
}

func TestNewLevels(t *testing.T) {
	tc := []struct {
		Name    string
		Level   string
		Visible bool
	}{
		{Name: "default_info", Level: "", Visible: false},
		{Name: "unknown_falls_back", Level: "chatty", Visible: false},
		{Name: "debug", Level: " DEBUG ", Visible: true},
		{Name: "warn", Level: "warn", Visible: false},
	}
	for _, tt := range tc {
		t.Run(tt.Name, func(t *testing.T) {
			var buf bytes.Buffer
			var logger = New(Config{Level: tt.Level, Output: &buf})
			logger.Debug().Msg("detail")
			assert.Equal(t, tt.Visible, buf.Len() > 0)
		})
	}
}

func TestNewPretty(t *testing.T) {
	var buf bytes.Buffer
	var logger = New(Config{Pretty: true, Output: &buf})
	logger.Warn().Msg("careful")
	assert.Contains(t, buf.String(), "careful")
	assert.NotContains(t, buf.String(), `"message"`)
}
