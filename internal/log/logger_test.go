package log

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"DEBUG":   Debug,
		"info":    Info,
		"":        Info,
		"warn":    Warn,
		"warning": Warn,
		"error":   Error,
		"err":     Error,
		"unknown": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, "text")
	defer Setup(os.Stderr, "text")
	SetLevel(Warn)
	defer SetLevel(Info)

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "level=WARN")
}

func TestJSONFormatFromEnv(t *testing.T) {
	t.Setenv("CLEANWEB_LOG_FORMAT", "json")
	t.Setenv("CLEANWEB_LOG_LEVEL", "debug")
	InitFromEnvFallback("error", "text")
	defer func() {
		Setup(os.Stderr, "text")
		SetLevel(Info)
	}()

	var buf bytes.Buffer
	Setup(&buf, "json")
	Debugf("generated %d events", 13)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "generated 13 events", rec["msg"])
}
