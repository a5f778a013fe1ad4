package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, lvl)

	lvl, err = ParseLogLevel(" warn ")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)

	_, err = ParseLogLevel("chatty")
	assert.Error(t, err)
}

func TestLogOutputAndLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel(WarnLevel)
	t.Cleanup(func() {
		SetLogLevel(InfoLevel)
	})

	LogInfo("hidden %d", 1)
	LogWarn("visible %d", 2)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "visible 2")
}

func TestLogWithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)

	LogWith("window", "abc").Info("created")

	assert.Contains(t, buf.String(), "created")
	assert.Contains(t, buf.String(), "window=abc")
}

func TestLogReportsCallSite(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)

	LogInfo("from the test")
	LogWith("window", "abc").Info("from a child")

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "logging_test.go:"), out)
	assert.NotContains(t, out, "core/logging.go:")
}
