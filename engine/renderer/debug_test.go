package renderer_test

import (
	"testing"

	"github.com/spaghettifunk/gulag/engine/renderer"
	"github.com/stretchr/testify/assert"
)

func TestDescribeDebugMessage(t *testing.T) {
	msg := renderer.DebugMessage{
		Source:   renderer.DebugSourceAPI,
		Type:     renderer.DebugTypeDeprecatedBehavior,
		ID:       1281,
		Severity: renderer.DebugSeverityMedium,
		Text:     "glLineWidth is deprecated",
	}
	assert.Equal(t,
		"1281: [TYPE: DEPRECATED BEHAVIOR, SEVERITY: MEDIUM IN API], glLineWidth is deprecated",
		renderer.DescribeDebugMessage(msg))

	unknown := renderer.DebugMessage{Source: 1, Type: 2, ID: 3, Severity: 4, Text: "?"}
	assert.Equal(t,
		"3: [TYPE: UNKNOWN TYPE, SEVERITY: UNKNOWN SEVERITY IN UNKNOWN SOURCE], ?",
		renderer.DescribeDebugMessage(unknown))
}

func TestDebugReporterFiltersNotifications(t *testing.T) {
	buf := captureLog(t)
	ctx, d := newContext(t)

	renderer.InstallDebugReporter(ctx)
	assert.True(t, d.DebugEnabled)

	d.Emit(renderer.DebugMessage{
		Source:   renderer.DebugSourceAPI,
		Type:     renderer.DebugTypeOther,
		ID:       131185,
		Severity: renderer.DebugSeverityNotification,
		Text:     "buffer detailed info",
	})
	assert.NotContains(t, buf.String(), "buffer detailed info")

	d.Emit(renderer.DebugMessage{
		Source:   renderer.DebugSourceShaderCompiler,
		Type:     renderer.DebugTypeError,
		ID:       1282,
		Severity: renderer.DebugSeverityHigh,
		Text:     "invalid operation 100%",
	})
	assert.Contains(t, buf.String(), "1282: [TYPE: ERROR, SEVERITY: HIGH IN SHADER COMPILER], invalid operation 100%")

	d.Emit(renderer.DebugMessage{
		Source:   renderer.DebugSourceApplication,
		Type:     renderer.DebugTypePerformance,
		ID:       7,
		Severity: renderer.DebugSeverityLow,
		Text:     "slow path",
	})
	assert.Contains(t, buf.String(), "SEVERITY: LOW IN APPLICATION], slow path")
}

func TestVersionString(t *testing.T) {
	ctx, d := newContext(t)
	assert.Equal(t, d.VersionString, renderer.VersionString(ctx))
}

func TestDescribeDebugMessageOtherSource(t *testing.T) {
	msg := renderer.DebugMessage{
		Source:   renderer.DebugSourceOther,
		Type:     renderer.DebugTypeOther,
		ID:       9,
		Severity: renderer.DebugSeverityLow,
		Text:     "misc",
	}
	assert.Equal(t, "9: [TYPE: OTHER, SEVERITY: LOW IN OTHER], misc", renderer.DescribeDebugMessage(msg))
}
