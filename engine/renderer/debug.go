package renderer

import (
	"fmt"

	"github.com/spaghettifunk/gulag/engine/core"
)

// Debug message enumerants, as reported by the driver.
const (
	DebugSourceAPI            uint32 = 0x8246
	DebugSourceWindowSystem   uint32 = 0x8247
	DebugSourceShaderCompiler uint32 = 0x8248
	DebugSourceThirdParty     uint32 = 0x8249
	DebugSourceApplication    uint32 = 0x824A
	DebugSourceOther          uint32 = 0x824B

	DebugTypeError              uint32 = 0x824C
	DebugTypeDeprecatedBehavior uint32 = 0x824D
	DebugTypeUndefinedBehavior  uint32 = 0x824E
	DebugTypePortability        uint32 = 0x824F
	DebugTypePerformance        uint32 = 0x8250
	DebugTypeOther              uint32 = 0x8251
	DebugTypeMarker             uint32 = 0x8268

	DebugSeverityNotification uint32 = 0x826B
	DebugSeverityHigh         uint32 = 0x9146
	DebugSeverityMedium       uint32 = 0x9147
	DebugSeverityLow          uint32 = 0x9148
)

// InstallDebugReporter enables driver debug output and routes every message
// more severe than a notification to the engine log. A context must be
// current; the callback is process-wide.
func InstallDebugReporter(ctx *Context) {
	ctx.driver.EnableDebugOutput()
	ctx.driver.DebugMessageCallback(reportDebugMessage)
	core.LogDebug("driver debug output enabled")
}

func reportDebugMessage(msg DebugMessage) {
	if msg.Severity <= DebugSeverityNotification {
		return
	}
	line := DescribeDebugMessage(msg)
	switch msg.Severity {
	case DebugSeverityHigh:
		core.LogError("%s", line)
	case DebugSeverityMedium:
		core.LogWarn("%s", line)
	default:
		core.LogInfo("%s", line)
	}
}

// DescribeDebugMessage formats msg as
// "id: [TYPE: type, SEVERITY: severity IN source], text".
func DescribeDebugMessage(msg DebugMessage) string {
	return fmt.Sprintf("%d: [TYPE: %s, SEVERITY: %s IN %s], %s",
		msg.ID, debugTypeName(msg.Type), debugSeverityName(msg.Severity), debugSourceName(msg.Source), msg.Text)
}

func debugSourceName(source uint32) string {
	switch source {
	case DebugSourceAPI:
		return "API"
	case DebugSourceWindowSystem:
		return "WINDOW SYSTEM"
	case DebugSourceShaderCompiler:
		return "SHADER COMPILER"
	case DebugSourceThirdParty:
		return "THIRD PARTY"
	case DebugSourceApplication:
		return "APPLICATION"
	case DebugSourceOther:
		return "OTHER"
	default:
		return "UNKNOWN SOURCE"
	}
}

func debugTypeName(t uint32) string {
	switch t {
	case DebugTypeError:
		return "ERROR"
	case DebugTypeDeprecatedBehavior:
		return "DEPRECATED BEHAVIOR"
	case DebugTypeUndefinedBehavior:
		return "UNDEFINED BEHAVIOR"
	case DebugTypePortability:
		return "PORTABILITY"
	case DebugTypePerformance:
		return "PERFORMANCE"
	case DebugTypeOther:
		return "OTHER"
	case DebugTypeMarker:
		return "MARKER"
	default:
		return "UNKNOWN TYPE"
	}
}

func debugSeverityName(severity uint32) string {
	switch severity {
	case DebugSeverityHigh:
		return "HIGH"
	case DebugSeverityMedium:
		return "MEDIUM"
	case DebugSeverityLow:
		return "LOW"
	case DebugSeverityNotification:
		return "NOTIFICATION"
	default:
		return "UNKNOWN SEVERITY"
	}
}

// VersionString returns the driver version string, for logging.
func VersionString(ctx *Context) string {
	return ctx.driver.Version()
}
