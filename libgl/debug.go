package libgl

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// driver chatter about buffer placement and shader recompiles
var ignoredMessages = []uint32{131185, 131218}

// EnableDebugOutput routes driver debug messages to logger. High severity
// messages are treated as programming errors and panic.
func EnableDebugOutput(logger *slog.Logger) {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			switch gltype {
			case gl.DEBUG_TYPE_PUSH_GROUP:
				groupStack = append(groupStack, message)
				return
			case gl.DEBUG_TYPE_POP_GROUP:
				groupStack = groupStack[:len(groupStack)-1]
				return
			}
			attrs := []any{"id", id, "type", debugTypeName(gltype), "source", debugSourceName(source)}
			switch severity {
			case gl.DEBUG_SEVERITY_HIGH:
				log.Panicf("%v #%v from %v: %v\ndebug stack: %v", debugTypeName(gltype), id, debugSourceName(source), message, strings.Join(groupStack, " > "))
			case gl.DEBUG_SEVERITY_MEDIUM:
				logger.Error(message, attrs...)
			case gl.DEBUG_SEVERITY_LOW:
				logger.Warn(message, attrs...)
			default:
				logger.Debug(message, attrs...)
			}
		}, nil)
	gl.DebugMessageControl(gl.DEBUG_SOURCE_API, gl.DEBUG_TYPE_OTHER, gl.DONT_CARE, int32(len(ignoredMessages)), &ignoredMessages[0], false)
}

func debugTypeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "PERFORMANCE"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "PORTABILITY"
	case gl.DEBUG_TYPE_MARKER:
		return "MARKER"
	}
	return "OTHER"
}

func debugSourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GRAPHICS_LIBRARY"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "SHADER_COMPILER"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "APPLICATION"
	}
	return "OTHER"
}

// PushGroup opens a named debug group; the returned func pops it.
func PushGroup(name string) func() {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(fmt.Sprintf("%s\x00", name)))
	return gl.PopDebugGroup
}
