package glapi

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

type DebugMessage struct {
	ID       uint32
	Source   uint32
	Type     uint32
	Severity uint32
	Message  string
}

func (dm DebugMessage) SeverityString() string {
	switch dm.Severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "note"
	default:
		return ""
	}
}

// IsNotification reports whether the message is purely informational.
func (dm DebugMessage) IsNotification() bool {
	return dm.Severity == gl.DEBUG_SEVERITY_NOTIFICATION
}

func (dm DebugMessage) String() string {
	return fmt.Sprintf("[%s] %s", dm.SeverityString(), dm.Message)
}

// DebugOutput enables driver debug messages for the current context. It
// requires the typed backend to be initialized. Messages that arrive while
// the channel is full are dropped.
func DebugOutput() <-chan DebugMessage {
	ch := make(chan DebugMessage, 32)
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DONT_CARE, 0, nil, true)
	gl.DebugMessageCallback(func(source uint32, typ uint32, id uint32, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		dm := DebugMessage{
			ID:       id,
			Source:   source,
			Type:     typ,
			Severity: severity,
			Message:  message,
		}
		select {
		case ch <- dm:
		default:
		}
	}, nil)
	return ch
}
